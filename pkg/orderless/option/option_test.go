// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package option

import (
	"testing"

	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/assert"
	"github.com/consensys/go-orderless/pkg/util/source"
)

func Test_Parse_01(t *testing.T) {
	items := checkParse(t, "public, func = add, defs(a = 1, b)")
	//
	assert.Equal(t, 3, len(items))
	assert.True(t, items[0].IsBare())
	assert.Equal(t, "add", syntax.Text(items[1].Value))
	assert.True(t, items[2].IsList)
	assert.Equal(t, "a = 1, b", syntax.Text(items[2].List))
}

func Test_Parse_02(t *testing.T) {
	items := checkParse(t, "defs(), func = f(x, y),")
	//
	assert.Equal(t, 2, len(items))
	assert.True(t, items[0].IsList && len(items[0].List) == 0)
	assert.Equal(t, "f(x, y)", syntax.Text(items[1].Value))
}

func Test_Parse_03(t *testing.T) {
	items := checkParse(t, "")
	assert.Equal(t, 0, len(items))
}

func Test_Parse_Invalid_01(t *testing.T) {
	checkParseFails(t, "a.b = 1", "expected an identifier")
}

func Test_Parse_Invalid_02(t *testing.T) {
	checkParseFails(t, "a = ", "expected a value")
}

func Test_Parse_Invalid_03(t *testing.T) {
	checkParseFails(t, "a b", "unexpected token")
}

func Test_Parse_Invalid_04(t *testing.T) {
	checkParseFails(t, "a(b", "unclosed bracket")
}

func Test_Parse_Invalid_05(t *testing.T) {
	err := checkParseFails(t, "a, , b", "expected an identifier")
	// Reported at the extra comma
	span := err.Span()
	assert.Equal(t, 3, span.Start())
}

func Test_Parse_Invalid_06(t *testing.T) {
	checkParseFails(t, "defs(a) b", "expected \",\"")
}

func Test_Parse_04(t *testing.T) {
	// Commas within brackets do not separate options.
	items := checkParse(t, "a = []int{1, 2}, b = f(x, g(y, z))")
	//
	assert.Equal(t, 2, len(items))
	assert.Equal(t, "[]int{1, 2}", syntax.Text(items[0].Value))
	assert.Equal(t, "f(x, g(y, z))", syntax.Text(items[1].Value))
}

func Test_Bindings_01(t *testing.T) {
	bindings, errs := ParseBindings(checkTokens(t, "a = x + 1, b, c = g(1, 2)"))
	//
	assert.NoErrors(t, errs)
	assert.Equal(t, 3, len(bindings))
	assert.Equal(t, "x + 1", syntax.Text(bindings[0].Value))
	assert.True(t, bindings[1].Value == nil)
	assert.Equal(t, "g(1, 2)", syntax.Text(bindings[2].Value))
}

func Test_Bindings_02(t *testing.T) {
	_, errs := ParseBindings(checkTokens(t, "type = 1"))
	assert.Failed(t, errs, "expected an identifier")
}

func Test_Names_01(t *testing.T) {
	names, errs := ParseNames(checkTokens(t, "a, b"))
	//
	assert.NoErrors(t, errs)
	assert.Equal(t, 2, len(names))
	assert.Equal(t, "b", names[1].Text())
}

func Test_Names_02(t *testing.T) {
	_, errs := ParseNames(checkTokens(t, "a, b = 1"))
	err := assert.Failed(t, errs, "expected an identifier")
	assert.Equal(t, "values are not permitted here", err.Hint())
}

func Test_Decode_01(t *testing.T) {
	options := checkDecode(t, "func = pkg.Add, public, order(a, b)")
	//
	assert.Equal(t, "pkg.Add", options.Function("func"))
	assert.True(t, options.Bool("public", false))
	assert.Equal(t, 2, len(options.Names("order")))
	assert.True(t, options.Identifier("name") == nil)
	assert.True(t, !options.Has("defs"))
}

func Test_Decode_02(t *testing.T) {
	options := checkDecode(t, "func = (*T).m, name = run, public = false, defs(self)")
	//
	assert.Equal(t, "(*T).m", options.Function("func"))
	assert.Equal(t, "run", options.Identifier("name").Text())
	assert.True(t, !options.Bool("public", true))
	assert.Equal(t, 1, len(options.Bindings("defs")))
}

func Test_Decode_Invalid_01(t *testing.T) {
	checkDecodeFails(t, "func = f, colour = red", "unknown option \"colour\"")
}

func Test_Decode_Invalid_02(t *testing.T) {
	checkDecodeFails(t, "func = f, func = g", "duplicate option \"func\"")
}

func Test_Decode_Invalid_03(t *testing.T) {
	checkDecodeFails(t, "public", "missing option \"func\"")
}

func Test_Decode_Invalid_04(t *testing.T) {
	checkDecodeFails(t, "func = f, public = 1", "expected a boolean")
}

func Test_Decode_Invalid_05(t *testing.T) {
	checkDecodeFails(t, "func = f, defs = 1", "expected a list")
}

func Test_Decode_Invalid_06(t *testing.T) {
	checkDecodeFails(t, "func = f, name = a.b", "expected an identifier")
}

func Test_Decode_Invalid_07(t *testing.T) {
	checkDecodeFails(t, "func", "expected a value")
}

// ==================================================================
// Framework
// ==================================================================

var testFields = []Field{
	{"name", IDENT, false},
	{"public", BOOL, false},
	{"func", FUNC, true},
	{"order", NAMES, false},
	{"defs", BINDINGS, false},
}

func checkTokens(t *testing.T, text string) []syntax.Token {
	tokens, errs := syntax.Lex(source.NewSourceFile("test.ogo", []byte(text)))
	assert.NoErrors(t, errs)
	// Drop the end of file marker
	return tokens[:len(tokens)-1]
}

func checkParse(t *testing.T, text string) []Item {
	items, errs := Parse(checkTokens(t, text))
	assert.NoErrors(t, errs)
	//
	return items
}

func checkParseFails(t *testing.T, text string, expected string) source.SyntaxError {
	_, errs := Parse(checkTokens(t, text))
	return assert.Failed(t, errs, expected)
}

func decodeText(t *testing.T, text string) (Options, []source.SyntaxError) {
	var tokens = checkTokens(t, "at "+text)
	//
	items, errs := Parse(tokens[1:])
	assert.NoErrors(t, errs)
	//
	return Decode(tokens[0], items, testFields...)
}

func checkDecode(t *testing.T, text string) Options {
	options, errs := decodeText(t, text)
	assert.NoErrors(t, errs)
	//
	return options
}

func checkDecodeFails(t *testing.T, text string, expected string) {
	_, errs := decodeText(t, text)
	assert.Failed(t, errs, expected)
}
