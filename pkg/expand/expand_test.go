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
package expand

import (
	"fmt"
	"strings"
	"testing"

	"github.com/consensys/go-orderless/pkg/orderless"
	"github.com/consensys/go-orderless/pkg/util/assert"
	"github.com/consensys/go-orderless/pkg/util/source"
)

func Test_Expand_01(t *testing.T) {
	checkExpand(t, Options{}, []string{`package p

//orderless:make(defs(b = 2))
func add(a, b int) int { return a + b }

func f() int { return add!(a = 1) }
`}, `package p

func add(a, b int) int { return a + b }

func f() int { return add(1, 2) }
`)
}

func Test_Expand_02(t *testing.T) {
	checkExpand(t, Options{}, []string{`package p

func two(a, b bool) bool { return a && b }

create_orderless!(name = both, func = two, defs(a = false, b = false))

func f(b bool) {
	_ = both!()
	_ = both!(a = true)
	_ = both!(b)
	_ = both!(b, a = true)
}
`}, `package p

func two(a, b bool) bool { return a && b }

func f(b bool) {
	_ = two(false, false)
	_ = two(true, false)
	_ = two(false, b)
	_ = two(true, b)
}
`)
}

func Test_Expand_03(t *testing.T) {
	// Low-level call form, with a nested invocation.
	checkExpand(t, Options{}, []string{`package p

create_orderless!{ func = inc, defs(x = 0, by = 1) }

func f() int {
	return call_orderless!(func = add, defs(a, b = 2), args(a = inc!(x = 5)))
}
`}, `package p

func f() int {
	return add(inc(5, 1), 2)
}
`)
}

func Test_Expand_04(t *testing.T) {
	// Blocks may span files.
	checkExpand(t, Options{}, []string{`package p

//orderless:impl
type Args struct{}
`, `package p

//orderless:make(defs(self = Args{}, a = false, b = false))
func (p Args) three(a bool, b bool) bool { return a || b }

func (p Args) plain() {}

func f() bool { return Args__three!(b = true) }
`}, `package p

type Args struct{}
`, `package p

func (p Args) three(a bool, b bool) bool { return a || b }

func (p Args) plain() {}

func f() bool { return Args.three(Args{}, false, true) }
`)
}

func Test_Expand_05(t *testing.T) {
	// Public macros are visible across files.
	checkExpand(t, Options{}, []string{`package p

//orderless:make(public, defs(
//	y = 0,
//	z = 0,
//))
func point(x, y, z int) P { return P{x, y, z} }
`, `package p

var origin = point!(x = 0)
`}, `package p

func point(x, y, z int) P { return P{x, y, z} }
`, `package p

var origin = point(0, 0, 0)
`)
}

func Test_Expand_06(t *testing.T) {
	// Pointer receivers with a renamed block.
	checkExpand(t, Options{}, []string{`package p

//orderless:impl(name = Counter)
type counter struct{ n int }

//orderless:make(defs(by = 1))
func (c *counter) add(by int) { c.n += by }

func f(c *counter) {
	Counter__add!(self = c)
	Counter__add!(self = c, by = 2)
}
`}, `package p

type counter struct{ n int }

func (c *counter) add(by int) { c.n += by }

func f(c *counter) {
	(*counter).add(c, 1)
	(*counter).add(c, 2)
}
`)
}

func Test_Expand_07(t *testing.T) {
	// Imported macros are qualified.
	lib := checkSource(t, "create_orderless!(name = add, public = true, func = add, defs(a, b = 2))").Qualify("lib")
	//
	checkExpand(t, Options{Imports: []*orderless.Macro{lib}}, []string{`package p

import "example.com/lib"

var x = add!(a = 1)
`}, `package p

import "example.com/lib"

var x = lib.add(1, 2)
`)
}

func Test_Expand_08(t *testing.T) {
	// Negation is not an invocation
	checkExpand(t, Options{}, []string{`package p

func f(x, y bool) bool {
	if !(x && y) {
		return !(x)
	}
	return x != y
}
`}, `package p

func f(x, y bool) bool {
	if !(x && y) {
		return !(x)
	}
	return x != y
}
`)
}

func Test_Expand_09(t *testing.T) {
	// Defaults are spliced at each use, and may invoke other macros.
	checkExpand(t, Options{}, []string{`package p

create_orderless!(name = id, func = next, defs())
create_orderless!(name = tag, func = mk, defs(id = id!(), label = "x"))

var a, b = tag!(), tag!(label = "y")
`}, `package p

var a, b = mk(next(), "x"), mk(next(), "y")
`)
}

func Test_Expand_10(t *testing.T) {
	result := checkResult(t, Options{}, `package p

//orderless:make(public)
func a(x int) {}

//orderless:make
func b(y int) {}
`)
	//
	assert.Equal(t, 2, len(result.Macros))
	assert.Equal(t, 1, len(result.Exports))
	assert.Equal(t, "a", result.Exports[0].Name)
	assert.Equal(t, "p", result.Package)
	assert.Equal(t, "p0.go", result.Files[0].Filename)
}

func Test_Expand_11(t *testing.T) {
	result := checkResult(t, Options{OutputExt: ".gen.go"}, "package p\n")
	//
	assert.Equal(t, "p0.gen.go", result.Files[0].Filename)
	assert.Equal(t, "x/y.go", OutputName("x/y.ogo", ""))
}

func Test_Expand_12(t *testing.T) {
	// Functions of imported packages are recorded as external.
	result := checkResult(t, Options{}, `package p

import (
	"strings"
	yml "gopkg.in/yaml.v3"
	"github.com/Masterminds/semver/v3"
)

create_orderless!(name = rep, public = true, func = strings.Repeat, defs(s, count = 2))
create_orderless!(name = enc, public = true, func = yml.Marshal, defs(in))
create_orderless!(name = ver, public = true, func = semver.NewVersion, defs(v))
create_orderless!(name = local, public = true, func = T.m, defs(self))

type T struct{}

func (T) m() {}

var _, _, _ = strings.Repeat, yml.Marshal, semver.NewVersion
`)
	//
	assert.Equal(t, 4, len(result.Exports))
	assert.True(t, result.Exports[0].External)
	assert.True(t, result.Exports[1].External)
	assert.True(t, result.Exports[2].External)
	assert.True(t, !result.Exports[3].External)
	assert.Equal(t, "strings.Repeat", result.Exports[0].Qualify("lib").Func)
	assert.Equal(t, "lib.T.m", result.Exports[3].Qualify("lib").Func)
}

func Test_Expand_13(t *testing.T) {
	// Trailing comments do not belong to a directive.
	checkExpand(t, Options{}, []string{`package p

//orderless:make(defs(b = 2)) // default b
func f(a, b int) int { return a + b }

var x = f!(a = 1)
`}, `package p

func f(a, b int) int { return a + b }

var x = f(1, 2)
`)
}

func Test_Expand_Invalid_01(t *testing.T) {
	checkExpandFails(t, "unknown orderless macro \"add\"", `package p

func f() { add!(a = 1) }
`)
}

func Test_Expand_Invalid_02(t *testing.T) {
	// Private macros are not visible in other files.
	checkExpandFails(t, "unknown orderless macro \"add\"", `package p

//orderless:make
func add(a int) {}
`, `package p

func f() { add!(a = 1) }
`)
}

func Test_Expand_Invalid_03(t *testing.T) {
	checkExpandFails(t, "macro already defined \"add\"", `package p

create_orderless!(name = add, func = f, defs())
create_orderless!(name = add, func = g, defs())
`)
}

func Test_Expand_Invalid_04(t *testing.T) {
	checkExpandFails(t, "macro already defined \"add\"", `package p

create_orderless!(name = add, func = f, defs())
`, `package p

create_orderless!(name = add, public = true, func = g, defs())
`)
}

func Test_Expand_Invalid_05(t *testing.T) {
	checkExpandFails(t, "requires an orderless:impl directive", `package p

type Args struct{}

//orderless:make
func (a Args) three(x int) {}
`)
}

func Test_Expand_Invalid_06(t *testing.T) {
	checkExpandFails(t, "macro expansion too deep", `package p

create_orderless!(name = loop, func = f, defs(x = loop!()))

var x = loop!()
`)
}

func Test_Expand_Invalid_07(t *testing.T) {
	checkExpandFails(t, "expanded source is not valid Go", `package p

create_orderless!(name = add, func = f, defs(a = 1))

func g() { x := add!() + }
`)
}

func Test_Expand_Invalid_08(t *testing.T) {
	checkExpandFails(t, "expected a function declaration", `package p

//orderless:make
var x = 1
`)
}

func Test_Expand_Invalid_09(t *testing.T) {
	checkExpandFails(t, "expected a type declaration", `package p

//orderless:impl
func f() {}
`)
}

func Test_Expand_Invalid_10(t *testing.T) {
	checkExpandFails(t, "unknown orderless directive \"orderless:build\"", `package p

//orderless:build
func f() {}
`)
}

func Test_Expand_Invalid_11(t *testing.T) {
	checkExpandFails(t, "unclosed bracket", `package p

//orderless:make(defs(a = 1)
func f(a int) {}
`)
}

func Test_Expand_Invalid_12(t *testing.T) {
	checkExpandFails(t, "duplicate orderless:impl directive", `package p

//orderless:impl
type T struct{}
`, `package p

//orderless:impl
type T struct{}
`)
}

func Test_Expand_Invalid_13(t *testing.T) {
	// Every failing invocation is reported.
	errs := expandFails(t, `package p

create_orderless!(name = add, func = f, defs(a = 1))

var x, y = add!(b = 1), add!(c = 2)
`)
	//
	assert.Equal(t, 2, len(errs))
	assert.Failed(t, errs[:1], "extra argument \"b\"")
	assert.Failed(t, errs[1:], "extra argument \"c\"")
}

func Test_Expand_Invalid_14(t *testing.T) {
	checkExpandFails(t, "unexpected text after directive", `package p

//orderless:make(defs(b = 2)) b // default b
func f(a, b int) int { return a + b }
`)
}

func Test_Expand_Invalid_15(t *testing.T) {
	// Generic receivers are rejected even when the block is named.
	checkExpandFails(t, "orderless methods cannot have a generic receiver", `package p

//orderless:impl(name = B)
type Box[T any] struct{ v T }

//orderless:make
func (b Box[T]) get(i int) T { return b.v }
`)
}

// ============================================================================
// Framework
// ============================================================================

func checkSource(t *testing.T, text string) *orderless.Macro {
	m, errs := orderless.ParseSource(source.NewSourceFile("lib.def", []byte(text)))
	assert.NoErrors(t, errs)
	//
	return m
}

func sourceFiles(texts []string) []*source.File {
	var files = make([]*source.File, len(texts))
	//
	for i, text := range texts {
		files[i] = source.NewSourceFile(fmt.Sprintf("p%d.ogo", i), []byte(text))
	}
	//
	return files
}

func checkResult(t *testing.T, options Options, texts ...string) Result {
	result, errs := Package(sourceFiles(texts), options)
	assert.NoErrors(t, errs)
	//
	return result
}

func checkExpand(t *testing.T, options Options, texts []string, expected ...string) {
	result := checkResult(t, options, texts...)
	//
	assert.Equal(t, len(expected), len(result.Files))
	//
	for i, output := range result.Files {
		assert.Equal(t, normalise(expected[i]), normalise(string(output.Contents)), "file %d differs", i)
	}
}

func expandFails(t *testing.T, texts ...string) []source.SyntaxError {
	result, errs := Package(sourceFiles(texts), Options{})
	//
	assert.True(t, len(errs) > 0, "expected errors")
	assert.Equal(t, 0, len(result.Files))
	//
	return errs
}

func checkExpandFails(t *testing.T, expected string, texts ...string) {
	assert.Failed(t, expandFails(t, texts...), expected)
}

// Normalise whitespace, so that only the tokens are compared.
func normalise(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
