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
package orderless

import (
	"github.com/consensys/go-orderless/pkg/orderless/option"
	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/source"
)

const (
	// CALL is the name of the low-level call form.
	CALL = "call_orderless"
	// CREATE is the name of the definition form.
	CREATE = "create_orderless"
	// MAKE is the directive placed above a function.
	MAKE = "orderless:make"
	// IMPL is the directive placed above a type declaration.
	IMPL = "orderless:impl"
)

var callFields = []option.Field{
	{Name: "func", Kind: option.FUNC, Required: true},
	{Name: "defs", Kind: option.BINDINGS, Required: true},
	{Name: "args", Kind: option.BINDINGS, Required: true},
}

var createFields = []option.Field{
	{Name: "name", Kind: option.IDENT},
	{Name: "public", Kind: option.BOOL},
	{Name: "func", Kind: option.FUNC, Required: true},
	{Name: "order", Kind: option.NAMES},
	{Name: "defs", Kind: option.BINDINGS, Required: true},
}

var makeFields = []option.Field{
	{Name: "name", Kind: option.IDENT},
	{Name: "public", Kind: option.BOOL},
	{Name: "defs", Kind: option.BINDINGS},
}

var implFields = []option.Field{
	{Name: "name", Kind: option.IDENT},
}

// ParseCall parses the body of a low-level call form, for example
// "func = add, defs(a = 1, b = 2), args(b = 3)".
func ParseCall(at syntax.Token, body []syntax.Token) (Call, []source.SyntaxError) {
	options, errs := decode(at, body, callFields)
	if len(errs) > 0 {
		return Call{}, errs
	}
	//
	var (
		bindings = options.Bindings("defs")
		defs     = make([]Def, len(bindings))
	)
	//
	for i, b := range bindings {
		defs[i] = Def{b.Name.Text(), b.Name, b.Value}
	}
	//
	return Call{at, options.Function("func"), defs, options.Bindings("args")}, nil
}

// ParseCreate parses the body of a definition form, for example
// "name = add3, func = add, defs(a = 1, b = 2)", producing the macro it
// defines.
func ParseCreate(at syntax.Token, body []syntax.Token) (*Macro, []source.SyntaxError) {
	options, errs := decode(at, body, createFields)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	var (
		fn      = options.Function("func")
		name    string
		mapping = CollectOrdered(options.Names("order"), options.Bindings("defs"))
	)
	//
	if id := options.Identifier("name"); id != nil {
		name = id.Text()
	} else if name, errs = DeriveName(at, fn); len(errs) > 0 {
		return nil, errs
	}
	//
	return NewMacro(at, name, options.Bool("public", false), fn, mapping)
}

// ParseMake parses the options of a function directive, and combines them
// with the function's signature to produce a macro.  The function must not be
// a method, since methods are handled as part of their receiver's block.
func ParseMake(at syntax.Token, body []syntax.Token, sig Signature) (*Macro, []source.SyntaxError) {
	options, errs := decode(at, body, makeFields)
	if len(errs) > 0 {
		return nil, errs
	} else if sig.IsMethod() {
		return nil, at.SyntaxErrors("orderless:make on a method requires an orderless:impl directive on its receiver type",
			"add //orderless:impl above the declaration of "+sig.ReceiverType())
	}
	//
	mapping, errs := Collect(sig, options.Bindings("defs"))
	if len(errs) > 0 {
		return nil, errs
	}
	//
	name := sig.Name.Text()
	if id := options.Identifier("name"); id != nil {
		name = id.Text()
	}
	//
	return NewMacro(at, name, options.Bool("public", false), sig.Name.Text(), mapping)
}

// ParseImpl parses the options of a type directive, returning the prefix
// override (if one was given).
func ParseImpl(at syntax.Token, body []syntax.Token) (*syntax.Token, []source.SyntaxError) {
	options, errs := decode(at, body, implFields)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return options.Identifier("name"), nil
}

// ParseSource parses a macro from the text of its definition, as produced by
// Macro.Source.  The text must consist of exactly one definition form.
func ParseSource(srcfile *source.File) (*Macro, []source.SyntaxError) {
	tokens, errs := syntax.Lex(srcfile)
	if len(errs) > 0 {
		return nil, errs
	}
	// Drop the end of file marker
	tokens = syntax.WithoutComments(tokens[:len(tokens)-1])
	//
	if len(tokens) < 4 || !tokens[0].IsIdentifier(CREATE) || tokens[1].Kind != syntax.NOT ||
		!syntax.IsOpen(tokens[2].Kind) {
		err := srcfile.SyntaxError(source.NewSpan(0, len(srcfile.Contents())), "expected a macro definition",
			"write this as "+CREATE+"!(...)")
		//
		return nil, []source.SyntaxError{*err}
	}
	//
	end, errs := syntax.Matching(tokens, 2)
	if len(errs) > 0 {
		return nil, errs
	} else if end != len(tokens)-1 {
		return nil, tokens[end+1].SyntaxErrors("unexpected text after definition", "remove this")
	}
	//
	return ParseCreate(tokens[0], tokens[3:end])
}

func decode(at syntax.Token, body []syntax.Token, fields []option.Field) (option.Options, []source.SyntaxError) {
	items, errs := option.Parse(body)
	if len(errs) > 0 {
		return option.Options{}, errs
	}
	//
	return option.Decode(at, items, fields...)
}
