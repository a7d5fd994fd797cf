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
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/source"
)

// Kind determines the shape an option is expected to take.
type Kind uint

const (
	// IDENT is an option whose value is a plain identifier, such as "name = add".
	IDENT Kind = iota
	// BOOL is an option whose value is "true" or "false".  A bare key is
	// taken as true.
	BOOL
	// FUNC is an option whose value refers to a function, such as "add",
	// "pkg.Add" or "(*T).Method".
	FUNC
	// BINDINGS is a list option of names optionally bound to expressions, such
	// as "defs(a = 1, b)".
	BINDINGS
	// NAMES is a list option of plain identifiers, such as "order(a, b)".
	NAMES
)

// Field describes one option accepted by a form.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// Options holds the decoded options of a form.
type Options struct {
	items    map[string]Item
	bindings map[string][]Binding
	names    map[string][]syntax.Token
}

// Decode a list of items against the fields a form accepts.  Every error is
// reported at the offending item, except for missing options which are
// reported at the given token (typically the name of the form).
func Decode(at syntax.Token, items []Item, fields ...Field) (Options, []source.SyntaxError) {
	var options = Options{
		make(map[string]Item),
		make(map[string][]Binding),
		make(map[string][]syntax.Token),
	}
	//
	for _, item := range items {
		var (
			name  = item.Key.Text()
			field *Field
		)
		//
		for i := range fields {
			if fields[i].Name == name {
				field = &fields[i]
			}
		}
		//
		if field == nil {
			return options, item.Key.SyntaxErrors(fmt.Sprintf("unknown option \"%s\"", name),
				fmt.Sprintf("expected one of %s", fieldNames(fields)))
		} else if _, ok := options.items[name]; ok {
			return options, item.Key.SyntaxErrors(fmt.Sprintf("duplicate option \"%s\"", name),
				"remove one of them")
		} else if errs := options.decode(item, field); len(errs) > 0 {
			return options, errs
		}
		//
		options.items[name] = item
	}
	// Check required options
	for _, f := range fields {
		if _, ok := options.items[f.Name]; f.Required && !ok {
			return options, at.SyntaxErrors(fmt.Sprintf("missing option \"%s\"", f.Name),
				fmt.Sprintf("add \"%s\" to the options", f.Name))
		}
	}
	//
	return options, nil
}

func (p *Options) decode(item Item, field *Field) []source.SyntaxError {
	switch field.Kind {
	case BINDINGS, NAMES:
		if !item.IsList {
			return item.Key.SyntaxErrors("expected a list", fmt.Sprintf("write this as %s(...)", field.Name))
		} else if field.Kind == NAMES {
			names, errs := ParseNames(item.List)
			p.names[field.Name] = names
			//
			return errs
		}
		//
		bindings, errs := ParseBindings(item.List)
		p.bindings[field.Name] = bindings
		//
		return errs
	case BOOL:
		if item.IsBare() {
			return nil
		} else if item.Value == nil || len(item.Value) != 1 ||
			(!item.Value[0].IsIdentifier("true") && !item.Value[0].IsIdentifier("false")) {
			return item.Key.SyntaxErrors("expected a boolean", "use true or false")
		}
	case IDENT:
		if item.Value == nil {
			return item.Key.SyntaxErrors("expected a value", fmt.Sprintf("write this as %s = ...", field.Name))
		}
		//
		return checkIdentifier(item.Value)
	case FUNC:
		if item.Value == nil {
			return item.Key.SyntaxErrors("expected a value", fmt.Sprintf("write this as %s = ...", field.Name))
		}
		//
		return checkFunction(item.Value)
	}
	//
	return nil
}

// Has checks whether a given option was supplied.
func (p *Options) Has(name string) bool {
	_, ok := p.items[name]
	return ok
}

// Identifier returns the identifier given for an IDENT option, or nil if it
// was not supplied.
func (p *Options) Identifier(name string) *syntax.Token {
	if item, ok := p.items[name]; ok {
		return &item.Value[0]
	}
	//
	return nil
}

// Bool returns the value of a BOOL option, or the given default if it was not
// supplied.
func (p *Options) Bool(name string, def bool) bool {
	if item, ok := p.items[name]; ok {
		return item.IsBare() || item.Value[0].IsIdentifier("true")
	}
	//
	return def
}

// Function returns the text of a FUNC option, with all spacing removed.
func (p *Options) Function(name string) string {
	if item, ok := p.items[name]; ok {
		var builder strings.Builder
		//
		for _, t := range item.Value {
			builder.WriteString(t.Text())
		}
		//
		return builder.String()
	}
	//
	return ""
}

// Bindings returns the bindings of a BINDINGS option, or nil if it was not
// supplied.
func (p *Options) Bindings(name string) []Binding {
	return p.bindings[name]
}

// Names returns the identifiers of a NAMES option, or nil if it was not
// supplied.
func (p *Options) Names(name string) []syntax.Token {
	return p.names[name]
}

func checkIdentifier(value []syntax.Token) []source.SyntaxError {
	switch {
	case len(value) > 1 && value[1].Kind == syntax.DOT:
		return syntax.ErrorAt(value, "expected an identifier", "this should not be a path")
	case len(value) != 1 || value[0].Kind != syntax.IDENTIFIER:
		return syntax.ErrorAt(value, "expected an identifier", "this expression is not an identifier")
	}
	//
	return checkName(value[0])
}

// Check a function reference is a name, a selector or a method expression
// (optionally instantiated with type arguments).  This is about shape only;
// whether the function exists is for the compiler to decide after expansion.
func checkFunction(value []syntax.Token) []source.SyntaxError {
	var text = syntax.Text(value)
	//
	expr, err := parser.ParseExpr(text)
	if err == nil && isFunctionReference(expr) {
		return nil
	}
	//
	return syntax.ErrorAt(value, "expected a function reference", "use a name such as add, pkg.Add or (*T).Method")
}

func isFunctionReference(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name != "_"
	case *ast.SelectorExpr:
		return isFunctionReference(e.X)
	case *ast.IndexExpr:
		return isFunctionReference(e.X)
	case *ast.IndexListExpr:
		return isFunctionReference(e.X)
	case *ast.ParenExpr:
		return isFunctionReference(e.X)
	case *ast.StarExpr:
		return isFunctionReference(e.X)
	}
	//
	return false
}

func fieldNames(fields []Field) string {
	var names = make([]string, len(fields))
	//
	for i, f := range fields {
		names[i] = f.Name
	}
	//
	return strings.Join(names, ", ")
}

// IsIdentifier checks whether a given string is a valid Go identifier (and not
// a keyword).
func IsIdentifier(name string) bool {
	return token.IsIdentifier(name)
}
