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
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/source"
)

// Signature captures the header of a function declaration: everything from the
// "func" keyword up to the end of the parameter list.
type Signature struct {
	// Token for the "func" keyword.
	Func syntax.Token
	// Name of the function.
	Name syntax.Token
	// Receiver type as written, with spacing removed (e.g. "*Args"), or empty
	// for a free function.
	Receiver string
	// Token at which the receiver begins (only meaningful for methods).
	ReceiverAt syntax.Token
	// Parameter names, in declaration order and excluding the receiver.
	Params []syntax.Token
	// Number of (non-comment) tokens making up the header.
	Length int
}

// IsMethod checks whether this is the signature of a method.
func (p *Signature) IsMethod() bool {
	return p.Receiver != ""
}

// ReceiverType returns the name of the type on which a method is declared,
// that is the receiver without any pointer or type arguments.
func (p *Signature) ReceiverType() string {
	name := strings.TrimPrefix(p.Receiver, "*")
	//
	if i := strings.IndexRune(name, '['); i >= 0 {
		name = name[:i]
	}
	//
	return name
}

// the package clause needed to parse a lone declaration.
const packageClause = "package p\n"

// ParseSignature parses the header of a function declaration starting with the
// "func" keyword.  Comments are expected to have been removed already.  Every
// parameter must be a plain, named and non-variadic binding.
func ParseSignature(tokens []syntax.Token) (Signature, []source.SyntaxError) {
	var (
		sig   Signature
		index = 0
		errs  []source.SyntaxError
	)
	//
	if len(tokens) == 0 {
		return sig, nil
	} else if !tokens[0].IsIdentifier("func") {
		return sig, tokens[0].SyntaxErrors("expected a function declaration",
			"place the directive directly above a function")
	}
	//
	sig.Func = tokens[0]
	index++
	// Receiver (if present)
	if index < len(tokens) && tokens[index].Kind == syntax.LBRACE {
		if index, errs = syntax.Matching(tokens, index); len(errs) > 0 {
			return sig, errs
		}
		//
		index++
	}
	// Name
	if index >= len(tokens) || tokens[index].Kind != syntax.IDENTIFIER {
		return sig, sig.Func.SyntaxErrors("expected a function name", "only named functions can be made orderless")
	}
	//
	sig.Name = tokens[index]
	index++
	// Type parameters (if present)
	if index < len(tokens) && tokens[index].Kind == syntax.LSQUARE {
		if index, errs = syntax.Matching(tokens, index); len(errs) > 0 {
			return sig, errs
		}
		//
		index++
	}
	// Parameters
	if index >= len(tokens) || tokens[index].Kind != syntax.LBRACE {
		return sig, sig.Name.SyntaxErrors("expected a parameter list", "check the function declaration")
	} else if index, errs = syntax.Matching(tokens, index); len(errs) > 0 {
		return sig, errs
	}
	//
	sig.Length = index + 1
	//
	return sig, sig.resolve(tokens[:sig.Length])
}

// Resolve the receiver and parameters of this signature by parsing the header
// with the Go parser, then mapping each parameter back onto its token.
func (p *Signature) resolve(header []syntax.Token) []source.SyntaxError {
	var (
		span = syntax.SpanOf(header)
		text = p.Func.File.Text(span)
		fset = token.NewFileSet()
	)
	//
	file, err := parser.ParseFile(fset, "", packageClause+text+" {}", parser.SkipObjectResolution)
	if err != nil || len(file.Decls) != 1 {
		msg := "check the function declaration"
		if err != nil {
			msg = err.Error()
		}
		//
		return p.Func.SyntaxErrors("malformed function declaration", msg)
	}
	//
	decl, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok {
		return p.Func.SyntaxErrors("malformed function declaration", "check the function declaration")
	}
	// Determine the token found at a given position.
	locate := func(pos token.Pos) syntax.Token {
		offset := fset.Position(pos).Offset - len(packageClause)
		if offset < 0 || offset > len(text) {
			return p.Func
		}
		//
		index := span.Start() + utf8.RuneCountInString(text[:offset])
		//
		for _, t := range header {
			if t.Span.Start() == index {
				return t
			}
		}
		//
		return p.Func
	}
	// Receiver
	if decl.Recv != nil && len(decl.Recv.List) == 1 {
		recv := decl.Recv.List[0].Type
		start := fset.Position(recv.Pos()).Offset - len(packageClause)
		end := fset.Position(recv.End()).Offset - len(packageClause)
		p.Receiver = strings.Map(dropSpace, text[start:end])
		p.ReceiverAt = locate(recv.Pos())
	}
	// Parameters
	for _, field := range decl.Type.Params.List {
		if _, ok := field.Type.(*ast.Ellipsis); ok {
			return locate(field.Type.Pos()).SyntaxErrors("variadic parameters are not supported",
				"pass a slice instead")
		} else if len(field.Names) == 0 {
			return locate(field.Type.Pos()).SyntaxErrors("argument is not a simple identifier",
				"give every parameter a name")
		}
		//
		for _, name := range field.Names {
			if name.Name == "_" || (decl.Recv != nil && name.Name == SELF) {
				return locate(name.Pos()).SyntaxErrors("argument is not a simple identifier",
					"give every parameter a distinct name")
			}
			//
			p.Params = append(p.Params, locate(name.Pos()))
		}
	}
	//
	return nil
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	//
	return r
}
