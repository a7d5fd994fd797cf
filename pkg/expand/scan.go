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
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"github.com/consensys/go-orderless/pkg/orderless"
	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/source"
)

// DIRECTIVE_PREFIX begins every comment directive.
const DIRECTIVE_PREFIX = "//orderless:"

// Scan a file for definitions, recording what must be removed from it and
// which invocations must be expanded.
func (e *expander) scan(file *source.File) []source.SyntaxError {
	tokens, errs := syntax.Lex(file)
	if len(errs) > 0 {
		return errs
	}
	//
	u := &unit{file: file, tokens: tokens[:len(tokens)-1], scope: make(map[string]*orderless.Macro),
		imports: importNames(file)}
	e.units = append(e.units, u)
	e.files[file] = u
	//
	code := syntax.WithoutComments(u.tokens)
	//
	if errs := syntax.CheckBalanced(code); len(errs) > 0 {
		return errs
	} else if len(code) > 1 && code[0].IsIdentifier("package") && e.pkg == "" {
		e.pkg = code[1].Text()
	}
	//
	for i := 0; i < len(u.tokens); {
		var (
			t     = u.tokens[i]
			errs2 []source.SyntaxError
		)
		//
		switch {
		case isDirective(t):
			i, errs2 = e.directive(u, i)
		case isInvocation(u.tokens, i):
			i, errs2 = e.invocation(u, i)
		default:
			i++
		}
		//
		errs = append(errs, errs2...)
	}
	//
	return errs
}

// Handle the invocation starting at a given index.  Definitions take effect
// immediately, whilst everything else is recorded for later expansion.
func (e *expander) invocation(u *unit, index int) (int, []source.SyntaxError) {
	var name = u.tokens[index]
	// Brackets are known to balance at this point.
	end, errs := syntax.Matching(u.tokens, index+2)
	if len(errs) > 0 {
		return len(u.tokens), errs
	}
	//
	inv := invocation{name, u.tokens[index+3 : end], name.Span.Join(u.tokens[end].Span)}
	//
	if name.Text() == orderless.CREATE {
		u.removals = append(u.removals, inv.span)
		//
		m, errs := orderless.ParseCreate(name, inv.body)
		if len(errs) > 0 {
			return end + 1, errs
		}
		//
		m.External = u.imports[m.Root()]
		//
		return end + 1, e.define(m)
	}
	//
	u.invocations = append(u.invocations, inv)
	//
	return end + 1, nil
}

// Handle the directive starting at a given index.  This consumes the comment
// lines making up the directive, and associates it with the declaration that
// follows.
func (e *expander) directive(u *unit, index int) (int, []source.SyntaxError) {
	var first = u.tokens[index]
	//
	name, body, next, errs := readDirective(u, index)
	if len(errs) > 0 {
		return next, errs
	}
	// Find the declaration
	decl := syntax.WithoutComments(u.tokens[next:])
	//
	switch name {
	case orderless.MAKE:
		if len(decl) == 0 {
			return next, first.SyntaxErrors("expected a function declaration",
				"place the directive directly above a function")
		}
		//
		sig, errs := orderless.ParseSignature(decl)
		if len(errs) > 0 {
			return next, errs
		} else if sig.IsMethod() {
			// Handled once all blocks are known
			e.methods = append(e.methods, orderless.Method{At: first, Options: body, Signature: sig})
			return next, nil
		}
		//
		m, errs := orderless.ParseMake(first, body, sig)
		if len(errs) > 0 {
			return next, errs
		}
		//
		return next, e.define(m)
	case orderless.IMPL:
		if len(decl) < 2 || !decl[0].IsIdentifier("type") || decl[1].Kind != syntax.IDENTIFIER {
			return next, first.SyntaxErrors("expected a type declaration",
				"place the directive directly above a type declaration")
		}
		//
		prefix, errs := orderless.ParseImpl(first, body)
		if len(errs) > 0 {
			return next, errs
		}
		//
		return next, e.block(orderless.Block{At: first, Type: decl[1], Name: prefix})
	}
	//
	return next, first.SyntaxErrors(fmt.Sprintf("unknown orderless directive \"%s\"", name),
		fmt.Sprintf("expected %s or %s", orderless.MAKE, orderless.IMPL))
}

// Record a block for the type it is declared on.
func (e *expander) block(block orderless.Block) []source.SyntaxError {
	var name = block.Type.Text()
	//
	if prev, ok := e.blocks[name]; ok {
		line := prev.At.File.FindFirstEnclosingLine(prev.At.Span)
		//
		return block.At.SyntaxErrors(fmt.Sprintf("duplicate %s directive for \"%s\"", orderless.IMPL, name),
			fmt.Sprintf("previously given at %s:%d", prev.At.File.Filename(), line.Number()))
	}
	//
	e.blocks[name] = &block
	e.order = append(e.order, name)
	//
	return nil
}

// Associate every marked method with its block, then generate macros for each
// block in the order the blocks were declared.
func (e *expander) adapt() []source.SyntaxError {
	var errs []source.SyntaxError
	//
	for _, m := range e.methods {
		if block, ok := e.blocks[m.Signature.ReceiverType()]; ok {
			block.Methods = append(block.Methods, m)
		} else if _, errs2 := orderless.ParseMake(m.At, m.Options, m.Signature); len(errs2) > 0 {
			// Reports the missing directive, unless the options themselves
			// are broken.
			errs = append(errs, errs2...)
		}
	}
	//
	for _, name := range e.order {
		macros, errs2 := orderless.AdaptBlock(*e.blocks[name])
		errs = append(errs, errs2...)
		//
		for _, m := range macros {
			errs = append(errs, e.define(m)...)
		}
	}
	//
	return errs
}

// Determine the names under which a file imports other packages.  Only the
// package clause and imports are parsed, since they precede any macros.  A
// file whose imports cannot be parsed imports nothing, as formatting will
// report the problem later.
func importNames(file *source.File) map[string]bool {
	var names = make(map[string]bool)
	//
	parsed, err := parser.ParseFile(token.NewFileSet(), file.Filename(), string(file.Contents()), parser.ImportsOnly)
	if err != nil {
		return names
	}
	//
	for _, spec := range parsed.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		//
		switch {
		case err != nil:
			continue
		case spec.Name == nil:
			names[importName(path)] = true
		case spec.Name.Name != "_" && spec.Name.Name != ".":
			names[spec.Name.Name] = true
		}
	}
	//
	return names
}

// Determine the conventional name of the package with a given import path,
// such as "yaml" for "gopkg.in/yaml.v3" or "semver" for
// "github.com/Masterminds/semver/v3".
func importName(path string) string {
	var (
		elems = strings.Split(path, "/")
		name  = elems[len(elems)-1]
	)
	// Major version suffix
	if len(elems) > 1 && len(name) > 1 && name[0] == 'v' && strings.Trim(name[1:], "0123456789") == "" {
		name = elems[len(elems)-2]
	}
	//
	name = strings.TrimPrefix(name, "go-")
	//
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	//
	return strings.ReplaceAll(name, "-", "")
}

// Read the directive starting at a given index, returning its name (e.g.
// "orderless:make"), the tokens of its options and the index following the
// last comment it occupies.  The options may continue onto subsequent
// comment lines whilst their brackets remain open.
func readDirective(u *unit, index int) (string, []syntax.Token, int, []source.SyntaxError) {
	var (
		first = u.tokens[index]
		text  = first.Text()
		name  = directiveName(text)
		start = first.Span.Start() + len([]rune(name)) + 2
	)
	//
	u.removals = append(u.removals, first.Span)
	//
	tokens, errs := lexComment(first, start)
	if len(errs) > 0 {
		return name, nil, index + 1, errs
	} else if len(tokens) == 0 {
		return name, nil, index + 1, nil
	} else if tokens[0].Kind != syntax.LBRACE {
		return name, nil, index + 1, tokens[0].SyntaxErrors("expected \"(\"",
			fmt.Sprintf("write the options as %s(...)", name))
	}
	// Continuation lines
	for index++; depth(tokens) > 0 && index < len(u.tokens) && isContinuation(u.tokens[index]); index++ {
		line := u.tokens[index]
		//
		more, errs := lexComment(line, line.Span.Start()+2)
		if len(errs) > 0 {
			return name, nil, index + 1, errs
		}
		//
		u.removals = append(u.removals, line.Span)
		tokens = append(tokens, more...)
	}
	//
	end, errs := syntax.Matching(tokens, 0)
	if len(errs) > 0 {
		return name, nil, index, errs
	} else if rest := syntax.WithoutComments(tokens[end+1:]); len(rest) > 0 {
		return name, nil, index, rest[0].SyntaxErrors("unexpected text after directive",
			"remove this or start a new comment")
	}
	//
	return name, tokens[1:end], index, nil
}

// Lex the remainder of a comment from a given position.
func lexComment(comment syntax.Token, start int) ([]syntax.Token, []source.SyntaxError) {
	span := source.NewSpan(start, comment.Span.End())
	//
	tokens, errs := syntax.LexSpan(comment.File, span)
	if len(errs) > 0 {
		return nil, errs
	}
	// Drop the end of file marker
	return tokens[:len(tokens)-1], nil
}

// Determine the depth of bracket nesting at the end of a run of tokens.
func depth(tokens []syntax.Token) int {
	var n = 0
	//
	for _, t := range tokens {
		if syntax.IsOpen(t.Kind) {
			n++
		} else if syntax.IsClose(t.Kind) {
			n--
		}
	}
	//
	return n
}

// Extract the name of a directive, such as "orderless:make", from the text of
// the comment holding it.
func directiveName(text string) string {
	var rest = strings.TrimPrefix(text, DIRECTIVE_PREFIX)
	//
	end := strings.IndexFunc(rest, func(c rune) bool {
		return c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
	//
	if end < 0 {
		end = len(rest)
	}
	//
	return DIRECTIVE_PREFIX[2:] + rest[:end]
}

func isDirective(t syntax.Token) bool {
	return t.Kind == syntax.COMMENT && strings.HasPrefix(t.Text(), DIRECTIVE_PREFIX)
}

func isContinuation(t syntax.Token) bool {
	return t.Kind == syntax.COMMENT && strings.HasPrefix(t.Text(), "//") && !isDirective(t)
}

// Check whether an invocation "name!(" or "name!{" starts at a given index.
// The "!" must immediately follow the name, and keywords are never macro
// names, so "if !(x)" is left alone.
func isInvocation(tokens []syntax.Token, index int) bool {
	if index+2 >= len(tokens) {
		return false
	}
	//
	var (
		name  = tokens[index]
		bang  = tokens[index+1]
		open  = tokens[index+2]
		ident = name.Kind == syntax.IDENTIFIER && !token.IsKeyword(name.Text())
	)
	//
	return ident && bang.Kind == syntax.NOT && bang.Span.Start() == name.Span.End() &&
		(open.Kind == syntax.LBRACE || open.Kind == syntax.LCURLY)
}
