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
package lex

import "github.com/consensys/go-orderless/pkg/util/source"

// Token tags a range of characters in the input being scanned with the kind of
// the rule which matched it.
type Token struct {
	Kind uint
	Span source.Span
}

// LexRule associates a scanner with the kind given to whatever it matches.
//
// nolint
type LexRule[T any] struct {
	scanner Scanner[T]
	tag     uint
}

// Rule constructs a new lexing rule which maps matching characters to a given
// tag.
func Rule[T any](scanner Scanner[T], tag uint) LexRule[T] {
	return LexRule[T]{scanner, tag}
}

// Lexer breaks an input sequence into tokens by trying its rules in order at
// each position, taking the first which matches.  The input may be a window
// onto some larger text, in which case every span is relative to the start of
// that text rather than the window.
type Lexer[T any] struct {
	items  []T
	offset int
	index  int
	rules  []LexRule[T]
	// Token matched but not yet consumed
	pending *Token
}

// NewLexer constructs a new lexer with a given set of lexing rules.
func NewLexer[T any](input []T, rules ...LexRule[T]) *Lexer[T] {
	return NewLexerAt(input, 0, rules...)
}

// NewLexerAt constructs a new lexer over a window of some larger text which
// begins at the given offset.
func NewLexerAt[T any](input []T, offset int, rules ...LexRule[T]) *Lexer[T] {
	return &Lexer[T]{items: input, offset: offset, rules: rules}
}

// Rest returns the span of input which has not (yet) been matched by any rule.
// Once the lexer has no more tokens, a non-empty remainder indicates text which
// no rule could match.
func (p *Lexer[T]) Rest() source.Span {
	var start = min(p.index, len(p.items))
	//
	return source.NewSpan(p.offset+start, p.offset+len(p.items))
}

// HasNext checks whether or not another token can be matched.
func (p *Lexer[T]) HasNext() bool {
	if p.pending == nil && p.index <= len(p.items) {
		p.pending = p.match()
	}
	//
	return p.pending != nil
}

// Next returns the next token and advances the lexer past it.  This assumes
// HasNext has returned true.
func (p *Lexer[T]) Next() Token {
	var next = *p.pending
	//
	p.pending = nil
	// A match at the end of input (e.g. the end of file marker) must still
	// advance, otherwise it would match forever.
	if p.index == len(p.items) {
		p.index++
	} else {
		p.index = next.Span.End() - p.offset
	}
	//
	return next
}

// Collect matches all remaining tokens in one go.
func (p *Lexer[T]) Collect() []Token {
	var tokens []Token
	//
	for p.HasNext() {
		tokens = append(tokens, p.Next())
	}
	//
	return tokens
}

// Find the first rule matching at the current index, if any.
func (p *Lexer[T]) match() *Token {
	for _, r := range p.rules {
		if n := r.scanner(p.items[p.index:]); n > 0 {
			end := min(len(p.items), p.index+int(n))
			//
			return &Token{r.tag, source.NewSpan(p.offset+p.index, p.offset+end)}
		}
	}
	//
	return nil
}
