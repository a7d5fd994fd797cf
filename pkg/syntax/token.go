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
package syntax

import (
	"strings"

	"github.com/consensys/go-orderless/pkg/util/source"
	"github.com/consensys/go-orderless/pkg/util/source/lex"
)

// Token is a lexical token which remembers the file it was read from.  Tokens
// from different files are freely mixed when a macro defined in one place is
// invoked in another.
type Token struct {
	lex.Token
	// File from which this token was read.
	File *source.File
}

// Text returns the source text of this token.
func (t Token) Text() string {
	return t.File.Text(t.Span)
}

// IsIdentifier checks whether this token is an identifier with the given
// name.
func (t Token) IsIdentifier(name string) bool {
	return t.Kind == IDENTIFIER && t.Text() == name
}

// SyntaxError constructs a syntax error reported at this token.
func (t Token) SyntaxError(msg string, hint string) source.SyntaxError {
	return *t.File.SyntaxError(t.Span, msg, hint)
}

// SyntaxErrors constructs a syntax error at this token, and places it into an
// array of size one.
func (t Token) SyntaxErrors(msg string, hint string) []source.SyntaxError {
	return []source.SyntaxError{t.SyntaxError(msg, hint)}
}

// SpanOf returns the span covering a non-empty run of tokens, all of which are
// assumed to come from the same file as the first.
func SpanOf(tokens []Token) source.Span {
	first := tokens[0].Span
	last := tokens[len(tokens)-1].Span
	//
	return first.Join(last)
}

// ErrorAt constructs a syntax error covering a non-empty run of tokens.
func ErrorAt(tokens []Token, msg string, hint string) []source.SyntaxError {
	err := tokens[0].File.SyntaxError(SpanOf(tokens), msg, hint)
	return []source.SyntaxError{*err}
}

// Text renders a run of tokens back into source text.  Between two tokens from
// the same file the original spacing is kept, except that any gap spanning a
// line break collapses to a single newline (this drops line comments, which
// could otherwise swallow what follows).  Tokens from different files are
// separated by a space.
func Text(tokens []Token) string {
	var builder strings.Builder
	//
	for i, t := range tokens {
		if i > 0 {
			builder.WriteString(Gap(tokens[i-1], t))
		}
		//
		builder.WriteString(t.Text())
	}
	//
	return builder.String()
}

// Gap determines the text to place between two consecutive tokens when
// rendering.
func Gap(prev Token, next Token) string {
	if prev.File != next.File || prev.Span.End() > next.Span.Start() {
		return " "
	}
	//
	gap := prev.File.Text(source.NewSpan(prev.Span.End(), next.Span.Start()))
	//
	if strings.ContainsRune(gap, '\n') {
		return "\n"
	}
	//
	return gap
}

// WithoutComments returns the given tokens with all comments removed.
func WithoutComments(tokens []Token) []Token {
	var items = make([]Token, 0, len(tokens))
	//
	for _, t := range tokens {
		if t.Kind != COMMENT {
			items = append(items, t)
		}
	}
	//
	return items
}
