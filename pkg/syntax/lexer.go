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
	"unicode"

	"github.com/consensys/go-orderless/pkg/util/source"
	"github.com/consensys/go-orderless/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals either "// ... \n" or "/* ... */"
const COMMENT uint = 2

// LBRACE signals "("
const LBRACE uint = 3

// RBRACE signals ")"
const RBRACE uint = 4

// LCURLY signals "{"
const LCURLY uint = 5

// RCURLY signals "}"
const RCURLY uint = 6

// LSQUARE signals "["
const LSQUARE uint = 7

// RSQUARE signals "]"
const RSQUARE uint = 8

// COMMA signals ","
const COMMA uint = 9

// SEMICOLON signals ";"
const SEMICOLON uint = 10

// EQUALS signals "="
const EQUALS uint = 11

// NOT signals "!"
const NOT uint = 12

// DOT signals "."
const DOT uint = 13

// STAR signals "*"
const STAR uint = 14

// OPERATOR signals any other operator or punctuation, such as "==" or "+".
const OPERATOR uint = 15

// NUMBER signals a numeric literal
const NUMBER uint = 16

// STRING signals an interpreted or raw string literal
const STRING uint = 17

// CHAR signals a rune literal
const CHAR uint = 18

// IDENTIFIER signals an identifier (including keywords)
const IDENTIFIER uint = 20

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r'), lex.Unit('\n')))

// Line comments continue until a newline or EOF, block comments until the
// closing "*/".
var comment lex.Scanner[rune] = lex.Or(
	lex.SequenceNullableLast(lex.String("//"), lex.Until('\n')),
	lex.Delimited([]rune("/*"), []rune("*/")),
)

var identifierStart lex.Scanner[rune] = lex.Predicate(func(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
})

var identifierRest lex.Scanner[rune] = lex.Many(lex.Predicate(func(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.SequenceNullableLast(identifierStart, identifierRest)

// Numbers are matched loosely, since their text is only ever copied through.
// This covers hex, octal, binary, floats and imaginary literals, but leaves the
// sign of an exponent as a separate operator.
var number lex.Scanner[rune] = lex.SequenceNullableLast(
	lex.Within('0', '9'),
	lex.Many(lex.Predicate(func(c rune) bool {
		return c == '_' || c == '.' || unicode.IsLetter(c) || unicode.IsDigit(c)
	})),
)

// Rule for describing interpreted and raw strings
var strung lex.Scanner[rune] = lex.Or(
	lex.Quoted('"'),
	lex.Delimited([]rune("`"), []rune("`")),
)

// Operators which are longer than one character.  Where one is a prefix of
// another, the longer is listed first.
var operator lex.Scanner[rune] = lex.Strings(
	"<<=", ">>=", "&^=", "...",
	"&&", "||", "<-", "++", "--", "==", "!=", "<=", ">=", ":=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>", "&^",
	"+", "-", "/", "%", "&", "|", "^", "<", ">", ":", "~",
)

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(strung, STRING),
	lex.Rule(lex.Quoted('\''), CHAR),
	lex.Rule(number, NUMBER),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(operator, OPERATOR),
	lex.Rule(lex.Unit('.'), DOT),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('!'), NOT),
	lex.Rule(lex.Unit('*'), STAR),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Comments are retained, since directives live in
// them, but whitespace is not.
func Lex(srcfile *source.File) ([]Token, []source.SyntaxError) {
	contents := srcfile.Contents()
	return lexWindow(srcfile, contents, 0)
}

// LexSpan lexes only the portion of a source file covered by a given span.
// Spans of the resulting tokens are still relative to the whole file.
func LexSpan(srcfile *source.File, span source.Span) ([]Token, []source.SyntaxError) {
	contents := srcfile.Contents()[span.Start():span.End()]
	return lexWindow(srcfile, contents, span.Start())
}

func lexWindow(srcfile *source.File, contents []rune, offset int) ([]Token, []source.SyntaxError) {
	var (
		lexer = lex.NewLexerAt(contents, offset, rules...)
		// Lex as many tokens as possible
		items = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if rest := lexer.Rest(); !rest.IsEmpty() {
		err := srcfile.SyntaxError(rest, "unknown text encountered",
			"check for an unterminated string, rune or comment")
		// errors
		return nil, []source.SyntaxError{*err}
	}
	//
	tokens := make([]Token, 0, len(items))
	// Remove any whitespace
	for _, item := range items {
		if item.Kind != WHITESPACE {
			tokens = append(tokens, Token{item, srcfile})
		}
	}
	// Done
	return tokens, nil
}
