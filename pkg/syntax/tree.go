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
	"github.com/consensys/go-orderless/pkg/util/source"
)

// closers maps each opening bracket onto the closing bracket which matches it.
var closers = map[uint]uint{
	LBRACE:  RBRACE,
	LCURLY:  RCURLY,
	LSQUARE: RSQUARE,
}

// IsOpen checks whether a token kind is an opening bracket.
func IsOpen(kind uint) bool {
	_, ok := closers[kind]
	return ok
}

// IsClose checks whether a token kind is a closing bracket.
func IsClose(kind uint) bool {
	return kind == RBRACE || kind == RCURLY || kind == RSQUARE
}

// Matching finds the index of the bracket which closes the one at the given
// index.  Brackets of all kinds must nest properly in between, otherwise a
// syntax error is returned for the offending token.
func Matching(tokens []Token, index int) (int, []source.SyntaxError) {
	var stack []uint
	//
	for i := index; i < len(tokens); i++ {
		kind := tokens[i].Kind
		//
		switch {
		case IsOpen(kind):
			stack = append(stack, closers[kind])
		case IsClose(kind):
			if len(stack) == 0 || kind != stack[len(stack)-1] {
				return 0, tokens[i].SyntaxErrors("mismatched closing bracket",
					"check that every bracket is closed in the right order")
			}
			//
			stack = stack[:len(stack)-1]
			//
			if len(stack) == 0 {
				return i, nil
			}
		}
	}
	//
	return 0, tokens[index].SyntaxErrors("unclosed bracket", "add the missing closing bracket")
}

// CheckBalanced checks that all brackets in a run of tokens nest properly.
func CheckBalanced(tokens []Token) []source.SyntaxError {
	for i := 0; i < len(tokens); i++ {
		if IsOpen(tokens[i].Kind) {
			end, errs := Matching(tokens, i)
			if len(errs) > 0 {
				return errs
			}
			//
			i = end
		} else if IsClose(tokens[i].Kind) {
			return tokens[i].SyntaxErrors("unexpected closing bracket", "remove it or add the opening bracket")
		}
	}
	//
	return nil
}

// Split divides a balanced run of tokens at every separator which is not
// enclosed in brackets.  A trailing separator does not produce a final empty
// item, but any other empty item is retained so it can be reported.
func Split(tokens []Token, separator uint) [][]Token {
	var (
		items [][]Token
		depth = 0
		start = 0
	)
	//
	for i, t := range tokens {
		switch {
		case IsOpen(t.Kind):
			depth++
		case IsClose(t.Kind):
			depth--
		case depth == 0 && t.Kind == separator:
			items = append(items, tokens[start:i])
			start = i + 1
		}
	}
	//
	if start < len(tokens) {
		items = append(items, tokens[start:])
	}
	//
	return items
}
