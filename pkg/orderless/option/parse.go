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
	"go/token"

	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/source"
)

// Item is a single entry of an option list.  This takes one of three shapes:
// a bare key ("public"), a key with a value ("func = add") or a key with a
// nested list ("defs(a = 1, b)").
type Item struct {
	// Key naming this item.
	Key syntax.Token
	// Value tokens following "=", or nil when there are none.
	Value []syntax.Token
	// List tokens enclosed in brackets following the key, or nil when there
	// are none.
	List []syntax.Token
	// Records whether the key was followed by a bracketed list (possibly
	// empty).
	IsList bool
}

// IsBare checks whether this item is a key on its own.
func (p *Item) IsBare() bool {
	return p.Value == nil && !p.IsList
}

// Binding is a name optionally bound to a value expression, as in "a = 1" or
// just "a".
type Binding struct {
	// Name being bound.
	Name syntax.Token
	// Value expression, or nil if none was given.
	Value []syntax.Token
}

// Parse a comma-separated option list.  Comments are ignored, and a trailing
// comma is permitted.
func Parse(tokens []syntax.Token) ([]Item, []source.SyntaxError) {
	var (
		items []Item
		index = 0
	)
	//
	tokens = syntax.WithoutComments(tokens)
	//
	if errs := syntax.CheckBalanced(tokens); len(errs) > 0 {
		return nil, errs
	}
	//
	for _, part := range syntax.Split(tokens, syntax.COMMA) {
		if len(part) == 0 {
			// An empty part is always followed by its separator
			return nil, tokens[index].SyntaxErrors("expected an identifier", "remove the extra comma")
		}
		//
		item, errs := parseItem(part)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		items = append(items, item)
		index += len(part) + 1
	}
	//
	return items, nil
}

// Parse a single item, given all the tokens up to its separator.
func parseItem(tokens []syntax.Token) (Item, []source.SyntaxError) {
	var item = Item{Key: tokens[0]}
	//
	if errs := checkKey(tokens, 0); len(errs) > 0 {
		return item, errs
	} else if len(tokens) == 1 {
		return item, nil
	}
	//
	switch tokens[1].Kind {
	case syntax.EQUALS:
		if len(tokens) == 2 {
			return item, tokens[1].SyntaxErrors("expected a value", "give a value after \"=\"")
		}
		//
		item.Value = tokens[2:]
		//
		return item, nil
	case syntax.LBRACE:
		end, errs := syntax.Matching(tokens, 1)
		if len(errs) > 0 {
			return item, errs
		} else if end+1 < len(tokens) {
			return item, tokens[end+1].SyntaxErrors("expected \",\"", "separate options with commas")
		}
		//
		item.List = tokens[2:end]
		item.IsList = true
		//
		return item, nil
	default:
		return item, tokens[1].SyntaxErrors("unexpected token", "expected \"=\", \"(\" or \",\"")
	}
}

// Check the key at the given position is a plain identifier.  Paths, such as
// "a.b", are rejected explicitly since they're an easy mistake to make.
func checkKey(tokens []syntax.Token, index int) []source.SyntaxError {
	var key = tokens[index]
	//
	if key.Kind != syntax.IDENTIFIER {
		return key.SyntaxErrors("expected an identifier", "this expression is not an identifier")
	} else if index+1 < len(tokens) && tokens[index+1].Kind == syntax.DOT {
		return syntax.ErrorAt(tokens[index:index+2], "expected an identifier", "this should not be a path")
	}
	//
	return nil
}

// ParseBindings parses a list of bindings, such as "a = 1, b".  Names must be
// plain identifiers (and not keywords).  Later bindings for the same name are
// retained, since it is for the caller to decide what repetition means.
func ParseBindings(tokens []syntax.Token) ([]Binding, []source.SyntaxError) {
	items, errs := Parse(tokens)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	bindings := make([]Binding, len(items))
	//
	for i, item := range items {
		if item.IsList {
			return nil, item.Key.SyntaxErrors("expected an identifier", "this expression is not an identifier")
		} else if errs := checkName(item.Key); len(errs) > 0 {
			return nil, errs
		}
		//
		bindings[i] = Binding{item.Key, item.Value}
	}
	//
	return bindings, nil
}

// ParseNames parses a list of plain identifiers, such as "a, b, c".
func ParseNames(tokens []syntax.Token) ([]syntax.Token, []source.SyntaxError) {
	bindings, errs := ParseBindings(tokens)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	names := make([]syntax.Token, len(bindings))
	//
	for i, b := range bindings {
		if b.Value != nil {
			return nil, b.Name.SyntaxErrors("expected an identifier", "values are not permitted here")
		}
		//
		names[i] = b.Name
	}
	//
	return names, nil
}

func checkName(name syntax.Token) []source.SyntaxError {
	if !token.IsIdentifier(name.Text()) {
		return name.SyntaxErrors("expected an identifier", "keywords cannot be used as names")
	}
	//
	return nil
}
