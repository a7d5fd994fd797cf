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
	"github.com/consensys/go-orderless/pkg/syntax"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SELF is the name under which the receiver of a method is known.
const SELF = "self"

// Def pairs a parameter with its default expression.
type Def struct {
	// Name of the parameter.
	Name string
	// Token at which the parameter was declared, used for reporting errors.
	At syntax.Token
	// Default expression, or nil when the parameter is required.
	Value []syntax.Token
}

// IsRequired checks whether this parameter has no default.
func (d Def) IsRequired() bool {
	return d.Value == nil
}

// Mapping is an ordered mapping from parameter names to their defaults.  The
// order of keys is the order in which they were first inserted, and is the
// order of the eventual positional call.  Updating an existing key never moves
// it.
type Mapping struct {
	entries *orderedmap.OrderedMap[string, Def]
}

// NewMapping constructs an initially empty mapping.
func NewMapping() *Mapping {
	return &Mapping{orderedmap.New[string, Def]()}
}

// NewMappingFrom constructs a mapping from a given list of definitions, where
// later definitions for the same name overwrite earlier ones in place.
func NewMappingFrom(defs []Def) *Mapping {
	mapping := NewMapping()
	//
	for _, d := range defs {
		mapping.Put(d.Name, d.At, d.Value)
	}
	//
	return mapping
}

// Has checks whether a given name is a key of this mapping.
func (p *Mapping) Has(name string) bool {
	_, ok := p.entries.Get(name)
	return ok
}

// Get returns the definition for a given name, if it exists.
func (p *Mapping) Get(name string) (Def, bool) {
	return p.entries.Get(name)
}

// Put inserts a name with a given value.  If the name already exists its value
// is replaced, but its position and declaration token are retained.
func (p *Mapping) Put(name string, at syntax.Token, value []syntax.Token) {
	if existing, ok := p.entries.Get(name); ok {
		existing.Value = value
		p.entries.Set(name, existing)
	} else {
		p.entries.Set(name, Def{name, at, value})
	}
}

// Len returns the number of keys in this mapping.
func (p *Mapping) Len() int {
	return p.entries.Len()
}

// Defs returns the definitions of this mapping in key order.
func (p *Mapping) Defs() []Def {
	var defs = make([]Def, 0, p.entries.Len())
	//
	for pair := p.entries.Oldest(); pair != nil; pair = pair.Next() {
		defs = append(defs, pair.Value)
	}
	//
	return defs
}
