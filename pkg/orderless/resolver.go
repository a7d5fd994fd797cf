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
	"fmt"
	"strings"

	"github.com/consensys/go-orderless/pkg/orderless/option"
	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/source"
)

// Call describes an orderless call before resolution.
type Call struct {
	// Token identifying where the call was made.
	At syntax.Token
	// Function being called.
	Func string
	// Parameters of the function, in positional order, with their defaults.
	Defs []Def
	// Arguments supplied by the caller, in the order given.  An argument
	// without a value refers to the variable of the same name.
	Args []option.Binding
}

// Resolved is an orderless call which has been turned into a positional one.
type Resolved struct {
	// Function being called.
	Func string
	// Argument expressions in positional order.
	Args [][]syntax.Token
}

// String renders this call as Go source.
func (p Resolved) String() string {
	var args = make([]string, len(p.Args))
	//
	for i, arg := range p.Args {
		args[i] = syntax.Text(arg)
	}
	//
	return fmt.Sprintf("%s(%s)", p.Func, strings.Join(args, ", "))
}

// Resolve merges the arguments of a call with its defaults to give a
// positional call.  Every argument must name a known parameter, and every
// parameter must end up with a value.
func Resolve(call Call) (Resolved, []source.SyntaxError) {
	mapping := NewMappingFrom(call.Defs)
	// Apply the caller's arguments
	for _, arg := range call.Args {
		var (
			name  = arg.Name.Text()
			value = arg.Value
		)
		//
		if !mapping.Has(name) {
			return Resolved{}, arg.Name.SyntaxErrors(
				fmt.Sprintf("orderless function was called with an extra argument \"%s\"", name),
				"remove the extra argument or define it if it exists")
		} else if value == nil {
			// Shorthand for "name = name"
			value = []syntax.Token{arg.Name}
		}
		//
		mapping.Put(name, arg.Name, value)
	}
	// Check nothing is missing
	defs := mapping.Defs()
	args := make([][]syntax.Token, len(defs))
	//
	for i, def := range defs {
		if def.IsRequired() {
			return Resolved{}, call.At.SyntaxErrors(
				fmt.Sprintf("orderless function was called while missing an argument \"%s\"", def.Name),
				fmt.Sprintf("supply %s or give it a default", def.Name))
		}
		//
		args[i] = def.Value
	}
	//
	return Resolved{call.Func, args}, nil
}
