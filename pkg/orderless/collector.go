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

	"github.com/consensys/go-orderless/pkg/orderless/option"
	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/source"
)

// Collect constructs the mapping for a function declaration.  Keys follow the
// declaration order of the function's parameters (receiver first, as "self")
// and start out required.  The given defaults are then applied, and must only
// name actual parameters.
func Collect(sig Signature, defs []option.Binding) (*Mapping, []source.SyntaxError) {
	var mapping = NewMapping()
	//
	if sig.IsMethod() {
		mapping.Put(SELF, sig.ReceiverAt, nil)
	}
	//
	for _, param := range sig.Params {
		mapping.Put(param.Text(), param, nil)
	}
	//
	for _, def := range defs {
		name := def.Name.Text()
		//
		if !mapping.Has(name) {
			return nil, def.Name.SyntaxErrors(fmt.Sprintf("default given for unknown parameter \"%s\"", name),
				fmt.Sprintf("%s has no parameter with this name", sig.Name.Text()))
		}
		//
		mapping.Put(name, def.Name, def.Value)
	}
	//
	return mapping, nil
}

// CollectOrdered constructs a mapping where no declaration is available.  Any
// names given in order are inserted first (as required), which fixes their
// position.  Defaults are then applied, overwriting in place or, for names not
// yet seen, appending.  A name in order which receives no default remains
// required.
func CollectOrdered(order []syntax.Token, defs []option.Binding) *Mapping {
	var mapping = NewMapping()
	//
	for _, name := range order {
		mapping.Put(name.Text(), name, nil)
	}
	//
	for _, def := range defs {
		mapping.Put(def.Name.Text(), def.Name, def.Value)
	}
	//
	return mapping
}
