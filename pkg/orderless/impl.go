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
	"strings"

	"github.com/consensys/go-orderless/pkg/orderless/option"
	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/source"
)

// Block is the set of methods declared on a type which carries the impl
// directive.
type Block struct {
	// Token of the directive on the type.
	At syntax.Token
	// Name of the type.
	Type syntax.Token
	// Prefix override, or nil if none was given.
	Name *syntax.Token
	// Marked methods in declaration order.
	Methods []Method
}

// Method is a method carrying the make directive within a block.
type Method struct {
	// Token of the directive on the method.
	At syntax.Token
	// Tokens of the directive's options.
	Options []syntax.Token
	// Header of the method.
	Signature Signature
}

// AdaptBlock generates one macro for each marked method of a block, in
// declaration order.  Each is named after the block's prefix and the method,
// separated by a double underscore, and calls the method through its method
// expression so that the receiver is its first argument.
func AdaptBlock(block Block) ([]*Macro, []source.SyntaxError) {
	var macros []*Macro
	//
	for _, method := range block.Methods {
		macro, errs := adaptMethod(block, method)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		macros = append(macros, macro)
	}
	//
	return macros, nil
}

func adaptMethod(block Block, method Method) (*Macro, []source.SyntaxError) {
	var sig = method.Signature
	//
	options, errs := decode(method.At, method.Options, makeFields)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	// The type parameters of a generic receiver are not in scope at a call
	// site, so no method expression could refer to it.
	if strings.ContainsRune(sig.Receiver, '[') {
		return nil, sig.ReceiverAt.SyntaxErrors("orderless methods cannot have a generic receiver",
			"only methods of non-generic types can be made orderless")
	}
	//
	prefix, errs := blockPrefix(block, sig)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	mapping, errs := Collect(sig, options.Bindings("defs"))
	if len(errs) > 0 {
		return nil, errs
	}
	//
	name := prefix + "__" + sig.Name.Text()
	if id := options.Identifier("name"); id != nil {
		name = id.Text()
	}
	//
	return NewMacro(method.At, name, options.Bool("public", false), MethodExpr(sig), mapping)
}

// Determine the prefix used for naming the macros of a block.  Without an
// override this is the receiver type, which must then be a plain identifier.
func blockPrefix(block Block, sig Signature) (string, []source.SyntaxError) {
	if block.Name != nil {
		return block.Name.Text(), nil
	}
	//
	prefix := strings.TrimPrefix(sig.Receiver, "*")
	//
	if !option.IsIdentifier(prefix) {
		return "", sig.ReceiverAt.SyntaxErrors("failed to automatically convert function path into an identifier",
			"give the block a name with orderless:impl(name = ...)")
	}
	//
	return prefix, nil
}

// MethodExpr returns the method expression for a method, such as "T.m" for a
// value receiver or "(*T).m" for a pointer receiver.
func MethodExpr(sig Signature) string {
	if strings.HasPrefix(sig.Receiver, "*") {
		return "(" + sig.Receiver + ")." + sig.Name.Text()
	}
	//
	return sig.Receiver + "." + sig.Name.Text()
}
