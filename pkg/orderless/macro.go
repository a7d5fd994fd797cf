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

// Macro is a generated call-site macro.  Invoking it with zero or more
// arguments produces a call to the function it wraps, with any omitted
// arguments filled from its defaults.
type Macro struct {
	// Name under which the macro is invoked.
	Name string
	// Token at which the macro was defined.
	At syntax.Token
	// Whether this macro is visible outside the file defining it.
	Public bool
	// Function being wrapped.
	Func string
	// Parameters of the function in positional order, with their defaults.
	Defs []Def
	// Whether the function belongs to another package, as for
	// "strings.Repeat".  Such a function is already qualified, so is left
	// alone when this macro is used from elsewhere.
	External bool
}

// NewMacro constructs a macro with a given name, visibility, function and
// mapping.
func NewMacro(at syntax.Token, name string, public bool, fn string, mapping *Mapping) (*Macro, []source.SyntaxError) {
	if !option.IsIdentifier(name) {
		return nil, at.SyntaxErrors(fmt.Sprintf("\"%s\" is not a valid macro name", name),
			"choose another name")
	}
	//
	return &Macro{Name: name, At: at, Public: public, Func: fn, Defs: mapping.Defs()}, nil
}

// DeriveName determines the name for a macro from the function it wraps, by
// replacing each selector with an underscore.  Thus, "pkg.Add" becomes
// "pkg_Add".  This fails when the result is not an identifier, as for method
// expressions on pointer types.
func DeriveName(at syntax.Token, fn string) (string, []source.SyntaxError) {
	name := strings.ReplaceAll(fn, ".", "_")
	//
	if !option.IsIdentifier(name) {
		return "", at.SyntaxErrors("failed to automatically convert function path into an identifier",
			"give the macro an explicit name")
	}
	//
	return name, nil
}

// Expand this macro at a call site with the given argument tokens.  Arguments
// are only parsed here; whether they make sense is decided when the call is
// resolved, so that errors are reported at the call site.
func (p *Macro) Expand(at syntax.Token, args []syntax.Token) (Call, []source.SyntaxError) {
	bindings, errs := option.ParseBindings(args)
	if len(errs) > 0 {
		return Call{}, errs
	}
	//
	return Call{at, p.Func, p.Defs, bindings}, nil
}

// Root returns the identifier at the head of this macro's function, such as
// "pkg" for "pkg.Add" or "T" for "(*T).m".
func (p *Macro) Root() string {
	var fn = strings.TrimLeft(p.Func, "(*")
	//
	if end := strings.IndexAny(fn, ".[)"); end >= 0 {
		return fn[:end]
	}
	//
	return fn
}

// Qualify returns a copy of this macro whose function is accessed through a
// given package qualifier.  For example, "add" becomes "pkg.add" and
// "(*T).m" becomes "(*pkg.T).m".  External functions are unchanged.
func (p *Macro) Qualify(qualifier string) *Macro {
	var (
		macro = *p
		fn    = p.Func
	)
	//
	if qualifier != "" && !p.External {
		if strings.HasPrefix(fn, "(*") {
			fn = "(*" + qualifier + "." + fn[2:]
		} else if strings.HasPrefix(fn, "(") {
			fn = "(" + qualifier + "." + fn[1:]
		} else {
			fn = qualifier + "." + fn
		}
	}
	//
	macro.Func = fn
	//
	return &macro
}

// Source renders this macro as the definition which would create it.
func (p *Macro) Source() string {
	var (
		builder strings.Builder
		defs    = make([]string, len(p.Defs))
	)
	//
	for i, d := range p.Defs {
		if d.IsRequired() {
			defs[i] = d.Name
		} else {
			defs[i] = fmt.Sprintf("%s = %s", d.Name, syntax.Text(d.Value))
		}
	}
	//
	fmt.Fprintf(&builder, "%s!(name = %s, ", CREATE, p.Name)
	//
	if p.Public {
		builder.WriteString("public = true, ")
	}
	//
	fmt.Fprintf(&builder, "func = %s, defs(%s))", p.Func, strings.Join(defs, ", "))
	//
	return builder.String()
}

// String returns a short description of this macro.
func (p *Macro) String() string {
	var names = make([]string, len(p.Defs))
	//
	for i, d := range p.Defs {
		if d.IsRequired() {
			names[i] = d.Name
		} else {
			names[i] = d.Name + "?"
		}
	}
	//
	return fmt.Sprintf("%s!(%s) => %s", p.Name, strings.Join(names, ", "), p.Func)
}
