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
package expand

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/consensys/go-orderless/pkg/orderless"
	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/source"
)

// MAX_DEPTH bounds how deeply invocations may be nested within one another,
// including through the defaults of the macros involved.
const MAX_DEPTH = 64

// DEFAULT_OUTPUT_EXT is the extension given to expanded files when none is
// specified.
const DEFAULT_OUTPUT_EXT = ".go"

// Options controls how a package is expanded.
type Options struct {
	// Extension for expanded files, which replaces that of the input.
	OutputExt string
	// Whether missing imports should be added (and unused ones removed) when
	// formatting the expanded files.
	FixImports bool
	// Macros made available to every file, typically read from the manifests
	// of other packages.
	Imports []*orderless.Macro
}

// Output is the result of expanding one file.
type Output struct {
	// File from which this output was expanded.
	Source *source.File
	// Name of the file to write.
	Filename string
	// Formatted contents of the file.
	Contents []byte
}

// Result is the outcome of expanding a package.
type Result struct {
	// Name of the package, as given by the package clause of its files.
	Package string
	// Expanded files, in the order given.
	Files []Output
	// Macros defined by the package, in order of definition.
	Macros []*orderless.Macro
	// Public macros defined by the package.
	Exports []*orderless.Macro
}

// Package expands a set of files which together make up one Go package.
// Definitions are collected from every file before any invocation is
// expanded, hence a public macro may be used in any file of the package
// regardless of where it is defined.  If any errors arise, no outputs are
// produced.
func Package(files []*source.File, options Options) (Result, []source.SyntaxError) {
	var (
		expander = newExpander(options)
		result   Result
		errs     []source.SyntaxError
	)
	// Collect definitions
	for _, file := range files {
		errs = append(errs, expander.scan(file)...)
	}
	//
	if len(errs) == 0 {
		errs = expander.adapt()
	}
	//
	if len(errs) > 0 {
		return result, errs
	}
	// Expand invocations
	for _, u := range expander.units {
		output, errs2 := expander.expand(u)
		errs = append(errs, errs2...)
		result.Files = append(result.Files, output)
	}
	//
	if len(errs) > 0 {
		return Result{}, errs
	}
	//
	result.Package = expander.pkg
	result.Macros = expander.macros
	//
	for _, m := range expander.macros {
		if m.Public {
			result.Exports = append(result.Exports, m)
		}
	}
	//
	return result, nil
}

// OutputName determines the name of the file to which a given input is
// expanded.
func OutputName(filename string, ext string) string {
	if ext == "" {
		ext = DEFAULT_OUTPUT_EXT
	}
	//
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ext
}

// expander holds the state accumulated whilst expanding a package.
type expander struct {
	options Options
	// Package name, if known.
	pkg string
	// Units in the order their files were given.
	units []*unit
	// Maps each file onto its unit.
	files map[*source.File]*unit
	// Public and imported macros.
	scope map[string]*orderless.Macro
	// Macros defined by the package.
	macros []*orderless.Macro
	// Blocks indexed by type name.
	blocks map[string]*orderless.Block
	// Names of blocks in order of declaration.
	order []string
	// Marked methods awaiting their blocks, in order of appearance.
	methods []orderless.Method
}

func newExpander(options Options) *expander {
	var e = &expander{
		options: options,
		files:   make(map[*source.File]*unit),
		scope:   make(map[string]*orderless.Macro),
		blocks:  make(map[string]*orderless.Block),
	}
	//
	for _, m := range options.Imports {
		e.scope[m.Name] = m
	}
	//
	return e
}

// unit holds the state of one file being expanded.
type unit struct {
	file *source.File
	// All tokens of the file, including comments but excluding the end of
	// file marker.
	tokens []syntax.Token
	// Private macros of this file.
	scope map[string]*orderless.Macro
	// Names under which this file imports other packages.
	imports map[string]bool
	// Text to remove from the output, such as directives and definitions.
	removals []source.Span
	// Invocations found at the top level of the file (i.e. not nested in
	// another invocation).
	invocations []invocation
}

// invocation of a macro, or of the low-level call form.
type invocation struct {
	// Name of the macro being invoked.
	name syntax.Token
	// Tokens between the brackets.
	body []syntax.Token
	// Span of the whole invocation.
	span source.Span
}

// Define a macro in the appropriate scope.  Names must be unique across the
// package scope and the scope of the defining file, whether public or not.
func (e *expander) define(m *orderless.Macro) []source.SyntaxError {
	var (
		u     = e.files[m.At.File]
		scope = u.scope
	)
	//
	if m.Public {
		scope = e.scope
	}
	//
	if prev := e.lookup(u, m.Name); prev != nil {
		return m.At.SyntaxErrors(fmt.Sprintf("macro already defined \"%s\"", m.Name), definedAt(prev))
	}
	// Public names must not clash with the private names of any file.
	for _, other := range e.units {
		if p, ok := other.scope[m.Name]; ok && m.Public {
			return m.At.SyntaxErrors(fmt.Sprintf("macro already defined \"%s\"", m.Name), definedAt(p))
		}
	}
	//
	scope[m.Name] = m
	e.macros = append(e.macros, m)
	//
	return nil
}

// Look up a macro by name as visible from a given unit.
func (e *expander) lookup(u *unit, name string) *orderless.Macro {
	if u != nil {
		if m, ok := u.scope[name]; ok {
			return m
		}
	}
	//
	return e.scope[name]
}

func definedAt(m *orderless.Macro) string {
	if m.At.File == nil {
		return "rename one of them"
	}
	//
	line := m.At.File.FindFirstEnclosingLine(m.At.Span)
	//
	return fmt.Sprintf("previously defined at %s:%d", m.At.File.Filename(), line.Number())
}
