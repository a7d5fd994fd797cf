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
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/consensys/go-orderless/pkg/orderless"
	"github.com/consensys/go-orderless/pkg/util/source"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

// VERSION is the format version of manifests written by this tool.
const VERSION = "1.0.0"

// COMPATIBLE determines which format versions can be read.
const COMPATIBLE = "^1.0.0"

// Manifest lists the public macros of a package, such that other packages can
// invoke them.
type Manifest struct {
	// Version is the format version of this manifest.
	Version string `yaml:"version"`

	// Package is the import path of the package defining the macros.  This is
	// empty when the package is not part of a module.
	Package string `yaml:"package,omitempty"`

	// Name is the package name, used as the default qualifier.
	Name string `yaml:"name"`

	// Macros lists the exported macros.
	Macros []Entry `yaml:"macros"`
}

// Entry records a single macro by its definition.
type Entry struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	// External marks a macro whose function belongs to another package, so
	// must not be qualified when imported.
	External bool `yaml:"external,omitempty"`
}

// New constructs a manifest for a given package.
func New(pkg string, name string, macros []*orderless.Macro) *Manifest {
	var entries = make([]Entry, len(macros))
	//
	for i, m := range macros {
		entries[i] = Entry{m.Name, m.Source(), m.External}
	}
	//
	return &Manifest{VERSION, pkg, name, entries}
}

// Write a manifest to a given file.
func (m *Manifest) Write(filename string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	//
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", filename, err)
	}
	//
	return nil
}

// Read a manifest from a given file, checking its format version can be
// understood.
func Read(filename string) (*Manifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", filename, err)
	}
	//
	return Parse(data, filename)
}

// Parse manifest content from bytes.  The filename is used only for error
// messages.
func Parse(data []byte, filename string) (*Manifest, error) {
	var m Manifest
	//
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", filename, err)
	}
	//
	version, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid version %q: %w", filename, m.Version, err)
	}
	//
	constraint, err := semver.NewConstraint(COMPATIBLE)
	if err != nil {
		return nil, err
	} else if !constraint.Check(version) {
		return nil, fmt.Errorf("%s: unsupported manifest version %s (expected %s)", filename, version, COMPATIBLE)
	}
	//
	return &m, nil
}

// Load reconstructs the macros of this manifest, qualified for use from
// another package.  An empty qualifier defaults to the package name.  Each
// macro's definition is attributed to the given filename when reporting
// errors.
func (m *Manifest) Load(filename string, qualifier string) ([]*orderless.Macro, []source.SyntaxError) {
	var (
		macros []*orderless.Macro
		errs   []source.SyntaxError
	)
	//
	if qualifier == "" {
		qualifier = m.Name
	}
	//
	for _, e := range m.Macros {
		srcfile := source.NewSourceFile(fmt.Sprintf("%s[%s]", filename, e.Name), []byte(e.Source))
		//
		macro, errs2 := orderless.ParseSource(srcfile)
		if len(errs2) > 0 {
			errs = append(errs, errs2...)
			continue
		} else if macro.Name != e.Name {
			err := srcfile.SyntaxError(source.NewSpan(0, len(srcfile.Contents())),
				fmt.Sprintf("manifest entry \"%s\" defines macro \"%s\"", e.Name, macro.Name),
				"regenerate the manifest")
			errs = append(errs, *err)
			//
			continue
		}
		//
		macro.External = e.External
		macros = append(macros, macro.Qualify(qualifier))
	}
	//
	return macros, errs
}

// ErrNoModule indicates no go.mod was found.
var ErrNoModule = errors.New("no go.mod found")

// ModulePath determines the import path of the package in a given directory,
// from the go.mod in that directory or its nearest parent.
func ModulePath(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	//
	for sub := ""; ; {
		gomod := filepath.Join(dir, "go.mod")
		//
		if data, err := os.ReadFile(gomod); err == nil {
			mod := modfile.ModulePath(data)
			if mod == "" {
				return "", fmt.Errorf("%s: no module directive", gomod)
			}
			//
			return path.Join(mod, sub), nil
		}
		//
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoModule
		}
		//
		sub = path.Join(filepath.Base(dir), sub)
		dir = parent
	}
}
