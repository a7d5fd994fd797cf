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
package config

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FILENAME is the name of the configuration file searched for.
const FILENAME = "orderless.yaml"

// Config represents the contents of an orderless.yaml file.
type Config struct {
	// InputExt is the extension of files to be expanded.  Defaults to ".ogo".
	InputExt string `yaml:"input_ext,omitempty"`

	// OutputExt is the extension given to expanded files.  Defaults to ".go".
	OutputExt string `yaml:"output_ext,omitempty"`

	// FixImports adds missing imports to (and removes unused imports from)
	// the expanded files.
	FixImports bool `yaml:"fix_imports,omitempty"`

	// Export is the name of the manifest written into the directory of each
	// package defining public macros.  No manifest is written when empty.
	Export string `yaml:"export,omitempty"`

	// Imports lists the manifests of other packages whose public macros are
	// made available.
	Imports []Import `yaml:"imports,omitempty"`

	// Dir is the directory holding the configuration file, against which
	// relative paths are resolved.
	Dir string `yaml:"-"`
}

// Import describes the macros of another package.
type Import struct {
	// Manifest is the path to that package's manifest, relative to the
	// configuration file.
	Manifest string `yaml:"manifest"`

	// Qualifier is the name by which the package is imported.  Defaults to
	// the package name recorded in the manifest.
	Qualifier string `yaml:"qualifier,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default(dir string) *Config {
	var cfg = Config{Dir: dir}
	cfg.setDefaults()
	//
	return &cfg
}

// LoadConfig reads and parses an orderless.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	//
	return ParseConfig(data, path)
}

// ParseConfig parses orderless.yaml content from bytes.  The path is used for
// error messages and for resolving relative paths.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	//
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	//
	cfg.setDefaults()
	cfg.Dir = filepath.Dir(path)
	//
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	//
	return &cfg, nil
}

// FindConfig searches for orderless.yaml starting from dir and walking up to
// parent directories.  Returns an empty path and nil error if none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	//
	for {
		candidate := filepath.Join(dir, FILENAME)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		//
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		//
		dir = parent
	}
}

// Resolve a path given in the configuration against its directory.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	//
	return filepath.Join(c.Dir, path)
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	for _, ext := range []string{c.InputExt, c.OutputExt} {
		if !strings.HasPrefix(ext, ".") || len(ext) == 1 {
			return fmt.Errorf("%s: invalid extension %q (must begin with \".\")", path, ext)
		}
	}
	//
	if strings.ContainsRune(c.Export, filepath.Separator) || strings.ContainsRune(c.Export, '/') {
		return fmt.Errorf("%s: export must be a file name, not a path", path)
	} else if c.InputExt == c.OutputExt {
		return fmt.Errorf("%s: input_ext and output_ext must differ", path)
	}
	//
	seen := make(map[string]int)
	//
	for i, imp := range c.Imports {
		if imp.Manifest == "" {
			return fmt.Errorf("%s: imports[%d]: manifest is required", path, i)
		} else if imp.Qualifier != "" && !token.IsIdentifier(imp.Qualifier) {
			return fmt.Errorf("%s: imports[%d]: qualifier %q is not an identifier", path, i, imp.Qualifier)
		} else if j, ok := seen[imp.Manifest]; ok {
			return fmt.Errorf("%s: imports[%d]: manifest %s already imported by imports[%d]", path, i, imp.Manifest, j)
		}
		//
		seen[imp.Manifest] = i
	}
	//
	return nil
}

// setDefaults fills in default values for optional fields.
func (c *Config) setDefaults() {
	if c.InputExt == "" {
		c.InputExt = ".ogo"
	}
	//
	if c.OutputExt == "" {
		c.OutputExt = ".go"
	}
}
