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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-orderless/pkg/util/assert"
)

func Test_Config_01(t *testing.T) {
	cfg := checkConfig(t, "")
	//
	assert.Equal(t, ".ogo", cfg.InputExt)
	assert.Equal(t, ".go", cfg.OutputExt)
	assert.False(t, cfg.FixImports)
	assert.Equal(t, "", cfg.Export)
}

func Test_Config_02(t *testing.T) {
	cfg := checkConfig(t, `
input_ext: .go.in
output_ext: .gen.go
fix_imports: true
export: macros.yaml
imports:
  - manifest: ../lib/macros.yaml
    qualifier: lib
  - manifest: /abs/other.yaml
`)
	//
	assert.Equal(t, ".go.in", cfg.InputExt)
	assert.Equal(t, ".gen.go", cfg.OutputExt)
	assert.True(t, cfg.FixImports)
	assert.Equal(t, 2, len(cfg.Imports))
	assert.Equal(t, "lib", cfg.Imports[0].Qualifier)
	assert.Equal(t, "macros.yaml", cfg.Export)
	assert.Equal(t, filepath.Join("lib", "macros.yaml"), cfg.Resolve(cfg.Imports[0].Manifest))
	assert.Equal(t, "/abs/other.yaml", cfg.Resolve(cfg.Imports[1].Manifest))
}

func Test_Config_03(t *testing.T) {
	cfg := Default("dir")
	//
	assert.Equal(t, ".ogo", cfg.InputExt)
	assert.Equal(t, "dir", cfg.Dir)
}

func Test_Config_04(t *testing.T) {
	var (
		root = t.TempDir()
		sub  = filepath.Join(root, "a", "b")
	)
	//
	assert.True(t, os.MkdirAll(sub, 0755) == nil)
	assert.True(t, os.WriteFile(filepath.Join(root, FILENAME), []byte("fix_imports: true\n"), 0644) == nil)
	//
	path, err := FindConfig(sub)
	assert.True(t, err == nil)
	assert.Equal(t, filepath.Join(root, FILENAME), path)
	//
	cfg, err := LoadConfig(path)
	assert.True(t, err == nil)
	assert.True(t, cfg.FixImports)
	assert.Equal(t, root, cfg.Dir)
}

func Test_Config_Invalid_01(t *testing.T) {
	checkConfigFails(t, "input_ext: ogo", "invalid extension")
	checkConfigFails(t, "output_ext: .ogo", "must differ")
	checkConfigFails(t, "imports:\n  - qualifier: lib", "manifest is required")
	checkConfigFails(t, "imports:\n  - manifest: a.yaml\n    qualifier: a.b", "not an identifier")
	checkConfigFails(t, "imports:\n  - manifest: a.yaml\n  - manifest: a.yaml", "already imported")
	checkConfigFails(t, "export: out/macros.yaml", "not a path")
	checkConfigFails(t, "fix_imports: [", "parsing")
}

func Test_Config_Invalid_02(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), FILENAME))
	assert.True(t, err != nil && strings.Contains(err.Error(), "reading config"))
}

// ============================================================================
// Framework
// ============================================================================

func checkConfig(t *testing.T, text string) *Config {
	cfg, err := ParseConfig([]byte(text), filepath.Join("project", FILENAME))
	assert.True(t, err == nil, "unexpected error: %v", err)
	//
	return cfg
}

func checkConfigFails(t *testing.T, text string, expected string) {
	_, err := ParseConfig([]byte(text), FILENAME)
	assert.True(t, err != nil && strings.Contains(err.Error(), expected), "expected error containing %q, got %v", expected, err)
}
