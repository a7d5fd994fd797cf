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
package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/consensys/go-orderless/pkg/expand"
	"github.com/consensys/go-orderless/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the valid test files (with their golden outputs) and the invalid test
// files are found.
const TestDir = "../../testdata"

// GOLDEN_EXT is the extension of the file holding the expected expansion of a
// test file.
const GOLDEN_EXT = ".golden"

// CheckValid checks that a given test expands without errors, and that each
// output matches its golden file.  A test is either a single file, or a
// directory whose files are expanded together as one package.
func CheckValid(t *testing.T, test, ext string) {
	var (
		path      = fmt.Sprintf("%s/valid/%s", TestDir, test)
		filenames []string
	)
	// Enable testing each package in parallel
	t.Parallel()
	//
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		filenames, _ = filepath.Glob(filepath.Join(path, "*."+ext))
		slices.Sort(filenames)
	} else {
		filenames = []string{path + "." + ext}
	}
	//
	if len(filenames) == 0 {
		t.Fatalf("Error %s contains no test files", path)
	}
	//
	files := make([]*source.File, len(filenames))
	//
	for i, filename := range filenames {
		files[i] = readSourceFile(t, filename)
	}
	//
	result, errs := expand.Package(files, expand.Options{})
	if len(errs) > 0 {
		msgs := make([]error, len(errs))
		//
		for i := range errs {
			msgs[i] = errors.New(errorToString(errs[i]))
		}
		//
		t.Fatalf("Error %s failed to expand\n%s", path, errors.Join(msgs...))
	} else if len(result.Files) != len(files) {
		t.Fatalf("Error %s expanded into %d files (expected %d)", path, len(result.Files), len(files))
	}
	//
	for _, output := range result.Files {
		checkGolden(t, output)
	}
}

// Check an expanded file matches its golden file.  Whitespace is ignored so
// the golden files need not be laid out exactly as the formatter would.
func checkGolden(t *testing.T, output expand.Output) {
	var (
		filename = output.Source.Filename()
		golden   = strings.TrimSuffix(filename, filepath.Ext(filename)) + GOLDEN_EXT
	)
	//
	expected, err := os.ReadFile(golden)
	if err != nil {
		t.Fatal(err)
	}
	//
	if normalise(string(expected)) != normalise(string(output.Contents)) {
		t.Errorf("Error %s does not match %s\n--- expanded:\n%s\n--- expected:\n%s", filename, golden,
			output.Contents, expected)
	}
}

func normalise(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
