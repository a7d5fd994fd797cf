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
	"strings"
	"testing"

	"github.com/consensys/go-orderless/pkg/util/source"
)

// ErrorExpander expands a source file and produces zero or more errors.
type ErrorExpander func(*source.File) []source.SyntaxError

// CheckInvalid checks that a given test file fails to expand, producing exactly
// the errors listed in its header (in order).  Hints are compared only for
// those errors whose hint is given.
func CheckInvalid(t *testing.T, test, ext string, expander ErrorExpander) {
	var filename = fmt.Sprintf("%s/invalid/%s.%s", TestDir, test, ext)
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	//
	expected, errs := readExpectations(srcfile)
	if len(errs) > 0 {
		// Problems with the header itself
		t.Fatal(errors.Join(errs...))
	} else if len(expected) == 0 {
		t.Fatalf("Error %s expects no errors", filename)
	}
	//
	actual := expander(srcfile)
	//
	if len(actual) == 0 {
		t.Fatalf("Error %s should not have expanded", filename)
	} else if report := compareErrors(actual, expected); report != "" {
		t.Fatalf("Error %s\n%s", filename, report)
	}
}

// Compare the errors produced against those expected, returning a description
// of every difference (or nothing if they agree).
func compareErrors(actual []source.SyntaxError, expected []expectation) string {
	var builder strings.Builder
	//
	for i, n := 0, max(len(actual), len(expected)); i < n; i++ {
		switch {
		case i >= len(actual):
			fmt.Fprintf(&builder, "   missing error %s\n", expected[i].String())
		case i >= len(expected):
			fmt.Fprintf(&builder, "unexpected error %s\n", errorToString(actual[i]))
		case !expected[i].Matches(actual[i]):
			fmt.Fprintf(&builder, "unexpected error %s\n", errorToString(actual[i]))
			fmt.Fprintf(&builder, "  expected error %s\n", expected[i].String())
		}
	}
	//
	return builder.String()
}

// Matches checks whether an actual error is the one expected.
func (p *expectation) Matches(actual source.SyntaxError) bool {
	switch {
	case p.err.Message() != actual.Message() || p.err.Span() != actual.Span():
		return false
	case p.hinted:
		return p.hint == actual.Hint()
	}
	//
	return true
}

func (p *expectation) String() string {
	if p.hinted {
		return errorToString(p.err) + " (hint: " + p.hint + ")"
	}
	//
	return errorToString(p.err)
}

func readSourceFile(t *testing.T, filename string) *source.File {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	//
	return source.NewSourceFile(filename, bytes)
}

// Render an error as "file:line:start-end msg", with columns counting from 1
// and the span clipped to its first line.  The hint is included when present.
func errorToString(err source.SyntaxError) string {
	var (
		span   = err.Span()
		line   = err.FirstEnclosingLine()
		offset = span.Start() - line.Start()
		length = min(line.Length()-offset, span.Length())
		text   = fmt.Sprintf("%s:%d:%d-%d %s", err.SourceFile().Filename(), line.Number(), 1+offset,
			1+offset+length, err.Message())
	)
	//
	if err.Hint() != "" {
		text += " (hint: " + err.Hint() + ")"
	}
	//
	return text
}
