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
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-orderless/pkg/util/source"
)

// ERROR_PREFIX marks a line at the start of a test file which describes an
// error expected when expanding it, such as "// error:4:9-12:msg".  Lines and
// columns count from 1, and the end column is exclusive.
const ERROR_PREFIX = "// error"

// HINT_PREFIX marks a line giving the hint expected for the error described
// on the line before it, such as "// hint:remove this".
const HINT_PREFIX = "// hint:"

// An error expected when expanding a test file.  The hint is only checked
// when one was given.
type expectation struct {
	err    source.SyntaxError
	hint   string
	hinted bool
}

// A recognised line of a test file's header, describing either an error or
// the hint of the error before it.
type headerLine struct {
	err  *source.SyntaxError
	hint *string
}

// Read the errors expected when expanding a test file from its header.
func readExpectations(srcfile *source.File) ([]expectation, []error) {
	var expected []expectation
	//
	lines, errs := ExtractAttributes(srcfile, extractSyntaxError, extractHint)
	//
	for _, line := range lines {
		switch {
		case line.err != nil:
			expected = append(expected, expectation{err: *line.err})
		case len(expected) == 0 || expected[len(expected)-1].hinted:
			errs = append(errs, fmt.Errorf("hint \"%s\" does not follow an error", *line.hint))
		default:
			expected[len(expected)-1].hint = *line.hint
			expected[len(expected)-1].hinted = true
		}
	}
	//
	return expected, errs
}

// Recognise a line giving the hint of an expected error.
func extractHint(line source.Line, _ *source.File) (bool, headerLine, error) {
	var contents = line.String()
	//
	if !strings.HasPrefix(contents, HINT_PREFIX) {
		return false, headerLine{}, nil
	}
	//
	hint := strings.TrimPrefix(contents, HINT_PREFIX)
	//
	return true, headerLine{hint: &hint}, nil
}

// Recognise a line describing an expected error, producing the error it
// describes.
func extractSyntaxError(line source.Line, srcfile *source.File) (bool, headerLine, error) {
	var contents = line.String()
	//
	if !strings.HasPrefix(contents, ERROR_PREFIX) {
		return false, headerLine{}, nil
	}
	//
	lineno, start, end, msg, err := parseExpectedError(strings.TrimPrefix(contents, ERROR_PREFIX))
	if err != nil {
		return true, headerLine{}, fmt.Errorf("malformed expected error \"%s\" (%w)", contents, err)
	}
	//
	span, err := determineFileSpan(lineno, start, end, srcfile.Lines())
	if err != nil {
		return true, headerLine{}, err
	}
	//
	return true, headerLine{err: srcfile.SyntaxError(span, msg, "")}, nil
}

// Parse the remainder of an expected error line, for example ":4:9-12:msg".
func parseExpectedError(text string) (lineno, start, end int, msg string, err error) {
	var (
		fields = strings.SplitN(text, ":", 4)
		ok     bool
		from   string
		to     string
	)
	//
	if len(fields) != 4 || fields[0] != "" {
		return 0, 0, 0, "", fmt.Errorf("should be e.g. \"%s:X:Y-Z:msg\"", ERROR_PREFIX)
	} else if lineno, err = parsePosition(fields[1], "line"); err != nil {
		return 0, 0, 0, "", err
	} else if from, to, ok = strings.Cut(fields[2], "-"); !ok {
		return 0, 0, 0, "", fmt.Errorf("span \"%s\" should be X-Y", fields[2])
	} else if start, err = parsePosition(from, "column"); err != nil {
		return 0, 0, 0, "", err
	} else if end, err = parsePosition(to, "column"); err != nil {
		return 0, 0, 0, "", err
	} else if end < start {
		return 0, 0, 0, "", fmt.Errorf("span \"%s\" ends before it starts", fields[2])
	}
	//
	return lineno, start, end, fields[3], nil
}

func parsePosition(text string, what string) (int, error) {
	n, err := strconv.Atoi(text)
	//
	if err != nil {
		return 0, fmt.Errorf("invalid %s \"%s\"", what, text)
	} else if n < 1 {
		return 0, fmt.Errorf("invalid %s \"%s\" (numbered from 1)", what, text)
	}
	//
	return n, nil
}

// Convert a line and column range into a span of the file.
func determineFileSpan(lineno, start, end int, lines []source.Line) (source.Span, error) {
	if lineno > len(lines) {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (no such line)", lineno, start, end)
	}
	//
	line := lines[lineno-1]
	//
	if start-1 >= line.Length() || end-1 > line.Length() {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (overflows the line)", lineno, start, end)
	}
	//
	return source.NewSpan(line.Start()+start-1, line.Start()+end-1), nil
}
