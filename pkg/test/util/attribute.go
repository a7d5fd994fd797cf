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
	"github.com/consensys/go-orderless/pkg/util/source"
)

// Attribute recognises one kind of header line of a test file.  It reports
// whether the given line was recognised, the item it describes and any problem
// with the line itself.
type Attribute[T any] func(source.Line, *source.File) (bool, T, error)

// ExtractAttributes reads the header of a test file, that is the lines at the
// beginning of it which some attribute recognises.  The header ends at the
// first line which no attribute recognises.
func ExtractAttributes[T any](srcfile *source.File, attributes ...Attribute[T]) ([]T, []error) {
	var (
		items  []T
		errors []error
	)
	//
	for _, line := range srcfile.Lines() {
		if !extractAttribute(line, srcfile, &items, &errors, attributes) {
			break
		}
	}
	//
	return items, errors
}

// Apply the first attribute recognising a line, returning false when none
// does.
func extractAttribute[T any](line source.Line, srcfile *source.File, items *[]T, errors *[]error,
	attributes []Attribute[T]) bool {
	for _, attribute := range attributes {
		matched, item, err := attribute(line, srcfile)
		//
		switch {
		case !matched:
			continue
		case err != nil:
			*errors = append(*errors, err)
		default:
			*items = append(*items, item)
		}
		//
		return true
	}
	//
	return false
}
