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
package test

import (
	"testing"

	"github.com/consensys/go-orderless/pkg/expand"
	"github.com/consensys/go-orderless/pkg/test/util"
	"github.com/consensys/go-orderless/pkg/util/source"
)

// ===================================================================
// Resolution
// ===================================================================

func Test_Invalid_Extra_01(t *testing.T) {
	checkInvalid(t, "extra_01")
}

func Test_Invalid_Missing_01(t *testing.T) {
	checkInvalid(t, "missing_01")
}

func Test_Invalid_Unknown_01(t *testing.T) {
	checkInvalid(t, "unknown_01")
}

func Test_Invalid_Multiple_01(t *testing.T) {
	checkInvalid(t, "multiple_01")
}

func Test_Invalid_Depth_01(t *testing.T) {
	checkInvalid(t, "depth_01")
}

// ===================================================================
// Definitions
// ===================================================================

func Test_Invalid_Method_01(t *testing.T) {
	checkInvalid(t, "method_01")
}

func Test_Invalid_Param_01(t *testing.T) {
	checkInvalid(t, "param_01")
}

func Test_Invalid_Variadic_01(t *testing.T) {
	checkInvalid(t, "variadic_01")
}

func Test_Invalid_Pattern_01(t *testing.T) {
	checkInvalid(t, "pattern_01")
}

func Test_Invalid_Derive_01(t *testing.T) {
	checkInvalid(t, "derive_01")
}

func Test_Invalid_Generic_01(t *testing.T) {
	checkInvalid(t, "generic_01")
}

func Test_Invalid_Generic_02(t *testing.T) {
	checkInvalid(t, "generic_02")
}

func Test_Invalid_Duplicate_01(t *testing.T) {
	checkInvalid(t, "duplicate_01")
}

func Test_Invalid_Private_01(t *testing.T) {
	checkInvalid(t, "private_01")
}

func Test_Invalid_Directive_01(t *testing.T) {
	checkInvalid(t, "directive_01")
}

// ===================================================================
// Options
// ===================================================================

func Test_Invalid_Options_01(t *testing.T) {
	checkInvalid(t, "options_01")
}

func Test_Invalid_Options_02(t *testing.T) {
	checkInvalid(t, "options_02")
}

func Test_Invalid_Options_03(t *testing.T) {
	checkInvalid(t, "options_03")
}

func Test_Invalid_Options_04(t *testing.T) {
	checkInvalid(t, "options_04")
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkInvalid(t *testing.T, test string) {
	util.CheckInvalid(t, test, "ogo", expandFile)
}

func expandFile(srcfile *source.File) []source.SyntaxError {
	_, errs := expand.Package([]*source.File{srcfile}, expand.Options{})
	//
	return errs
}
