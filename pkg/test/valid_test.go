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

	"github.com/consensys/go-orderless/pkg/test/util"
)

// ===================================================================
// Single Files
// ===================================================================

func Test_Valid_Basic_01(t *testing.T) {
	checkValid(t, "basic_01")
}

func Test_Valid_Create_01(t *testing.T) {
	checkValid(t, "create_01")
}

func Test_Valid_Call_01(t *testing.T) {
	checkValid(t, "call_01")
}

func Test_Valid_Impl_01(t *testing.T) {
	checkValid(t, "impl_01")
}

func Test_Valid_Impl_02(t *testing.T) {
	checkValid(t, "impl_02")
}

func Test_Valid_Generic_01(t *testing.T) {
	checkValid(t, "generic_01")
}

func Test_Valid_Nested_01(t *testing.T) {
	checkValid(t, "nested_01")
}

func Test_Valid_Negation_01(t *testing.T) {
	checkValid(t, "negation_01")
}

// ===================================================================
// Packages
// ===================================================================

func Test_Valid_Package_01(t *testing.T) {
	checkValid(t, "shapes")
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkValid(t *testing.T, test string) {
	util.CheckValid(t, test, "ogo")
}
