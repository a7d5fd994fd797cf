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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] [files|dirs]",
	Short: "expand orderless macros into plain Go.",
	Long: `Expand the orderless macros in a given set of files or directories.
	Each directory is treated as one package, such that public macros can be
	used throughout.  Nothing is written unless every package expands
	without error.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := Configure(cmd)
		packages := GetPackages(cfg, args)
		results := ExpandPackages(cfg, packages)
		//
		if err := WriteResults(cfg, packages, results); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
}
