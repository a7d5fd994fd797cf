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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files|dirs]",
	Short: "check orderless macros expand without error.",
	Long: `Expand the orderless macros in a given set of files or directories,
	reporting any errors but writing nothing.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := Configure(cmd)
		packages := GetPackages(cfg, args)
		results := ExpandPackages(cfg, packages)
		//
		for i, result := range results {
			log.Info(fmt.Sprintf("checked %s (%d files, %d macros)", packages[i].Dir, len(result.Files),
				len(result.Macros)))
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
