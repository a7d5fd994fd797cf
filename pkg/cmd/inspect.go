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
	"strings"

	"github.com/consensys/go-orderless/pkg/orderless"
	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] [files|dirs]",
	Short: "list the orderless macros defined in a package.",
	Long: `List the orderless macros defined in a given set of files or
	directories, along with their parameters and defaults.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := Configure(cmd)
		packages := GetPackages(cfg, args)
		results := ExpandPackages(cfg, packages)
		exports := GetFlag(cmd, "exports")
		//
		for _, result := range results {
			for _, m := range result.Macros {
				if !exports || m.Public {
					fmt.Println(describe(m))
				}
			}
		}
	},
}

// Describe a macro on a single line, for example:
//
// lib.ogo:3 add!(a, b = 2) => add (public)
func describe(m *orderless.Macro) string {
	var (
		builder strings.Builder
		line    = m.At.File.FindFirstEnclosingLine(m.At.Span)
	)
	//
	fmt.Fprintf(&builder, "%s:%d %s!(", m.At.File.Filename(), line.Number(), m.Name)
	//
	for i, d := range m.Defs {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(d.Name)
		//
		if !d.IsRequired() {
			fmt.Fprintf(&builder, " = %s", syntax.Text(d.Value))
		}
	}
	//
	fmt.Fprintf(&builder, ") => %s", m.Func)
	//
	if m.Public {
		builder.WriteString(" (public)")
	}
	//
	return builder.String()
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("exports", false, "only list public macros")
}
