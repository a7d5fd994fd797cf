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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/consensys/go-orderless/pkg/config"
	"github.com/consensys/go-orderless/pkg/orderless"
	"github.com/consensys/go-orderless/pkg/watch"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [dirs]",
	Short: "expand orderless macros whenever their files change.",
	Long: `Watch a given set of directories, expanding each package whenever
	one of its files changes.  Errors are reported, but do not stop watching.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := Configure(cmd)
		delay := time.Duration(GetUint(cmd, "delay")) * time.Millisecond
		packages := GetPackages(cfg, args)
		dirs := make([]string, len(packages))
		//
		for i, pkg := range packages {
			dirs[i] = pkg.Dir
		}
		//
		watcher, err := watch.New(cfg.InputExt, delay, dirs...)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		imports := LoadImports(cfg)
		// Initial expansion
		rebuild(cfg, imports, dirs)
		//
		if err := watcher.Run(ctx, func(changed []string) { rebuild(cfg, imports, changed) }); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

// Expand the packages in the given directories, logging rather than exiting
// on errors.
func rebuild(cfg *config.Config, imports []*orderless.Macro, dirs []string) {
	packages, err := CollectPackages(cfg, dirs)
	// A watched directory may have been removed
	if err != nil {
		log.Error(err)
		return
	}
	//
	for _, pkg := range packages {
		results, ok := expandPackages(cfg, imports, []Package{pkg})
		if !ok {
			log.Warn(fmt.Sprintf("expansion of %s failed", pkg.Dir))
		} else if err := WriteResults(cfg, []Package{pkg}, results); err != nil {
			log.Error(err)
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Uint("delay", 100, "milliseconds to wait for changes to settle")
}
