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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/consensys/go-orderless/pkg/config"
	"github.com/consensys/go-orderless/pkg/expand"
	"github.com/consensys/go-orderless/pkg/manifest"
	"github.com/consensys/go-orderless/pkg/orderless"
	"github.com/consensys/go-orderless/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error
// arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Package identifies the input files making up one Go package.
type Package struct {
	Dir   string
	Files []string
}

// Configure the logging level and load the configuration, applying any
// overrides given on the command line.
func Configure(cmd *cobra.Command) *config.Config {
	var (
		cfg  *config.Config
		path = GetString(cmd, "config")
		err  error
	)
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	if path == "" {
		path, err = config.FindConfig(".")
	}
	//
	if err == nil && path != "" {
		log.Debug(fmt.Sprintf("using configuration %s", path))
		cfg, err = config.LoadConfig(path)
	} else if err == nil {
		cfg = config.Default(".")
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	// Apply overrides
	if cmd.Flags().Changed("fix-imports") {
		cfg.FixImports = GetFlag(cmd, "fix-imports")
	}
	//
	if ext := GetString(cmd, "input-ext"); ext != "" {
		cfg.InputExt = ext
	}
	//
	if ext := GetString(cmd, "output-ext"); ext != "" {
		cfg.OutputExt = ext
	}
	//
	if export := GetString(cmd, "export"); export != "" {
		cfg.Export = export
	}
	//
	return cfg
}

// GetPackages collects the packages given on the command line, or exits if an
// error arises.
func GetPackages(cfg *config.Config, args []string) []Package {
	packages, err := CollectPackages(cfg, args)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return packages
}

// CollectPackages groups the files given on the command line into packages,
// one per directory.  A directory stands for all input files directly within
// it.  With no arguments, the current directory is used.
func CollectPackages(cfg *config.Config, args []string) ([]Package, error) {
	var (
		files = make(map[string][]string)
		dirs  []string
	)
	//
	if len(args) == 0 {
		args = []string{"."}
	}
	//
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		//
		var matches = []string{arg}
		//
		if info.IsDir() {
			if matches, err = filepath.Glob(filepath.Join(arg, "*"+cfg.InputExt)); err != nil {
				return nil, err
			}
		}
		//
		for _, match := range matches {
			dir := filepath.Dir(match)
			//
			if _, ok := files[dir]; !ok {
				dirs = append(dirs, dir)
			}
			//
			if !slices.Contains(files[dir], match) {
				files[dir] = append(files[dir], match)
			}
		}
	}
	//
	slices.Sort(dirs)
	//
	packages := make([]Package, len(dirs))
	//
	for i, dir := range dirs {
		slices.Sort(files[dir])
		packages[i] = Package{dir, files[dir]}
	}
	//
	return packages, nil
}

// Read the given source files.
func readSourceFiles(filenames []string) ([]*source.File, error) {
	var srcfiles = make([]*source.File, len(filenames))
	//
	for i, n := range filenames {
		log.Debug(fmt.Sprintf("including source file %s", n))
		// Read source file
		bytes, err := os.ReadFile(n)
		// Sanity check for errors
		if err != nil {
			return nil, err
		}
		//
		srcfiles[i] = source.NewSourceFile(n, bytes)
	}
	//
	return srcfiles, nil
}

// LoadImports reads the manifests imported by a configuration, or exits if an
// error arises.
func LoadImports(cfg *config.Config) []*orderless.Macro {
	var macros []*orderless.Macro
	//
	for _, imp := range cfg.Imports {
		filename := cfg.Resolve(imp.Manifest)
		log.Debug(fmt.Sprintf("importing manifest %s", filename))
		//
		m, err := manifest.Read(filename)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		imported, errs := m.Load(filename, imp.Qualifier)
		if len(errs) > 0 {
			printSyntaxErrors(errs)
			os.Exit(4)
		}
		//
		macros = append(macros, imported...)
	}
	//
	return macros
}

// ExpandPackages expands each package in turn, reporting any errors which
// arise.  The results are only returned when every package was expanded
// successfully, otherwise this exits.
func ExpandPackages(cfg *config.Config, packages []Package) []expand.Result {
	results, ok := expandPackages(cfg, LoadImports(cfg), packages)
	if !ok {
		os.Exit(4)
	}
	//
	return results
}

// Expand each package in turn, printing any errors arising.  This reports
// whether all packages were expanded successfully.
func expandPackages(cfg *config.Config, imports []*orderless.Macro, packages []Package) ([]expand.Result, bool) {
	var (
		options = expand.Options{
			OutputExt:  cfg.OutputExt,
			FixImports: cfg.FixImports,
			Imports:    imports,
		}
		results = make([]expand.Result, len(packages))
		ok      = true
	)
	//
	for i, pkg := range packages {
		srcfiles, err := readSourceFiles(pkg.Files)
		if err != nil {
			fmt.Println(err)
			ok = false
			//
			continue
		}
		// Expand package
		result, errs := expand.Package(srcfiles, options)
		//
		if len(errs) > 0 {
			printSyntaxErrors(errs)
			ok = false
		}
		//
		for _, m := range result.Macros {
			log.Debug(fmt.Sprintf("generated macro %s", m))
		}
		//
		results[i] = result
	}
	//
	return results, ok
}

// WriteResults writes the expanded files of each package, along with their
// manifests where required.
func WriteResults(cfg *config.Config, packages []Package, results []expand.Result) error {
	for i, result := range results {
		for _, output := range result.Files {
			if err := os.WriteFile(output.Filename, output.Contents, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output.Filename, err)
			}
			//
			log.Info(fmt.Sprintf("wrote %s", output.Filename))
		}
		//
		if cfg.Export != "" && len(result.Exports) > 0 {
			if err := writeManifest(packages[i].Dir, cfg.Export, result); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

func writeManifest(dir string, name string, result expand.Result) error {
	var filename = filepath.Join(dir, name)
	//
	pkg, err := manifest.ModulePath(dir)
	if errors.Is(err, manifest.ErrNoModule) {
		log.Debug(fmt.Sprintf("no module found for %s", dir))
	} else if err != nil {
		return err
	}
	//
	if err := manifest.New(pkg, result.Package, result.Exports).Write(filename); err != nil {
		return err
	}
	//
	log.Info(fmt.Sprintf("wrote %s", filename))
	//
	return nil
}

var (
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	caretStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// Apply a style, but only when writing to a terminal.
func style(s lipgloss.Style, text string) string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return s.Render(text)
	}
	//
	return text
}

func printSyntaxErrors(errs []source.SyntaxError) {
	for i := range errs {
		printSyntaxError(&errs[i])
	}
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, style(errorStyle, err.Message()))
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent, preserving tabs so the highlight lines up
	fmt.Print(indent(line.String(), lineOffset))
	// Print highlight
	fmt.Println(style(caretStyle, strings.Repeat("^", length)))
	// Print hint
	if err.Hint() != "" {
		fmt.Printf("%s %s\n", style(helpStyle, "help:"), err.Hint())
	}
}

// Construct the whitespace needed to reach a given offset within a line.
func indent(line string, offset int) string {
	var builder strings.Builder
	//
	for i, c := range []rune(line) {
		if i >= offset {
			break
		} else if c == '\t' {
			builder.WriteRune('\t')
		} else {
			builder.WriteRune(' ')
		}
	}
	//
	return builder.String()
}
