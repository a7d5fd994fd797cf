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
package expand

import (
	"errors"
	"fmt"
	"go/scanner"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/consensys/go-orderless/pkg/orderless"
	"github.com/consensys/go-orderless/pkg/syntax"
	"github.com/consensys/go-orderless/pkg/util/source"
	"golang.org/x/tools/imports"
)

// edit replaces the text covered by a span.
type edit struct {
	span source.Span
	text string
}

// Expand the invocations of a unit and apply all edits, giving the formatted
// output.  Every invocation is expanded independently, so that all failing
// invocations are reported.
func (e *expander) expand(u *unit) (Output, []source.SyntaxError) {
	var (
		edits []edit
		errs  []source.SyntaxError
	)
	//
	for _, span := range u.removals {
		edits = append(edits, edit{span, ""})
	}
	//
	for _, inv := range u.invocations {
		text, errs2 := e.invoke(inv.name, inv.body, 0)
		if len(errs2) > 0 {
			errs = append(errs, errs2...)
		} else {
			edits = append(edits, edit{inv.span, text})
		}
	}
	//
	if len(errs) > 0 {
		return Output{}, errs
	}
	//
	slices.SortFunc(edits, func(l, r edit) int {
		return l.span.Compare(r.span)
	})
	//
	var (
		builder  strings.Builder
		contents = u.file.Contents()
		last     = 0
	)
	//
	for _, ed := range edits {
		builder.WriteString(string(contents[last:ed.span.Start()]))
		builder.WriteString(ed.text)
		last = ed.span.End()
	}
	//
	builder.WriteString(string(contents[last:]))
	//
	filename := OutputName(u.file.Filename(), e.options.OutputExt)
	bytes, errs := e.format(filename, builder.String())
	//
	return Output{u.file, filename, bytes}, errs
}

// Expand a single invocation into a positional call.
func (e *expander) invoke(name syntax.Token, body []syntax.Token, depth int) (string, []source.SyntaxError) {
	var (
		call orderless.Call
		errs []source.SyntaxError
	)
	//
	if depth >= MAX_DEPTH {
		return "", name.SyntaxErrors("macro expansion too deep", "check for a default which invokes its own macro")
	}
	//
	switch name.Text() {
	case orderless.CALL:
		call, errs = orderless.ParseCall(name, body)
	case orderless.CREATE:
		return "", name.SyntaxErrors(fmt.Sprintf("%s cannot be nested", orderless.CREATE),
			"define macros outside of other invocations")
	default:
		m := e.lookup(e.files[name.File], name.Text())
		if m == nil {
			return "", name.SyntaxErrors(fmt.Sprintf("unknown orderless macro \"%s\"", name.Text()),
				fmt.Sprintf("define it with %s! or %s", orderless.CREATE, orderless.MAKE))
		}
		//
		call, errs = m.Expand(name, body)
	}
	//
	if len(errs) > 0 {
		return "", errs
	}
	//
	resolved, errs := orderless.Resolve(call)
	if len(errs) > 0 {
		return "", errs
	}
	//
	args := make([]string, len(resolved.Args))
	//
	for i, arg := range resolved.Args {
		if args[i], errs = e.render(arg, depth+1); len(errs) > 0 {
			return "", errs
		}
	}
	//
	return fmt.Sprintf("%s(%s)", resolved.Func, strings.Join(args, ", ")), nil
}

// Render a run of tokens as text, expanding any invocations within it.
func (e *expander) render(tokens []syntax.Token, depth int) (string, []source.SyntaxError) {
	var builder strings.Builder
	//
	for i := 0; i < len(tokens); {
		var (
			end  = i
			text = tokens[i].Text()
		)
		//
		if isInvocation(tokens, i) {
			var errs []source.SyntaxError
			//
			if end, errs = syntax.Matching(tokens, i+2); len(errs) > 0 {
				return "", errs
			} else if text, errs = e.invoke(tokens[i], tokens[i+3:end], depth); len(errs) > 0 {
				return "", errs
			}
		}
		//
		builder.WriteString(text)
		//
		if end+1 < len(tokens) {
			builder.WriteString(syntax.Gap(tokens[end], tokens[end+1]))
		}
		//
		i = end + 1
	}
	//
	return builder.String(), nil
}

// Format an expanded file.  A failure here means the expansion did not produce
// valid Go, which is reported against the expanded text itself.
func (e *expander) format(filename string, text string) ([]byte, []source.SyntaxError) {
	var options = imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: !e.options.FixImports,
	}
	//
	bytes, err := imports.Process(filename, []byte(text), &options)
	if err == nil {
		return bytes, nil
	}
	//
	var (
		srcfile = source.NewSourceFile(filename, []byte(text))
		list    scanner.ErrorList
		span    = source.NewSpan(0, 0)
		msg     = err.Error()
	)
	//
	if errors.As(err, &list) && len(list) > 0 {
		span = spanAt(srcfile, list[0].Pos.Line, list[0].Pos.Column)
		msg = list[0].Msg
	}
	//
	return nil, []source.SyntaxError{*srcfile.SyntaxError(span, "expanded source is not valid Go", msg)}
}

// Determine the span of the character at a given line and (byte) column, both
// counting from 1.
func spanAt(srcfile *source.File, line int, column int) source.Span {
	var lines = srcfile.Lines()
	//
	if line < 1 || line > len(lines) {
		return source.NewSpan(0, 0)
	}
	//
	var (
		l      = lines[line-1]
		text   = l.String()
		offset = l.Start() + utf8.RuneCountInString(text[:min(len(text), max(0, column-1))])
		end    = min(offset+1, l.Start()+l.Length())
	)
	//
	return source.NewSpan(offset, max(offset, end))
}
