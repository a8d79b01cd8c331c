/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package ui formats facadectl output: tables, key-value blocks and error
// reports.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"dirpx.dev/facade"
)

// Unsupported is the cell text for a capability the provider lacks.
const Unsupported = "<unsupported>"

// Value turns a facade accessor result into a cell. Capability failures
// become a red Unsupported cell; any other error is shown verbatim in red.
func Value(s string, err error) Cell {
	if err == nil {
		return Text(s)
	}
	var ce *facade.CapabilityError
	if errors.As(err, &ce) {
		return Cell{Text: Unsupported, Failed: true}
	}
	return Cell{Text: err.Error(), Failed: true}
}

// FormatError renders err as a one-line header plus, for facade errors, an
// indented detail line naming the capability or the rejected origin.
//
// Example output:
//
//	✗ UNSUPPORTED CAPABILITY: Type.BaseType
//	   demo.Counter does not provide it.
func FormatError(err error, noColor bool) string {
	head := color.New(color.FgRed, color.Bold)
	body := color.New(color.FgRed)
	if noColor {
		head.DisableColor()
		body.DisableColor()
	}

	var b strings.Builder
	var ce *facade.CapabilityError
	var cv *facade.ConversionError
	switch {
	case errors.As(err, &ce):
		head.Fprintf(&b, "✗ UNSUPPORTED CAPABILITY: %s\n", ce.Capability)
		if ce.Entity != "" {
			body.Fprintf(&b, "   %s does not provide it.\n", ce.Entity)
		}
	case errors.As(err, &cv):
		head.Fprintf(&b, "✗ UNSUPPORTED MEMBER: %s\n", cv.Origin)
		body.Fprintln(&b, "   The member kind is not modelled.")
	default:
		head.Fprintf(&b, "✗ %v\n", err)
	}
	return b.String()
}

// PrintError writes FormatError(err) to w.
func PrintError(w io.Writer, err error, noColor bool) {
	fmt.Fprint(w, FormatError(err, noColor))
}
