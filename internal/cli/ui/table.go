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

package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table renders rows under a bold header with a rule beneath it.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]Cell
	noColor bool
}

// Cell is a table cell. Failed cells are printed in red.
type Cell struct {
	Text   string
	Failed bool
}

// Text is a plain cell.
func Text(s string) Cell { return Cell{Text: s} }

// NewTable creates a table with the given headers.
func NewTable(w io.Writer, noColor bool, headers ...string) *Table {
	return &Table{writer: w, headers: headers, noColor: noColor}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...Cell) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows added so far.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the table.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(c.Text))
			}
		}
	}

	head := t.color(color.Bold, color.FgCyan)
	for i, h := range t.headers {
		head.Fprint(t.writer, pad(h, widths[i], i == len(widths)-1))
	}
	fmt.Fprintln(t.writer)

	gray := t.color(color.FgHiBlack)
	for i, w := range widths {
		sep := "  "
		if i == len(widths)-1 {
			sep = ""
		}
		gray.Fprint(t.writer, strings.Repeat("─", w)+sep)
	}
	fmt.Fprintln(t.writer)

	red := t.color(color.FgRed)
	for _, row := range t.rows {
		for i := range widths {
			var c Cell
			if i < len(row) {
				c = row[i]
			}
			s := pad(c.Text, widths[i], i == len(widths)-1)
			if c.Failed {
				red.Fprint(t.writer, s)
			} else {
				fmt.Fprint(t.writer, s)
			}
		}
		fmt.Fprintln(t.writer)
	}
}

func (t *Table) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.noColor {
		c.DisableColor()
	}
	return c
}

// pad right-pads s to width and appends the column gap unless last.
func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	if n := utf8.RuneCountInString(s); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s + "  "
}

// KeyValues renders aligned "key: value" lines.
type KeyValues struct {
	writer  io.Writer
	keys    []string
	values  []Cell
	noColor bool
}

// NewKeyValues creates an empty key-value block.
func NewKeyValues(w io.Writer, noColor bool) *KeyValues {
	return &KeyValues{writer: w, noColor: noColor}
}

// Add appends a pair.
func (kv *KeyValues) Add(key string, value Cell) {
	kv.keys = append(kv.keys, key)
	kv.values = append(kv.values, value)
}

// Render writes the block.
func (kv *KeyValues) Render() {
	width := 0
	for _, k := range kv.keys {
		width = max(width, len(k))
	}
	key := color.New(color.FgCyan)
	red := color.New(color.FgRed)
	if kv.noColor {
		key.DisableColor()
		red.DisableColor()
	}
	for i, k := range kv.keys {
		key.Fprintf(kv.writer, "%-*s ", width+1, k+":")
		if kv.values[i].Failed {
			red.Fprintln(kv.writer, kv.values[i].Text)
		} else {
			fmt.Fprintln(kv.writer, kv.values[i].Text)
		}
	}
}
