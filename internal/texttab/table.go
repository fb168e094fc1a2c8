// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables with aligned columns.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table accumulates rows of cells and formats them with every column
// as wide as its widest cell.
//
// Row and Cell return the Table so callers can chain them.
type Table struct {
	rows [][]cell
}

type cell struct {
	value string
	align Align
}

// Align is the alignment of a cell within its column.
type Align int

const (
	Left Align = iota
	Right
)

func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == Right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a left-aligned cell to the current row.
func (t *Table) Cell(value string) *Table {
	return t.AlignedCell(value, Left)
}

// AlignedCell adds a cell with alignment a to the current row.
func (t *Table) AlignedCell(value string, a Align) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], cell{value, a})
	return t
}

// Format writes t to w. Columns are separated by two spaces and no
// line has trailing spaces.
func (t *Table) Format(w io.Writer) error {
	var widths []int
	for _, row := range t.rows {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		for i, c := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(c.align.pad(c.value, widths[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
