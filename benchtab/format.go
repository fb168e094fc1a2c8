// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/safehtml/template"

	"github.com/cs4532/listbench/internal/texttab"
)

// FormatText writes tables as aligned plain text, separated by blank
// lines.
func FormatText(w io.Writer, tables []*Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, t.Case); err != nil {
			return err
		}
		var tab texttab.Table
		tab.Row().Cell("threads")
		for j, m := range t.Methods {
			tab.AlignedCell(m, texttab.Right)
			if j != t.baseIndex() {
				tab.AlignedCell("vs "+t.Baseline, texttab.Right)
			}
		}
		for _, row := range t.allRows() {
			tab.Row().Cell(row.Label)
			for j, c := range row.Cells {
				tab.AlignedCell(formatMean(c), texttab.Right)
				if j != t.baseIndex() {
					tab.AlignedCell(formatSpeedup(c), texttab.Right)
				}
			}
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}

// allRows returns the rows of t followed by its geomean row.
func (t *Table) allRows() []*Row {
	rows := append([]*Row(nil), t.Rows...)
	return append(rows, t.Geomean)
}

func (t *Table) baseIndex() int {
	for i, m := range t.Methods {
		if m == t.Baseline {
			return i
		}
	}
	return -1
}

// FormatCSV writes one CSV row per measured cell of tables. Numbers
// are written with full precision.
func FormatCSV(w io.Writer, tables []*Table) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"case", "mMember", "mInsert", "mDelete", "threads", "method", "mean", "speedup"})
	for _, t := range tables {
		for _, row := range t.Rows {
			for j, c := range row.Cells {
				if !c.HasMean() {
					continue
				}
				speedup := ""
				if c.HasSpeedup() {
					speedup = strof(c.Speedup)
				}
				cw.Write([]string{
					t.Case.Name,
					strof(t.Case.MMember), strof(t.Case.MInsert), strof(t.Case.MDelete),
					strconv.Itoa(row.Threads),
					t.Methods[j],
					strof(c.Mean),
					speedup,
				})
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

const htmlText = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>listbench</title>
<style>
table.listbench { border-collapse: collapse; margin-bottom: 2em; }
table.listbench td, table.listbench th { padding: 0 0.6em; text-align: right; }
table.listbench td:first-child, table.listbench th:first-child { text-align: left; }
</style>
</head>
<body>
{{- range .}}
<h2>{{.Title}}</h2>
<table class="listbench">
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("listbench").Parse(htmlText))

type htmlTable struct {
	Title  string
	Header []string
	Rows   [][]string
}

// FormatHTML writes tables as an HTML page. All text is escaped by
// the safehtml template engine.
func FormatHTML(w io.Writer, tables []*Table) error {
	var data []htmlTable
	for _, t := range tables {
		ht := htmlTable{Title: t.Case.String(), Header: []string{"threads"}}
		base := t.baseIndex()
		for j, m := range t.Methods {
			ht.Header = append(ht.Header, m)
			if j != base {
				ht.Header = append(ht.Header, "vs "+t.Baseline)
			}
		}
		for _, row := range t.allRows() {
			cells := []string{row.Label}
			for j, c := range row.Cells {
				cells = append(cells, formatMean(c))
				if j != base {
					cells = append(cells, formatSpeedup(c))
				}
			}
			ht.Rows = append(ht.Rows, cells)
		}
		data = append(data, ht)
	}
	return htmlTemplate.Execute(w, data)
}
