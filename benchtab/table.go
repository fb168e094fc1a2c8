// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab summarizes aggregated benchmark results as tables:
// one table per case, one row per thread count, one column per method,
// with each method's speedup over a baseline method.
package benchtab

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/stats"

	"github.com/cs4532/listbench/benchagg"
	"github.com/cs4532/listbench/benchcase"
)

// A Table is the summary of one case.
type Table struct {
	Case     benchcase.Case
	Methods  []string
	Baseline string

	Rows []*Row

	// Geomean holds the geometric mean of each column over Rows.
	Geomean *Row
}

// A Row holds one cell per method.
type Row struct {
	Label   string
	Threads int // 0 for the geomean row
	Cells   []Cell
}

// A Cell is the result of one method at one thread count.
// Undefined values are NaN.
type Cell struct {
	Mean float64

	// Speedup is the baseline's mean divided by Mean.
	Speedup float64
}

// HasMean reports whether c has a measurement.
func (c Cell) HasMean() bool { return !math.IsNaN(c.Mean) }

// HasSpeedup reports whether c has a speedup.
func (c Cell) HasSpeedup() bool { return !math.IsNaN(c.Speedup) }

// Build returns the tables of every non-empty case of res. Speedups
// are computed against the baseline method; if baseline is "", the
// first of benchagg.Methods is used.
func Build(res *benchagg.Result, baseline string) []*Table {
	if baseline == "" {
		baseline = benchagg.Methods[0]
	}
	methods := res.Methods()
	base := -1
	for i, m := range methods {
		if m == baseline {
			base = i
		}
	}

	var tables []*Table
	for _, c := range res.Cases() {
		tcs := res.ThreadCounts(c.Name)
		if len(tcs) == 0 {
			continue
		}
		t := &Table{Case: c, Methods: methods, Baseline: baseline}
		for _, tc := range tcs {
			row := &Row{Label: strconv.Itoa(tc), Threads: tc, Cells: make([]Cell, len(methods))}
			for i, m := range methods {
				row.Cells[i].Mean = math.NaN()
				if rec, ok := res.Lookup(c.Name, tc, m); ok {
					if mean, ok := rec.Mean(); ok {
						row.Cells[i].Mean = mean
					}
				}
			}
			setSpeedups(row, base)
			t.Rows = append(t.Rows, row)
		}
		t.Geomean = geomeanRow(t.Rows, len(methods))
		tables = append(tables, t)
	}
	return tables
}

func setSpeedups(row *Row, base int) {
	for i := range row.Cells {
		row.Cells[i].Speedup = math.NaN()
		if base < 0 || i == base {
			continue
		}
		b, m := row.Cells[base].Mean, row.Cells[i].Mean
		if b > 0 && m > 0 {
			row.Cells[i].Speedup = b / m
		}
	}
}

// geomeanRow summarizes each column of rows. Only positive values
// take part, since the geometric mean is undefined otherwise.
func geomeanRow(rows []*Row, n int) *Row {
	gm := &Row{Label: "geomean", Cells: make([]Cell, n)}
	for i := 0; i < n; i++ {
		var means, speedups []float64
		for _, row := range rows {
			if c := row.Cells[i]; c.Mean > 0 {
				means = append(means, c.Mean)
			}
			if c := row.Cells[i]; c.Speedup > 0 {
				speedups = append(speedups, c.Speedup)
			}
		}
		gm.Cells[i] = Cell{math.NaN(), math.NaN()}
		if len(means) > 0 {
			gm.Cells[i].Mean = stats.GeoMean(means)
		}
		if len(speedups) > 0 {
			gm.Cells[i].Speedup = stats.GeoMean(speedups)
		}
	}
	return gm
}

// formatMean and formatSpeedup render cells for display. Missing
// values render as "~".
func formatMean(c Cell) string {
	if !c.HasMean() {
		return "~"
	}
	return strconv.FormatFloat(c.Mean, 'f', 2, 64)
}

func formatSpeedup(c Cell) string {
	if !c.HasSpeedup() {
		return "~"
	}
	return strconv.FormatFloat(c.Speedup, 'f', 2, 64) + "x"
}
