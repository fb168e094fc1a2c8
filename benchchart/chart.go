// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart draws grouped bar charts of aggregated benchmark
// results: mean time against thread count, one bar per method.
package benchchart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/cs4532/listbench/benchagg"
	"github.com/cs4532/listbench/benchcase"
)

// Options selects where charts are written. A chart is written in
// every format whose directory is set.
type Options struct {
	PNGDir, SVGDir, PDFDir string

	// Width and Height default to 16cm by 10cm.
	Width, Height vg.Length

	// DPI of PNG output. Defaults to 150.
	DPI int
}

const barWidth = vg.Length(18)

// Chart writes one chart per case of res and returns the names of the
// files it wrote. A case without records gets a chart with no bars.
func Chart(res *benchagg.Result, opts Options) ([]string, error) {
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 16 * vg.Centimeter
	}
	if height == 0 {
		height = 10 * vg.Centimeter
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = 150
	}

	for _, dir := range []string{opts.PNGDir, opts.SVGDir, opts.PDFDir} {
		if dir != "" {
			if err := os.MkdirAll(dir, 0777); err != nil {
				return nil, err
			}
		}
	}

	var written []string
	for _, c := range res.Cases() {
		pl, err := Plot(res, c)
		if err != nil {
			return written, fmt.Errorf("%s: %w", c.Name, err)
		}
		filename := strings.ReplaceAll(c.Name, "/", "-")

		do := func(dir, sfx string, can vg.CanvasWriterTo) error {
			file := filepath.Join(dir, filename) + "." + sfx
			f, err := os.Create(file)
			if err != nil {
				return err
			}
			pl.Draw(draw.New(can))
			if _, err := can.WriteTo(f); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", file, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			written = append(written, file)
			return nil
		}

		if opts.PNGDir != "" {
			png := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
				vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
			if err := do(opts.PNGDir, "png", png); err != nil {
				return written, err
			}
		}
		if opts.SVGDir != "" {
			if err := do(opts.SVGDir, "svg", vgsvg.New(width, height)); err != nil {
				return written, err
			}
		}
		if opts.PDFDir != "" {
			if err := do(opts.PDFDir, "pdf", vgpdf.New(width, height)); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// Plot builds the chart of case c. Thread counts run along the X axis
// in ascending order; each has one bar per method of res, and a
// method with no record for a thread count gets a zero-height bar.
func Plot(res *benchagg.Result, c benchcase.Case) (*plot.Plot, error) {
	tcs := res.ThreadCounts(c.Name)
	methods := res.Methods()

	pl := plot.New()
	pl.Title.Text = "Performance vs Thread Count\n" + c.String()
	pl.X.Label.Text = "Thread Count"
	pl.Y.Label.Text = "Mean Time (µs)"
	pl.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	colors := palette(len(methods))
	n := len(methods)
	for i, m := range methods {
		values := make(plotter.Values, len(tcs))
		for j, tc := range tcs {
			values[j] = Mean(res, c.Name, tc, m)
		}
		if len(values) == 0 {
			// NewBarChart rejects empty data; keep the legend entry.
			pl.Legend.Add(m, &plotter.BarChart{Color: colors[i%len(colors)]})
			continue
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = colors[i%len(colors)]
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * barWidth
		pl.Add(bars)
		pl.Legend.Add(m, bars)
	}

	labels := make([]string, len(tcs))
	for i, tc := range tcs {
		labels[i] = strconv.Itoa(tc)
	}
	if len(labels) > 0 {
		pl.NominalX(labels...)
	}
	pl.Y.Min = 0
	return pl, nil
}

// Mean returns the mean time of a case, thread count and method, or 0
// if there is no such record or its mean is not a finite number.
func Mean(res *benchagg.Result, name string, threads int, method string) float64 {
	rec, ok := res.Lookup(name, threads, method)
	if !ok {
		return 0
	}
	mean, ok := rec.Mean()
	if !ok || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return 0
	}
	return mean
}

// palette returns n distinct colors. The Set2 qualitative palette has
// between 3 and 8 colors; callers cycle through it for larger n.
func palette(n int) []color.Color {
	if n < 3 {
		n = 3
	}
	if n > 8 {
		n = 8
	}
	p, err := brewer.GetPalette(brewer.TypeQualitative, "Set2", n)
	if err != nil {
		// Set2 is defined for every size in range.
		panic(err)
	}
	return p.Colors()
}
