// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedseries

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// ChartOptions controls which charts Chart writes.
type ChartOptions struct {
	// PNGDir and SVGDir are the directories to write charts into.
	// An empty directory disables that format.
	PNGDir, SVGDir string

	// Width and Height are the chart size. Zero means 16x9 cm.
	Width, Height vg.Length

	// DPI is the PNG resolution. Zero means 150.
	DPI int
}

// Chart draws one chart per series prefix, with one line per metric,
// and returns the paths of the files it wrote.
func Chart(series []*Series, opts ChartOptions) ([]string, error) {
	if opts.PNGDir == "" && opts.SVGDir == "" {
		return nil, nil
	}
	width, height := opts.Width, opts.Height
	if width == 0 {
		width = 16 * vg.Centimeter
	}
	if height == 0 {
		height = 9 * vg.Centimeter
	}
	dpi := opts.DPI
	if dpi == 0 {
		dpi = 150
	}
	for _, dir := range []string{opts.PNGDir, opts.SVGDir} {
		if dir != "" {
			if err := os.MkdirAll(dir, 0777); err != nil {
				return nil, err
			}
		}
	}

	var written []string
	groups := byPrefix(series)
	for _, g := range groups {
		pl, err := newPlot(g.prefix, g.series)
		if err != nil {
			return written, err
		}
		if pl == nil {
			continue
		}
		filename := chartName(g.prefix)

		do := func(dir, sfx string, can vg.CanvasWriterTo) error {
			file := filepath.Join(dir, filename) + "." + sfx
			pl.Draw(draw.New(can))
			if err := writeTo(file, can); err != nil {
				return err
			}
			written = append(written, file)
			return nil
		}
		if opts.PNGDir != "" {
			can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
				vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
			if err := do(opts.PNGDir, "png", can); err != nil {
				return written, err
			}
		}
		if opts.SVGDir != "" {
			if err := do(opts.SVGDir, "svg", vgsvg.New(width, height)); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

type group struct {
	prefix string
	series []*Series
}

// byPrefix groups series by prefix. Groups are sorted by prefix;
// series within a group keep their order.
func byPrefix(series []*Series) []group {
	idx := make(map[string]int)
	var groups []group
	for _, s := range series {
		i, ok := idx[s.Prefix]
		if !ok {
			i = len(groups)
			idx[s.Prefix] = i
			groups = append(groups, group{prefix: s.Prefix})
		}
		groups[i].series = append(groups[i].series, s)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].prefix < groups[j].prefix
	})
	return groups
}

// chartName returns the chart file name for prefix. Prefixes come
// from identifiers before their first "-", so "-" never occurs in one.
func chartName(prefix string) string {
	if prefix == "" {
		return "-"
	}
	return prefix
}

// newPlot returns nil if none of series has numeric values.
func newPlot(prefix string, series []*Series) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = chartName(prefix)
	pl.X.Label.Text = "run"
	pl.Y.Label.Text = "speedup"
	pl.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	// Values above the baseline are speedups.
	baseline := plotter.NewFunction(func(float64) float64 { return 1 })
	baseline.Color = color.Gray{0x80}
	baseline.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	pl.Add(baseline)

	lines := 0
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Values))
		for i, v := range s.Values {
			xys[i].X = float64(i + 1)
			xys[i].Y = v
		}
		l, pts, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", s.Name, err)
		}
		l.Color = plotutil.Color(lines)
		pts.Color = plotutil.Color(lines)
		pts.Shape = plotutil.Shape(lines)
		pl.Add(l, pts)
		pl.Legend.Add(s.Metric, l, pts)
		lines++
	}
	if lines == 0 {
		return nil, nil
	}

	// Force the baseline onto the chart.
	if pl.Y.Min > 1 {
		pl.Y.Min = 1
	}
	if pl.Y.Max < 1 {
		pl.Y.Max = 1
	}
	return pl, nil
}

func writeTo(file string, w io.WriterTo) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
