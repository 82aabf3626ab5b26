// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedstat

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/prefetch/speedsplit/internal/texttab"
)

// format formats a statistic, using "-" for undefined values.
func format(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// FormatText writes sums as an aligned text table.
func FormatText(w io.Writer, sums []Summary) error {
	var tab texttab.Table
	tab.Row().Cell("series").Cell("n", texttab.Right).
		Cell("min", texttab.Right).Cell("max", texttab.Right).
		Cell("mean", texttab.Right).Cell("geomean", texttab.Right).
		Cell("stddev", texttab.Right)
	for _, s := range sums {
		tab.Row().Cell(s.Name).Cell(fmt.Sprint(s.N), texttab.Right)
		for _, v := range []float64{s.Min, s.Max, s.Mean, s.GeoMean, s.StdDev} {
			tab.Cell(format(v), texttab.Right)
		}
	}
	return tab.Format(w)
}
