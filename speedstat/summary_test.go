// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedstat

import (
	"math"
	"strings"
	"testing"

	"github.com/prefetch/speedsplit/speedseries"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize(t *testing.T) {
	s := Summarize(&speedseries.Series{Name: "aammp", Metric: "a", Prefix: "ammp", Values: []float64{1, 4, 2}})
	if s.Name != "aammp" || s.Metric != "a" || s.Prefix != "ammp" || s.N != 3 {
		t.Errorf("identity fields wrong: %+v", s)
	}
	if s.Min != 1 || s.Max != 4 {
		t.Errorf("bounds = %v, %v, want 1, 4", s.Min, s.Max)
	}
	if !near(s.Mean, 7.0/3) {
		t.Errorf("mean = %v, want %v", s.Mean, 7.0/3)
	}
	if !near(s.GeoMean, 2) {
		t.Errorf("geomean = %v, want 2", s.GeoMean)
	}
	if !near(s.StdDev, math.Sqrt(7.0/3)) {
		t.Errorf("stddev = %v, want %v", s.StdDev, math.Sqrt(7.0/3))
	}
}

func TestSummarizeEdges(t *testing.T) {
	one := Summarize(&speedseries.Series{Values: []float64{1.5}})
	if one.N != 1 || one.StdDev != 0 || one.Mean != 1.5 || !near(one.GeoMean, 1.5) {
		t.Errorf("single value: %+v", one)
	}

	neg := Summarize(&speedseries.Series{Values: []float64{2, 0}})
	if !math.IsNaN(neg.GeoMean) {
		t.Errorf("geomean with zero = %v, want NaN", neg.GeoMean)
	}

	none := Summarize(&speedseries.Series{Raw: []string{"n/a"}})
	if none.N != 0 || !math.IsNaN(none.Mean) || !math.IsNaN(none.Min) || !math.IsNaN(none.StdDev) {
		t.Errorf("no values: %+v", none)
	}
}

func TestTable(t *testing.T) {
	sums := Table([]*speedseries.Series{
		{Name: "b", Values: []float64{1}},
		{Name: "a", Values: []float64{2}},
	})
	if len(sums) != 2 || sums[0].Name != "a" || sums[1].Name != "b" {
		t.Errorf("Table order = %+v", sums)
	}
}

func TestFormatText(t *testing.T) {
	sums := Table([]*speedseries.Series{
		{Name: "metricAtest", Values: []float64{1, 4}},
		{Name: "x", Raw: []string{"n/a"}},
	})
	var buf strings.Builder
	if err := FormatText(&buf, sums); err != nil {
		t.Fatal(err)
	}
	want := `series       n     min     max    mean  geomean  stddev
metricAtest  2  1.0000  4.0000  2.5000   2.0000  2.1213
x            0       -       -       -        -       -
`
	if got := buf.String(); got != want {
		t.Errorf("want:\n%sgot:\n%s", want, got)
	}
}

func TestFormatHTML(t *testing.T) {
	sums := Table([]*speedseries.Series{
		{Name: "fast<ammp>", Values: []float64{1.5}},
		{Name: "slow", Values: []float64{0.5}},
	})
	var buf strings.Builder
	if err := FormatHTML(&buf, "speedups", sums); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"<title>speedups</title>",
		`<tr class="better"><td class="name">fast&lt;ammp&gt;<td>1<td>1.5000`,
		`<tr class="worse"><td class="name">slow`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML output missing %q:\n%s", want, got)
		}
	}
}
