// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speedstat summarizes speedup series.
package speedstat

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/prefetch/speedsplit/speedseries"
)

// A Summary holds the statistics of one series. With no numeric
// values, N is 0 and every statistic is NaN.
type Summary struct {
	Name   string
	Metric string
	Prefix string

	N        int
	Min, Max float64
	Mean     float64
	// GeoMean is NaN if any value is zero or negative.
	GeoMean float64
	StdDev  float64
}

// Summarize computes the statistics of s.
func Summarize(s *speedseries.Series) Summary {
	sum := Summary{
		Name:   s.Name,
		Metric: s.Metric,
		Prefix: s.Prefix,
		N:      len(s.Values),
	}
	if sum.N == 0 {
		nan := math.NaN()
		sum.Min, sum.Max, sum.Mean, sum.GeoMean, sum.StdDev = nan, nan, nan, nan, nan
		return sum
	}
	sample := stats.Sample{Xs: s.Values}
	sum.Min, sum.Max = sample.Bounds()
	sum.Mean = sample.Mean()
	sum.GeoMean = math.NaN()
	if sum.Min > 0 {
		sum.GeoMean = sample.GeoMean()
	}
	if sum.N > 1 {
		sum.StdDev = sample.StdDev()
	}
	return sum
}

// Table summarizes every series, ordered by series name.
func Table(series []*speedseries.Series) []Summary {
	sums := make([]Summary, len(series))
	for i, s := range series {
		sums[i] = Summarize(s)
	}
	sort.SliceStable(sums, func(i, j int) bool {
		return sums[i].Name < sums[j].Name
	})
	return sums
}
