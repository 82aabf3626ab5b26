// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speedseries writes speedup measurements into per-metric
// series files.
//
// Each series file holds one value per line and is named by the
// metric concatenated with the prefix of the test identifier, so all
// runs of one benchmark end up in one file per metric, ready for
// plotting tools such as gnuplot.
package speedseries

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prefetch/speedsplit/speedfmt"
)

// A Series is the sequence of values appended to one series file
// during a run.
type Series struct {
	Name   string // file name within the output directory
	Metric string
	Prefix string

	// Raw holds every value as written, in processing order.
	Raw []string
	// Values holds the values of Raw that are finite numbers.
	Values []float64
}

// A Dir is an output directory of series files.
type Dir struct {
	Path string

	series []*Series
	index  map[string]*Series
}

// Open returns the output directory at path after resetting it.
func Open(path string) (*Dir, error) {
	d := &Dir{Path: path}
	if err := d.Reset(); err != nil {
		return nil, err
	}
	return d, nil
}

// Reset creates the directory if it doesn't exist and removes
// everything in it, so series from an earlier run never leak into
// this one.
func (d *Dir) Reset() error {
	if err := os.MkdirAll(d.Path, 0777); err != nil {
		return err
	}
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(d.Path, e.Name())); err != nil {
			return err
		}
	}
	d.series = nil
	d.index = nil
	return nil
}

// Name returns the series file name for metric in runs sharing prefix.
func Name(metric, prefix string) (string, error) {
	name := metric + prefix
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid series name %q", name)
	}
	return name, nil
}

// Append appends value and a newline to the series file name,
// creating it if needed. The file is closed before Append returns.
func (d *Dir) Append(name, value string) error {
	f, err := os.OpenFile(filepath.Join(d.Path, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(value + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Add appends the value of m, read from in, to its series file and
// returns the series name.
func (d *Dir) Add(in speedfmt.Input, m speedfmt.Measurement) (string, error) {
	prefix := speedfmt.Prefix(in.ID)
	name, err := Name(m.Metric, prefix)
	if err != nil {
		return "", fmt.Errorf("%s:%d: %w", in.Path, m.Line, err)
	}
	if err := d.Append(name, m.Value); err != nil {
		return "", err
	}

	s := d.index[name]
	if s == nil {
		if d.index == nil {
			d.index = make(map[string]*Series)
		}
		s = &Series{Name: name, Metric: m.Metric, Prefix: prefix}
		d.index[name] = s
		d.series = append(d.series, s)
	}
	s.Raw = append(s.Raw, m.Value)
	if v, ok := m.Float(); ok {
		s.Values = append(s.Values, v)
	}
	return name, nil
}

// Series returns the series written since the last Reset, in the
// order they were first written.
func (d *Dir) Series() []*Series {
	return d.series
}

// File returns the path of the series file name.
func (d *Dir) File(name string) string {
	return filepath.Join(d.Path, name)
}
