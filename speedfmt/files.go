// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedfmt

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultPattern is the glob that selects result files.
const DefaultPattern = "*.txt"

// An Input is a discovered result file and the test it ran.
type Input struct {
	Path string
	ID   string
}

// Files discovers the result files in a directory.
type Files struct {
	// Dir is the directory to search. If empty, the current
	// directory is used.
	Dir string

	// Pattern is the glob matched against file names in Dir.
	// If empty, DefaultPattern is used.
	Pattern string
}

// Inputs returns every file matching f.Pattern in f.Dir together with
// its identifier, ordered by identifier. Files with equal identifiers
// keep the order the glob returned them in.
func (f *Files) Inputs() ([]Input, error) {
	dir, pattern := f.Dir, f.Pattern
	if dir == "" {
		dir = "."
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	inputs := make([]Input, 0, len(paths))
	for _, path := range paths {
		if info, err := os.Stat(path); err != nil {
			return nil, err
		} else if info.IsDir() {
			continue
		}
		id, err := readIDFile(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, Input{Path: path, ID: id})
	}
	sort.SliceStable(inputs, func(i, j int) bool {
		return inputs[i].ID < inputs[j].ID
	})
	return inputs, nil
}

func readIDFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return ReadID(file, path)
}

// Measurements opens in and returns all of its measurements.
// marker selects measurement lines as in Reader.Marker.
func Measurements(in Input, marker string) ([]Measurement, error) {
	file, err := os.Open(in.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := NewReader(file, in.Path)
	r.Marker = marker
	var ms []Measurement
	for r.Scan() {
		ms = append(ms, r.Measurement())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return ms, nil
}
