// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package speedfmt reads prefetcher simulation result files.
//
// A result file starts with a header line naming the test run, such as
//
//	# ammp-delta20
//
// The identifier is the header with its first two characters dropped.
// Any later line containing the marker "speedup" carries one
// measurement of the form
//
//	<metric>:<value>
//
// All other lines are ignored.
package speedfmt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultMarker is the substring that selects measurement lines.
const DefaultMarker = "speedup"

// A Measurement is one metric value read from a speedup line.
type Measurement struct {
	Metric string
	Value  string

	// Line is the 1-based line number the measurement came from.
	Line int
}

// Float returns the value of m as a number. It reports false for
// values that aren't finite numbers, including NaN and infinities.
func (m Measurement) Float() (float64, bool) {
	v, err := strconv.ParseFloat(m.Value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// A SyntaxError represents a syntax error on a particular line of a
// result file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// ReadID reads the first line of r and returns the test identifier it
// names. fileName is used in error messages only.
func ReadID(r io.Reader, fileName string) (string, error) {
	s := bufio.NewScanner(r)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return "", err
		}
		return "", &SyntaxError{fileName, 1, "missing header line"}
	}
	line := strings.TrimRightFunc(s.Text(), unicode.IsSpace)
	if len(line) < 2 {
		return "", &SyntaxError{fileName, 1, fmt.Sprintf("header line %q too short", line)}
	}
	return line[2:], nil
}

// Prefix returns the part of id before its first "-". Outputs of runs
// sharing a prefix are grouped together.
func Prefix(id string) string {
	if i := strings.IndexByte(id, '-'); i >= 0 {
		return id[:i]
	}
	return id
}

// A Reader reads the measurements of a result file.
//
// Its API is modeled on bufio.Scanner. To construct a new Reader,
// either call NewReader, or call Reset on a zeroed Reader.
type Reader struct {
	// Marker selects measurement lines. If empty, DefaultMarker is
	// used.
	Marker string

	s        *bufio.Scanner
	fileName string
	line     int
	m        Measurement
	err      error
}

// NewReader constructs a reader over r. fileName is used in error
// messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
// It keeps Marker.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.line = 0
	r.m = Measurement{}
	r.err = nil
}

// Scan advances the reader to the next measurement and reports
// whether one was read. The caller should use the Measurement method
// to get it. If Scan reaches EOF, hits an I/O error, or finds a
// malformed speedup line, it returns false, in which case the caller
// should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	marker := r.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	for r.s.Scan() {
		r.line++
		text := r.s.Text()
		if !strings.Contains(text, marker) {
			continue
		}
		m, err := r.parse(text)
		if err != nil {
			r.err = err
			return false
		}
		r.m = m
		return true
	}
	r.err = r.s.Err()
	return false
}

func (r *Reader) parse(text string) (Measurement, error) {
	i := strings.IndexByte(text, ':')
	if i < 0 {
		return Measurement{}, r.newSyntaxError("missing ':' in speedup line")
	}
	metric := strings.TrimSpace(text[:i])
	if metric == "" {
		return Measurement{}, r.newSyntaxError("missing metric name")
	}
	fields := strings.Fields(text[i+1:])
	if len(fields) == 0 {
		return Measurement{}, r.newSyntaxError(fmt.Sprintf("missing value for %s", metric))
	}
	return Measurement{Metric: metric, Value: fields[0], Line: r.line}, nil
}

func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

// Measurement returns the measurement that was just read by Scan.
func (r *Reader) Measurement() Measurement {
	return r.m
}

// Err returns the first error encountered by the Reader. A malformed
// speedup line is reported as a *SyntaxError. At EOF, Err returns nil.
func (r *Reader) Err() error {
	return r.err
}
