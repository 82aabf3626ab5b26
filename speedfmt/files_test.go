// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedfmt

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFiles(t *testing.T) {
	dir := filepath.Join("testdata", "files")
	f := &Files{Dir: dir}
	got, err := f.Inputs()
	if err != nil {
		t.Fatal(err)
	}
	want := []Input{
		{filepath.Join(dir, "c.txt"), "ammp-baseline"},
		{filepath.Join(dir, "a.txt"), "ammp-delta20"},
		{filepath.Join(dir, "b.txt"), "applu-delta20"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}

	f = &Files{Dir: dir, Pattern: "*.log"}
	if _, err := f.Inputs(); err == nil {
		t.Errorf("want error for headerless notes.log")
	}

	f = &Files{Dir: dir, Pattern: "*.none"}
	got, err = f.Inputs()
	if err != nil || len(got) != 0 {
		t.Errorf("empty match: got %v, %v", got, err)
	}

	f = &Files{Dir: dir, Pattern: "[x"}
	if _, err := f.Inputs(); err == nil {
		t.Errorf("want error for malformed pattern")
	}
}

func TestFilesStableOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"1.txt", "2.txt", "3.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# same\n"), 0666); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0777); err != nil {
		t.Fatal(err)
	}
	got, err := (&Files{Dir: dir}).Inputs()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d inputs, want 3", len(got))
	}
	for i, name := range []string{"1.txt", "2.txt", "3.txt"} {
		if filepath.Base(got[i].Path) != name {
			t.Errorf("input %d: got %s, want %s", i, got[i].Path, name)
		}
	}
}

func TestMeasurements(t *testing.T) {
	in := Input{Path: filepath.Join("testdata", "files", "a.txt"), ID: "ammp-delta20"}
	got, err := Measurements(in, "")
	if err != nil {
		t.Fatal(err)
	}
	want := []Measurement{
		{"ammp_speedup", "1.0342", 3},
		{"ammp_l2_speedup", "0.91", 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}

	if _, err := Measurements(Input{Path: filepath.Join("testdata", "files", "missing.txt")}, ""); err == nil {
		t.Errorf("want error for missing file")
	}
}
