// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff describes differences between expected and actual
// test output.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Diff returns a human-readable description of the differences between
// want and got, or "" if they are equal. It uses "diff -u" when the
// command is available and a line-by-line comparison otherwise.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	if _, err := exec.LookPath("diff"); err != nil {
		return lineDiff(want, got)
	}
	f1, err := writeTemp("want", want)
	if err != nil {
		return err.Error()
	}
	defer os.Remove(f1)
	f2, err := writeTemp("got", got)
	if err != nil {
		return err.Error()
	}
	defer os.Remove(f2)

	data, err := exec.Command("diff", "-u", f1, f2).CombinedOutput()
	if len(data) > 0 {
		// diff exits with a non-zero status when the files don't match.
		// Ignore that failure as long as we get output.
		err = nil
	}
	if err != nil {
		data = append(data, err.Error()...)
	}
	return string(data)
}

func writeTemp(name, content string) (string, error) {
	f, err := os.CreateTemp("", "speedsplit-"+name+"-")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// lineDiff reports the first line at which want and got differ.
func lineDiff(want, got string) string {
	wl := strings.Split(want, "\n")
	gl := strings.Split(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g || i >= len(wl) || i >= len(gl) {
			return fmt.Sprintf("line %d:\n-%s\n+%s\n", i+1, w, g)
		}
	}
	return fmt.Sprintf("want %q\ngot  %q\n", want, got)
}
