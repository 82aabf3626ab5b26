// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	if d := Diff("a\nb\n", "a\nb\n"); d != "" {
		t.Errorf("equal inputs: got diff %q", d)
	}
	d := Diff("a\nb\n", "a\nc\n")
	if !strings.Contains(d, "-b") || !strings.Contains(d, "+c") {
		t.Errorf("diff missing changed lines:\n%s", d)
	}
}

func TestLineDiff(t *testing.T) {
	for _, test := range []struct{ want, got, out string }{
		{"a\nb", "a\nc", "line 2:\n-b\n+c\n"},
		{"a", "a\nextra", "line 2:\n-\n+extra\n"},
		{"x\ny", "x", "line 2:\n-y\n+\n"},
	} {
		if out := lineDiff(test.want, test.got); out != test.out {
			t.Errorf("lineDiff(%q, %q) = %q, want %q", test.want, test.got, out, test.out)
		}
	}
}
