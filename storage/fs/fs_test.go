// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fs

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestMemFS(t *testing.T) {
	ctx := context.Background()
	fs := NewMemFS()

	meta := map[string]string{"metric": "a"}
	w, err := fs.NewWriter(ctx, "b", meta)
	if err != nil {
		t.Fatal(err)
	}
	meta["metric"] = "changed"
	w.Write([]byte("1\n"))
	if got := fs.Files(); len(got) != 0 {
		t.Errorf("files before Close = %v", got)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("x")); err == nil {
		t.Errorf("Write after Close succeeded")
	}

	w, _ = fs.NewWriter(ctx, "a", nil)
	w.CloseWithError(errors.New("abort"))

	if got, want := fs.Files(), []string{"b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}
	data, gotMeta, ok := fs.Content("b")
	if !ok || string(data) != "1\n" || gotMeta["metric"] != "a" {
		t.Errorf("Content(b) = %q, %v, %v", data, gotMeta, ok)
	}
	if _, _, ok := fs.Content("a"); ok {
		t.Errorf("aborted file stored")
	}
}
