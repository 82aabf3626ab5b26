// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local implements the fs.FS interface using local files.
// Metadata is not stored; series metadata is recoverable from the
// file name.
package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/prefetch/speedsplit/storage/fs"
)

// impl is an fs.FS backed by local disk.
type impl struct {
	root string
}

// NewFS constructs an FS that writes to the provided directory,
// creating it if needed.
func NewFS(root string) (fs.FS, error) {
	if err := os.MkdirAll(root, 0777); err != nil {
		return nil, err
	}
	return &impl{root}, nil
}

// NewWriter creates a file below the root. The file appears under its
// final name only once the writer is closed.
func (impl *impl) NewWriter(_ context.Context, name string, _ map[string]string) (fs.Writer, error) {
	path := filepath.Join(impl.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".publish-*")
	if err != nil {
		return nil, err
	}
	return &wrapper{f, path}, nil
}

type wrapper struct {
	*os.File
	dst string
}

// Close closes the file and moves it to its final name.
func (w *wrapper) Close() error {
	if err := w.File.Close(); err != nil {
		os.Remove(w.Name())
		return err
	}
	return os.Rename(w.Name(), w.dst)
}

// CloseWithError closes the file and attempts to unlink it.
func (w *wrapper) CloseWithError(error) error {
	w.File.Close()
	return os.Remove(w.Name())
}
