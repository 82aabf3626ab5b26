// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements the fs.FS interface using Google Cloud Storage.
package gcs

import (
	"context"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/prefetch/speedsplit/storage/fs"
)

// FS is an fs.FS backed by Google Cloud Storage. It owns its client;
// call Close when done.
type FS struct {
	client *storage.Client
	bucket *storage.BucketHandle
}

// NewFS constructs an FS that writes to the provided bucket, using
// the application default credentials. It checks that the bucket is
// reachable.
func NewFS(ctx context.Context, bucketName string) (*FS, error) {
	ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadWrite)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, err
	}
	fsys := newFS(client, bucketName)
	if _, err := fsys.bucket.Attrs(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return fsys, nil
}

func newFS(client *storage.Client, bucketName string) *FS {
	return &FS{client: client, bucket: client.Bucket(bucketName)}
}

// Close closes the underlying client.
func (f *FS) Close() error {
	return f.client.Close()
}

// NewWriter creates a new object, assigning metadata as custom
// object metadata.
func (f *FS) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	ctx, cancel := context.WithCancel(ctx)
	w := f.bucket.Object(name).NewWriter(ctx)
	w.ContentType = "text/plain; charset=utf-8"
	w.Metadata = metadata
	return &writer{w, cancel}, nil
}

// writer aborts the upload by canceling its context.
type writer struct {
	*storage.Writer
	cancel context.CancelFunc
}

func (w *writer) Close() error {
	defer w.cancel()
	return w.Writer.Close()
}

func (w *writer) CloseWithError(error) error {
	w.cancel()
	w.Writer.Close()
	return nil
}
