// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package speedseries

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prefetch/speedsplit/storage/fs"
)

// Publish copies the series files of d to fsys, naming each one
// prefix followed by the series name.
func (d *Dir) Publish(ctx context.Context, fsys fs.FS, prefix string) error {
	for _, s := range d.series {
		if err := publish(ctx, fsys, prefix+s.Name, d.File(s.Name), s); err != nil {
			return fmt.Errorf("publishing %s: %w", s.Name, err)
		}
	}
	return nil
}

func publish(ctx context.Context, fsys fs.FS, name, path string, s *Series) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := fsys.NewWriter(ctx, name, map[string]string{
		"metric": s.Metric,
		"prefix": s.Prefix,
	})
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		w.CloseWithError(err)
		return err
	}
	return w.Close()
}
