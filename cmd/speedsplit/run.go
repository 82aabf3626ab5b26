// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prefetch/speedsplit/speedfmt"
	"github.com/prefetch/speedsplit/speedseries"
	"github.com/prefetch/speedsplit/speedstat"
	"github.com/prefetch/speedsplit/storage/db"
	"github.com/prefetch/speedsplit/storage/fs"
	"github.com/prefetch/speedsplit/storage/fs/gcs"
	"github.com/prefetch/speedsplit/storage/fs/local"
)

type config struct {
	dir, pattern, out, marker string

	quiet, summary bool

	pngDir, svgDir, htmlFile string

	driver, dsn string
	publish     string
}

// checkDirs rejects an output directory that is, or contains, the
// input directory, since resetting it would delete the inputs.
func checkDirs(c *config) error {
	out, err := filepath.Abs(c.out)
	if err != nil {
		return err
	}
	in, err := filepath.Abs(c.dir)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(out, in)
	if err != nil {
		// Different volumes.
		return nil
	}
	outside := rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
	if !outside {
		return fmt.Errorf("output directory %s contains input directory %s", c.out, c.dir)
	}
	return nil
}

func run(ctx context.Context, c *config, stdout io.Writer) error {
	if err := checkDirs(c); err != nil {
		return err
	}
	out, err := speedseries.Open(c.out)
	if err != nil {
		return err
	}

	files := speedfmt.Files{Dir: c.dir, Pattern: c.pattern}
	inputs, err := files.Inputs()
	if err != nil {
		return err
	}

	var dbRun *db.Run
	if c.driver != "" {
		d, err := db.OpenSQL(c.driver, c.dsn)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer d.Close()
		if dbRun, err = d.NewRun(ctx); err != nil {
			return err
		}
		defer func() {
			if dbRun != nil {
				dbRun.Abort()
			}
		}()
	}

	for _, in := range inputs {
		if !c.quiet {
			fmt.Fprintln(stdout, in.ID)
		}
		ms, err := speedfmt.Measurements(in, c.marker)
		if err != nil {
			return err
		}
		for _, m := range ms {
			name, err := out.Add(in, m)
			if err != nil {
				return err
			}
			if dbRun != nil {
				if err := dbRun.Insert(ctx, in, name, m); err != nil {
					return fmt.Errorf("storing %s:%d: %w", in.Path, m.Line, err)
				}
			}
		}
	}

	if dbRun != nil {
		err := dbRun.Commit()
		dbRun = nil
		if err != nil {
			return err
		}
	}

	series := out.Series()
	if c.summary || c.htmlFile != "" {
		sums := speedstat.Table(series)
		if c.summary {
			if err := speedstat.FormatText(stdout, sums); err != nil {
				return err
			}
		}
		if c.htmlFile != "" {
			if err := writeHTML(c.htmlFile, sums); err != nil {
				return err
			}
		}
	}

	if _, err := speedseries.Chart(series, speedseries.ChartOptions{PNGDir: c.pngDir, SVGDir: c.svgDir}); err != nil {
		return err
	}

	if c.publish != "" {
		fsys, prefix, err := openPublish(ctx, c.publish)
		if err != nil {
			return err
		}
		if cl, ok := fsys.(io.Closer); ok {
			defer cl.Close()
		}
		if err := out.Publish(ctx, fsys, prefix); err != nil {
			return err
		}
	}
	return nil
}

func writeHTML(file string, sums []speedstat.Summary) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := speedstat.FormatHTML(f, "speedups", sums); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// openPublish returns the FS and object name prefix for target, which
// is either gs://bucket/prefix or a local directory.
func openPublish(ctx context.Context, target string) (fs.FS, string, error) {
	if rest, ok := strings.CutPrefix(target, "gs://"); ok {
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return nil, "", fmt.Errorf("invalid -publish target %q: missing bucket", target)
		}
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		fsys, err := gcs.NewFS(ctx, bucket)
		if err != nil {
			return nil, "", fmt.Errorf("opening bucket %s: %w", bucket, err)
		}
		return fsys, prefix, nil
	}
	fsys, err := local.NewFS(filepath.Clean(target))
	return fsys, "", err
}
