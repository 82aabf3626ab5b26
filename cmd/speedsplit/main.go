// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Speedsplit reshapes prefetcher simulation results into per-metric
// series files for plotting.
//
// Usage:
//
//	speedsplit [flags]
//
// Run with no flags from a directory of result files, speedsplit
// reads every *.txt file, takes the test identifier from each file's
// header line ("# ammp-delta20" names the test "ammp-delta20"), and
// processes the files in identifier order. For every line containing
// "speedup", such as
//
//	ammp_speedup:1.0342
//
// it appends the value to new/<metric><prefix>, where prefix is the
// identifier up to its first "-". Here that is new/ammp_speedupammp.
// The output directory is emptied first, so reruns are idempotent.
// Each identifier is printed as it is processed.
//
// The -summary flag prints statistics for every series. The -png and
// -svg flags write one chart per prefix, and -html writes the summary
// as an HTML page.
//
// The -driver and -dsn flags additionally store every measurement in a
// sqlite3 or mysql database.
//
// The -publish flag copies the series files to a gs://bucket/prefix
// location or to a local directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/prefetch/speedsplit/speedfmt"
	_ "github.com/prefetch/speedsplit/storage/db/sqlite3"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: speedsplit [flags]

speedsplit reads result files from a directory and appends every
speedup measurement to a per-metric series file.

`)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("speedsplit: ")
	log.SetFlags(0)

	var c config
	flag.StringVar(&c.dir, "dir", ".", "read result files from `directory`")
	flag.StringVar(&c.pattern, "pattern", speedfmt.DefaultPattern, "glob selecting result files")
	flag.StringVar(&c.out, "o", "new", "write series files to `directory` (emptied first)")
	flag.StringVar(&c.marker, "marker", speedfmt.DefaultMarker, "substring selecting measurement lines")
	flag.BoolVar(&c.quiet, "q", false, "don't print test identifiers")
	flag.BoolVar(&c.summary, "summary", false, "print statistics for every series")
	flag.StringVar(&c.pngDir, "png", "", "write PNG charts into `directory`")
	flag.StringVar(&c.svgDir, "svg", "", "write SVG charts into `directory`")
	flag.StringVar(&c.htmlFile, "html", "", "write an HTML summary to `file`")
	flag.StringVar(&c.driver, "driver", "", "store measurements using database `driver` (sqlite3 or mysql)")
	flag.StringVar(&c.dsn, "dsn", "", "data source name for -driver")
	flag.StringVar(&c.publish, "publish", "", "copy series files to gs://bucket/prefix or a local directory")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 0 {
		usage()
		os.Exit(2)
	}
	if (c.driver == "") != (c.dsn == "") {
		log.Print("-driver and -dsn must be given together")
		os.Exit(2)
	}
	if err := checkDirs(&c); err != nil {
		log.Print(err)
		os.Exit(2)
	}

	if err := run(context.Background(), &c, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
