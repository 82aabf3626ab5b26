// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens scratch speedup databases for tests.
//
// By default each test gets its own in-memory SQLite database. With
// -speedsplit.cloudsql=project:region:instance, tests run against a
// throwaway MySQL database created on that Cloud SQL instance and
// dropped afterwards.
package dbtest

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"testing"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	"github.com/prefetch/speedsplit/storage/db"
	_ "github.com/prefetch/speedsplit/storage/db/sqlite3"
)

var instance = flag.String("speedsplit.cloudsql", "", "run database tests on this Cloud SQL `instance` instead of SQLite")

// scratchMySQL creates a uniquely named database on the Cloud SQL
// instance and returns its DSN and a func that drops it.
func scratchMySQL(t *testing.T) (string, func()) {
	var suffix [4]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		t.Fatal(err)
	}
	schema := "speedups_" + hex.EncodeToString(suffix[:])
	server := fmt.Sprintf("root:@cloudsql(%s)/", *instance)

	admin, err := sql.Open("mysql", server)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := admin.Exec("CREATE DATABASE " + schema); err != nil {
		admin.Close()
		t.Fatalf("creating %s on %s: %v", schema, *instance, err)
	}
	t.Logf("speedup tables in %s on %s", schema, *instance)

	drop := func() {
		if _, err := admin.Exec("DROP DATABASE " + schema); err != nil {
			t.Errorf("dropping %s: %v", schema, err)
		}
		admin.Close()
	}
	return server + schema, drop
}

// NewDB opens an empty speedup database. Call the returned func,
// not Close, when the test is done with it.
func NewDB(t *testing.T) (*db.DB, func()) {
	t.Helper()
	driver, dsn, drop := "sqlite3", ":memory:", func() {}
	if *instance != "" {
		driver = "mysql"
		dsn, drop = scratchMySQL(t)
	}

	d, err := db.OpenSQL(driver, dsn)
	if err != nil {
		drop()
		t.Fatalf("opening %s database: %v", driver, err)
	}
	done := func() {
		d.Close()
		drop()
	}

	if n, err := d.CountRuns(context.Background()); err != nil || n != 0 {
		done()
		t.Fatalf("new %s database has %d runs (%v), want 0", driver, n, err)
	}
	return d, done
}
