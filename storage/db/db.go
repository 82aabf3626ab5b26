// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores speedup measurements in a SQL database.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"github.com/prefetch/speedsplit/speedfmt"
)

// DB is a high-level interface to a measurement database. It's safe
// for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun         *sql.Stmt
	insertMeasurement *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}}
);
CREATE TABLE IF NOT EXISTS Measurements (
	RunID BIGINT UNSIGNED,
	Seq BIGINT UNSIGNED,
	TestID VARCHAR(255),
	File VARCHAR(1024),
	Line INTEGER,
	Metric VARCHAR(255),
	Series VARCHAR(512),
	Value DOUBLE,
	Raw VARCHAR(255),
	PRIMARY KEY (RunID, Seq),
{{if not .sqlite3}}
	Index (Series(100)),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS MeasurementsSeries ON Measurements(Series);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	q := "INSERT INTO Runs() VALUES ()"
	if driverName == "sqlite3" {
		q = "INSERT INTO Runs DEFAULT VALUES"
	}
	db.insertRun, err = db.sql.Prepare(q)
	if err != nil {
		return err
	}
	db.insertMeasurement, err = db.sql.Prepare("INSERT INTO Measurements(RunID, Seq, TestID, File, Line, Metric, Series, Value, Raw) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// A Run is the set of measurements stored by one invocation. All of a
// run's measurements are written in a single transaction.
type Run struct {
	// ID is the primary key of the run.
	ID int64

	// seq is the index of the next measurement to insert.
	seq int64
	tx  *sql.Tx
	db  *DB
}

// NewRun starts a new run.
func (db *DB) NewRun(ctx context.Context) (*Run, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	res, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Run{ID: id, tx: tx, db: db}, nil
}

// Insert stores measurement m, read from in and appended to series.
// Values that aren't finite numbers are stored with a NULL Value.
func (r *Run) Insert(ctx context.Context, in speedfmt.Input, series string, m speedfmt.Measurement) error {
	var value sql.NullFloat64
	if v, ok := m.Float(); ok {
		value = sql.NullFloat64{Float64: v, Valid: true}
	}
	_, err := r.tx.StmtContext(ctx, r.db.insertMeasurement).ExecContext(ctx,
		r.ID, r.seq, in.ID, in.Path, m.Line, m.Metric, series, value, m.Value)
	if err != nil {
		return err
	}
	r.seq++
	return nil
}

// Commit makes the run's measurements visible.
func (r *Run) Commit() error {
	return r.tx.Commit()
}

// Abort discards the run.
func (r *Run) Abort() error {
	return r.tx.Rollback()
}

// CountRuns returns the number of runs stored in the database.
func (db *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// CountMeasurements returns the number of measurements stored for runID.
func (db *DB) CountMeasurements(ctx context.Context, runID int64) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Measurements WHERE RunID = ?", runID).Scan(&n)
	return n, err
}

// Values returns the raw values stored for series in runID, in
// insertion order.
func (db *DB) Values(ctx context.Context, runID int64, series string) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Raw FROM Measurements WHERE RunID = ? AND Series = ? ORDER BY Seq", runID, series)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var vals []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	if err := db.insertMeasurement.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
