// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db archives aggregated benchmark results in a SQL database.
//
// Each saved result is a run, identified by a date-based ID of the
// form "YYYYMMDD.N". A run stores its case table and every record of
// every dataset, so that loading it reproduces the saved result.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/cs4532/listbench/benchagg"
	"github.com/cs4532/listbench/benchcase"
	"github.com/cs4532/listbench/benchlog"
)

// DB is a high-level interface to a database of runs. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertCase   *sql.Stmt
	insertRecord *sql.Stmt
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
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to configure its connection pool.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Day VARCHAR(8) NOT NULL,
	Num BIGINT NOT NULL,
	Created VARCHAR(64) NOT NULL,
	UNIQUE (Day, Num)
);
CREATE TABLE IF NOT EXISTS Cases (
	RunID BIGINT UNSIGNED,
	CaseIndex BIGINT UNSIGNED,
	Name VARCHAR(255),
	MMember DOUBLE,
	MInsert DOUBLE,
	MDelete DOUBLE,
	PRIMARY KEY (RunID, CaseIndex),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Records (
	RunID BIGINT UNSIGNED,
	RecordID BIGINT UNSIGNED,
	CaseName VARCHAR(255),
	Method VARCHAR(255),
	ThreadCount BIGINT,
	Mean DOUBLE,
	Content BLOB,
	PRIMARY KEY (RunID, RecordID),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
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
func (db *DB) prepareStatements() error {
	var err error
	db.insertCase, err = db.sql.Prepare("INSERT INTO Cases(RunID, CaseIndex, Name, MMember, MInsert, MDelete) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertRecord, err = db.sql.Prepare("INSERT INTO Records(RunID, RecordID, CaseName, Method, ThreadCount, Mean, Content) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// A Run is a result being written to the database. All of its rows
// are written in a single transaction, so a run is either stored
// completely or not at all.
type Run struct {
	// ID is the date-based public identifier of the run.
	ID string

	// id is the numeric value used as the primary key.
	id int64
	// recordid and caseindex are the indexes of the next rows to
	// insert.
	recordid  int64
	caseindex int64

	tx *sql.Tx
	db *DB
}

// NewRun starts a new run. The caller must call Commit or Abort.
func (db *DB) NewRun(ctx context.Context) (*Run, error) {
	t := now().UTC()
	day := t.Format("20060102")

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	var num int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(Num), 0) FROM Runs WHERE Day = ?", day).Scan(&num); err != nil {
		tx.Rollback()
		return nil, err
	}
	num++
	res, err := tx.ExecContext(ctx, "INSERT INTO Runs(Day, Num, Created) VALUES (?, ?, ?)", day, num, t.Format(time.RFC3339))
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Run{
		ID: fmt.Sprintf("%s.%d", day, num),
		id: id,
		tx: tx,
		db: db,
	}, nil
}

// InsertCase records c as the next case of the run.
func (r *Run) InsertCase(ctx context.Context, c benchcase.Case) error {
	if _, err := r.tx.StmtContext(ctx, r.db.insertCase).ExecContext(ctx, r.id, r.caseindex, c.Name, c.MMember, c.MInsert, c.MDelete); err != nil {
		return err
	}
	r.caseindex++
	return nil
}

// InsertRecord stores rec as a member of the named case's dataset.
func (r *Run) InsertRecord(ctx context.Context, caseName string, rec *benchlog.Record) error {
	var threads, mean interface{}
	if tc, ok := rec.ThreadCount(); ok {
		threads = tc
	}
	if m, ok := rec.Mean(); ok {
		mean = m
	}
	content := benchlog.Line(rec)
	if _, err := r.tx.StmtContext(ctx, r.db.insertRecord).ExecContext(ctx, r.id, r.recordid, caseName, rec.Method, threads, mean, []byte(content)); err != nil {
		return err
	}
	r.recordid++
	return nil
}

// Commit finishes the run and makes it visible.
func (r *Run) Commit() error {
	return r.tx.Commit()
}

// Abort discards the run.
func (r *Run) Abort() error {
	return r.tx.Rollback()
}

// SaveResult stores res as a new run and returns its ID.
func (db *DB) SaveResult(ctx context.Context, res *benchagg.Result) (id string, err error) {
	r, err := db.NewRun(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			r.Abort()
		} else {
			err = r.Commit()
		}
	}()
	for _, c := range res.Cases() {
		if err := r.InsertCase(ctx, c); err != nil {
			return "", err
		}
	}
	for _, c := range res.Cases() {
		for _, rec := range res.Dataset(c.Name) {
			if err := r.InsertRecord(ctx, c.Name, rec); err != nil {
				return "", err
			}
		}
	}
	return r.ID, nil
}

// ErrNotFound is returned by LoadResult for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// LoadResult returns the result stored as run id.
func (db *DB) LoadResult(ctx context.Context, id string) (*benchagg.Result, error) {
	day, num, err := splitID(id)
	if err != nil {
		return nil, err
	}
	var runID int64
	err = db.sql.QueryRowContext(ctx, "SELECT RunID FROM Runs WHERE Day = ? AND Num = ?", day, num).Scan(&runID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	} else if err != nil {
		return nil, err
	}

	cases, err := db.loadCases(ctx, runID)
	if err != nil {
		return nil, err
	}

	rows, err := db.sql.QueryContext(ctx, "SELECT RecordID, CaseName, Method, Content FROM Records WHERE RunID = ? ORDER BY RecordID", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	m := make(storedMatcher)
	var recs []*benchlog.Record
	for rows.Next() {
		var recordID int64
		var caseName, method string
		var content []byte
		if err := rows.Scan(&recordID, &caseName, &method, &content); err != nil {
			return nil, err
		}
		rec := benchlog.ParseLine(string(content))
		if rec == nil {
			rec = new(benchlog.Record)
		}
		rec.Method = method
		rec.SetPos("", 0, int(recordID)+1)
		for _, c := range cases {
			if c.Name == caseName {
				m[rec] = c
				break
			}
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	agg := benchagg.NewAggregator(cases, m)
	for _, rec := range recs {
		agg.Add(rec)
	}
	return agg.Result(), nil
}

func (db *DB) loadCases(ctx context.Context, runID int64) ([]benchcase.Case, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Name, MMember, MInsert, MDelete FROM Cases WHERE RunID = ? ORDER BY CaseIndex", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cases []benchcase.Case
	for rows.Next() {
		var c benchcase.Case
		if err := rows.Scan(&c.Name, &c.MMember, &c.MInsert, &c.MDelete); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// storedMatcher assigns loaded records to the case they were saved
// under.
type storedMatcher map[*benchlog.Record]benchcase.Case

func (m storedMatcher) Match(rec *benchlog.Record) (benchcase.Case, bool) {
	c, ok := m[rec]
	return c, ok
}

// splitID parses a run ID of the form "YYYYMMDD.N".
func splitID(id string) (day string, num int64, err error) {
	i := strings.Index(id, ".")
	if i != 8 {
		return "", 0, fmt.Errorf("malformed run ID %q", id)
	}
	num, err = strconv.ParseInt(id[i+1:], 10, 64)
	if err != nil || num <= 0 {
		return "", 0, fmt.Errorf("malformed run ID %q", id)
	}
	return id[:i], num, nil
}

// ListRuns returns the IDs of all runs, oldest first.
func (db *DB) ListRuns(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Day, Num FROM Runs ORDER BY RunID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var day string
		var num int64
		if err := rows.Scan(&day, &num); err != nil {
			return nil, err
		}
		ids = append(ids, fmt.Sprintf("%s.%d", day, num))
	}
	return ids, rows.Err()
}

// CountRuns returns the number of runs in the database.
func (db *DB) CountRuns() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertCase.Close(); err != nil {
		return err
	}
	if err := db.insertRecord.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
