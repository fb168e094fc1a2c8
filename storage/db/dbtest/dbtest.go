// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build cgo
// +build cgo

package dbtest

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/cs4532/listbench/storage/db"
	_ "github.com/cs4532/listbench/storage/db/sqlite3"
)

var mysqlDSN = flag.String("mysql", "", "run tests against the MySQL server at `dsn` (e.g. root:@tcp(localhost:3306)/) instead of in-memory SQLite")

// createEmptyDB makes a new, empty MySQL database for the test.
func createEmptyDB(t *testing.T) (dsn string, cleanup func()) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}
	name := "listbench_test_" + hex.EncodeToString(buf)

	db, err := sql.Open("mysql", *mysqlDSN)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		db.Close()
		t.Fatal(err)
	}
	t.Logf("Using database %q", name)

	return *mysqlDSN + name, func() {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		db.Close()
	}
}

// NewDB makes a connection to a testing database, either sqlite3 or
// MySQL depending on the -mysql flag. cleanup must be called when
// done with the testing database, instead of calling db.Close()
func NewDB(t *testing.T) (*db.DB, func()) {
	driverName, dataSourceName := "sqlite3", ":memory:"
	var dbCleanup func()
	if *mysqlDSN != "" {
		driverName = "mysql"
		dataSourceName, dbCleanup = createEmptyDB(t)
	}
	d, err := db.OpenSQL(driverName, dataSourceName)
	if err != nil {
		if dbCleanup != nil {
			dbCleanup()
		}
		t.Fatalf("open database: %v", err)
	}

	cleanup := func() {
		if dbCleanup != nil {
			dbCleanup()
		}
		d.Close()
	}
	return d, cleanup
}
