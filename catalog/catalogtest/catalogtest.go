// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalogtest opens empty catalogs for tests.
package catalogtest

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"flag"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/divafilter/rfbench/catalog"
	_ "github.com/divafilter/rfbench/catalog/sqlite3"
)

var mysqlDSN = flag.String("mysql", "", "run catalog tests against the MySQL server at this DSN (e.g. root:@tcp(localhost:3306)/) instead of in-memory SQLite")

// createEmptyMySQLDB makes a new, empty database for the test.
func createEmptyMySQLDB(t *testing.T) (dsn string, cleanup func()) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}

	name := "rfbench-test-" + base64.RawURLEncoding.EncodeToString(buf)

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
// MySQL depending on the -mysql flag. The database is closed when the
// test finishes.
func NewDB(t *testing.T) *catalog.DB {
	t.Helper()
	driverName, dataSourceName := "sqlite3", ":memory:"
	var mysqlCleanup func()
	if *mysqlDSN != "" {
		driverName = "mysql"
		dataSourceName, mysqlCleanup = createEmptyMySQLDB(t)
	}
	d, err := catalog.OpenSQL(driverName, dataSourceName)
	if err != nil {
		if mysqlCleanup != nil {
			mysqlCleanup()
		}
		t.Fatalf("open database: %v", err)
	}

	t.Cleanup(func() {
		d.Close()
		if mysqlCleanup != nil {
			mysqlCleanup()
		}
	})
	// Make sure the database really is empty.
	runs, err := d.CountRuns(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if runs != 0 {
		t.Fatalf("found %d row(s) in Runs, want 0", runs)
	}
	return d
}
