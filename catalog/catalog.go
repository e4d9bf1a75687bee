// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog stores benchmark runs in a SQL database and serves
// them back as result records.
package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/divafilter/rfbench/result"
)

// DB is a catalog of benchmark runs. It's safe for concurrent use by
// multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun     *sql.Stmt
	insertFile    *sql.Stmt
	insertMeasure *sql.Stmt
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
// This is used by the sqlite3 package to configure its connections.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID VARCHAR(36) PRIMARY KEY,
	Timestamp VARCHAR(64) NOT NULL,
	Created BIGINT NOT NULL,
	Complete BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS Files (
	RunID VARCHAR(36),
	FileID BIGINT UNSIGNED,
	Category VARCHAR(64) NOT NULL,
	Name VARCHAR(255) NOT NULL,
	Records BIGINT UNSIGNED NOT NULL,
	PRIMARY KEY (RunID, FileID),
{{if not .sqlite3}}
	Index (RunID, Category, Name),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Measures (
	RunID VARCHAR(36),
	FileID BIGINT UNSIGNED,
	RecordID BIGINT UNSIGNED,
	Name VARCHAR(255),
	Value DOUBLE,
	PRIMARY KEY (RunID, FileID, RecordID, Name),
	FOREIGN KEY (RunID, FileID) REFERENCES Files(RunID, FileID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS FilesCategoryName ON Files(RunID, Category, Name);
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
			return errors.Wrap(err, "create table")
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(RunID, Timestamp, Created, Complete) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertFile, err = db.sql.Prepare("INSERT INTO Files(RunID, FileID, Category, Name, Records) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertMeasure, err = db.sql.Prepare("INSERT INTO Measures(RunID, FileID, RecordID, Name, Value) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is overridden by tests.
var now = time.Now

// A Run is a set of result files that share a run ID, normally one
// timestamped result directory.
type Run struct {
	// ID identifies the run in the catalog.
	ID string
	// Timestamp names the result directory the run was read from.
	Timestamp string

	// fileid is the index of the next file to insert.
	fileid int64
	// db is the underlying database that this run is going to.
	db *DB
}

// NewRun returns a run for storing new files. The run is incomplete
// until Commit is called.
func (db *DB) NewRun(ctx context.Context, timestamp string) (*Run, error) {
	id := uuid.NewString()
	if _, err := db.insertRun.ExecContext(ctx, id, timestamp, now().Unix(), false); err != nil {
		return nil, errors.Wrap(err, "inserting run")
	}
	return &Run{ID: id, Timestamp: timestamp, db: db}, nil
}

// InsertFile stores the records of one result file.
func (r *Run) InsertFile(ctx context.Context, cat result.Category, key result.Key, recs []result.Record) (err error) {
	tx, err := r.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.StmtContext(ctx, r.db.insertFile).ExecContext(ctx, r.ID, r.fileid, string(cat), key.FileName(), len(recs)); err != nil {
		return errors.Wrapf(err, "inserting %s/%s", cat.Dir(), key.FileName())
	}
	measure := tx.StmtContext(ctx, r.db.insertMeasure)
	for i, rec := range recs {
		for _, name := range rec.Names() {
			if _, err = measure.ExecContext(ctx, r.ID, r.fileid, i, name, rec.Get(name)); err != nil {
				return errors.Wrapf(err, "inserting %s/%s", cat.Dir(), key.FileName())
			}
		}
	}
	r.fileid++
	return nil
}

// Commit marks r as complete. Incomplete runs are listed but are not
// chosen by Latest.
func (r *Run) Commit(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "UPDATE Runs SET Complete = ? WHERE RunID = ?", true, r.ID)
	return err
}

// RunInfo describes a stored run.
type RunInfo struct {
	ID        string
	Timestamp string
	Created   time.Time
	Complete  bool
	Files     int
}

// ListRuns returns every run, oldest first.
func (db *DB) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := db.sql.QueryContext(ctx, `
SELECT r.RunID, r.Timestamp, r.Created, r.Complete, COUNT(f.FileID)
FROM Runs r LEFT JOIN Files f ON f.RunID = r.RunID
GROUP BY r.RunID, r.Timestamp, r.Created, r.Complete
ORDER BY r.Created, r.Timestamp, r.RunID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []RunInfo
	for rows.Next() {
		var ri RunInfo
		var created int64
		if err := rows.Scan(&ri.ID, &ri.Timestamp, &created, &ri.Complete, &ri.Files); err != nil {
			return nil, err
		}
		ri.Created = time.Unix(created, 0)
		runs = append(runs, ri)
	}
	return runs, rows.Err()
}

// ErrNoRun is returned by Latest when there is no complete run.
var ErrNoRun = errors.New("no complete run in catalog")

// Latest returns the ID of the most recent complete run, or of the
// most recent complete run of timestamp if it is not empty.
func (db *DB) Latest(ctx context.Context, timestamp string) (string, error) {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		return "", err
	}
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		if r.Complete && (timestamp == "" || r.Timestamp == timestamp) {
			return r.ID, nil
		}
	}
	return "", ErrNoRun
}

// Lookup returns the records of one result file of a run, in the order
// they were written. A file that was not stored yields
// result.ErrNoData.
func (db *DB) Lookup(ctx context.Context, runID string, cat result.Category, key result.Key) ([]result.Record, error) {
	name := key.FileName()
	var fileID, n int64
	err := db.sql.QueryRowContext(ctx,
		"SELECT FileID, Records FROM Files WHERE RunID = ? AND Category = ? AND Name = ?",
		runID, string(cat), name).Scan(&fileID, &n)
	if err == sql.ErrNoRows || (err == nil && n == 0) {
		return nil, errors.Wrap(result.ErrNoData, cat.Dir()+"/"+name)
	}
	if err != nil {
		return nil, err
	}

	recs := make([]result.Record, n)
	for i := range recs {
		recs[i].Measures = make(map[string]float64)
	}
	rows, err := db.sql.QueryContext(ctx,
		"SELECT RecordID, Name, Value FROM Measures WHERE RunID = ? AND FileID = ? ORDER BY RecordID, Name",
		runID, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			i     int64
			mname string
			v     float64
		)
		if err := rows.Scan(&i, &mname, &v); err != nil {
			return nil, err
		}
		if i < 0 || i >= n {
			return nil, errors.Errorf("%s/%s: record %d out of range", cat.Dir(), name, i)
		}
		recs[i].Measures[mname] = v
	}
	return recs, rows.Err()
}

// CountRuns returns the number of runs in the catalog.
func (db *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertFile, db.insertMeasure} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}

// RunSource serves the records of one run to figure generators.
type RunSource struct {
	DB    *DB
	RunID string
}

var _ result.Source = RunSource{}

// Load implements result.Source.
func (s RunSource) Load(ctx context.Context, cat result.Category, key result.Key) ([]result.Record, error) {
	return s.DB.Lookup(ctx, s.RunID, cat, key)
}
