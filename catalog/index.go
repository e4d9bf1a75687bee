// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"context"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/divafilter/rfbench/result"
)

// IndexStats counts what Index stored.
type IndexStats struct {
	Files   int
	Records int
	// Skipped counts files that could not be parsed.
	Skipped int
}

// Index stores every result file of dir as a new run and commits it.
// Files that cannot be parsed are logged and skipped. On any other
// error the run is left incomplete.
func Index(ctx context.Context, db *DB, dir *result.Dir, logger log.Logger) (*Run, IndexStats, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	var st IndexStats
	run, err := db.NewRun(ctx, filepath.Base(dir.Path))
	if err != nil {
		return nil, st, err
	}
	files := &result.Files{Dir: dir}
	for files.Scan() {
		if err := ctx.Err(); err != nil {
			return run, st, err
		}
		e := files.Entry()
		if e.Err != nil {
			level.Warn(logger).Log("msg", "skipping result file", "category", e.Category, "file", e.Key.FileName(), "err", e.Err)
			st.Skipped++
			continue
		}
		if err := run.InsertFile(ctx, e.Category, e.Key, e.Records); err != nil {
			return run, st, err
		}
		st.Files++
		st.Records += len(e.Records)
	}
	if err := files.Err(); err != nil {
		return run, st, errors.Wrap(err, "scanning results")
	}
	if err := run.Commit(ctx); err != nil {
		return run, st, err
	}
	level.Info(logger).Log("msg", "indexed run", "run", run.ID, "timestamp", run.Timestamp,
		"files", humanize.Comma(int64(st.Files)), "records", humanize.Comma(int64(st.Records)), "skipped", st.Skipped)
	return run, st, nil
}
