// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package result

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// A Source loads the records of a single result file.
//
// Load returns ErrNoData (possibly wrapped) if the file does not exist
// or holds no records.
type Source interface {
	Load(ctx context.Context, cat Category, key Key) ([]Record, error)
}

// Dir is a timestamped result directory, laid out as
// {Path}/{category}_bench/{filter}_{budget}_{workload}[_{tag}].json.
type Dir struct {
	FS   afero.Fs
	Path string
}

// OpenDir returns the result directory root/timestamp on fsys. If
// timestamp is empty, the latest timestamp under root is used.
func OpenDir(fsys afero.Fs, root, timestamp string) (*Dir, error) {
	if timestamp == "" {
		var err error
		if timestamp, err = LatestTimestamp(fsys, root); err != nil {
			return nil, err
		}
	}
	p := filepath.Join(root, timestamp)
	if ok, err := afero.DirExists(fsys, p); err != nil {
		return nil, errors.Wrapf(err, "result directory %s", p)
	} else if !ok {
		return nil, errors.Errorf("result directory %s does not exist", p)
	}
	return &Dir{FS: fsys, Path: p}, nil
}

// File returns the path of the result file for cat and key.
func (d *Dir) File(cat Category, key Key) string {
	return filepath.Join(d.Path, cat.Dir(), key.FileName())
}

// Load reads and parses one result file.
func (d *Dir) Load(ctx context.Context, cat Category, key Key) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := d.File(cat, key)
	data, err := afero.ReadFile(d.FS, p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(ErrNoData, p)
	} else if err != nil {
		return nil, errors.Wrapf(err, "reading %s", p)
	}
	recs, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, p)
	}
	return recs, nil
}

// Last returns the final record of one result file.
func (d *Dir) Last(ctx context.Context, cat Category, key Key) (Record, error) {
	recs, err := d.Load(ctx, cat, key)
	if err != nil {
		return Record{}, err
	}
	return Last(recs), nil
}

// Files returns the keys of all result files in category cat, in
// lexical file name order. Files whose names do not parse as keys are
// ignored.
func (d *Dir) Files(cat Category) ([]Key, error) {
	names, err := d.glob(cat.Dir() + "/*.json")
	if err != nil {
		return nil, err
	}
	keys := make([]Key, 0, len(names))
	for _, name := range names {
		k, err := ParseKey(path.Base(name))
		if err != nil {
			continue
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (d *Dir) glob(pattern string) ([]string, error) {
	fsys := afero.NewIOFS(afero.NewBasePathFs(d.FS, d.Path))
	names, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s/%s", d.Path, pattern)
	}
	sort.Strings(names)
	return names, nil
}

// LatestTimestamp returns the name of the lexicographically greatest
// subdirectory of root. Result directories are named
// YYYY-MM-DD.HH:MM:SS, so this is the most recent run.
func LatestTimestamp(fsys afero.Fs, root string) (string, error) {
	infos, err := afero.ReadDir(fsys, root)
	if err != nil {
		return "", errors.Wrapf(err, "reading result root %s", root)
	}
	latest := ""
	for _, fi := range infos {
		if fi.IsDir() && fi.Name() > latest {
			latest = fi.Name()
		}
	}
	if latest == "" {
		return "", errors.Errorf("no result directories in %s", root)
	}
	return latest, nil
}

// An Entry is one result file read by Files.
type Entry struct {
	Category Category
	Key      Key
	Records  []Record
	// Err is the error from parsing this file, if any. Files
	// continues past files that cannot be parsed.
	Err error
}

// A Files reads every result file of a result directory, category by
// category.
//
// Its API is modeled on bufio.Scanner. Empty files are skipped.
type Files struct {
	Dir *Dir

	// Categories restricts the scan. If empty, all known
	// categories are read.
	Categories []Category

	paths   []string
	entry   Entry
	err     error
	started bool
}

func (f *Files) init() {
	f.started = true
	cats := f.Categories
	if len(cats) == 0 {
		cats = Categories
	}
	for _, c := range cats {
		names, err := f.Dir.glob(c.Dir() + "/*.json")
		if err != nil {
			f.err = err
			return
		}
		f.paths = append(f.paths, names...)
	}
}

// Scan advances to the next result file and reports whether one was
// read. When Scan returns false, Err reports any I/O error.
func (f *Files) Scan() bool {
	if !f.started {
		f.init()
	}
	for f.err == nil && len(f.paths) > 0 {
		p := f.paths[0]
		f.paths = f.paths[1:]

		cat, _ := CategoryOfDir(path.Dir(p))
		key, err := ParseKey(path.Base(p))
		if err != nil {
			continue
		}
		data, err := afero.ReadFile(f.Dir.FS, filepath.Join(f.Dir.Path, filepath.FromSlash(p)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			f.err = errors.Wrapf(err, "reading %s", p)
			return false
		}
		recs, err := Parse(data)
		if errors.Is(err, ErrNoData) {
			continue
		}
		f.entry = Entry{Category: cat, Key: key, Records: recs, Err: err}
		return true
	}
	return false
}

// Entry returns the file read by the last successful call to Scan.
func (f *Files) Entry() Entry {
	return f.entry
}

// Err returns the first I/O error encountered by Scan.
func (f *Files) Err() error {
	return f.err
}
