// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rfplot draws the figures of a range filter benchmark run.
//
// Usage:
//
//	rfplot figures [-f name...] [-t timestamp] [--result-dir dir] [--figure-dir dir] [--format fmt...]
//	rfplot index --dsn dsn [-t timestamp] [--result-dir dir]
//	rfplot list --dsn dsn
//	rfplot publish --bucket name [--prefix p] dir
//
// Figures reads {result-dir}/{timestamp}, by default the most recent
// result directory, and writes {figure-dir}/{timestamp}/{name}.{fmt}.
// With --dsn it reads a run stored in a catalog by index instead.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	kitlog "github.com/go-kit/log"
	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/afero"

	"github.com/divafilter/rfbench/catalog"
	_ "github.com/divafilter/rfbench/catalog/sqlite3"
	"github.com/divafilter/rfbench/internal/logging"
)

// common holds the flags and environment shared by every command.
type common struct {
	level  logging.Level
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
}

func (c *common) logger() kitlog.Logger {
	return logging.New(c.stderr, c.level)
}

// catalogFlags selects a catalog database.
type catalogFlags struct {
	driver *string
	dsn    *string
}

func addCatalogFlags(cmd *kingpin.CmdClause, required bool) *catalogFlags {
	f := &catalogFlags{
		driver: cmd.Flag("db", "Catalog database driver.").Default("sqlite3").Enum("sqlite3", "mysql"),
	}
	dsn := cmd.Flag("dsn", "Catalog data source name, such as a sqlite3 file or user:pass@tcp(host)/db.")
	if required {
		dsn = dsn.Required()
	}
	f.dsn = dsn.String()
	return f
}

func (f *catalogFlags) set() bool { return *f.dsn != "" }

func (f *catalogFlags) open() (*catalog.DB, error) {
	return catalog.OpenSQL(*f.driver, *f.dsn)
}

func exitWithErr(err error) {
	color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "rfplot: ")
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func newApp(c *common) *kingpin.Application {
	app := kingpin.New("rfplot", "Draw range filter benchmark figures.")
	app.HelpFlag.Short('h')
	app.Flag("log.level", "Only log messages with the given severity or above: debug, info, warn or error.").
		Default("info").SetValue(&c.level)
	addFiguresCommand(app, c)
	addIndexCommand(app, c)
	addListCommand(app, c)
	addPublishCommand(app, c)
	return app
}

func main() {
	c := &common{fs: afero.NewOsFs(), stdout: os.Stdout, stderr: os.Stderr}
	if _, err := newApp(c).Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}
