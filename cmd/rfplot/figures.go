// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/divafilter/rfbench/catalog"
	"github.com/divafilter/rfbench/chart"
	"github.com/divafilter/rfbench/figure"
	"github.com/divafilter/rfbench/report"
	"github.com/divafilter/rfbench/result"
)

// figuresCommand draws the selected figures of one run.
type figuresCommand struct {
	*common
	figures   *[]string
	timestamp *string
	resultDir *string
	figureDir *string
	formats   *[]string
	dpi       *int
	html      *bool
	csv       *bool
	runID     *string
	db        *catalogFlags
}

func addFiguresCommand(app *kingpin.Application, c *common) {
	cmd := &figuresCommand{common: c}
	clause := app.Command("figures", "Draw figures from benchmark results.").Default().Action(cmd.run)
	cmd.figures = clause.Flag("figure", "Figure to draw (repeatable).").Short('f').
		Default(figure.All).Enums(append(figure.Names(), figure.All)...)
	cmd.timestamp = clause.Flag("timestamp", "Result directory timestamp. Default: the most recent.").Short('t').String()
	cmd.resultDir = clause.Flag("result-dir", "Root of the result directories.").Default("results").String()
	cmd.figureDir = clause.Flag("figure-dir", "Root of the figure directories.").Default("figures").String()
	cmd.formats = clause.Flag("format", "Output format (repeatable).").Default("pdf").Enums(chart.Formats...)
	cmd.dpi = clause.Flag("dpi", "Resolution of png output.").Default("300").Int()
	cmd.html = clause.Flag("html", "Also write an index.html page.").Bool()
	cmd.csv = clause.Flag("csv", "Also write series.csv with every plotted point.").Bool()
	cmd.runID = clause.Flag("run", "Catalog run ID. Default: the most recent complete run.").String()
	cmd.db = addCatalogFlags(clause, false)
}

func (cmd *figuresCommand) run(*kingpin.ParseContext) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger := cmd.logger()
	fs := cmd.fs

	defs, err := figure.Resolve(*cmd.figures)
	if err != nil {
		return err
	}

	var (
		src       result.Source
		timestamp string
	)
	if cmd.db.set() {
		db, err := cmd.db.open()
		if err != nil {
			return err
		}
		defer db.Close()
		id := *cmd.runID
		if id == "" {
			if id, err = db.Latest(ctx, *cmd.timestamp); err != nil {
				return err
			}
		}
		timestamp, err = runTimestamp(ctx, db, id)
		if err != nil {
			return err
		}
		src = catalog.RunSource{DB: db, RunID: id}
	} else {
		dir, err := result.OpenDir(fs, *cmd.resultDir, *cmd.timestamp)
		if err != nil {
			return err
		}
		timestamp = filepath.Base(dir.Path)
		src = dir
	}
	level.Info(logger).Log("msg", "drawing figures", "timestamp", timestamp, "figures", len(defs))

	saver := &chart.Saver{
		FS:      fs,
		Dir:     filepath.Join(*cmd.figureDir, timestamp),
		Formats: *cmd.formats,
		DPI:     *cmd.dpi,
	}
	figs, genErr := figure.Generate(ctx, src, defs, saver, logger)

	if *cmd.html {
		if err := cmd.writeIndex(fs, saver.Dir, timestamp, figs); err != nil {
			return err
		}
	}
	if *cmd.csv {
		if err := writeFile(fs, filepath.Join(saver.Dir, "series.csv"), func(f afero.File) error {
			return report.WriteCSV(f, figs)
		}); err != nil {
			return err
		}
	}
	return genErr
}

func (cmd *figuresCommand) writeIndex(fs afero.Fs, dir, timestamp string, figs []*figure.Figure) error {
	// Prefer a format browsers display inline.
	format := (*cmd.formats)[0]
	for _, f := range *cmd.formats {
		if f == "png" || f == "svg" {
			format = f
			break
		}
	}
	return writeFile(fs, filepath.Join(dir, "index.html"), func(f afero.File) error {
		return report.WriteHTML(f, "Range filter benchmarks "+timestamp, figs, format)
	})
}

func writeFile(fs afero.Fs, name string, write func(afero.File) error) error {
	if err := fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	f, err := fs.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", name)
	}
	return f.Close()
}

func runTimestamp(ctx context.Context, db *catalog.DB, id string) (string, error) {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		return "", err
	}
	for _, r := range runs {
		if r.ID == id {
			return r.Timestamp, nil
		}
	}
	return "", errors.Errorf("no run %s in catalog", id)
}
