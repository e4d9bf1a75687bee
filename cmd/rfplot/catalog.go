// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/divafilter/rfbench/catalog"
	"github.com/divafilter/rfbench/result"
)

// indexCommand stores a result directory in a catalog.
type indexCommand struct {
	*common
	timestamp *string
	resultDir *string
	db        *catalogFlags
}

func addIndexCommand(app *kingpin.Application, c *common) {
	cmd := &indexCommand{common: c}
	clause := app.Command("index", "Store a result directory in a catalog database.").Action(cmd.run)
	cmd.timestamp = clause.Flag("timestamp", "Result directory timestamp. Default: the most recent.").Short('t').String()
	cmd.resultDir = clause.Flag("result-dir", "Root of the result directories.").Default("results").String()
	cmd.db = addCatalogFlags(clause, true)
}

func (cmd *indexCommand) run(*kingpin.ParseContext) error {
	ctx := context.Background()
	dir, err := result.OpenDir(cmd.fs, *cmd.resultDir, *cmd.timestamp)
	if err != nil {
		return err
	}
	db, err := cmd.db.open()
	if err != nil {
		return err
	}
	defer db.Close()
	run, st, err := catalog.Index(ctx, db, dir, cmd.logger())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.stdout, "%s: %d files, %d records", run.ID, st.Files, st.Records)
	if st.Skipped > 0 {
		color.New(color.FgYellow).Fprintf(cmd.stdout, ", %d unreadable files skipped", st.Skipped)
	}
	fmt.Fprintln(cmd.stdout)
	return nil
}

// listCommand prints the runs of a catalog.
type listCommand struct {
	*common
	db *catalogFlags
}

func addListCommand(app *kingpin.Application, c *common) {
	cmd := &listCommand{common: c}
	clause := app.Command("list", "List the runs stored in a catalog database.").Action(cmd.run)
	cmd.db = addCatalogFlags(clause, true)
}

func (cmd *listCommand) run(*kingpin.ParseContext) error {
	db, err := cmd.db.open()
	if err != nil {
		return err
	}
	defer db.Close()
	runs, err := db.ListRuns(context.Background())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tTIMESTAMP\tINDEXED\tFILES\tSTATUS")
	for _, r := range runs {
		status := "complete"
		if !r.Complete {
			status = "incomplete"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.Timestamp, humanize.Time(r.Created), r.Files, status)
	}
	return tw.Flush()
}
