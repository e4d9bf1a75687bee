// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rfbench runs the range filter benchmark executables.
//
// Usage:
//
//	rfbench [-b bench...] [--output-root dir] [--plan file] [--keep-partial] [--echo] BUILD_DIR WORKLOAD_DIR
//
// BUILD_DIR must contain the bench/bench_{filter} executables and
// WORKLOAD_DIR one subdirectory of workload files per bench category,
// such as fpr_bench. Results are written to
// {output-root}/{YYYY-MM-DD.HH:MM:SS}/{category}/{filter}_{budget}_{workload}.json.
// If the run fails or is interrupted, the result directory is removed.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/spf13/afero"

	"github.com/divafilter/rfbench/driver"
	"github.com/divafilter/rfbench/internal/logging"
)

func exitWithErr(err error) {
	color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "rfbench: ")
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// flags is the parsed command line.
type flags struct {
	level       logging.Level
	benches     *[]string
	outputRoot  *string
	planFile    *string
	keepPartial *bool
	echo        *bool
	buildDir    *string
	workloadDir *string
}

func newApp(f *flags) *kingpin.Application {
	app := kingpin.New("rfbench", "Run range filter benchmarks.")
	app.HelpFlag.Short('h')
	app.Flag("log.level", "Only log messages with the given severity or above: debug, info, warn or error.").
		Default("info").SetValue(&f.level)
	f.benches = app.Flag("bench", "Bench to run (repeatable). corr only runs when named.").Short('b').
		Default(driver.All).Enums(append(driver.Names(), driver.All)...)
	f.outputRoot = app.Flag("output-root", "Root of the result directories.").Default("results").String()
	f.planFile = app.Flag("plan", "YAML file overriding bench variants, budgets and range-fixed filters.").String()
	f.keepPartial = app.Flag("keep-partial", "Keep the result directory of a failed run.").Bool()
	f.echo = app.Flag("echo", "Copy benchmark output to standard output.").Bool()
	f.buildDir = app.Arg("build-dir", "Directory containing bench/bench_* executables.").Required().String()
	f.workloadDir = app.Arg("workload-dir", "Directory containing the generated workloads.").Required().String()
	return app
}

// config returns the driver configuration and benches of a run
// started at now.
func (f *flags) config(fs afero.Fs, now time.Time, stdout, stderr io.Writer) (*driver.Config, []driver.Bench, error) {
	cfg := &driver.Config{
		BuildDir:    *f.buildDir,
		WorkloadDir: *f.workloadDir,
		OutputDir:   driver.OutputDir(*f.outputRoot, now),
		FS:          fs,
		Runner:      driver.ExecRunner{Stderr: stderr},
		Logger:      logging.New(stderr, f.level),
		KeepPartial: *f.keepPartial,
	}
	if *f.echo {
		cfg.Echo = stdout
	} else {
		cfg.Progress = stderr
	}
	if *f.planFile != "" {
		data, err := afero.ReadFile(fs, *f.planFile)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Plan, err = driver.ParsePlanFile(data); err != nil {
			return nil, nil, err
		}
	}
	bs, err := driver.Resolve(*f.benches)
	if err != nil {
		return nil, nil, err
	}
	return cfg, bs, nil
}

func printSummary(w io.Writer, dir string, sum driver.Summary) {
	fmt.Fprintf(w, "%s: %d benchmarks", dir, sum.Jobs)
	if sum.Failed > 0 {
		color.New(color.FgYellow).Fprintf(w, ", %d failed", sum.Failed)
	}
	fmt.Fprintln(w)
}

func main() {
	f := &flags{}
	if _, err := newApp(f).Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, bs, err := f.config(afero.NewOsFs(), time.Now(), os.Stdout, os.Stderr)
	if err != nil {
		exitWithErr(err)
	}
	sum, err := driver.Run(ctx, cfg, bs)
	if err != nil {
		exitWithErr(err)
	}
	printSummary(os.Stdout, cfg.OutputDir, sum)
}
