// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver runs the range filter benchmark executables over a
// workload directory and collects their output in a timestamped result
// directory.
package driver

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
)

// TimestampLayout names result directories.
const TimestampLayout = "2006-01-02.15:04:05"

// Config configures a benchmark run.
type Config struct {
	// BuildDir holds the bench/ directory of benchmark executables.
	BuildDir string
	// WorkloadDir holds one subdirectory of workload files per
	// result category.
	WorkloadDir string
	// OutputDir is the result directory to create.
	OutputDir string

	FS     afero.Fs
	Runner Runner
	Logger log.Logger
	// Echo receives a copy of every benchmark's output. Nil
	// disables it.
	Echo io.Writer
	// Progress receives a progress bar. Nil disables it.
	Progress io.Writer
	// KeepPartial keeps the output directory when the run fails.
	KeepPartial bool
	// Plan overrides the bench table. It may be nil.
	Plan *PlanFile
}

// OutputDir returns the result directory for a run started at t.
func OutputDir(root string, t time.Time) string {
	return filepath.Join(root, t.Format(TimestampLayout))
}

// Summary counts the outcome of a run.
type Summary struct {
	Jobs   int
	Failed int
	Bytes  int64
}

func (cfg *Config) logger() log.Logger {
	if cfg.Logger == nil {
		return log.NewNopLogger()
	}
	return cfg.Logger
}

func (cfg *Config) checkDir(what, dir string) error {
	fi, err := cfg.FS.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, "%s directory", what)
	}
	if !fi.IsDir() {
		return errors.Errorf("%s directory %s is not a directory", what, dir)
	}
	return nil
}

// Run runs every job of benches. A benchmark that exits with an error
// is logged and the run continues. Any other error stops the run and,
// unless cfg.KeepPartial is set, removes cfg.OutputDir.
func Run(ctx context.Context, cfg *Config, benches []Bench) (sum Summary, err error) {
	logger := cfg.logger()
	if err := cfg.checkDir("build", cfg.BuildDir); err != nil {
		return sum, err
	}
	if err := cfg.checkDir("workload", cfg.WorkloadDir); err != nil {
		return sum, err
	}
	if err := cfg.FS.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return sum, errors.Wrap(err, "creating output directory")
	}
	defer func() {
		if err == nil || cfg.KeepPartial {
			return
		}
		level.Error(logger).Log("msg", "cleaning up output", "dir", cfg.OutputDir, "err", err)
		if rerr := cfg.FS.RemoveAll(cfg.OutputDir); rerr != nil {
			level.Error(logger).Log("msg", "removing output directory", "dir", cfg.OutputDir, "err", rerr)
		}
	}()

	jobs, err := Plan(cfg, benches)
	if err != nil {
		return sum, err
	}
	progress := cfg.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(jobs),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Benchmarks"),
	)
	start := time.Now()
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		bar.Describe(j.String())
		n, err := cfg.runJob(ctx, j)
		sum.Jobs++
		sum.Bytes += n
		var ee *ExitError
		switch {
		case errors.As(err, &ee):
			sum.Failed++
			level.Warn(logger).Log("msg", "benchmark failed", "job", j, "err", ee)
		case err != nil:
			return sum, errors.Wrapf(err, "running %s", j)
		}
		bar.Add(1)
	}
	bar.Finish()
	level.Info(logger).Log("msg", "benchmarks finished", "dir", cfg.OutputDir,
		"jobs", sum.Jobs, "failed", sum.Failed, "output", humanize.Bytes(uint64(sum.Bytes)),
		"took", time.Since(start).Round(time.Second))
	return sum, nil
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// runJob runs j and writes its output to its result file.
func (cfg *Config) runJob(ctx context.Context, j Job) (int64, error) {
	out := j.Output(cfg.OutputDir)
	if err := cfg.FS.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return 0, err
	}
	f, err := cfg.FS.Create(out)
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: f}
	var w io.Writer = cw
	if cfg.Echo != nil {
		w = io.MultiWriter(cw, cfg.Echo)
	}
	cmd := Command{Path: j.Executable(cfg.BuildDir), Args: j.Args(cfg.WorkloadDir)}
	level.Info(cfg.logger()).Log("msg", "executing",
		"cmd", j.Executable("<build_dir>")+" "+strings.Join(j.Args("<workload_dir>"), " "),
		"output", j.Output("<output_dir>"))
	rerr := cfg.Runner.Run(ctx, cmd, w)
	if err := f.Close(); err != nil && rerr == nil {
		rerr = err
	}
	return cw.n, rerr
}
