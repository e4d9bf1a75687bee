// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/facette/natsort"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/divafilter/rfbench/result"
	"github.com/divafilter/rfbench/variant"
)

// A Job is one benchmark invocation.
type Job struct {
	Bench    Bench
	Category result.Category
	Variant  variant.Variant
	Budget   int
	// Workload is the name of the workload file.
	Workload string
	// RangeSize is passed as --range-size when non-zero.
	RangeSize  int
	WiredTiger bool
}

// Key returns the result file key of j.
func (j Job) Key() result.Key {
	return result.Key{Filter: j.Variant.String(), Budget: j.Budget, Workload: j.Workload}
}

// Executable returns the path of j's benchmark executable.
func (j Job) Executable(buildDir string) string {
	name := "bench_" + j.Variant.String()
	if j.WiredTiger {
		name += "_wiredtiger"
	}
	return filepath.Join(buildDir, "bench", name)
}

// Args returns the command-line arguments of j's executable.
func (j Job) Args(workloadDir string) []string {
	args := []string{strconv.Itoa(j.Budget), "-w", filepath.Join(workloadDir, j.Category.Dir(), j.Workload)}
	if j.RangeSize != 0 {
		args = append(args, "--range-size", strconv.Itoa(j.RangeSize))
	}
	return args
}

// Output returns the result file of j below outputDir.
func (j Job) Output(outputDir string) string {
	return filepath.Join(outputDir, j.Category.Dir(), j.Key().FileName())
}

func (j Job) String() string {
	s := fmt.Sprintf("%s/%s", j.Category.Dir(), j.Key())
	if j.RangeSize != 0 {
		s += fmt.Sprintf(" range=%d", j.RangeSize)
	}
	return s
}

// Workloads returns the names of the workload files of cat, in natural
// order.
func Workloads(fs afero.Fs, workloadDir string, cat result.Category) ([]string, error) {
	dir := filepath.Join(workloadDir, cat.Dir())
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrap(err, "listing workloads")
	}
	var names []string
	for _, fi := range infos {
		if fi.Mode().IsRegular() {
			names = append(names, fi.Name())
		}
	}
	natsort.Sort(names)
	return names, nil
}

// Plan enumerates the jobs of benches, in table order, then sweep,
// workload, variant and budget order. A job whose result file an
// earlier job already writes is dropped.
func Plan(cfg *Config, benches []Bench) ([]Job, error) {
	defs, rangeFixed := cfg.Plan.apply(definitions())
	var jobs []Job
	seen := make(map[string]bool)
	for _, b := range benches {
		def, ok := lookup(defs, b)
		if !ok {
			return nil, errors.Errorf("unknown bench %q", b)
		}
		workloads, err := Workloads(cfg.FS, cfg.WorkloadDir, def.Category)
		if err != nil {
			return nil, errors.Wrapf(err, "bench %s", b)
		}
		for _, sw := range def.Sweeps {
			for _, w := range workloads {
				if sw.Workloads != nil && !sw.Workloads(w) {
					continue
				}
				for _, v := range sw.Variants {
					if sw.Skip != nil && sw.Skip(v, w) {
						continue
					}
					for _, budget := range sw.Budgets {
						j := Job{
							Bench:      b,
							Category:   def.Category,
							Variant:    v,
							Budget:     budget,
							Workload:   w,
							WiredTiger: sw.WiredTiger,
						}
						if sw.SubtractOverhead {
							j.Budget -= int(v.Overhead())
						}
						if sw.FixedRange != 0 && rangeFixed(v) {
							j.RangeSize = sw.FixedRange
						}
						out := j.Output("")
						if seen[out] {
							continue
						}
						seen[out] = true
						jobs = append(jobs, j)
					}
				}
			}
		}
	}
	return jobs, nil
}
