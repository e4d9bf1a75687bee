// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package result reads the result files written by the range filter
// benchmark executables.
//
// A result file is a sequence of JSON objects, one per snapshot of the
// filter under test, written incrementally and never terminated
// cleanly. Repair turns such a file into valid JSON; Parse decodes the
// snapshots into Records. Result files are addressed by a Category
// (the benchmark subdirectory) and a Key (filter, memory budget,
// workload and an optional tag).
package result

import "sort"

// Measure names written by the benchmark executables.
const (
	BPK              = "bpk"
	FPR              = "fpr"
	Size             = "size"
	NKeys            = "n_keys"
	NQueries         = "n_queries"
	FalsePositives   = "false_positives"
	FalseNegatives   = "false_negatives"
	TimeQuery        = "time_q"
	TimeInsert       = "time_i"
	TimeDelete       = "time_d"
	ConstructionTime = "construction_time"
	ModelingTime     = "modeling_time"
)

// A Record is one snapshot of a filter's state during a benchmark
// run. Times are cumulative per phase, in milliseconds.
//
// Not every measure is present in every record: the construction
// snapshot has no query counts, and phase times only appear for the
// phases that ran. Values that the executable printed as nan are 0.
type Record struct {
	Measures map[string]float64
}

// Get returns the named measure, or 0 if it is absent.
func (r Record) Get(name string) float64 {
	return r.Measures[name]
}

// Has reports whether the record carries the named measure.
func (r Record) Has(name string) bool {
	_, ok := r.Measures[name]
	return ok
}

// Names returns the names of all measures in r, sorted.
func (r Record) Names() []string {
	names := make([]string, 0, len(r.Measures))
	for k := range r.Measures {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (r Record) BPK() float64      { return r.Get(BPK) }
func (r Record) FPR() float64      { return r.Get(FPR) }
func (r Record) NKeys() float64    { return r.Get(NKeys) }
func (r Record) NQueries() float64 { return r.Get(NQueries) }

// Last returns the final, steady-state record of recs.
// It panics if recs is empty.
func Last(recs []Record) Record {
	return recs[len(recs)-1]
}
