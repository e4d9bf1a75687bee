// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/divafilter/rfbench/result"
	"github.com/divafilter/rfbench/variant"
)

// A Bench is a named group of benchmark sweeps.
type Bench string

const (
	FPRString    Bench = "fpr_string"
	FPR          Bench = "fpr"
	True         Bench = "true"
	Construction Bench = "construction"
	Expansion    Bench = "expansion"
	Delete       Bench = "delete"
	WiredTiger   Bench = "wiredtiger"
	Corr         Bench = "corr"
)

// All is the selector that names every bench in Default.
const All = "all"

// Range sizes passed to range-fixed variants.
const (
	medianRangeSize  = 1 << 7
	mementoRangeSize = 1 << 10
	defaultBudget    = 16
)

var mainVariants = []variant.Variant{
	variant.Steroids, variant.SteroidsInt, variant.Memento, variant.Grafite, variant.SuRF,
	variant.Rosetta, variant.Proteus, variant.REncoder, variant.SNARF, variant.Oasis,
}

// A Sweep runs every variant at every budget on every selected
// workload file.
type Sweep struct {
	Variants []variant.Variant
	Budgets  []int
	// Workloads selects workload files by name. Nil selects all.
	Workloads func(name string) bool
	// Skip excludes single combinations.
	Skip func(v variant.Variant, workload string) bool
	// FixedRange is the --range-size passed to range-fixed
	// variants. Zero passes none.
	FixedRange int
	// SubtractOverhead runs each variant at its budget minus its
	// per-key overhead, so that all variants use the same memory.
	SubtractOverhead bool
	// WiredTiger selects the bench_{filter}_wiredtiger executables.
	WiredTiger bool
}

// A Definition describes one bench: the result category it reads
// workloads from and writes results to, and its sweeps.
type Definition struct {
	Bench    Bench
	Category result.Category
	Sweeps   []Sweep
}

func span(lo, hi int) []int {
	var out []int
	for b := lo; b <= hi; b += 2 {
		out = append(out, b)
	}
	return out
}

func isString(name string) bool { return strings.HasSuffix(name, "string") }

func skipOasisOSM(v variant.Variant, workload string) bool {
	return v == variant.Oasis && strings.Contains(workload, "osm")
}

// definitions returns the bench table, in the order Default runs it.
func definitions() []Definition {
	notString := func(name string) bool { return !strings.Contains(name, "string") }
	return []Definition{
		{FPRString, result.FPRBench, []Sweep{{
			Variants:  []variant.Variant{variant.Steroids, variant.SuRF},
			Budgets:   span(12, 20),
			Workloads: isString,
		}}},
		{FPR, result.FPRBench, []Sweep{{
			Variants:   mainVariants,
			Budgets:    []int{10, 16},
			Workloads:  notString,
			Skip:       skipOasisOSM,
			FixedRange: medianRangeSize,
		}, {
			Variants: mainVariants,
			Budgets:  span(8, 18),
			Workloads: func(name string) bool {
				return notString(name) && (strings.Contains(name, "unif") || strings.Contains(name, "osm"))
			},
			Skip:       skipOasisOSM,
			FixedRange: medianRangeSize,
		}}},
		{True, result.TrueBench, []Sweep{{
			Variants:  mainVariants,
			Budgets:   span(10, 20),
			Workloads: func(name string) bool { return name == "unif" },
		}, {
			Variants:   mainVariants,
			Budgets:    []int{defaultBudget},
			Workloads:  func(name string) bool { return name != "unif" },
			FixedRange: medianRangeSize,
		}}},
		{Construction, result.ConstructionBench, []Sweep{{
			Variants: []variant.Variant{
				variant.SuRF, variant.Rosetta, variant.Proteus, variant.REncoder, variant.SNARF,
				variant.Oasis, variant.Memento, variant.Steroids, variant.SteroidsInt, variant.Grafite,
			},
			Budgets: []int{defaultBudget},
		}}},
		{Expansion, result.ExpansionBench, []Sweep{{
			Variants: []variant.Variant{
				variant.Steroids, variant.SteroidsInt, variant.MementoExpandable,
				variant.Rosetta, variant.REncoder, variant.SNARF,
			},
			Budgets:          []int{defaultBudget},
			Workloads:        func(name string) bool { return strings.Contains(name, "unif") },
			SubtractOverhead: true,
		}}},
		{Delete, result.DeleteBench, []Sweep{{
			Variants:   []variant.Variant{variant.Steroids, variant.SteroidsInt, variant.MementoExpandable, variant.SNARF},
			Budgets:    []int{defaultBudget},
			FixedRange: mementoRangeSize,
		}}},
		{WiredTiger, result.WiredTigerBench, []Sweep{{
			Variants:         []variant.Variant{variant.Steroids, variant.SteroidsInt, variant.MementoExpandable, variant.Base},
			Budgets:          []int{defaultBudget},
			SubtractOverhead: true,
			WiredTiger:       true,
		}}},
		{Corr, result.CorrBench, []Sweep{{
			Variants: mainVariants,
			Budgets:  []int{defaultBudget},
		}}},
	}
}

// Default lists the benches selected by All. Corr is only run when
// named explicitly.
var Default = []Bench{FPRString, FPR, True, Construction, Expansion, Delete, WiredTiger}

// Names returns the names of all benches.
func Names() []string {
	var names []string
	for _, d := range definitions() {
		names = append(names, string(d.Bench))
	}
	return names
}

// Resolve maps bench names, or All, to benches in table order without
// duplicates.
func Resolve(names []string) ([]Bench, error) {
	want := make(map[Bench]bool)
	for _, n := range names {
		if n == All {
			for _, b := range Default {
				want[b] = true
			}
			continue
		}
		if _, ok := lookup(definitions(), Bench(n)); !ok {
			return nil, errors.Errorf("unknown bench %q (want one of %s or %s)", n, strings.Join(Names(), ", "), All)
		}
		want[Bench(n)] = true
	}
	var out []Bench
	for _, d := range definitions() {
		if want[d.Bench] {
			out = append(out, d.Bench)
		}
	}
	return out, nil
}

func lookup(defs []Definition, b Bench) (Definition, bool) {
	for _, d := range defs {
		if d.Bench == b {
			return d, true
		}
	}
	return Definition{}, false
}

// A PlanFile overrides parts of the bench table. It is read from YAML:
//
//	range_fixed: [memento, rosetta]
//	benches:
//	  fpr:
//	    variants: [steroids, grafite]
//	    budgets: [10]
type PlanFile struct {
	// RangeFixed replaces the set of variants that receive a fixed
	// range size.
	RangeFixed []string `yaml:"range_fixed"`
	// Benches replaces the variants or budgets of every sweep of a
	// bench.
	Benches map[string]Override `yaml:"benches"`
}

// An Override replaces the non-empty fields in each sweep of a bench.
type Override struct {
	Variants []string `yaml:"variants"`
	Budgets  []int    `yaml:"budgets"`
}

// ParsePlanFile decodes and validates a YAML plan file.
func ParsePlanFile(data []byte) (*PlanFile, error) {
	var pf PlanFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.Wrap(err, "parsing plan file")
	}
	if _, err := parseVariants(pf.RangeFixed); err != nil {
		return nil, errors.Wrap(err, "range_fixed")
	}
	for name, o := range pf.Benches {
		if _, ok := lookup(definitions(), Bench(name)); !ok {
			return nil, errors.Errorf("plan file: unknown bench %q", name)
		}
		if _, err := parseVariants(o.Variants); err != nil {
			return nil, errors.Wrapf(err, "bench %s", name)
		}
		for _, b := range o.Budgets {
			if b <= 0 {
				return nil, errors.Errorf("bench %s: invalid budget %d", name, b)
			}
		}
	}
	return &pf, nil
}

func parseVariants(names []string) ([]variant.Variant, error) {
	vs := make([]variant.Variant, 0, len(names))
	for _, n := range names {
		v, err := variant.Parse(n)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// apply returns the bench table with pf's overrides, and the
// range-fixed predicate.
func (pf *PlanFile) apply(defs []Definition) ([]Definition, func(variant.Variant) bool) {
	rangeFixed := variant.Variant.RangeFixed
	if pf == nil {
		return defs, rangeFixed
	}
	if pf.RangeFixed != nil {
		vs, _ := parseVariants(pf.RangeFixed)
		set := make(map[variant.Variant]bool)
		for _, v := range vs {
			set[v] = true
		}
		rangeFixed = func(v variant.Variant) bool { return set[v] }
	}
	for i := range defs {
		o, ok := pf.Benches[string(defs[i].Bench)]
		if !ok {
			continue
		}
		vs, _ := parseVariants(o.Variants)
		sweeps := append([]Sweep(nil), defs[i].Sweeps...)
		for j := range sweeps {
			if len(vs) > 0 {
				sweeps[j].Variants = vs
			}
			if len(o.Budgets) > 0 {
				sweeps[j].Budgets = o.Budgets
			}
		}
		defs[i].Sweeps = sweeps
	}
	return defs, rangeFixed
}
