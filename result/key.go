// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package result

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Category is a benchmark kind. Each category's results live in
// their own subdirectory of a timestamped result directory.
type Category string

const (
	FPRBench          Category = "fpr"
	TrueBench         Category = "true"
	ConstructionBench Category = "construction"
	ExpansionBench    Category = "expansion"
	DeleteBench       Category = "delete"
	WiredTigerBench   Category = "wiredtiger"
	CorrBench         Category = "corr"
)

// Categories lists every category in the order the driver runs them.
var Categories = []Category{
	FPRBench, TrueBench, ConstructionBench, ExpansionBench, DeleteBench, WiredTigerBench, CorrBench,
}

// Dir is the result subdirectory name of c, such as "fpr_bench".
func (c Category) Dir() string {
	return string(c) + "_bench"
}

// CategoryOfDir is the inverse of Category.Dir.
func CategoryOfDir(dir string) (Category, bool) {
	for _, c := range Categories {
		if c.Dir() == dir {
			return c, true
		}
	}
	return "", false
}

// A Key identifies one result file within a category.
type Key struct {
	Filter   string // variant identifier, such as "steroids_int"
	Budget   int    // memory budget in bits per key
	Workload string // workload name, possibly containing underscores
	// Tag further distinguishes runs of the same filter, budget
	// and workload: a range size exponent, a range length,
	// a key count exponent, or "string". It may be empty.
	Tag string
}

// FileName returns the file name of k's result file,
// {filter}_{budget}_{workload}[_{tag}].json.
func (k Key) FileName() string {
	var b strings.Builder
	b.WriteString(k.Filter)
	b.WriteByte('_')
	b.WriteString(strconv.Itoa(k.Budget))
	b.WriteByte('_')
	b.WriteString(k.Workload)
	if k.Tag != "" {
		b.WriteByte('_')
		b.WriteString(k.Tag)
	}
	b.WriteString(".json")
	return b.String()
}

func (k Key) String() string {
	return strings.TrimSuffix(k.FileName(), ".json")
}

// ParseKey parses a result file name produced by Key.FileName.
//
// Filter and workload names may contain underscores, so the file name
// is split at the first all-digit segment, which is the budget. If a
// single segment follows the budget it is the workload; otherwise the
// final segment is the tag and the ones before it the workload.
//
// The driver names files after workload files, such as "unif_8", so
// the same file may be addressed as Key{Workload: "unif_8"} or as
// Key{Workload: "unif", Tag: "8"}. ParseKey returns the latter.
func ParseKey(name string) (Key, error) {
	base, ok := strings.CutSuffix(name, ".json")
	if !ok {
		return Key{}, errors.Errorf("result file %q: not a .json file", name)
	}
	parts := strings.Split(base, "_")
	bi := -1
	for i := 1; i < len(parts); i++ {
		if isDigits(parts[i]) {
			bi = i
			break
		}
	}
	if bi < 0 || bi == len(parts)-1 {
		return Key{}, errors.Errorf("result file %q: want {filter}_{budget}_{workload}[_{tag}].json", name)
	}
	budget, err := strconv.Atoi(parts[bi])
	if err != nil {
		return Key{}, errors.Wrapf(err, "result file %q", name)
	}
	k := Key{
		Filter: strings.Join(parts[:bi], "_"),
		Budget: budget,
	}
	rest := parts[bi+1:]
	if len(rest) == 1 {
		k.Workload = rest[0]
	} else {
		k.Workload = strings.Join(rest[:len(rest)-1], "_")
		k.Tag = rest[len(rest)-1]
	}
	return k, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
