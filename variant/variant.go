// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package variant enumerates the range filter implementations that
// the benchmark harness knows about, together with the static
// presentation and space-accounting properties of each.
//
// The set of variants is closed. Every figure and every benchmark
// sweep refers to variants by this enumeration, so a variant is drawn
// with the same marker, color and hatch pattern everywhere.
package variant

import (
	"fmt"
	"image/color"

	"github.com/pkg/errors"
)

// A Variant identifies one range filter implementation (or one
// configuration of it) as it appears in benchmark executable and
// result file names.
type Variant int

const (
	Steroids Variant = iota
	SteroidsInt
	Memento
	MementoExpandable
	Grafite
	Base
	SNARF
	Oasis
	SuRF
	Proteus
	ProteusMistuned
	Rosetta
	REncoder

	numVariants
)

// names are the on-disk identifiers, indexed by Variant.
var names = [numVariants]string{
	Steroids:          "steroids",
	SteroidsInt:       "steroids_int",
	Memento:           "memento",
	MementoExpandable: "memento_expandable",
	Grafite:           "grafite",
	Base:              "base",
	SNARF:             "snarf",
	Oasis:             "oasis",
	SuRF:              "surf",
	Proteus:           "proteus",
	ProteusMistuned:   "proteus_mistuned",
	Rosetta:           "rosetta",
	REncoder:          "rencoder",
}

// All returns every known variant in declaration order.
func All() []Variant {
	out := make([]Variant, numVariants)
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

// Valid reports whether v is one of the enumerated variants.
func (v Variant) Valid() bool {
	return v >= 0 && v < numVariants
}

// String returns the on-disk identifier of v, such as "steroids_int".
func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return names[v]
}

// Parse returns the Variant whose on-disk identifier is name.
func Parse(name string) (Variant, error) {
	for i, n := range names {
		if n == name {
			return Variant(i), nil
		}
	}
	return 0, errors.Errorf("unknown filter variant %q", name)
}

// MustParse is like Parse but panics on unknown names. It is meant
// for static tables.
func MustParse(name string) Variant {
	v, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Overhead is the number of bits per key that v spends on format
// metadata beyond what its competitors account for. The Diva family
// stores an extra flag bit per key, which is subtracted before
// space comparisons.
func (v Variant) Overhead() float64 {
	switch v {
	case Steroids, SteroidsInt:
		return 1
	}
	return 0
}

// RangeFixed reports whether v fixes its maximum range size at
// construction time, independently of the queries it later serves.
// Benchmarks of such variants must be told the range size explicitly.
func (v Variant) RangeFixed() bool {
	switch v {
	case Memento, MementoExpandable, Rosetta, Proteus:
		return true
	}
	return false
}

// Style returns the presentation of v. The returned value is a copy;
// the underlying table cannot be modified.
func (v Variant) Style() Style {
	if !v.Valid() {
		return Style{Label: v.String(), Marker: MarkerCircle, Color: color.Black}
	}
	return styles[v]
}

// Hatch returns the fill pattern used for v in bar charts.
func (v Variant) Hatch() Hatch {
	if !v.Valid() {
		return ""
	}
	return hatches[v]
}
