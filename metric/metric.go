// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metric derives comparable quantities from raw benchmark
// measurements: per-operation latencies, space adjusted for format
// overhead, and smoothed multi-pass series.
package metric

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/divafilter/rfbench/variant"
)

// A Point is one (x, y) sample of a derived series.
type Point struct {
	X, Y float64
}

// PerOp converts a cumulative phase time in milliseconds into
// nanoseconds per operation. A zero count yields 0, which figures
// treat as "not measured".
func PerOp(totalMillis, count float64) float64 {
	if count == 0 {
		return 0
	}
	return totalMillis * 1e6 / count
}

// AdjustedBPK returns bpk less the per-key format overhead of v.
func AdjustedBPK(v variant.Variant, bpk float64) float64 {
	return bpk - v.Overhead()
}

// WithinBudget reports whether an adjusted bits-per-key value may be
// plotted at the nominal memory budget. Variants may overshoot their
// configured budget by less than one bit.
func WithinBudget(adjusted float64, budget int) bool {
	return adjusted < float64(budget)+1
}

// PairedHalfAverage smooths a series recorded in two identical
// passes. Point i of the result has the X of pts[i] and the mean Y of
// pts[i] and pts[i+n], where n is len(pts)/2. An odd trailing point is
// dropped.
func PairedHalfAverage(pts []Point) []Point {
	n := len(pts) / 2
	out := make([]Point, n)
	for i := range out {
		out[i] = Point{
			X: pts[i].X,
			Y: stats.Mean([]float64{pts[i].Y, pts[i+n].Y}),
		}
	}
	return out
}

// EveryOther returns pts[0], pts[2], pts[4], ...
func EveryOther(pts []Point) []Point {
	out := make([]Point, 0, (len(pts)+1)/2)
	for i := 0; i < len(pts); i += 2 {
		out = append(out, pts[i])
	}
	return out
}

// DatasetFraction is the fraction of the final dataset loaded after
// expansion step j. The dataset starts at 2^-doublings of its final
// size and doubles in perDoubling equal insertion steps.
func DatasetFraction(j, perDoubling, doublings int) float64 {
	base := math.Ldexp(1, j/perDoubling-doublings)
	return base * (1 + float64(j%perDoubling)/float64(perDoubling))
}

// InsertFraction is the x coordinate of the insertion batch that
// follows expansion step j, spaced geometrically between doublings.
func InsertFraction(j, perDoubling, doublings int) float64 {
	return math.Pow(2, float64(j)/float64(perDoubling)-float64(doublings))
}

// Summary describes the Y values of a series.
type Summary struct {
	N             int
	Min, Max, Avg float64
}

// Summarize computes a Summary of the Y values of pts.
func Summarize(pts []Point) Summary {
	if len(pts) == 0 {
		return Summary{}
	}
	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.Y
	}
	s := stats.Sample{Xs: ys}
	lo, hi := s.Bounds()
	return Summary{N: len(ys), Min: lo, Max: hi, Avg: s.Mean()}
}
