// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"context"
	"math"
	"strconv"

	"github.com/divafilter/rfbench/metric"
	"github.com/divafilter/rfbench/result"
	"github.com/divafilter/rfbench/variant"
)

// mainVariants are the filters compared in the static benchmarks.
var mainVariants = []variant.Variant{
	variant.Steroids, variant.SteroidsInt, variant.Memento, variant.Grafite, variant.SuRF,
	variant.Rosetta, variant.Proteus, variant.REncoder, variant.SNARF, variant.Oasis,
}

// fprVariants adds Proteus tuned for a different query distribution.
var fprVariants = []variant.Variant{
	variant.Steroids, variant.SteroidsInt, variant.Memento, variant.Grafite, variant.SuRF,
	variant.Rosetta, variant.Proteus, variant.ProteusMistuned, variant.REncoder, variant.SNARF,
	variant.Oasis,
}

const (
	fprLabel     = "FPR"
	spaceLabel   = "Space [BPK]"
	latencyLabel = "Query Latency [ns/op]"
)

// fprAxis configures a to show false positive rates down to 10^lo.
func fprAxis(a *Axis, lo int) {
	a.Scale = Log
	a.Ticks = decadeTicks(0, lo)
	a.Max = At(1.9)
}

// buildFPR plots the false positive rate against the query range size
// for each workload at two memory budgets, with the query latency at
// the larger budget in an extra row.
func buildFPR(ctx context.Context, src result.Source) (*Figure, error) {
	workloads := []string{"unif", "norm", "books", "osm"}
	budgets := []int{10, 16}
	rangeExps := ints(0, 24, 4)

	l := loader{ctx, src, result.FPRBench}
	fig := newFigure("fpr", len(budgets)+1, len(workloads), 8, 5, fprVariants)
	fig.LegendColumns = 6
	latencyRow := fig.Panels[len(budgets)]
	for j, w := range workloads {
		for i := range fig.Panels {
			p := fig.Panels[i][j]
			p.X.Scale = Log
			p.X.Ticks = powTicks(2, rangeExps)
			p.Y.HideTickLabels = j > 0
			if i < len(budgets) {
				lo := -5
				if i == 0 {
					lo = -3
				}
				fprAxis(&p.Y, lo)
				if j == 0 {
					p.Y.Label = fprLabel
				}
				if j == len(workloads)-1 {
					p.RightLabel = strconv.Itoa(budgets[i]) + " BPK"
				}
			} else {
				p.Y.Scale = Log
				p.X.Label = "Range Size"
				if j == 0 {
					p.Y.Label = latencyLabel
				}
				if j == len(workloads)-1 {
					p.RightLabel = strconv.Itoa(budgets[len(budgets)-1]) + " BPK"
				}
			}
		}
		fig.Panels[0][j].Title = variant.DatasetName(w)
	}

	for i, budget := range budgets {
		for j, w := range workloads {
			for _, v := range fprVariants {
				var fpr, latency []metric.Point
				for _, e := range rangeExps {
					recs, ok, err := l.load(v, budget, w, strconv.Itoa(e))
					if err != nil {
						return nil, err
					}
					if !ok {
						continue
					}
					last := result.Last(recs)
					if !metric.WithinBudget(metric.AdjustedBPK(v, last.BPK()), budget) {
						continue
					}
					x := math.Ldexp(1, e)
					fpr = append(fpr, metric.Point{X: x, Y: last.FPR()})
					latency = append(latency, metric.Point{X: x, Y: metric.PerOp(last.Get(result.TimeQuery), last.NQueries())})
				}
				fig.Panels[i][j].Add(v, fpr)
				if i == len(budgets)-1 {
					latencyRow[j].Add(v, latency)
				}
			}
		}
	}
	return fig, nil
}

// buildFPRString compares the filters that support variable-length
// string keys, plotting FPR and query latency against space.
func buildFPRString(ctx context.Context, src result.Source) (*Figure, error) {
	workloads := []string{"unif", "norm"}
	variants := []variant.Variant{variant.Steroids, variant.SuRF}
	budgets := ints(12, 20, 2)

	l := loader{ctx, src, result.FPRBench}
	fig := newFigure("fpr_string", len(workloads), 2, 3, 3, variants)
	fig.LegendColumns = 5
	for i, w := range workloads {
		fp, lat := fig.Panels[i][0], fig.Panels[i][1]
		for _, p := range fig.Panels[i] {
			p.X.Ticks = valueTicks(budgets)
			if i == len(workloads)-1 {
				p.X.Label = spaceLabel
			}
		}
		fprAxis(&fp.Y, -5)
		fp.Y.Label = variant.DatasetName(w) + "\n" + fprLabel
		lat.Y.Scale = Log
		lat.Y.Ticks = decadeTicks(3, 0)
		lat.Y.Max = At(1000)
		lat.RightLabel = latencyLabel

		for _, v := range variants {
			var fpr, latency []metric.Point
			for _, b := range budgets {
				recs, ok, err := l.load(v, b, w, "string")
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				last := result.Last(recs)
				adj := metric.AdjustedBPK(v, last.BPK())
				if !metric.WithinBudget(adj, b) {
					continue
				}
				fpr = append(fpr, metric.Point{X: adj, Y: last.FPR()})
				latency = append(latency, metric.Point{X: adj, Y: metric.PerOp(last.Get(result.TimeQuery), last.NQueries())})
			}
			fp.Add(v, fpr)
			lat.Add(v, latency)
		}
	}
	return fig, nil
}

// buildFPRMemory plots FPR against space at a fixed range size of 2^8.
func buildFPRMemory(ctx context.Context, src result.Source) (*Figure, error) {
	workloads := []string{"unif", "osm"}
	budgets := ints(8, 18, 2)
	const rangeExp = "8"

	l := loader{ctx, src, result.FPRBench}
	fig := newFigure("fpr_memory", 1, len(workloads), 3, 1.35, fprVariants)
	fig.LegendColumns = 1
	for j, w := range workloads {
		p := fig.Panels[0][j]
		p.Title = variant.DatasetName(w)
		p.X.Label = spaceLabel
		p.X.Ticks = valueTicks(budgets)
		p.X.Min, p.X.Max = At(float64(budgets[0]-1)), At(float64(budgets[len(budgets)-1]+1))
		fprAxis(&p.Y, -5)
		if j == 0 {
			p.Y.Label = fprLabel
		} else {
			p.Y.HideTickLabels = true
		}

		for _, v := range fprVariants {
			var pts []metric.Point
			for _, b := range budgets {
				recs, ok, err := l.load(v, b, w, rangeExp)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				last := result.Last(recs)
				pts = append(pts, metric.Point{X: metric.AdjustedBPK(v, last.BPK()), Y: last.FPR()})
			}
			p.Add(v, pts)
		}
	}
	return fig, nil
}

// buildTrue plots the latency of queries with non-empty results
// against space, for short and long ranges.
func buildTrue(ctx context.Context, src result.Source) (*Figure, error) {
	const workload = "unif"
	lengths := []variant.RangeLength{variant.ShortRange, variant.LongRange}
	budgets := ints(10, 20, 2)

	l := loader{ctx, src, result.TrueBench}
	fig := newFigure("true", 1, len(lengths), 3.5, 1.5, mainVariants)
	fig.LegendColumns = 1
	for j, rl := range lengths {
		p := fig.Panels[0][j]
		p.X.Label = spaceLabel
		p.X.Ticks = valueTicks(budgets)
		p.X.Min, p.X.Max = At(float64(budgets[0]-1)), At(float64(budgets[len(budgets)-1]+1))
		p.Y.Scale = Log
		p.Y.Ticks = decadeTicks(6, 2)
		if j == 0 {
			p.Y.Label = variant.DatasetName(workload) + "\n" + latencyLabel
		} else {
			p.Y.HideTickLabels = true
		}
		p.Notes = append(p.Notes, Note{X: 9.5, Y: 4e5, Text: rl.Tag()})

		for _, v := range mainVariants {
			var pts []metric.Point
			for _, b := range budgets {
				recs, ok, err := l.load(v, b, workload, string(rl))
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				last := result.Last(recs)
				pts = append(pts, metric.Point{
					X: metric.AdjustedBPK(v, last.BPK()),
					Y: metric.PerOp(last.Get(result.TimeQuery), last.NQueries()),
				})
			}
			p.Add(v, pts)
		}
	}
	return fig, nil
}
