// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"context"
	"math"

	"github.com/divafilter/rfbench/metric"
	"github.com/divafilter/rfbench/result"
	"github.com/divafilter/rfbench/variant"
)

// Expansion benchmarks start from 1/2^expansionDoublings of the final
// dataset and double it in expansionSteps insertion batches each.
const (
	expansionDoublings = 6
	expansionSteps     = 4
	expansionBudget    = 16
)

var expansionVariants = []variant.Variant{
	variant.Steroids, variant.SteroidsInt, variant.MementoExpandable,
	variant.Rosetta, variant.REncoder, variant.SNARF,
}

// buildExpansion follows filters as their dataset grows: the FPR for
// short and long ranges, the space, and the insertion latency, all
// against the fraction of the final dataset loaded.
//
// The short and long range files step through the same dataset
// fractions. Space and latency are averaged across the two files,
// except for Memento, whose points are plotted as they are.
func buildExpansion(ctx context.Context, src result.Source) (*Figure, error) {
	lengths := []variant.RangeLength{variant.ShortRange, variant.LongRange}

	l := loader{ctx, src, result.ExpansionBench}
	fig := newFigure("expansion", 2, 2, 3.5, 3.5, expansionVariants)
	fig.LegendColumns = (len(expansionVariants) + 1) / 2
	fig.Each(func(i, j int, p *Panel) {
		p.X.Scale = Log
		p.X.Ticks = fractionTicks(expansionDoublings)
		p.Y.Scale = Log
		if i == 1 {
			p.X.Label = "Dataset Fraction"
		}
	})
	for j, rl := range lengths {
		p := fig.Panels[0][j]
		fprAxis(&p.Y, -5)
		p.Y.HideTickLabels = j > 0
		p.Notes = append(p.Notes, Note{X: 0.25, Y: 1.5e-5, Text: rl.Tag()})
	}
	fig.Panels[0][0].Y.Label = fprLabel
	space, insert := fig.Panels[1][0], fig.Panels[1][1]
	space.Y.Scale = Linear
	space.Y.Label = spaceLabel
	space.Y.Min, space.Y.Max = At(13), At(35)
	space.Y.Ticks = valueTicks(ints(15, 35, 5))
	insert.RightLabel = "Insert Latency [ns/op]"

	fprs := make([]map[variant.Variant][]metric.Point, len(lengths))
	bpks := make(map[variant.Variant][]metric.Point)
	inserts := make(map[variant.Variant][]metric.Point)
	for i, rl := range lengths {
		fprs[i] = make(map[variant.Variant][]metric.Point)
		for _, v := range expansionVariants {
			recs, ok, err := l.load(v, budgetFor(v, expansionBudget), "unif", string(rl))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			for j, rec := range recs[1:] {
				x := metric.DatasetFraction(j, expansionSteps, expansionDoublings)
				fprs[i][v] = append(fprs[i][v], metric.Point{X: x, Y: rec.FPR()})
				bpks[v] = append(bpks[v], metric.Point{X: x, Y: rec.BPK()})
				if rec.Has(result.TimeInsert) {
					// recs[j] is the record preceding rec.
					n := rec.NKeys() - recs[j].NKeys()
					inserts[v] = append(inserts[v], metric.Point{
						X: metric.InsertFraction(j, expansionSteps, expansionDoublings),
						Y: metric.PerOp(rec.Get(result.TimeInsert), n),
					})
				}
			}
		}
	}

	for _, v := range expansionVariants {
		bpk, ins := bpks[v], inserts[v]
		if v != variant.MementoExpandable {
			bpk = metric.PairedHalfAverage(bpk)
			ins = metric.PairedHalfAverage(ins)
		}
		for i := range lengths {
			pts := fprs[i][v]
			// The final step reaches the full dataset and is
			// measured by the static benchmarks.
			if len(pts) > 0 {
				pts = pts[:len(pts)-1]
			}
			fig.Panels[0][i].Add(v, metric.EveryOther(pts))
		}
		switch v {
		case variant.MementoExpandable, variant.Rosetta, variant.REncoder:
			space.Add(v, bpk)
		default:
			space.Add(v, metric.EveryOther(bpk))
		}
		if v == variant.MementoExpandable {
			insert.Add(v, ins)
		} else {
			insert.Add(v, metric.EveryOther(ins))
		}
	}
	return fig, nil
}

var deleteVariants = []variant.Variant{
	variant.Steroids, variant.SteroidsInt, variant.Memento, variant.MementoExpandable, variant.SNARF,
}

// buildDelete plots the deletion latency against space. Runs for short
// and long ranges are averaged pairwise.
func buildDelete(ctx context.Context, src result.Source) (*Figure, error) {
	lengths := []variant.RangeLength{variant.ShortRange, variant.LongRange}
	budgets := ints(10, 20, 2)

	l := loader{ctx, src, result.DeleteBench}
	fig := newFigure("delete", 1, 1, 1.8, 1.7, deleteVariants)
	fig.LegendColumns = 1
	p := fig.Panels[0][0]
	p.X.Label = spaceLabel
	p.X.Ticks = valueTicks(budgets)
	p.Y.Label = "Delete Latency [ns/op]"
	p.Y.Scale = SymLog
	p.Y.LinThresh = 1
	p.Y.Min = At(0)

	pts := make(map[variant.Variant][]metric.Point)
	for _, rl := range lengths {
		for _, v := range deleteVariants {
			for _, b := range budgets {
				recs, ok, err := l.load(v, b, "unif", string(rl))
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				// A twentieth of the keys is deleted.
				n := recs[0].NKeys() / 20
				last := result.Last(recs)
				pts[v] = append(pts[v], metric.Point{
					X: metric.AdjustedBPK(v, last.BPK()),
					Y: metric.PerOp(last.Get(result.TimeDelete), n),
				})
			}
		}
	}
	for _, v := range deleteVariants {
		p.Add(v, metric.PairedHalfAverage(pts[v]))
	}
	return fig, nil
}

var wiredTigerVariants = []variant.Variant{
	variant.Steroids, variant.SteroidsInt, variant.MementoExpandable, variant.Base,
}

// buildWiredTiger plots end-to-end query latency of a storage engine
// using each filter while its dataset grows.
func buildWiredTiger(ctx context.Context, src result.Source) (*Figure, error) {
	const rl = variant.ShortRange

	l := loader{ctx, src, result.WiredTigerBench}
	fig := newFigure("wiredtiger", 1, 1, 1.8, 1.7, wiredTigerVariants)
	fig.LegendColumns = 1
	p := fig.Panels[0][0]
	p.X.Label = "Dataset Fraction"
	p.X.Scale = Log
	p.X.Ticks = fractionTicks(expansionDoublings)
	p.Y.Label = "End-to-End\n" + latencyLabel
	p.Y.Scale = Log
	p.Notes = append(p.Notes, Note{X: 0.25, Y: 200, Text: rl.Tag()})

	for _, v := range wiredTigerVariants {
		recs, ok, err := l.load(v, budgetFor(v, expansionBudget), "unif", string(rl))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var pts []metric.Point
		for i, rec := range recs[1:] {
			pts = append(pts, metric.Point{
				X: math.Ldexp(1, i-expansionDoublings),
				Y: metric.PerOp(rec.Get(result.TimeQuery), rec.NQueries()),
			})
		}
		p.Add(v, pts)
	}
	return fig, nil
}
