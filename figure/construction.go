// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"context"
	"strconv"

	"github.com/divafilter/rfbench/metric"
	"github.com/divafilter/rfbench/result"
	"github.com/divafilter/rfbench/variant"
)

// Bar layout of the construction figure, in data units.
const (
	barWidth   = 0.1
	groupWidth = 1.1
	constrYMax = 600
)

var constructionVariants = []variant.Variant{
	variant.Steroids, variant.SteroidsInt, variant.Memento, variant.Grafite, variant.SuRF,
	variant.Rosetta, variant.Proteus, variant.REncoder, variant.SNARF, variant.Oasis,
}

// buildConstruction draws grouped bars of the construction time per
// key for growing key counts. Filters that train a model before
// building report the training time separately; it is stacked on top
// in a lighter shade. Bars that exceed the axis are labeled with their
// height.
func buildConstruction(ctx context.Context, src result.Source) (*Figure, error) {
	logKeys := []int{6, 7, 8, 9}
	const budget = 16

	l := loader{ctx, src, result.ConstructionBench}
	fig := newFigure("construction", 1, 1, 2.8, 2.1, constructionVariants)
	fig.LegendColumns = 1
	fig.BarLegend = true
	p := fig.Panels[0][0]
	p.X.Label = "Number of Keys"
	p.X.Min, p.X.Max = At(-barWidth), At(groupWidth*float64(len(logKeys)-1)+barWidth*float64(len(constructionVariants)))
	for i, n := range logKeys {
		p.X.Ticks = append(p.X.Ticks, Tick{
			Value: groupWidth*float64(i) + 4.5*barWidth,
			Label: "10^" + strconv.Itoa(n),
		})
	}
	p.Y.Label = "Construction Time [ns/key]"
	p.Y.Min, p.Y.Max = At(0), At(constrYMax)

	for i, n := range logKeys {
		for j, v := range constructionVariants {
			recs, ok, err := l.load(v, budget, "unif", strconv.Itoa(n))
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			first := recs[0]
			x := groupWidth*float64(i) + barWidth*float64(j)
			build := metric.PerOp(first.Get(result.ConstructionTime), first.NKeys())
			top := build
			p.AddBar(Bar{Variant: v, X: x, Width: barWidth, Height: build})
			if first.Has(result.ModelingTime) {
				model := metric.PerOp(first.Get(result.ModelingTime), first.NKeys())
				p.AddBar(Bar{Variant: v, X: x, Width: barWidth, Base: build, Height: model, Light: true})
				top += model
			}
			if top > constrYMax {
				p.Notes = append(p.Notes, Note{
					X:     x,
					Y:     0.94 * constrYMax,
					Text:  strconv.FormatFloat(top, 'f', 1, 64),
					Small: true,
				})
			}
		}
	}
	return fig, nil
}
