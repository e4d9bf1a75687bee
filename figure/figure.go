// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package figure builds the comparison figures of the range filter
// benchmarks from result files.
//
// A Figure is a renderer-independent description: a grid of panels,
// each holding per-variant series or bars, plus axis scales, ticks and
// limits. Package chart draws Figures.
package figure

import (
	"fmt"
	"math"

	"github.com/divafilter/rfbench/metric"
	"github.com/divafilter/rfbench/variant"
)

// A Scale is an axis scale.
type Scale int

const (
	Linear Scale = iota
	Log
	// SymLog is linear within LinThresh of zero and logarithmic
	// beyond it, so zero and negative values remain plottable.
	SymLog
)

func (s Scale) String() string {
	switch s {
	case Linear:
		return "linear"
	case Log:
		return "log"
	case SymLog:
		return "symlog"
	}
	return fmt.Sprintf("Scale(%d)", int(s))
}

// A Bound is an optional axis limit.
type Bound struct {
	V   float64
	Set bool
}

// At returns a Bound fixed at v.
func At(v float64) Bound { return Bound{V: v, Set: true} }

// A Tick is a labeled major tick.
type Tick struct {
	Value float64
	Label string
}

// An Axis describes one axis of a panel.
type Axis struct {
	Label string
	Scale Scale
	// LinThresh is the half-width of the linear region of a
	// SymLog axis.
	LinThresh float64
	Min, Max  Bound
	// Ticks fixes the major ticks. If nil the renderer chooses.
	Ticks []Tick
	// HideTickLabels suppresses tick labels for axes shared with
	// a neighboring panel.
	HideTickLabels bool
}

// Admits reports whether v can be placed on the axis. Log axes cannot
// show non-positive values; no axis can show NaN or infinities.
func (a *Axis) Admits(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return a.Scale != Log || v > 0
}

// A Series is the line of one variant in a panel.
type Series struct {
	Variant variant.Variant
	Points  []metric.Point
}

// A Bar is one bar of a bar chart panel. X is the bar's center and
// Base its bottom, both in data coordinates.
type Bar struct {
	Variant variant.Variant
	X       float64
	Width   float64
	Base    float64
	Height  float64
	// Light bars are drawn with a lighter fill; they stack a
	// secondary component on top of a primary bar.
	Light bool
}

// Top is the data coordinate of the top of b.
func (b Bar) Top() float64 { return b.Base + b.Height }

// A Note is a text annotation at a data coordinate.
type Note struct {
	X, Y float64
	Text string
	// Small notes use a reduced font.
	Small bool
}

// A Panel is one set of axes in a figure grid.
type Panel struct {
	Title string
	// RightLabel is drawn along the right edge, outside the axes.
	RightLabel string
	X, Y       Axis
	Series     []Series
	Bars       []Bar
	Notes      []Note
}

// Add adds the series of v to p, dropping points that p's axes cannot
// show. Axis scales must be set before calling Add. Series that end up
// empty are not added.
func (p *Panel) Add(v variant.Variant, pts []metric.Point) {
	kept := make([]metric.Point, 0, len(pts))
	for _, pt := range pts {
		if p.X.Admits(pt.X) && p.Y.Admits(pt.Y) {
			kept = append(kept, pt)
		}
	}
	if len(kept) == 0 {
		return
	}
	p.Series = append(p.Series, Series{Variant: v, Points: kept})
}

// AddBar adds a bar. Bars of zero height are dropped.
func (p *Panel) AddBar(b Bar) {
	if b.Height <= 0 || !p.Y.Admits(b.Top()) {
		return
	}
	p.Bars = append(p.Bars, b)
}

// Empty reports whether p has nothing to draw.
func (p *Panel) Empty() bool {
	return len(p.Series) == 0 && len(p.Bars) == 0
}

// A Figure is a named grid of panels sharing one legend.
type Figure struct {
	Name string
	// Width and Height are the output size in inches.
	Width, Height float64
	// Panels is the grid, indexed [row][column].
	Panels [][]*Panel
	// Variants lists the variants in legend order.
	Variants []variant.Variant
	// LegendColumns is the number of legend columns. Zero means one
	// row holding every entry.
	LegendColumns int
	// BarLegend draws legend entries as filled, hatched swatches.
	BarLegend bool
}

// newFigure returns a figure with a rows×cols grid of empty panels.
func newFigure(name string, rows, cols int, width, height float64, vs []variant.Variant) *Figure {
	f := &Figure{Name: name, Width: width, Height: height, Variants: vs}
	f.Panels = make([][]*Panel, rows)
	for i := range f.Panels {
		f.Panels[i] = make([]*Panel, cols)
		for j := range f.Panels[i] {
			f.Panels[i][j] = new(Panel)
		}
	}
	return f
}

// Rows returns the number of rows in f's grid.
func (f *Figure) Rows() int { return len(f.Panels) }

// Cols returns the number of columns in f's grid.
func (f *Figure) Cols() int {
	if len(f.Panels) == 0 {
		return 0
	}
	return len(f.Panels[0])
}

// Each calls fn for every panel of f in row-major order.
func (f *Figure) Each(fn func(row, col int, p *Panel)) {
	for i, row := range f.Panels {
		for j, p := range row {
			fn(i, j, p)
		}
	}
}

// A LegendEntry is one line of a figure legend.
type LegendEntry struct {
	Label   string
	Variant variant.Variant
}

// Legend returns the legend of f: in the order of f.Variants, one
// entry per distinct label among the variants that have at least one
// point or bar in some panel. Variants sharing a label, such as the
// fixed and expandable configurations of one filter, share an entry.
func (f *Figure) Legend() []LegendEntry {
	drawn := make(map[variant.Variant]bool)
	f.Each(func(_, _ int, p *Panel) {
		for _, s := range p.Series {
			drawn[s.Variant] = true
		}
		for _, b := range p.Bars {
			drawn[b.Variant] = true
		}
	})
	var out []LegendEntry
	seen := make(map[string]bool)
	for _, v := range f.Variants {
		label := v.Style().Label
		if !drawn[v] || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, LegendEntry{Label: label, Variant: v})
	}
	return out
}

// NumSeries returns the number of series and bars in f.
func (f *Figure) NumSeries() int {
	n := 0
	f.Each(func(_, _ int, p *Panel) {
		n += len(p.Series) + len(p.Bars)
	})
	return n
}
