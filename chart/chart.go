// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders figures with gonum/plot.
package chart

import (
	"image/color"
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/divafilter/rfbench/figure"
	"github.com/divafilter/rfbench/metric"
)

// Font sizes, in points.
const (
	titleSize  = 9.5
	labelSize  = 9.5
	tickSize   = 8
	legendFont = 7
	noteSize   = 9.5
)

const (
	lineWidth   = 0.7
	glyphRadius = 2
	// margin is the fraction of the data range added on each side
	// of an axis whose limit is not fixed.
	margin = 0.04
)

func textStyle(size vg.Length) text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		Handler: plot.DefaultTextHandler,
	}
}

// Size returns the size of the rendered figure, including the legend.
func Size(fig *figure.Figure) (w, h vg.Length) {
	w, h = vg.Length(fig.Width)*vg.Inch, vg.Length(fig.Height)*vg.Inch
	lw, lh := legendExtent(fig)
	if rightLegend(fig) {
		w += lw
	} else {
		h += lh
	}
	return w, h
}

// Draw draws fig onto dc.
func Draw(fig *figure.Figure, dc draw.Canvas) (err error) {
	defer func() {
		// gonum/plot reports invalid data by panicking.
		if r := recover(); r != nil {
			err = errors.Errorf("drawing %s: %v", fig.Name, r)
		}
	}()
	if fig.Rows() == 0 || fig.Cols() == 0 {
		return errors.Errorf("figure %s has no panels", fig.Name)
	}
	lw, lh := legendExtent(fig)
	grid := dc
	if legend := fig.Legend(); len(legend) > 0 {
		var area draw.Canvas
		if rightLegend(fig) {
			grid = draw.Crop(dc, 0, -lw, 0, 0)
			area = draw.Crop(dc, dc.Max.X-dc.Min.X-lw, 0, 0, 0)
		} else {
			grid = draw.Crop(dc, 0, 0, 0, -lh)
			area = draw.Crop(dc, 0, 0, dc.Max.Y-dc.Min.Y-lh, 0)
		}
		drawLegend(fig, legend, area)
	}

	plots := make([][]*plot.Plot, fig.Rows())
	for i, row := range fig.Panels {
		plots[i] = make([]*plot.Plot, len(row))
		for j, p := range row {
			plots[i][j] = panelPlot(p)
		}
	}
	tiles := draw.Tiles{
		Rows: fig.Rows(),
		Cols: fig.Cols(),
		PadX: vg.Points(4),
		PadY: vg.Points(4),
	}
	if hasRightLabels(fig) {
		tiles.PadRight = vg.Points(1.5 * labelSize)
	}
	canvases := plot.Align(plots, tiles, grid)
	for i, row := range plots {
		for j, pl := range row {
			pl.Draw(canvases[i][j])
			if lbl := fig.Panels[i][j].RightLabel; lbl != "" {
				drawRightLabel(canvases[i][j], lbl)
			}
		}
	}
	return nil
}

func hasRightLabels(fig *figure.Figure) bool {
	found := false
	fig.Each(func(_, _ int, p *figure.Panel) {
		if p.RightLabel != "" {
			found = true
		}
	})
	return found
}

func drawRightLabel(c draw.Canvas, lbl string) {
	sty := textStyle(labelSize)
	sty.Rotation = -math.Pi / 2
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop
	c.FillText(sty, vg.Point{X: c.Max.X + vg.Points(labelSize/2), Y: (c.Min.Y + c.Max.Y) / 2}, lbl)
}

// panelPlot converts one panel into a plot.
func panelPlot(p *figure.Panel) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.Title.TextStyle.Font.Size = titleSize
	pl.X.Label.Text = p.X.Label
	pl.Y.Label.Text = p.Y.Label
	for _, a := range []*plot.Axis{&pl.X, &pl.Y} {
		a.Label.TextStyle.Font.Size = labelSize
		a.Tick.Label.Font.Size = tickSize
		a.Padding = 0
	}

	bars := make([]*hatchedBar, len(p.Bars))
	for i, b := range p.Bars {
		bars[i] = newHatchedBar(b)
	}
	for _, b := range bars {
		pl.Add(b)
	}

	// Higher z-order series are drawn last, on top.
	series := append([]figure.Series(nil), p.Series...)
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Variant.Style().Z < series[j].Variant.Style().Z
	})
	for _, s := range series {
		line, points := seriesPlotters(s)
		pl.Add(line, points)
	}

	if len(p.Notes) > 0 {
		pl.Add(notes(p.Notes))
	}

	setAxis(&pl.X, p.X)
	setAxis(&pl.Y, p.Y)
	return pl
}

func xys(pts []metric.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i].X, out[i].Y = p.X, p.Y
	}
	return out
}

// seriesPlotters returns the line and markers of s in its variant's
// style.
func seriesPlotters(s figure.Series) (*plotter.Line, *plotter.Scatter) {
	sty := s.Variant.Style()
	data := xys(s.Points)
	line := &plotter.Line{XYs: data}
	line.LineStyle = draw.LineStyle{Color: sty.Color, Width: vg.Points(lineWidth)}
	if sty.Dashed {
		line.LineStyle.Dashes = []vg.Length{vg.Points(1), vg.Points(1.5)}
	}
	points := &plotter.Scatter{XYs: data}
	points.GlyphStyle = draw.GlyphStyle{
		Color:  sty.Color,
		Radius: vg.Points(glyphRadius),
		Shape:  glyphFor(sty.Marker),
	}
	return line, points
}

// notes draws text annotations. Notes do not widen the axes.
type notes []figure.Note

// Plot implements the plot.Plotter interface.
func (ns notes) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, n := range ns {
		size := noteSize
		if n.Small {
			size *= 0.7
		}
		sty := textStyle(vg.Points(size))
		if n.Small {
			sty.XAlign = draw.XCenter
		}
		c.FillText(sty, vg.Point{X: trX(n.X), Y: trY(n.Y)}, n.Text)
	}
}

// setAxis applies scale, ticks and limits to a. It must be called after
// all data has been added, since a's range starts out as the data
// range.
func setAxis(a *plot.Axis, ax figure.Axis) {
	var ticker plot.Ticker
	switch ax.Scale {
	case figure.Log:
		a.Scale = plot.LogScale{}
		ticker = plot.LogTicks{Prec: -1}
	case figure.SymLog:
		t := ax.LinThresh
		if t <= 0 {
			t = 1
		}
		a.Scale = symLogScale{thresh: t}
		ticker = symLogTicks{thresh: t}
	default:
		a.Scale = plot.LinearScale{}
		ticker = plot.DefaultTicks{}
	}
	if ax.Ticks != nil {
		ts := make(plot.ConstantTicks, len(ax.Ticks))
		for i, t := range ax.Ticks {
			ts[i] = plot.Tick{Value: t.Value, Label: t.Label}
		}
		ticker = ts
	}
	if ax.HideTickLabels {
		ticker = unlabeled{ticker}
	}
	a.Tick.Marker = ticker

	lo, hi := a.Min, a.Max
	hasData := lo <= hi && !math.IsInf(lo, 0) && !math.IsInf(hi, 0)
	if !hasData {
		lo, hi = defaultRange(ax)
	} else {
		lo, hi = pad(ax.Scale, lo, hi)
	}
	if ax.Min.Set {
		lo = ax.Min.V
	}
	if ax.Max.Set {
		hi = ax.Max.V
	}
	if ax.Scale == figure.Log {
		if lo <= 0 {
			lo = hi / 10
		}
		if hi <= 0 {
			lo, hi = 1, 10
		}
	}
	if lo >= hi {
		if ax.Scale == figure.Log {
			lo, hi = lo/2, lo*2
		} else {
			lo, hi = lo-1, lo+1
		}
	}
	a.Min, a.Max = lo, hi
}

// defaultRange is the range of an axis without data: its fixed ticks,
// or the unit interval.
func defaultRange(ax figure.Axis) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, t := range ax.Ticks {
		if ax.Scale == figure.Log && t.Value <= 0 {
			continue
		}
		lo, hi = math.Min(lo, t.Value), math.Max(hi, t.Value)
	}
	if lo < hi {
		return lo, hi
	}
	if ax.Scale == figure.Log {
		return 1, 10
	}
	return 0, 1
}

// pad widens [lo, hi] by margin on each side in the axis' own scale.
func pad(s figure.Scale, lo, hi float64) (float64, float64) {
	switch s {
	case figure.Log:
		if lo <= 0 || hi <= 0 {
			return lo, hi
		}
		f := math.Pow(hi/lo, margin)
		if f == 1 {
			f = 1.5
		}
		return lo / f, hi * f
	case figure.SymLog:
		return lo, hi * (1 + margin)
	}
	d := (hi - lo) * margin
	if d == 0 {
		d = math.Max(math.Abs(lo)*margin, margin)
	}
	return lo - d, hi + d
}
