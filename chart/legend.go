// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/divafilter/rfbench/figure"
)

var (
	thumbWidth    = vg.Points(14)
	legendPadding = vg.Points(2)
	legendGap     = vg.Points(8)
)

// rightLegend reports whether fig's legend is a single column to the
// right of the grid. Otherwise it is a strip above the grid.
func rightLegend(fig *figure.Figure) bool {
	return fig.LegendColumns == 1
}

func legendColumns(fig *figure.Figure, n int) int {
	cols := fig.LegendColumns
	if cols <= 0 || cols > n {
		cols = n
	}
	return cols
}

// legendExtent returns the width and height of fig's legend.
func legendExtent(fig *figure.Figure) (w, h vg.Length) {
	entries := fig.Legend()
	if len(entries) == 0 {
		return 0, 0
	}
	cols := legendColumns(fig, len(entries))
	rows := (len(entries) + cols - 1) / cols
	colW, entH := legendCell(entries)
	w = vg.Length(cols) * colW
	h = vg.Length(rows)*(entH+legendPadding) + 2*legendPadding
	return w, h
}

// legendCell returns the size of the widest legend entry.
func legendCell(entries []figure.LegendEntry) (w, h vg.Length) {
	sty := textStyle(legendFont)
	for _, e := range entries {
		r := sty.Rectangle(" " + e.Label)
		w = max(w, thumbWidth+r.Max.X+legendGap)
		h = max(h, r.Max.Y)
	}
	return w, h
}

// drawLegend lays entries out row by row in fig's columns, centered
// horizontally in area.
func drawLegend(fig *figure.Figure, entries []figure.LegendEntry, area draw.Canvas) {
	cols := legendColumns(fig, len(entries))
	colW, _ := legendCell(entries)
	x0 := area.Min.X + (area.Max.X-area.Min.X-vg.Length(cols)*colW)/2
	if x0 < area.Min.X {
		x0 = area.Min.X
	}
	for k := 0; k < cols; k++ {
		l := plot.NewLegend()
		l.TextStyle = textStyle(legendFont)
		l.Top = true
		l.Left = true
		l.Padding = legendPadding
		l.ThumbnailWidth = thumbWidth
		l.YPosition = draw.PosCenter
		for i := k; i < len(entries); i += cols {
			l.Add(entries[i].Label, thumbnails(fig, entries[i])...)
		}
		c := area
		c.Min.X = x0 + vg.Length(k)*colW
		c.Max.X = c.Min.X + colW
		c.Max.Y -= legendPadding
		l.Draw(c)
	}
}

func thumbnails(fig *figure.Figure, e figure.LegendEntry) []plot.Thumbnailer {
	if fig.BarLegend {
		return []plot.Thumbnailer{newHatchedBar(figure.Bar{Variant: e.Variant})}
	}
	line, points := seriesPlotters(figure.Series{Variant: e.Variant})
	return []plot.Thumbnailer{line, points}
}
