// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/divafilter/rfbench/variant"
)

const cosπover4 = vg.Length(.707106781202420)

// glyphFor returns the glyph drawing marker m. Markers are drawn as
// outlines so that overlapping series stay readable.
func glyphFor(m variant.Marker) draw.GlyphDrawer {
	switch m {
	case variant.MarkerCircle:
		return draw.RingGlyph{}
	case variant.MarkerSquare:
		return draw.SquareGlyph{}
	case variant.MarkerDiamond:
		return polygonGlyph{0, 90, 180, 270}
	case variant.MarkerTriangleUp:
		return polygonGlyph{90, 210, 330}
	case variant.MarkerTriangleDown:
		return polygonGlyph{270, 30, 150}
	case variant.MarkerTriangleRight:
		return polygonGlyph{0, 120, 240}
	case variant.MarkerTriRight:
		return TriRight{}
	case variant.MarkerPlus:
		return draw.PlusGlyph{}
	case variant.MarkerCross:
		return draw.CrossGlyph{}
	case variant.MarkerHeavyCross:
		return HeavyCross{}
	}
	return draw.RingGlyph{}
}

// HeavyCross is a glyph that draws a big X.
// Unlike draw.CrossGlyph, this version draws a heavier X.
type HeavyCross struct{}

// DrawGlyph implements the Glyph interface.
func (HeavyCross) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1.5)})
	r := sty.Radius * cosπover4
	p := make(vg.Path, 0, 2)
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
	c.Stroke(p)
	p = p[:0]
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
	c.Stroke(p)
}

// TriRight draws three spokes from the center, one pointing right.
type TriRight struct{}

// DrawGlyph implements the Glyph interface.
func (TriRight) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1)})
	for _, deg := range []float64{0, 120, 240} {
		p := make(vg.Path, 0, 2)
		p.Move(pt)
		p.Line(polar(pt, sty.Radius, deg))
		c.Stroke(p)
	}
}

// polygonGlyph draws the outline of a regular polygon whose vertices
// lie on the glyph's radius at the given angles, in degrees.
type polygonGlyph []float64

// DrawGlyph implements the Glyph interface.
func (g polygonGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(0.75)})
	p := make(vg.Path, 0, len(g)+1)
	for i, deg := range g {
		v := polar(pt, sty.Radius, deg)
		if i == 0 {
			p.Move(v)
		} else {
			p.Line(v)
		}
	}
	p.Close()
	c.Stroke(p)
}

func polar(center vg.Point, r vg.Length, deg float64) vg.Point {
	rad := deg * math.Pi / 180
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(rad)),
		Y: center.Y + r*vg.Length(math.Sin(rad)),
	}
}
