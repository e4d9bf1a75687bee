// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/divafilter/rfbench/figure"
	"github.com/divafilter/rfbench/variant"
)

// Fill opacities of primary and stacked (light) bars.
const (
	barAlpha   = 0.7
	lightAlpha = 0.25
)

// hatchDensity multiplies every hatch pattern in bar charts.
const hatchDensity = 2

// hatchedBar is a Plotter drawing one bar filled with a translucent
// color and a hatch pattern.
type hatchedBar struct {
	figure.Bar
	color color.Color
	hatch variant.Hatch
}

func newHatchedBar(b figure.Bar) *hatchedBar {
	return &hatchedBar{
		Bar:   b,
		color: b.Variant.Style().Color,
		hatch: b.Variant.Hatch().Density(hatchDensity),
	}
}

func (b *hatchedBar) alpha() float64 {
	if b.Light {
		return lightAlpha
	}
	return barAlpha
}

// Plot implements the plot.Plotter interface.
func (b *hatchedBar) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	r := vg.Rectangle{
		Min: vg.Point{X: trX(b.X - b.Width/2), Y: trY(b.Base)},
		Max: vg.Point{X: trX(b.X + b.Width/2), Y: trY(b.Top())},
	}
	// Bars taller than the axis are cut at its top.
	if r.Max.Y > c.Max.Y {
		r.Max.Y = c.Max.Y
	}
	if r.Min.Y < c.Min.Y {
		r.Min.Y = c.Min.Y
	}
	if r.Max.Y <= r.Min.Y {
		return
	}
	fillHatched(c, r, b.color, b.alpha(), b.hatch)
}

// DataRange implements the plot.DataRanger interface.
func (b *hatchedBar) DataRange() (xmin, xmax, ymin, ymax float64) {
	return b.X - b.Width/2, b.X + b.Width/2, b.Base, b.Top()
}

// Thumbnail implements the plot.Thumbnailer interface.
func (b *hatchedBar) Thumbnail(c *draw.Canvas) {
	fillHatched(*c, c.Rectangle, b.color, barAlpha, b.hatch.Density(2))
}

func withAlpha(clr color.Color, a float64) color.Color {
	r, g, bl, _ := clr.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a * 0xff)}
}

// hatchSpacing is the distance between strokes of a single hatch
// character.
var hatchSpacing = vg.Points(8)

// fillHatched fills r with clr at opacity alpha, draws the hatch
// pattern h over it in the opaque color, and outlines r.
func fillHatched(c draw.Canvas, r vg.Rectangle, clr color.Color, alpha float64, h variant.Hatch) {
	sub := draw.Canvas{Canvas: c.Canvas, Rectangle: r}
	pts := []vg.Point{r.Min, {X: r.Max.X, Y: r.Min.Y}, r.Max, {X: r.Min.X, Y: r.Max.Y}}
	sub.FillPolygon(withAlpha(clr, alpha), pts)

	stroke := draw.LineStyle{Color: withAlpha(clr, 1), Width: vg.Points(0.3)}
	for _, fam := range []rune{'/', '\\', '-', '|', 'x', '+', '.', 'o', 'O', '*'} {
		n := strings.Count(string(h), string(fam))
		if n == 0 {
			continue
		}
		step := hatchSpacing / vg.Length(n)
		switch fam {
		case '/':
			diagonals(sub, stroke, step, 1)
		case '\\':
			diagonals(sub, stroke, step, -1)
		case 'x':
			diagonals(sub, stroke, step, 1)
			diagonals(sub, stroke, step, -1)
		case '-':
			for y := r.Min.Y + step/2; y < r.Max.Y; y += step {
				sub.StrokeLine2(stroke, r.Min.X, y, r.Max.X, y)
			}
		case '|':
			for x := r.Min.X + step/2; x < r.Max.X; x += step {
				sub.StrokeLine2(stroke, x, r.Min.Y, x, r.Max.Y)
			}
		case '+':
			for y := r.Min.Y + step/2; y < r.Max.Y; y += step {
				sub.StrokeLine2(stroke, r.Min.X, y, r.Max.X, y)
			}
			for x := r.Min.X + step/2; x < r.Max.X; x += step {
				sub.StrokeLine2(stroke, x, r.Min.Y, x, r.Max.Y)
			}
		case '.':
			dots(sub, step, draw.GlyphStyle{Color: stroke.Color, Radius: vg.Points(0.4), Shape: draw.CircleGlyph{}})
		case 'o':
			dots(sub, step, draw.GlyphStyle{Color: stroke.Color, Radius: step / 5, Shape: draw.RingGlyph{}})
		case 'O':
			dots(sub, step, draw.GlyphStyle{Color: stroke.Color, Radius: step / 3, Shape: draw.RingGlyph{}})
		case '*':
			dots(sub, step, draw.GlyphStyle{Color: stroke.Color, Radius: step / 4, Shape: star{}})
		}
	}
	sub.StrokeLines(draw.LineStyle{Color: withAlpha(clr, 1), Width: vg.Points(0.5)}, append(pts, pts[0]))
}

// diagonals strokes parallel lines of slope dir across c, clipped to c.
func diagonals(c draw.Canvas, sty draw.LineStyle, step vg.Length, dir vg.Length) {
	w, h := c.Max.X-c.Min.X, c.Max.Y-c.Min.Y
	for off := -h; off < w; off += step {
		var line []vg.Point
		if dir > 0 {
			line = []vg.Point{
				{X: c.Min.X + off, Y: c.Min.Y},
				{X: c.Min.X + off + h, Y: c.Max.Y},
			}
		} else {
			line = []vg.Point{
				{X: c.Min.X + off, Y: c.Max.Y},
				{X: c.Min.X + off + h, Y: c.Min.Y},
			}
		}
		c.StrokeLines(sty, c.ClipLinesXY(line)...)
	}
}

// dots draws sty on a staggered grid across c.
func dots(c draw.Canvas, step vg.Length, sty draw.GlyphStyle) {
	row := 0
	for y := c.Min.Y + step/2; y < c.Max.Y; y += step {
		x0 := c.Min.X + step/2
		if row%2 == 1 {
			x0 += step / 2
		}
		for x := x0; x < c.Max.X; x += step {
			c.DrawGlyph(sty, vg.Point{X: x, Y: y})
		}
		row++
	}
}

// star draws a six-pointed asterisk.
type star struct{}

// DrawGlyph implements the Glyph interface.
func (star) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(0.3)})
	for _, deg := range []float64{90, 210, 330} {
		p := make(vg.Path, 0, 2)
		p.Move(polar(pt, sty.Radius, deg))
		p.Line(polar(pt, sty.Radius, deg+180))
		c.Stroke(p)
	}
}
