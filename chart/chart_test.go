// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"context"
	"math"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/divafilter/rfbench/figure"
	"github.com/divafilter/rfbench/metric"
	"github.com/divafilter/rfbench/variant"
)

func testFigure() *figure.Figure {
	fpr := &figure.Panel{
		Title: "Uniform",
		X:     figure.Axis{Label: "Range size", Scale: figure.Log},
		Y:     figure.Axis{Label: "FPR", Scale: figure.Log, Max: figure.At(1.9)},
	}
	fpr.Add(variant.Grafite, []metric.Point{{X: 1, Y: 1e-4}, {X: 32, Y: 3e-3}, {X: 1024, Y: 0.02}})
	fpr.Add(variant.Steroids, []metric.Point{{X: 1, Y: 0}, {X: 32, Y: 1e-3}})
	empty := &figure.Panel{
		Title: "Normal",
		X:     figure.Axis{Scale: figure.Log},
		Y:     figure.Axis{Scale: figure.Log, HideTickLabels: true},
	}
	bars := &figure.Panel{
		RightLabel: "16 BPK",
		Y:          figure.Axis{Label: "Time [ms]", Min: figure.At(0), Max: figure.At(600)},
	}
	bars.AddBar(figure.Bar{Variant: variant.Proteus, X: 0.45, Width: 0.1, Height: 120})
	bars.AddBar(figure.Bar{Variant: variant.Proteus, X: 0.45, Width: 0.1, Base: 120, Height: 900, Light: true})
	bars.Notes = []figure.Note{{X: 0.45, Y: 564, Text: "1020.0", Small: true}}
	return &figure.Figure{
		Name:     "test",
		Width:    5,
		Height:   2,
		Panels:   [][]*figure.Panel{{fpr, empty, bars}},
		Variants: []variant.Variant{variant.Grafite, variant.SuRF, variant.Steroids, variant.Proteus},
	}
}

func TestSaveFormats(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := &Saver{FS: fs, Dir: "/out/figures", Formats: Formats, DPI: 72}
	fig := testFigure()
	require.NoError(t, s.Render(context.Background(), fig))
	for _, sfx := range Formats {
		data, err := afero.ReadFile(fs, s.Path(fig, sfx))
		require.NoError(t, err, sfx)
		assert.NotEmpty(t, data, sfx)
	}
}

func TestLegendShowsDrawnVariants(t *testing.T) {
	fig := testFigure()
	w, h := Size(fig)
	can := vgsvg.NewWith(vgsvg.UseWH(w, h), vgsvg.EmbedFonts(false))
	require.NoError(t, Draw(fig, draw.New(can)))

	fs := afero.NewMemMapFs()
	f, err := fs.Create("/test.svg")
	require.NoError(t, err)
	_, err = can.WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	svg, err := afero.ReadFile(fs, "/test.svg")
	require.NoError(t, err)

	assert.Contains(t, string(svg), ">Grafite<")
	assert.Contains(t, string(svg), ">Diva<")
	assert.Contains(t, string(svg), ">Proteus<")
	assert.NotContains(t, string(svg), ">SuRF<")
}

func TestSaveUnknownFormat(t *testing.T) {
	s := &Saver{FS: afero.NewMemMapFs(), Dir: "/out", Formats: []string{"eps"}}
	assert.ErrorContains(t, s.Render(context.Background(), testFigure()), "eps")
}

func TestDrawNoPanels(t *testing.T) {
	can := vgsvg.New(100, 100)
	assert.Error(t, Draw(&figure.Figure{Name: "none"}, draw.New(can)))
}

func TestSymLog(t *testing.T) {
	s := symLogScale{thresh: 1}
	assert.Equal(t, 0.0, s.Normalize(0, 1000, 0))
	assert.InDelta(t, 0.25, s.Normalize(0, 1000, 1), 1e-12)
	assert.InDelta(t, 0.125, s.Normalize(0, 1000, 0.5), 1e-12)
	assert.InDelta(t, 1, s.Normalize(0, 1000, 1000), 1e-12)

	var labels []string
	for _, tk := range (symLogTicks{thresh: 1}).Ticks(0, 1500) {
		labels = append(labels, tk.Label)
	}
	assert.Equal(t, []string{"0", "1", "10", "10^2", "10^3"}, labels)
}

func TestSetAxisEmptyLog(t *testing.T) {
	p := testFigure().Panels[0][1]
	pl := panelPlot(p)
	assert.Equal(t, 1.0, pl.X.Min)
	assert.Equal(t, 10.0, pl.X.Max)
	for _, tk := range pl.Y.Tick.Marker.Ticks(pl.Y.Min, pl.Y.Max) {
		assert.Empty(t, tk.Label)
	}
}

func TestSetAxisLimits(t *testing.T) {
	pl := panelPlot(testFigure().Panels[0][0])
	assert.Equal(t, 1.9, pl.Y.Max)
	// Zero FPR cannot be drawn on the log axis and was dropped.
	assert.InDelta(t, 1e-4, pl.Y.Min, 1e-4)
	assert.Greater(t, pl.Y.Min, 0.0)
	assert.False(t, math.IsInf(pl.X.Max, 0))
}

func TestGlyphs(t *testing.T) {
	for m := variant.MarkerCircle; m <= variant.MarkerHeavyCross; m++ {
		assert.NotNil(t, glyphFor(m), "marker %d", m)
	}
}
