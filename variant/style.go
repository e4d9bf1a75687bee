// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import (
	"image/color"
	"strings"
)

// A Marker is the glyph shape drawn at each data point of a series.
type Marker int

const (
	MarkerCircle Marker = iota
	MarkerSquare
	MarkerDiamond
	MarkerTriangleUp
	MarkerTriangleDown
	MarkerTriangleRight
	MarkerTriRight // three-pronged star pointing right
	MarkerPlus
	MarkerCross
	MarkerHeavyCross
)

// Style is how a variant is drawn in line charts and legends.
type Style struct {
	Label  string
	Marker Marker
	Color  color.Color
	// Dashed series are drawn with a dotted line.
	Dashed bool
	// Z orders overlapping series; higher values are drawn last.
	Z int
}

// A Hatch is a bar fill pattern. Each character selects a stroke
// family and repeating a character increases its density:
//
//	/  diagonal      \  anti-diagonal   -  horizontal   |  vertical
//	x  both diagonals  +  grid  .  dots  o, O  small and large rings
//	*  stars
type Hatch string

// Density returns h with every stroke repeated n times.
func (h Hatch) Density(n int) Hatch {
	if n <= 1 {
		return h
	}
	var b strings.Builder
	for _, r := range h {
		b.WriteString(strings.Repeat(string(r), n))
	}
	return Hatch(b.String())
}

// Colors follow the matplotlib palette the published figures used.
var (
	fuchsia   = color.RGBA{0xff, 0x00, 0xff, 0xff}
	teal      = color.RGBA{0x00, 0x80, 0x80, 0xff}
	dimGray   = color.RGBA{0x69, 0x69, 0x69, 0xff}
	darkKhaki = color.RGBA{0xbd, 0xb7, 0x6b, 0xff}
	black     = color.RGBA{0x00, 0x00, 0x00, 0xff}
	tabOrange = color.RGBA{0xff, 0x7f, 0x0e, 0xff} // C1
	tabGreen  = color.RGBA{0x2c, 0xa0, 0x2c, 0xff} // C2
	tabPurple = color.RGBA{0x94, 0x67, 0xbd, 0xff} // C4
	tabBrown  = color.RGBA{0x8c, 0x56, 0x4b, 0xff} // C5
)

var styles = [numVariants]Style{
	SteroidsInt:       {Label: "Diva (Int)", Marker: MarkerTriangleDown, Color: fuchsia, Z: 12},
	Steroids:          {Label: "Diva", Marker: MarkerTriangleDown, Color: fuchsia, Z: 12, Dashed: true},
	Memento:           {Label: "Memento", Marker: MarkerTriRight, Color: tabOrange, Z: 11},
	MementoExpandable: {Label: "Memento", Marker: MarkerTriRight, Color: tabOrange, Z: 11},
	Grafite:           {Label: "Grafite", Marker: MarkerCircle, Color: teal},
	Base:              {Label: "Baseline", Marker: MarkerCross, Color: dimGray, Z: 10},
	SNARF:             {Label: "SNARF", Marker: MarkerTriangleUp, Color: black},
	Oasis:             {Label: "Oasis+", Marker: MarkerPlus, Color: darkKhaki},
	SuRF:              {Label: "SuRF", Marker: MarkerSquare, Color: tabGreen},
	Proteus:           {Label: "Proteus", Marker: MarkerHeavyCross, Color: dimGray},
	ProteusMistuned:   {Label: "Proteus (Diff. Tune)", Marker: MarkerHeavyCross, Color: dimGray, Dashed: true},
	Rosetta:           {Label: "Rosetta", Marker: MarkerDiamond, Color: tabPurple},
	REncoder:          {Label: "REncoder", Marker: MarkerTriangleRight, Color: tabBrown},
}

var hatches = [numVariants]Hatch{
	SteroidsInt:       "",
	Steroids:          "...",
	Memento:           "///",
	MementoExpandable: "///",
	Grafite:           `\\\`,
	Base:              "|",
	SNARF:             "---",
	Oasis:             "++++",
	SuRF:              "xxx",
	Proteus:           "o",
	ProteusMistuned:   "o",
	Rosetta:           "O",
	REncoder:          "*",
}

// DatasetName returns the display name of a workload distribution,
// falling back to the workload name itself.
func DatasetName(workload string) string {
	switch workload {
	case "unif":
		return "Uniform"
	case "norm":
		return "Normal"
	case "corr":
		return "Correlated"
	case "real":
		return "Real"
	case "books":
		return "Books"
	case "osm":
		return "OSM"
	case "fb":
		return "FB"
	}
	return workload
}

// RangeLength names the query range lengths used by the latency and
// expansion benchmarks.
type RangeLength string

const (
	Point      RangeLength = "point"
	ShortRange RangeLength = "short"
	LongRange  RangeLength = "long"
)

// Name is the long display name, such as "Range (R=2^10)".
func (r RangeLength) Name() string {
	switch r {
	case Point:
		return "Point"
	case ShortRange:
		return "Range (R=2^10)"
	case LongRange:
		return "Range (R=2^20)"
	}
	return string(r)
}

// Tag is the short in-panel annotation, such as "R=2^10".
func (r RangeLength) Tag() string {
	switch r {
	case ShortRange:
		return "R=2^10"
	case LongRange:
		return "R=2^20"
	}
	return string(r)
}
