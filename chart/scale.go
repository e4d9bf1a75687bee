// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// symLogScale is linear within thresh of zero and logarithmic outside.
type symLogScale struct {
	thresh float64
}

var _ plot.Normalizer = symLogScale{}

func (s symLogScale) transform(x float64) float64 {
	if math.Abs(x) <= s.thresh {
		return x / s.thresh
	}
	return math.Copysign(1+math.Log10(math.Abs(x)/s.thresh), x)
}

// Normalize implements plot.Normalizer.
func (s symLogScale) Normalize(min, max, x float64) float64 {
	lo, hi := s.transform(min), s.transform(max)
	return (s.transform(x) - lo) / (hi - lo)
}

// symLogTicks marks zero and every power of ten beyond the linear
// region.
type symLogTicks struct {
	thresh float64
}

// Ticks implements plot.Ticker.
func (t symLogTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	if min <= 0 && max >= 0 {
		ticks = append(ticks, plot.Tick{Value: 0, Label: "0"})
	}
	for e := int(math.Ceil(math.Log10(t.thresh))); ; e++ {
		v := math.Pow10(e)
		if v > max || e > 308 {
			break
		}
		if v >= min {
			ticks = append(ticks, plot.Tick{Value: v, Label: decadeLabel(e)})
		}
	}
	return ticks
}

func decadeLabel(e int) string {
	switch e {
	case 0:
		return "1"
	case 1:
		return "10"
	}
	return "10^" + strconv.Itoa(e)
}

// unlabeled drops the labels of a Ticker's major ticks, for axes that
// share their labels with a neighboring panel.
type unlabeled struct {
	plot.Ticker
}

// Ticks implements plot.Ticker.
func (u unlabeled) Ticks(min, max float64) []plot.Tick {
	ts := u.Ticker.Ticks(min, max)
	out := make([]plot.Tick, len(ts))
	for i, t := range ts {
		out[i] = plot.Tick{Value: t.Value}
	}
	return out
}
