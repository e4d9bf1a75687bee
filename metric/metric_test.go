// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metric

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/divafilter/rfbench/variant"
)

func TestPerOp(t *testing.T) {
	check := func(total, count, want float64) {
		t.Helper()
		if got := PerOp(total, count); got != want {
			t.Errorf("PerOp(%v, %v) = %v, want %v", total, count, got, want)
		}
	}
	check(2, 1000, 2000)
	check(0.5, 1e6, 0.5)
	check(10, 0, 0)
}

func TestBudget(t *testing.T) {
	adj := AdjustedBPK(variant.Steroids, 11)
	if adj != 10 {
		t.Fatalf("AdjustedBPK(steroids, 11) = %v, want 10", adj)
	}
	if !WithinBudget(adj, 10) {
		t.Errorf("adjusted 10 rejected at budget 10")
	}
	if WithinBudget(adj, 8) {
		t.Errorf("adjusted 10 admitted at budget 8")
	}
	if WithinBudget(AdjustedBPK(variant.Grafite, 11), 10) {
		t.Errorf("grafite at 11 bpk admitted at budget 10")
	}
	if !WithinBudget(AdjustedBPK(variant.Grafite, 10.9), 10) {
		t.Errorf("grafite at 10.9 bpk rejected at budget 10")
	}
}

func TestPairedHalfAverage(t *testing.T) {
	var pts []Point
	for i := 0; i < 10; i++ {
		pts = append(pts, Point{X: float64(i), Y: float64(i * i)})
	}
	got := PairedHalfAverage(pts)
	if len(got) != 5 {
		t.Fatalf("got %d points, want 5", len(got))
	}
	for i, p := range got {
		want := Point{X: float64(i), Y: (pts[i].Y + pts[i+5].Y) / 2}
		if p != want {
			t.Errorf("point %d = %+v, want %+v", i, p, want)
		}
	}

	if got := PairedHalfAverage([]Point{{1, 2}, {3, 4}, {5, 6}}); !cmp.Equal(got, []Point{{1, 3}}) {
		t.Errorf("odd length: got %v", got)
	}
	if got := PairedHalfAverage(nil); len(got) != 0 {
		t.Errorf("empty: got %v", got)
	}
}

func TestEveryOther(t *testing.T) {
	pts := []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}
	want := []Point{{0, 0}, {2, 2}, {4, 4}}
	if diff := cmp.Diff(want, EveryOther(pts)); diff != "" {
		t.Errorf("EveryOther (-want +got):\n%s", diff)
	}
}

func TestDatasetFraction(t *testing.T) {
	check := func(j int, want float64) {
		t.Helper()
		if got := DatasetFraction(j, 4, 6); got != want {
			t.Errorf("DatasetFraction(%d, 4, 6) = %v, want %v", j, got, want)
		}
	}
	check(0, 1.0/64)
	check(2, 1.5/64)
	check(4, 1.0/32)
	check(24, 1)
	prev := 0.0
	for j := 0; j <= 24; j++ {
		x := DatasetFraction(j, 4, 6)
		if x <= prev {
			t.Errorf("DatasetFraction not increasing at step %d: %v <= %v", j, x, prev)
		}
		prev = x
	}
	if got := InsertFraction(8, 4, 6); got != 1.0/16 {
		t.Errorf("InsertFraction(8, 4, 6) = %v, want 1/16", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Point{{0, 3}, {1, 1}, {2, 2}})
	want := Summary{N: 3, Min: 1, Max: 3, Avg: 2}
	if s != want {
		t.Errorf("Summarize = %+v, want %+v", s, want)
	}
	if (Summarize(nil) != Summary{}) {
		t.Errorf("Summarize(nil) not zero")
	}
}
