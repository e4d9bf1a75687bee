// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variant

import "testing"

func TestParseRoundTrip(t *testing.T) {
	for _, v := range All() {
		got, err := Parse(v.String())
		if err != nil {
			t.Errorf("Parse(%q): %v", v, err)
			continue
		}
		if got != v {
			t.Errorf("Parse(%q) = %v, want %v", v.String(), got, v)
		}
	}
	if _, err := Parse("bloom"); err == nil {
		t.Errorf("Parse(bloom) succeeded, want error")
	} else if want := `unknown filter variant "bloom"`; err.Error() != want {
		t.Errorf("Parse(bloom) error = %q, want %q", err, want)
	}
}

func TestOverhead(t *testing.T) {
	test := func(v Variant, want float64) {
		t.Helper()
		if got := v.Overhead(); got != want {
			t.Errorf("%s.Overhead() = %v, want %v", v, got, want)
		}
	}
	test(Steroids, 1)
	test(SteroidsInt, 1)
	test(Memento, 0)
	test(SuRF, 0)
	test(Base, 0)
}

func TestRangeFixed(t *testing.T) {
	fixed := map[Variant]bool{Memento: true, MementoExpandable: true, Rosetta: true, Proteus: true}
	for _, v := range All() {
		if got := v.RangeFixed(); got != fixed[v] {
			t.Errorf("%s.RangeFixed() = %v, want %v", v, got, fixed[v])
		}
	}
}

func TestStylesComplete(t *testing.T) {
	for _, v := range All() {
		s := v.Style()
		if s.Label == "" || s.Color == nil {
			t.Errorf("%s has incomplete style %+v", v, s)
		}
	}
	// Styles are values; mutating a copy must not leak.
	s := Steroids.Style()
	s.Label = "changed"
	if Steroids.Style().Label != "Diva" {
		t.Errorf("style table was modified through a copy")
	}
}

func TestHatchDensity(t *testing.T) {
	if got := Hatch("/.").Density(2); got != "//.." {
		t.Errorf("Density(2) = %q, want %q", got, "//..")
	}
	if got := Memento.Hatch().Density(1); got != "///" {
		t.Errorf("Density(1) = %q", got)
	}
}
