// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package result

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"pgregory.net/rapid"
)

// benchOutput is what a benchmark executable writes for a run with a
// construction snapshot and one query snapshot.
const benchOutput = `[+] building filter
{
	"n_keys": 1000,
	"size": 2000,
	"bpk": 16.5,
	"construction_time": 12.25,
}
,
{
	"n_keys": 1000,
	"n_queries": 100,
	"false_positives": 0,
	"false_negatives": 0,
	"fpr": -nan,
	"time_q": 0.5,
}
,
`

func TestRepair(t *testing.T) {
	check := func(in, want string) {
		t.Helper()
		if got := string(Repair([]byte(in))); got != want {
			t.Errorf("Repair(%q):\n got %q\nwant %q", in, got, want)
		}
	}
	check(``, ``)
	check(`no braces here`, ``)
	check(`{"a": 1,}`, `{"a": 1}`)
	check(`{"a": 1,
}`, `{"a": 1
}`)
	check(`junk {"a": nan}`, `{"a": 0}`)
	check(`{"a": -nan, "b": NaN}`, `{"a": -0, "b": 0}`)
	// nan inside strings and identifiers is kept.
	check(`{"nan": 1, "banana": 2}`, `{"nan": 1, "banana": 2}`)
	check(`{"a": 1}{"b": 2}`, `{"a": 1},{"b": 2}`)
	check(`{"a": 1},
{"b": 2},
`, `{"a": 1},{"b": 2}`)
	check(`{"a": [1, 2,], "b": {"c": 3,},}`, `{"a": [1, 2], "b": {"c": 3}}`)
	check(`{"a": "x,}"}`, `{"a": "x,}"}`)
	check(`{"a": "q\",}"}`, `{"a": "q\",}"}`)
}

func TestParse(t *testing.T) {
	recs, err := Parse([]byte(benchOutput))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	want := map[string]float64{
		"n_keys":            1000,
		"size":              2000,
		"bpk":               16.5,
		"construction_time": 12.25,
	}
	if diff := cmp.Diff(want, recs[0].Measures); diff != "" {
		t.Errorf("first record (-want +got):\n%s", diff)
	}
	last := Last(recs)
	if last.FPR() != 0 || !last.Has(FPR) {
		t.Errorf("nan fpr: got %v (present %v), want 0 (present)", last.FPR(), last.Has(FPR))
	}
	if last.Has(ConstructionTime) {
		t.Errorf("query snapshot has construction_time")
	}
	if got := last.Get(TimeQuery); got != 0.5 {
		t.Errorf("time_q = %v, want 0.5", got)
	}
}

func TestParseNoData(t *testing.T) {
	for _, in := range []string{"", "\n", "Segmentation fault\n"} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrNoData) {
			t.Errorf("Parse(%q): got %v, want ErrNoData", in, err)
		}
	}
}

func TestParseTruncated(t *testing.T) {
	_, err := Parse([]byte(`{"a": 1,
	"b": `))
	if err == nil || errors.Is(err, ErrNoData) {
		t.Errorf("truncated object: got %v, want decode error", err)
	}
}

// genResults writes n objects in the benchmark writer's format and
// returns the output together with the measures a reader should see.
// If nans is set, some values are written as nan or -nan.
func genResults(t *rapid.T, nans bool) ([]byte, []map[string]float64) {
	n := rapid.IntRange(1, 6).Draw(t, "n")
	seps := rapid.SampledFrom([]string{",\n", "\n", "", ",", " , \n"})
	var buf bytes.Buffer
	buf.WriteString(rapid.SampledFrom([]string{"", "[+] start\n", "  "}).Draw(t, "preamble"))
	want := make([]map[string]float64, n)
	for i := range want {
		keys := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z_]{1,10}`), 1, 6, rapid.ID[string]).Draw(t, "keys")
		want[i] = make(map[string]float64)
		buf.WriteString("{\n")
		for _, k := range keys {
			s := strconv.FormatFloat(rapid.Float64Range(-1e9, 1e9).Draw(t, "v"), 'f', 6, 64)
			if nans && rapid.Bool().Draw(t, "nan") {
				s = rapid.SampledFrom([]string{"nan", "-nan"}).Draw(t, "spelling")
			}
			v, _ := strconv.ParseFloat(s, 64)
			if s == "nan" || s == "-nan" {
				v = 0
			}
			want[i][k] = v
			fmt.Fprintf(&buf, "\t%q: %s,\n", k, s)
		}
		buf.WriteString("}\n")
		buf.WriteString(seps.Draw(t, "sep"))
	}
	return buf.Bytes(), want
}

func TestRepairProducesArray(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data, want := genResults(t, false)
		if !json.Valid(Wrap(Repair(data))) {
			t.Fatalf("invalid JSON after repair: %s", Wrap(Repair(data)))
		}
		recs, err := Parse(data)
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != len(want) {
			t.Fatalf("got %d records, want %d", len(recs), len(want))
		}
		for i := range recs {
			if diff := cmp.Diff(want[i], recs[i].Measures); diff != "" {
				t.Fatalf("record %d (-want +got):\n%s", i, diff)
			}
		}
	})
}

func TestRepairNaNKeepsCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data, want := genResults(t, true)
		recs, err := Parse(data)
		if err != nil {
			t.Fatal(err)
		}
		if len(recs) != len(want) {
			t.Fatalf("got %d records, want %d", len(recs), len(want))
		}
		for i := range recs {
			if diff := cmp.Diff(want[i], recs[i].Measures); diff != "" {
				t.Fatalf("record %d (-want +got):\n%s", i, diff)
			}
		}
	})
}
