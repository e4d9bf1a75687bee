// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divafilter/rfbench/metric"
	"github.com/divafilter/rfbench/result"
	"github.com/divafilter/rfbench/variant"
)

type m = map[string]float64

// benchFile formats records the way benchmark executables write them.
func benchFile(recs ...m) string {
	var b strings.Builder
	for _, r := range recs {
		keys := make([]string, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("{\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "\t%q: %g,\n", k, r[k])
		}
		b.WriteString("}\n,\n")
	}
	return b.String()
}

type testDir struct {
	t   *testing.T
	dir *result.Dir
}

func newTestDir(t *testing.T) *testDir {
	return &testDir{t, &result.Dir{FS: afero.NewMemMapFs(), Path: "/results/2024-05-01.12:00:00"}}
}

func (d *testDir) write(cat result.Category, name string, recs ...m) {
	d.t.Helper()
	p := filepath.Join(d.dir.Path, cat.Dir(), name)
	require.NoError(d.t, afero.WriteFile(d.dir.FS, p, []byte(benchFile(recs...)), 0o644))
}

func seriesOf(p *Panel, v variant.Variant) *Series {
	for i := range p.Series {
		if p.Series[i].Variant == v {
			return &p.Series[i]
		}
	}
	return nil
}

func TestLegendOnlyPresent(t *testing.T) {
	d := newTestDir(t)
	d.write(result.TrueBench, "grafite_16_unif_short.json",
		m{"n_keys": 1000, "bpk": 16.2},
		m{"n_keys": 1000, "bpk": 16.2, "n_queries": 1000, "time_q": 2, "fpr": 0.01})

	fig, err := buildTrue(context.Background(), d.dir)
	require.NoError(t, err)
	assert.Equal(t, []LegendEntry{{Label: "Grafite", Variant: variant.Grafite}}, fig.Legend())

	s := seriesOf(fig.Panels[0][0], variant.Grafite)
	require.NotNil(t, s)
	assert.InDelta(t, 16.2, s.Points[0].X, 1e-9)
	assert.InDelta(t, 2000, s.Points[0].Y, 1e-9)
	assert.True(t, fig.Panels[0][1].Empty())
}

func TestLegendSharedLabel(t *testing.T) {
	d := newTestDir(t)
	for _, name := range []string{"memento", "memento_expandable"} {
		for _, rl := range []string{"short", "long"} {
			d.write(result.DeleteBench, name+"_10_unif_"+rl+".json",
				m{"n_keys": 2000, "bpk": 10.5},
				m{"n_keys": 1900, "bpk": 10.5, "time_d": 1})
		}
	}
	fig, err := buildDelete(context.Background(), d.dir)
	require.NoError(t, err)
	assert.Equal(t, []LegendEntry{{Label: "Memento", Variant: variant.Memento}}, fig.Legend())
	assert.Len(t, fig.Panels[0][0].Series, 2)
}

func TestFPRBudgetFilter(t *testing.T) {
	d := newTestDir(t)
	last := func(bpk, fpr float64) m {
		return m{"n_keys": 1000, "bpk": bpk, "fpr": fpr, "n_queries": 100, "time_q": 1}
	}
	// Diva stores one extra bit per key: 11 BPK is 10 adjusted.
	d.write(result.FPRBench, "steroids_10_unif_0.json", m{"n_keys": 1000}, last(11, 0.01))
	d.write(result.FPRBench, "grafite_10_unif_0.json", m{"n_keys": 1000}, last(11.5, 0.02))
	// An undefined FPR cannot be drawn on a log axis.
	d.write(result.FPRBench, "surf_10_unif_0.json", last(10, -1), last(10, 0))
	require.NoError(t, afero.WriteFile(d.dir.FS, filepath.Join(d.dir.Path, "fpr_bench", "snarf_10_unif_0.json"), []byte("{\n\t\"fpr\": nan,\n\t\"bpk\": 10,\n}\n,\n"), 0o644))

	fig, err := buildFPR(context.Background(), d.dir)
	require.NoError(t, err)
	p := fig.Panels[0][0]
	require.Len(t, p.Series, 1)
	assert.Equal(t, variant.Steroids, p.Series[0].Variant)
	assert.Equal(t, 1.0, p.Series[0].Points[0].X)
	assert.Equal(t, 0.01, p.Series[0].Points[0].Y)
	assert.Equal(t, []LegendEntry{{Label: "Diva", Variant: variant.Steroids}}, fig.Legend())
	// Latency comes from the larger budget only.
	for _, p := range fig.Panels[2] {
		assert.True(t, p.Empty())
	}
}

func TestExpansion(t *testing.T) {
	d := newTestDir(t)
	recs := []m{{"n_keys": 1000, "bpk": 16}}
	for j := 0; j < 8; j++ {
		recs = append(recs, m{
			"n_keys": float64(1000 + 100*(j+1)),
			"bpk":    float64(16 + j),
			"fpr":    0.001 * float64(j+1),
			"time_i": 0.1,
		})
	}
	// Diva runs one bit below the target budget.
	d.write(result.ExpansionBench, "steroids_15_unif_short.json", recs...)
	d.write(result.ExpansionBench, "memento_expandable_16_unif_short.json", recs...)

	fig, err := buildExpansion(context.Background(), d.dir)
	require.NoError(t, err)

	fprShort := seriesOf(fig.Panels[0][0], variant.Steroids)
	require.NotNil(t, fprShort)
	// 8 steps, the last dropped, every other one kept.
	assert.Len(t, fprShort.Points, 4)
	assert.Equal(t, 1.0/64, fprShort.Points[0].X)
	assert.Nil(t, seriesOf(fig.Panels[0][1], variant.Steroids))

	space := seriesOf(fig.Panels[1][0], variant.Steroids)
	require.NotNil(t, space)
	// Averaged across passes, then thinned.
	assert.Len(t, space.Points, 2)
	assert.Equal(t, (16.0+20.0)/2, space.Points[0].Y)

	mem := seriesOf(fig.Panels[1][0], variant.MementoExpandable)
	require.NotNil(t, mem)
	assert.Len(t, mem.Points, 8)

	ins := seriesOf(fig.Panels[1][1], variant.MementoExpandable)
	require.NotNil(t, ins)
	assert.Len(t, ins.Points, 8)
	// 0.1ms for 100 inserts.
	assert.InDelta(t, 1000, ins.Points[0].Y, 1e-9)
}

func TestDelete(t *testing.T) {
	d := newTestDir(t)
	// A twentieth of 2000 keys is deleted in each run.
	d.write(result.DeleteBench, "snarf_16_unif_short.json",
		m{"n_keys": 2000, "bpk": 16},
		m{"n_keys": 1900, "bpk": 16, "time_d": 1})
	d.write(result.DeleteBench, "snarf_16_unif_long.json",
		m{"n_keys": 2000, "bpk": 16},
		m{"n_keys": 1900, "bpk": 16, "time_d": 3})

	fig, err := buildDelete(context.Background(), d.dir)
	require.NoError(t, err)
	p := fig.Panels[0][0]
	assert.Equal(t, SymLog, p.Y.Scale)
	require.Len(t, p.Series, 1)
	assert.Equal(t, Series{Variant: variant.SNARF, Points: []metric.Point{{X: 16, Y: 20000}}}, p.Series[0])
	assert.Equal(t, []LegendEntry{{Label: "SNARF", Variant: variant.SNARF}}, fig.Legend())
}

func TestWiredTiger(t *testing.T) {
	d := newTestDir(t)
	// Diva runs one bit below the target budget.
	d.write(result.WiredTigerBench, "steroids_15_unif_short.json",
		m{"n_keys": 1000},
		m{"n_keys": 2000, "n_queries": 1000, "time_q": 2},
		m{"n_keys": 4000, "n_queries": 1000, "time_q": 4})
	// Not at the budget the figure reads.
	d.write(result.WiredTigerBench, "base_15_unif_short.json",
		m{"n_keys": 1000},
		m{"n_keys": 2000, "n_queries": 1000, "time_q": 2})

	fig, err := buildWiredTiger(context.Background(), d.dir)
	require.NoError(t, err)
	p := fig.Panels[0][0]
	require.Len(t, p.Series, 1)
	assert.Equal(t, []metric.Point{{X: 1.0 / 64, Y: 2000}, {X: 1.0 / 32, Y: 4000}}, p.Series[0].Points)
	assert.Equal(t, []LegendEntry{{Label: "Diva", Variant: variant.Steroids}}, fig.Legend())
}

func TestFPRString(t *testing.T) {
	d := newTestDir(t)
	last := func(bpk float64) m {
		return m{"n_keys": 1000, "bpk": bpk, "fpr": 0.05, "n_queries": 1000, "time_q": 3}
	}
	d.write(result.FPRBench, "steroids_12_unif_string.json", m{"n_keys": 1000}, last(13))
	// 15 adjusted bits are a full bit over the budget of 14.
	d.write(result.FPRBench, "steroids_14_unif_string.json", m{"n_keys": 1000}, last(16))
	d.write(result.FPRBench, "surf_12_norm_string.json", last(12.5))
	// Integer keys are not part of this figure.
	d.write(result.FPRBench, "surf_12_unif_0.json", last(12))

	fig, err := buildFPRString(context.Background(), d.dir)
	require.NoError(t, err)
	unif, norm := fig.Panels[0], fig.Panels[1]
	require.Len(t, unif[0].Series, 1)
	assert.Equal(t, Series{Variant: variant.Steroids, Points: []metric.Point{{X: 12, Y: 0.05}}}, unif[0].Series[0])
	require.Len(t, unif[1].Series, 1)
	assert.Equal(t, []metric.Point{{X: 12, Y: 3000}}, unif[1].Series[0].Points)
	require.Len(t, norm[0].Series, 1)
	assert.Equal(t, Series{Variant: variant.SuRF, Points: []metric.Point{{X: 12.5, Y: 0.05}}}, norm[0].Series[0])
	assert.Equal(t, []LegendEntry{
		{Label: "Diva", Variant: variant.Steroids},
		{Label: "SuRF", Variant: variant.SuRF},
	}, fig.Legend())
}

func TestFPRMemory(t *testing.T) {
	d := newTestDir(t)
	last := func(bpk, fpr float64) m {
		return m{"n_keys": 1000, "bpk": bpk, "fpr": fpr}
	}
	// Space is plotted as measured, without a budget filter.
	d.write(result.FPRBench, "steroids_8_osm_8.json", last(9, 0.1))
	d.write(result.FPRBench, "steroids_10_osm_8.json", last(20, 0.01))
	d.write(result.FPRBench, "grafite_10_osm_7.json", last(10, 0.01))

	fig, err := buildFPRMemory(context.Background(), d.dir)
	require.NoError(t, err)
	assert.True(t, fig.Panels[0][0].Empty())
	osm := fig.Panels[0][1]
	assert.True(t, osm.Y.HideTickLabels)
	require.Len(t, osm.Series, 1)
	assert.Equal(t, Series{Variant: variant.Steroids, Points: []metric.Point{{X: 8, Y: 0.1}, {X: 19, Y: 0.01}}}, osm.Series[0])
	assert.Equal(t, []LegendEntry{{Label: "Diva", Variant: variant.Steroids}}, fig.Legend())
}

func TestConstruction(t *testing.T) {
	d := newTestDir(t)
	d.write(result.ConstructionBench, "surf_16_unif_6.json", m{"n_keys": 1000, "construction_time": 0.7})
	d.write(result.ConstructionBench, "steroids_16_unif_6.json", m{"n_keys": 1000, "construction_time": 0.2})
	d.write(result.ConstructionBench, "proteus_16_unif_7.json", m{"n_keys": 1000, "construction_time": 0.1, "modeling_time": 0.05})

	fig, err := buildConstruction(context.Background(), d.dir)
	require.NoError(t, err)
	p := fig.Panels[0][0]
	require.Len(t, p.Bars, 4)
	// Within a group, bars follow the legend order.
	assert.Equal(t, variant.Steroids, p.Bars[0].Variant)
	assert.InDelta(t, 0, p.Bars[0].X, 1e-9)
	assert.InDelta(t, 200, p.Bars[0].Height, 1e-9)
	assert.Equal(t, variant.SuRF, p.Bars[1].Variant)
	assert.InDelta(t, 4*barWidth, p.Bars[1].X, 1e-9)
	assert.InDelta(t, 700, p.Bars[1].Height, 1e-9)
	assert.False(t, p.Bars[2].Light)
	assert.True(t, p.Bars[3].Light)
	assert.InDelta(t, 100, p.Bars[3].Base, 1e-9)
	require.Len(t, p.Notes, 1)
	assert.Equal(t, "700.0", p.Notes[0].Text)
	assert.True(t, fig.BarLegend)
	assert.Equal(t, []LegendEntry{
		{Label: "Diva", Variant: variant.Steroids},
		{Label: "SuRF", Variant: variant.SuRF},
		{Label: "Proteus", Variant: variant.Proteus},
	}, fig.Legend())
}

func TestResolve(t *testing.T) {
	all, err := Resolve([]string{"delete", All})
	require.NoError(t, err)
	assert.Len(t, all, len(Names()))

	sel, err := Resolve([]string{"delete", "fpr", "delete"})
	require.NoError(t, err)
	var names []string
	for _, d := range sel {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"fpr", "delete"}, names)

	_, err = Resolve([]string{"fpr", "histogram"})
	assert.ErrorContains(t, err, "histogram")
}

// brokenSource fails every load in one category.
type brokenSource struct {
	result.Source
	cat result.Category
}

func (b brokenSource) Load(ctx context.Context, cat result.Category, key result.Key) ([]result.Record, error) {
	if cat == b.cat {
		return nil, errors.New("decoding repaired results: unexpected end of input")
	}
	return b.Source.Load(ctx, cat, key)
}

type recordingRenderer struct{ names []string }

func (r *recordingRenderer) Render(_ context.Context, fig *Figure) error {
	r.names = append(r.names, fig.Name)
	return nil
}

func TestGenerateIsolatesFailures(t *testing.T) {
	d := newTestDir(t)
	d.write(result.TrueBench, "grafite_16_unif_short.json",
		m{"n_keys": 1000, "bpk": 16.2, "n_queries": 1000, "time_q": 2})

	var r recordingRenderer
	figs, err := Generate(context.Background(), brokenSource{d.dir, result.ExpansionBench}, defs, &r, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "figure expansion")
	assert.Len(t, figs, len(defs)-1)
	assert.NotContains(t, r.names, "expansion")
	assert.Contains(t, r.names, "wiredtiger")
}
