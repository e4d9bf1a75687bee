// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"context"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/divafilter/rfbench/result"
)

// A Def is a named figure.
type Def struct {
	Name string
	// Category is the result subdirectory the figure reads.
	Category result.Category
	Build    func(ctx context.Context, src result.Source) (*Figure, error)
}

var defs = []Def{
	{"fpr", result.FPRBench, buildFPR},
	{"fpr_string", result.FPRBench, buildFPRString},
	{"fpr_memory", result.FPRBench, buildFPRMemory},
	{"true", result.TrueBench, buildTrue},
	{"construction", result.ConstructionBench, buildConstruction},
	{"expansion", result.ExpansionBench, buildExpansion},
	{"delete", result.DeleteBench, buildDelete},
	{"wiredtiger", result.WiredTigerBench, buildWiredTiger},
}

// All is the selector that names every figure.
const All = "all"

// Names returns the names of all figures in generation order.
func Names() []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the figure called name.
func Lookup(name string) (Def, bool) {
	for _, d := range defs {
		if d.Name == name {
			return d, true
		}
	}
	return Def{}, false
}

// Resolve maps figure names, or All, to figure definitions. The result
// is in generation order without duplicates.
func Resolve(names []string) ([]Def, error) {
	want := make(map[string]bool)
	for _, n := range names {
		if n == All {
			return append([]Def(nil), defs...), nil
		}
		if _, ok := Lookup(n); !ok {
			return nil, errors.Errorf("unknown figure %q (want one of %s or %s)", n, strings.Join(Names(), ", "), All)
		}
		want[n] = true
	}
	var out []Def
	for _, d := range defs {
		if want[d.Name] {
			out = append(out, d)
		}
	}
	return out, nil
}

// A Renderer writes a figure out.
type Renderer interface {
	Render(ctx context.Context, fig *Figure) error
}

// Generate builds and renders each figure in turn. A figure that fails
// to build or render is logged and skipped; the others are still
// generated. Generate returns the figures that were rendered and the
// combined error of those that were not.
func Generate(ctx context.Context, src result.Source, sel []Def, r Renderer, logger log.Logger) ([]*Figure, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	var (
		figs []*Figure
		errs error
	)
	for _, d := range sel {
		if err := ctx.Err(); err != nil {
			return figs, multierr.Append(errs, err)
		}
		fig, err := d.Build(ctx, src)
		if err == nil {
			err = r.Render(ctx, fig)
		}
		if err != nil {
			level.Error(logger).Log("msg", "figure failed", "figure", d.Name, "err", err)
			errs = multierr.Append(errs, errors.Wrapf(err, "figure %s", d.Name))
			continue
		}
		legend := fig.Legend()
		level.Info(logger).Log("msg", "rendered figure", "figure", d.Name, "series", fig.NumSeries(), "legend", len(legend))
		if len(legend) == 0 {
			level.Warn(logger).Log("msg", "figure has no data", "figure", d.Name, "category", d.Category.Dir())
		}
		figs = append(figs, fig)
	}
	return figs, errs
}
