// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package figure

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/divafilter/rfbench/result"
	"github.com/divafilter/rfbench/variant"
)

// A loader reads the result files of one category. Files that are
// missing or empty are reported as absent rather than as errors.
type loader struct {
	ctx context.Context
	src result.Source
	cat result.Category
}

func (l loader) load(v variant.Variant, budget int, workload, tag string) ([]result.Record, bool, error) {
	key := result.Key{Filter: v.String(), Budget: budget, Workload: workload, Tag: tag}
	recs, err := l.src.Load(l.ctx, l.cat, key)
	if errors.Is(err, result.ErrNoData) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(recs) == 0 {
		return nil, false, nil
	}
	return recs, true, nil
}

// budgetFor is the nominal budget a variant is run at so that its
// adjusted space matches target.
func budgetFor(v variant.Variant, target int) int {
	return target - int(v.Overhead())
}

func ints(lo, hi, step int) []int {
	var out []int
	for i := lo; i <= hi; i += step {
		out = append(out, i)
	}
	return out
}

// valueTicks labels each value with its decimal form.
func valueTicks(vs []int) []Tick {
	ts := make([]Tick, len(vs))
	for i, v := range vs {
		ts[i] = Tick{Value: float64(v), Label: strconv.Itoa(v)}
	}
	return ts
}

// powTicks places ticks at base^e for each exponent, labeled "base^e".
func powTicks(base int, exps []int) []Tick {
	ts := make([]Tick, len(exps))
	for i, e := range exps {
		ts[i] = Tick{
			Value: math.Pow(float64(base), float64(e)),
			Label: fmt.Sprintf("%d^%d", base, e),
		}
	}
	return ts
}

// decadeTicks places ticks at 10^e for e from hi down to lo.
func decadeTicks(hi, lo int) []Tick {
	var ts []Tick
	for e := hi; e >= lo; e-- {
		label := fmt.Sprintf("10^%d", e)
		switch e {
		case 0:
			label = "1"
		case 1:
			label = "10"
		}
		ts = append(ts, Tick{Value: math.Pow10(e), Label: label})
	}
	return ts
}

// fractionTicks places ticks at 1/2^n, ..., 1/2, 1.
func fractionTicks(n int) []Tick {
	ts := make([]Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		label := "1"
		if i < n {
			label = fmt.Sprintf("1/%d", 1<<(n-i))
		}
		ts = append(ts, Tick{Value: math.Ldexp(1, i-n), Label: label})
	}
	return ts
}
