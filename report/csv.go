// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/divafilter/rfbench/figure"
)

var csvHeader = []string{"figure", "panel", "series", "x", "y", "base"}

// WriteCSV writes one row per plotted point or bar of figs. The base
// column is set for bars only.
func WriteCSV(out io.Writer, figs []*figure.Figure) error {
	tab := [][]string{csvHeader}
	for _, fig := range figs {
		fig.Each(func(i, j int, p *figure.Panel) {
			panel := PanelName(fig, i, j)
			for _, s := range p.Series {
				label := s.Variant.Style().Label
				for _, pt := range s.Points {
					tab = append(tab, []string{fig.Name, panel, label, strof(pt.X), strof(pt.Y), ""})
				}
			}
			for _, b := range p.Bars {
				tab = append(tab, []string{fig.Name, panel, barLabel(b), strof(b.X), strof(b.Height), strof(b.Base)})
			}
		})
	}
	csvw := csv.NewWriter(out)
	if err := csvw.WriteAll(tab); err != nil {
		return err
	}
	csvw.Flush()
	return csvw.Error()
}

func strof(x float64) string {
	return fmt.Sprintf("%g", x)
}
