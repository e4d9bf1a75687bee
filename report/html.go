// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report writes summaries of generated figures: an HTML index
// page and a CSV dump of every plotted point.
package report

import (
	"fmt"
	"io"

	"github.com/google/safehtml/template"

	"github.com/divafilter/rfbench/figure"
	"github.com/divafilter/rfbench/metric"
)

var htmlTemplate = template.Must(template.New("index").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
table.series { border-collapse: collapse; margin-bottom: 2em; }
table.series td, table.series th { padding: 0.1em 0.6em; text-align: right; }
table.series td.name { text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Figures}}
<h2>{{.Name}}</h2>
{{if .Image -}}
<p><img src="{{.File}}" alt="{{.Name}}"></p>
{{- else -}}
<p><a href="{{.File}}">{{.File}}</a></p>
{{- end}}
{{if .Rows -}}
<table class="series">
<tr><th>panel<th>series<th>points<th>min<th>max<th>mean
{{range .Rows -}}
<tr><td class="name">{{.Panel}}<td class="name">{{.Series}}<td>{{.N}}<td>{{num .Min}}<td>{{num .Max}}<td>{{num .Avg}}
{{end -}}
</table>
{{- else -}}
<p>No data.</p>
{{- end}}
{{- end}}
</body>
</html>
`))

var htmlFuncs = template.FuncMap{
	"num": func(x float64) string { return fmt.Sprintf("%.4g", x) },
}

type htmlPage struct {
	Title   string
	Figures []htmlFigure
}

type htmlFigure struct {
	Name  string
	File  string
	Image bool
	Rows  []Row
}

// A Row summarizes one series of one panel.
type Row struct {
	Panel  string
	Series string
	metric.Summary
}

// PanelName names the panel at row i, column j of fig.
func PanelName(fig *figure.Figure, i, j int) string {
	p := fig.Panels[i][j]
	name := p.Title
	if name == "" {
		name = fmt.Sprintf("(%d,%d)", i, j)
	}
	if p.RightLabel != "" {
		name += " " + p.RightLabel
	}
	return name
}

// Rows returns the series summaries of fig, panel by panel. Bars are
// summarized by their heights.
func Rows(fig *figure.Figure) []Row {
	var rows []Row
	fig.Each(func(i, j int, p *figure.Panel) {
		name := PanelName(fig, i, j)
		for _, s := range p.Series {
			rows = append(rows, Row{Panel: name, Series: s.Variant.Style().Label, Summary: metric.Summarize(s.Points)})
		}
		for _, b := range p.Bars {
			rows = append(rows, Row{Panel: name, Series: barLabel(b), Summary: metric.Summarize([]metric.Point{{X: b.X, Y: b.Height}})})
		}
	})
	return rows
}

func barLabel(b figure.Bar) string {
	label := b.Variant.Style().Label
	if b.Light {
		label += " (stacked)"
	}
	return label
}

// WriteHTML writes an index page for figs, which were rendered as
// {name}.{format} next to the page.
func WriteHTML(w io.Writer, title string, figs []*figure.Figure, format string) error {
	page := htmlPage{Title: title}
	for _, fig := range figs {
		page.Figures = append(page.Figures, htmlFigure{
			Name:  fig.Name,
			File:  fig.Name + "." + format,
			Image: format == "png" || format == "svg",
			Rows:  Rows(fig),
		})
	}
	return htmlTemplate.Execute(w, page)
}
