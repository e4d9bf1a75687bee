// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"context"
	"image/color"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/divafilter/rfbench/figure"
)

// Formats lists the supported output formats.
var Formats = []string{"pdf", "png", "svg"}

// DefaultDPI is the resolution of PNG output.
const DefaultDPI = 300

// A Saver renders figures to files named after them in Dir.
type Saver struct {
	FS  afero.Fs
	Dir string
	// Formats are the file formats to write, by extension. Nil means
	// PDF only.
	Formats []string
	DPI     int
}

var _ figure.Renderer = (*Saver)(nil)

// Path returns the file fig is written to in format sfx.
func (s *Saver) Path(fig *figure.Figure, sfx string) string {
	return filepath.Join(s.Dir, fig.Name) + "." + sfx
}

// Render draws fig and writes it in each of s.Formats.
func (s *Saver) Render(ctx context.Context, fig *figure.Figure) error {
	formats := s.Formats
	if formats == nil {
		formats = []string{"pdf"}
	}
	dpi := s.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	w, h := Size(fig)

	do := func(sfx string, can vg.CanvasWriterTo) error {
		if err := Draw(fig, draw.New(can)); err != nil {
			return err
		}
		if err := s.FS.MkdirAll(s.Dir, 0o755); err != nil {
			return err
		}
		file := s.Path(fig, sfx)
		f, err := s.FS.Create(file)
		if err != nil {
			return err
		}
		if _, err := can.WriteTo(f); err != nil {
			f.Close()
			return errors.Wrapf(err, "writing %s", file)
		}
		return f.Close()
	}

	for _, sfx := range formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		var can vg.CanvasWriterTo
		switch sfx {
		case "pdf":
			can = vgpdf.New(w, h)
		case "svg":
			can = vgsvg.New(w, h)
		case "png":
			can = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h),
				vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
		default:
			return errors.Errorf("unsupported format %q", sfx)
		}
		if err := do(sfx, can); err != nil {
			return err
		}
	}
	return nil
}
