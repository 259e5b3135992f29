// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package export writes ink scenes to vector documents.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/mesh"
)

// margin around fitted content, in points.
const margin = 10

// Options controls PDF output.
type Options struct {
	// Width and Height set the page size in points (one point per surface
	// pixel). Zero fits the page to the content.
	Width, Height float64

	// Background fills the page when set.
	Background *ink.RGB

	// Centerlines overlays the raw samples of every committed stroke as a
	// thin polyline.
	Centerlines bool

	// Uncompressed disables content stream compression.
	Uncompressed bool
}

// WritePDF renders the committed strokes of scene and the contents of
// surface as filled triangles on a single page. Edge feathering has no
// vector equivalent and is dropped; per-vertex alpha is kept. Either source
// may be nil.
func WritePDF(w io.Writer, scene *ink.Scene, surface *ink.Surface, opts Options) error {
	var ranges []mesh.Range
	var objects []*ink.StrokeObject
	if scene != nil {
		objects = scene.Objects()
		for _, m := range scene.Meshes() {
			ranges = append(ranges, m.Range())
		}
	}
	if surface != nil {
		ranges = append(ranges, surface.Range())
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = fit(ranges)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetCompression(!opts.Uncompressed)
	pdf.AddPage()

	if bg := opts.Background; bg != nil {
		r, g, b := rgb255(bg.R, bg.G, bg.B)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(0, 0, width, height, "F")
	}

	triangles := 0
	for _, r := range ranges {
		triangles += drawRange(pdf, r)
	}
	pdf.SetAlpha(1, "Normal")

	if opts.Centerlines {
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.5)
		for _, o := range objects {
			pts := o.RawSamples()
			for i := 1; i < len(pts); i++ {
				pdf.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y)
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	ink.Logger().Info("export: pdf written",
		"triangles", triangles, "width", width, "height", height)
	return nil
}

// WritePDFFile writes the PDF to path.
func WritePDFFile(path string, scene *ink.Scene, surface *ink.Surface, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WritePDF(f, scene, surface, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// drawRange fills every triangle of r with the color of its first vertex
// and the mean alpha of its corners.
func drawRange(pdf *gofpdf.Fpdf, r mesh.Range) int {
	pts := make([]gofpdf.PointType, 3)
	n := 0
	for t := 0; t+2 < len(r.Indices); t += 3 {
		var alpha float32
		for k := range 3 {
			i := r.Indices[t+k]
			pts[k] = gofpdf.PointType{X: float64(r.Positions[i*2]), Y: float64(r.Positions[i*2+1])}
			alpha += r.Colors[i*4+3]
		}
		i0 := r.Indices[t]
		c := r.Colors[i0*4 : i0*4+3]
		red, green, blue := rgb255(float64(c[0]), float64(c[1]), float64(c[2]))
		pdf.SetFillColor(red, green, blue)
		pdf.SetAlpha(float64(alpha/3), "Normal")
		pdf.Polygon(pts, "F")
		n++
	}
	return n
}

// fit returns a page size covering all vertices plus a margin.
func fit(ranges []mesh.Range) (float64, float64) {
	var maxX, maxY float32
	for _, r := range ranges {
		for i := 0; i+1 < len(r.Positions); i += 2 {
			maxX = max(maxX, r.Positions[i])
			maxY = max(maxY, r.Positions[i+1])
		}
	}
	return float64(maxX) + margin, float64(maxY) + margin
}

func rgb255(r, g, b float64) (int, int, int) {
	return int(r*255 + 0.5), int(g*255 + 0.5), int(b*255 + 0.5)
}
