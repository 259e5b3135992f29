// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"image"

	"github.com/gogpu/ink/internal/raster"
	"github.com/gogpu/ink/mesh"
)

// DrawParams is the fixed per-draw renderer configuration.
type DrawParams = mesh.DrawParams

// BlendMode selects how ribbons composite onto the target.
type BlendMode = mesh.BlendMode

// Blend modes.
const (
	BlendAlpha    = mesh.BlendAlpha
	BlendAdditive = mesh.BlendAdditive
)

// ImageRenderer draws ribbon geometry onto images on the CPU, with the same
// edge feathering as the GPU renderer.
type ImageRenderer struct {
	r *raster.Renderer
}

// NewImageRenderer creates a CPU renderer.
func NewImageRenderer() *ImageRenderer {
	return &ImageRenderer{r: raster.NewRenderer()}
}

// Draw composites each range onto dst in order.
func (ir *ImageRenderer) Draw(dst *image.RGBA, p DrawParams, ranges ...mesh.Range) {
	for _, r := range ranges {
		ir.r.Draw(dst, r, p)
	}
}

// DrawScene draws every committed object source-over, then the surface
// additively. Either may be nil.
func (ir *ImageRenderer) DrawScene(dst *image.RGBA, scene *Scene, surface *Surface, featherThreshold float64) {
	p := DrawParams{FeatherThreshold: float32(featherThreshold), Blend: BlendAlpha}
	if scene != nil {
		for _, m := range scene.Meshes() {
			ir.r.Draw(dst, m.Range(), p)
		}
	}
	if surface != nil {
		p.Blend = BlendAdditive
		ir.r.Draw(dst, surface.Range(), p)
	}
}
