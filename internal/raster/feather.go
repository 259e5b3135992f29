// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"image"
	"image/draw"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/gogpu/ink/mesh"
)

// degenerateArea is the smallest doubled triangle area that is rasterized.
const degenerateArea = 1e-6

// Renderer rasterizes ribbon meshes on the CPU with the same edge feather
// as the GPU shader. Triangle coverage comes from an anti-aliasing
// rasterizer; the side tag is interpolated barycentrically at each pixel
// center.
//
// Triangles of one draw accumulate into a premultiplied float layer that is
// clamped and composited onto the destination once, so shared edges inside
// a ribbon leave no seams.
//
// Renderer is NOT safe for concurrent use.
type Renderer struct {
	z    *vector.Rasterizer
	mask *image.Alpha

	// acc holds premultiplied r, g, b, a per pixel of the destination.
	acc   []float32
	w, h  int
	dirty image.Rectangle
}

// NewRenderer creates a CPU renderer.
func NewRenderer() *Renderer {
	return &Renderer{z: vector.NewRasterizer(1, 1)}
}

// Feather returns the edge attenuation for an interpolated side value.
func Feather(side, threshold float32) float32 {
	return 1 - smoothstep(threshold, 1, math32.Abs(side))
}

func smoothstep(e0, e1, x float32) float32 {
	if e1 <= e0 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

// Draw rasterizes r onto dst. Mesh coordinates are pixel coordinates
// relative to dst.Bounds().Min.
func (rd *Renderer) Draw(dst *image.RGBA, r mesh.Range, p mesh.DrawParams) {
	if r.Empty() {
		return
	}
	b := dst.Bounds()
	rd.prepare(b.Dx(), b.Dy())

	for t := 0; t+2 < len(r.Indices); t += 3 {
		rd.triangle(r, r.Indices[t], r.Indices[t+1], r.Indices[t+2], p.FeatherThreshold)
	}
	rd.composite(dst, p.Blend)
}

func (rd *Renderer) prepare(w, h int) {
	if rd.w != w || rd.h != h {
		rd.w, rd.h = w, h
		rd.acc = make([]float32, w*h*4)
		rd.dirty = image.Rectangle{}
	}
}

type vertex struct {
	x, y, side float32
	rgba       [4]float32
}

func fetch(r mesh.Range, i uint32) vertex {
	return vertex{
		x:    r.Positions[i*2],
		y:    r.Positions[i*2+1],
		side: r.Sides[i],
		rgba: [4]float32{r.Colors[i*4], r.Colors[i*4+1], r.Colors[i*4+2], r.Colors[i*4+3]},
	}
}

func cross(ax, ay, bx, by float32) float32 {
	return ax*by - ay*bx
}

func (rd *Renderer) triangle(r mesh.Range, i0, i1, i2 uint32, threshold float32) {
	v0, v1, v2 := fetch(r, i0), fetch(r, i1), fetch(r, i2)

	e1x, e1y := v1.x-v0.x, v1.y-v0.y
	e2x, e2y := v2.x-v0.x, v2.y-v0.y
	area := cross(e1x, e1y, e2x, e2y)
	if math32.Abs(area) < degenerateArea {
		return
	}

	minX := int(math32.Floor(math32.Min(v0.x, math32.Min(v1.x, v2.x))))
	minY := int(math32.Floor(math32.Min(v0.y, math32.Min(v1.y, v2.y))))
	maxX := int(math32.Ceil(math32.Max(v0.x, math32.Max(v1.x, v2.x))))
	maxY := int(math32.Ceil(math32.Max(v0.y, math32.Max(v1.y, v2.y))))
	box := image.Rect(minX, minY, maxX, maxY).Intersect(image.Rect(0, 0, rd.w, rd.h))
	if box.Empty() {
		return
	}
	bw, bh := box.Dx(), box.Dy()
	ox, oy := float32(box.Min.X), float32(box.Min.Y)

	rd.z.Reset(bw, bh)
	rd.z.DrawOp = draw.Src
	rd.z.MoveTo(v0.x-ox, v0.y-oy)
	rd.z.LineTo(v1.x-ox, v1.y-oy)
	rd.z.LineTo(v2.x-ox, v2.y-oy)
	rd.z.ClosePath()

	if rd.mask == nil || rd.mask.Rect.Dx() < bw || rd.mask.Rect.Dy() < bh {
		rd.mask = image.NewAlpha(image.Rect(0, 0, max(bw, 64), max(bh, 64)))
	}
	rd.z.Draw(rd.mask, image.Rect(0, 0, bw, bh), image.Opaque, image.Point{})

	for y := 0; y < bh; y++ {
		row := rd.mask.Pix[y*rd.mask.Stride:]
		py := oy + float32(y) + 0.5
		for x := 0; x < bw; x++ {
			cov := row[x]
			if cov == 0 {
				continue
			}
			px := ox + float32(x) + 0.5
			qx, qy := px-v0.x, py-v0.y
			l1 := clamp01(cross(qx, qy, e2x, e2y) / area)
			l2 := clamp01(cross(e1x, e1y, qx, qy) / area)
			l0 := clamp01(1 - l1 - l2)

			side := l0*v0.side + l1*v1.side + l2*v2.side
			a := (l0*v0.rgba[3] + l1*v1.rgba[3] + l2*v2.rgba[3]) *
				Feather(side, threshold) * float32(cov) / 255
			if a <= 0 {
				continue
			}
			o := ((box.Min.Y+y)*rd.w + box.Min.X + x) * 4
			for c := 0; c < 3; c++ {
				rd.acc[o+c] += a * (l0*v0.rgba[c] + l1*v1.rgba[c] + l2*v2.rgba[c])
			}
			rd.acc[o+3] += a
		}
	}
	rd.dirty = rd.dirty.Union(box)
}

func (rd *Renderer) composite(dst *image.RGBA, blend mesh.BlendMode) {
	origin := dst.Bounds().Min
	for y := rd.dirty.Min.Y; y < rd.dirty.Max.Y; y++ {
		for x := rd.dirty.Min.X; x < rd.dirty.Max.X; x++ {
			o := (y*rd.w + x) * 4
			sa := rd.acc[o+3]
			if sa <= 0 {
				continue
			}
			// Clamp coverage sums, keeping color premultiplied.
			scale := float32(1)
			if sa > 1 {
				scale = 1 / sa
				sa = 1
			}
			di := dst.PixOffset(origin.X+x, origin.Y+y)
			px := dst.Pix[di : di+4 : di+4]
			for c := 0; c < 3; c++ {
				s := rd.acc[o+c] * scale
				px[c] = blendChannel(s, float32(px[c])/255, sa, blend)
			}
			px[3] = blendChannel(sa, float32(px[3])/255, sa, blend)
			rd.acc[o], rd.acc[o+1], rd.acc[o+2], rd.acc[o+3] = 0, 0, 0, 0
		}
	}
	rd.dirty = image.Rectangle{}
}

// blendChannel combines a premultiplied source channel s (with source
// alpha sa) and destination channel d.
func blendChannel(s, d, sa float32, blend mesh.BlendMode) uint8 {
	var v float32
	switch blend {
	case mesh.BlendAdditive:
		v = s + d
	default:
		v = s + d*(1-sa)
	}
	return uint8(clamp01(v)*255 + 0.5)
}
