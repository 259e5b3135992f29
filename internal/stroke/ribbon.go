// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"math"

	"github.com/gogpu/ink/mesh"
)

// degenerateEpsilon is the distance below which two centerline points are
// treated as coincident.
const degenerateEpsilon = 1e-9

// Options configures a Builder.
type Options struct {
	Modulation

	// Color is the RGB tint of every vertex.
	Color mesh.Color

	// Alpha is the per-vertex alpha. Ephemeral strokes use 1; the persistent
	// surface uses the configured additive intensity.
	Alpha float32

	CapStart bool
	CapEnd   bool

	// CapSteps is the number of triangles per round cap.
	CapSteps int
}

// Quad is one ribbon segment between two centerline points.
type Quad struct {
	AL, AR, BL, BR Point
}

// Result reports what a build pass emitted.
type Result struct {
	Quads        int
	CapTriangles int

	// Skipped counts degenerate pairs (coincident points or zero width).
	Skipped int
}

// Add accumulates r2 into r.
func (r *Result) Add(r2 Result) {
	r.Quads += r2.Quads
	r.CapTriangles += r2.CapTriangles
	r.Skipped += r2.Skipped
}

// Builder converts centerline points into ribbon geometry.
//
// Builder is NOT safe for concurrent use.
type Builder struct {
	opts  Options
	debug *DebugRing
}

// NewBuilder creates a builder with the given options.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Options returns the builder options.
func (b *Builder) Options() Options {
	return b.opts
}

// SetOptions replaces the builder options. Takes effect on the next build.
func (b *Builder) SetOptions(opts Options) {
	b.opts = opts
}

// SetDebug records every emitted segment into ring. Pass nil to stop.
func (b *Builder) SetDebug(ring *DebugRing) {
	b.debug = ring
}

// Segment computes the quad between prev and curr with half-widths wPrev and
// wCurr. It reports false for degenerate pairs, which must not be emitted.
func Segment(prev, curr CenterlinePoint, wPrev, wCurr float64) (Quad, bool) {
	if wPrev <= 0 || wCurr <= 0 {
		return Quad{}, false
	}
	if prev.Position.Distance(curr.Position) <= degenerateEpsilon {
		return Quad{}, false
	}
	return Quad{
		AL: prev.Position.Add(prev.Normal.Scale(-wPrev)),
		AR: prev.Position.Add(prev.Normal.Scale(wPrev)),
		BL: curr.Position.Add(curr.Normal.Scale(-wCurr)),
		BR: curr.Position.Add(curr.Normal.Scale(wCurr)),
	}, true
}

// Build writes the whole stroke as a shared-vertex strip, with round caps at
// the first and last emitted segments when enabled. It reserves its own
// capacity and does not clear dst. totalLength is the stroke's arc length.
func (b *Builder) Build(dst *mesh.Buffer, pts []CenterlinePoint, totalLength float64) Result {
	var res Result
	if len(pts) < 2 {
		return res
	}
	dst.Reserve(len(pts) - 1)

	widths := make([]float64, len(pts))
	for i := range pts {
		widths[i] = b.opts.HalfWidth(pts[i], totalLength)
	}

	var (
		open       bool // last emitted segment ends at pts[i-1]
		firstEdges []uint32
		firstIdx   = -1
		lastEdges  []uint32
		lastIdx    = -1
	)
	for i := 1; i < len(pts); i++ {
		q, ok := Segment(pts[i-1], pts[i], widths[i-1], widths[i])
		if !ok {
			res.Skipped++
			open = false
			continue
		}
		if open {
			dst.ContinueQuad(q.BL.f32(), q.BR.f32(), b.opts.Color, b.opts.Alpha,
				[2]float32{mesh.SideLeft, mesh.SideRight})
		} else {
			base := uint32(dst.VertexCount())
			dst.AppendQuad(q.AL.f32(), q.AR.f32(), q.BL.f32(), q.BR.f32(),
				b.opts.Color, b.opts.Alpha, mesh.QuadSides)
			if firstIdx < 0 {
				firstIdx = i - 1
				firstEdges = []uint32{base, base + 1}
			}
		}
		bl := uint32(dst.VertexCount() - 2)
		lastEdges = []uint32{bl + 1, bl} // BR, BL in end-cap arc order
		lastIdx = i
		open = true
		res.Quads++
		b.record(pts[i-1], pts[i], q)
	}

	if firstIdx >= 0 && b.opts.CapStart {
		res.CapTriangles += b.appendCap(dst, pts[firstIdx], widths[firstIdx], true, firstEdges)
	}
	if lastIdx >= 0 && b.opts.CapEnd {
		res.CapTriangles += b.appendCap(dst, pts[lastIdx], widths[lastIdx], false, lastEdges)
	}
	return res
}

// Extend appends one independent quad per consecutive pair of
// prev, pts[0], pts[1], ... without sharing vertices. Used by persistent
// accumulation, where only the newly arrived suffix is processed. When
// capStart is set, a start cap is written at the first emitted segment.
// totalLength is math.Inf(1) while the stroke end is unknown.
func (b *Builder) Extend(dst *mesh.Buffer, prev CenterlinePoint, pts []CenterlinePoint, totalLength float64, capStart bool) Result {
	var res Result
	if len(pts) == 0 {
		return res
	}
	// The start cap is written between quads of this batch.
	need := len(pts)
	if capStart && b.opts.CapStart {
		need += capSegments(b.capSteps(), true)
	}
	dst.Reserve(need)

	wPrev := b.opts.HalfWidth(prev, totalLength)
	for _, curr := range pts {
		wCurr := b.opts.HalfWidth(curr, totalLength)
		q, ok := Segment(prev, curr, wPrev, wCurr)
		if !ok {
			res.Skipped++
			// Coincident points keep the earlier anchor.
			if prev.Position.Distance(curr.Position) > degenerateEpsilon {
				prev, wPrev = curr, wCurr
			}
			continue
		}
		base := uint32(dst.VertexCount())
		dst.AppendQuad(q.AL.f32(), q.AR.f32(), q.BL.f32(), q.BR.f32(),
			b.opts.Color, b.opts.Alpha, mesh.QuadSides)
		res.Quads++
		b.record(prev, curr, q)

		if capStart && b.opts.CapStart {
			res.CapTriangles += b.appendCap(dst, prev, wPrev, true, []uint32{base, base + 1})
			capStart = false
		}
		prev, wPrev = curr, wCurr
	}
	return res
}

// CapEnd writes an end cap with fresh edge vertices at pt. It is a no-op
// when end caps are disabled.
func (b *Builder) CapEnd(dst *mesh.Buffer, pt CenterlinePoint, totalLength float64) Result {
	var res Result
	if !b.opts.CapEnd || pt.Normal.Length() == 0 {
		return res
	}
	w := b.opts.HalfWidth(pt, totalLength)
	if w <= 0 || math.IsNaN(w) {
		return res
	}
	res.CapTriangles = b.appendCap(dst, pt, w, false, nil)
	return res
}

func (b *Builder) record(prev, curr CenterlinePoint, q Quad) {
	if b.debug == nil {
		return
	}
	b.debug.Push(DebugSegment{
		Quad:       q,
		CenterPrev: prev.Position,
		CenterCurr: curr.Position,
		NormalPrev: prev.Normal,
		NormalCurr: curr.Normal,
	})
}
