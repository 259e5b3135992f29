// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"math"

	"github.com/gogpu/ink/mesh"
)

// DefaultCapSteps is the number of fan triangles in a round cap.
const DefaultCapSteps = 14

// CapArc returns the steps+1 arc points of a semicircular cap of radius w
// around pt, oriented away from the stroke. The first and last points are
// the ribbon edge corners: for a start cap AL then AR, for an end cap BR
// then BL.
func CapArc(pt CenterlinePoint, w float64, steps int, atStart bool) []Point {
	n := pt.Normal
	t := pt.Tangent()
	if atStart {
		// Sweep from -n through -t to +n.
		n = n.Neg()
		t = t.Neg()
	}
	arc := make([]Point, steps+1)
	for i := 0; i <= steps; i++ {
		theta := math.Pi * float64(i) / float64(steps)
		dir := n.Scale(math.Cos(theta)).Add(t.Scale(math.Sin(theta)))
		arc[i] = pt.Position.Add(dir.Scale(w))
	}
	// Pin the edges to the exact ribbon corners.
	arc[0] = pt.Position.Add(n.Scale(w))
	arc[steps] = pt.Position.Add(n.Scale(-w))
	return arc
}

// capSide returns the side tag of interior arc vertex i of steps: the side
// of the nearer edge corner, ties going to the closing corner.
func capSide(i, steps int, first, last float32) float32 {
	if 2*i < steps {
		return first
	}
	return last
}

// appendCap writes a round cap fan. edges are the buffer indices of the two
// ribbon corners at the endpoint in arc order, or nil to write fresh edge
// vertices. Returns the number of triangles written.
func (b *Builder) appendCap(dst *mesh.Buffer, pt CenterlinePoint, w float64, atStart bool, edges []uint32) int {
	steps := b.capSteps()
	arc := CapArc(pt, w, steps, atStart)

	first, last := mesh.SideLeft, mesh.SideRight
	if !atStart {
		first, last = mesh.SideRight, mesh.SideLeft
	}

	verts := make([]mesh.FanVertex, len(arc))
	for i, p := range arc {
		switch {
		case i == 0 && edges != nil:
			verts[i] = mesh.SharedFanVertex(edges[0])
		case i == steps && edges != nil:
			verts[i] = mesh.SharedFanVertex(edges[1])
		default:
			verts[i] = mesh.NewFanVertex(p.f32(), capSide(i, steps, first, last))
		}
	}

	dst.Reserve(capSegments(steps, edges != nil))
	dst.AppendFan(pt.Position.f32(), verts, b.opts.Color, b.opts.Alpha)
	return steps
}

func (b *Builder) capSteps() int {
	if b.opts.CapSteps < 2 {
		return DefaultCapSteps
	}
	return b.opts.CapSteps
}

// capSegments returns the buffer segments a cap fan of steps triangles
// occupies. Shared caps reuse the two ribbon corners.
func capSegments(steps int, shared bool) int {
	newVerts := steps // center + steps-1 interior
	if !shared {
		newVerts += 2
	}
	return mesh.SegmentsFor(newVerts, steps*3)
}
