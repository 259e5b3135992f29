// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import "github.com/gogpu/ink/mesh"

// recordingBinding captures what a buffer hands to its renderer.
type recordingBinding struct {
	rebinds  []mesh.Capacity
	uploads  int
	vertices int
	indices  int
}

func (b *recordingBinding) Rebind(c mesh.Capacity) {
	b.rebinds = append(b.rebinds, c)
}

func (b *recordingBinding) Upload(r mesh.Range) {
	b.uploads++
	b.vertices = r.VertexCount()
	b.indices = r.IndexCount()
}

// line returns n samples along y from x0, dx apart, 16ms apart.
func line(n int, x0, dx, y, t0 float64) []Sample {
	out := make([]Sample, n)
	for i := range out {
		out[i] = Sample{X: x0 + float64(i)*dx, Y: y, Pressure: 0.5, Time: t0 + float64(i)*16}
	}
	return out
}

// drawStroke delivers samples as pointer-down, one move per sample and a
// pointer-up without samples.
func drawStroke(t Tool, id int, samples []Sample) *StrokeObject {
	t.PointerDown(PointerEvent{PointerID: id, Samples: samples[:1]})
	for _, s := range samples[1:] {
		t.PointerMove(PointerEvent{PointerID: id, Samples: []Sample{s}})
	}
	return t.PointerUp(PointerEvent{PointerID: id})
}
