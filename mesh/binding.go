// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mesh

// Capacity describes the physical size of a buffer's backing arrays.
type Capacity struct {
	// Segments is the capacity in quads. Always seed * 2^k.
	Segments int

	// Vertices is Segments * VerticesPerSegment.
	Vertices int

	// Indices is Segments * IndicesPerSegment.
	Indices int
}

// capacityFor returns the Capacity of a buffer holding n segments.
func capacityFor(segments int) Capacity {
	return Capacity{
		Segments: segments,
		Vertices: segments * VerticesPerSegment,
		Indices:  segments * IndicesPerSegment,
	}
}

// Range is the used prefix of each buffer array.
//
// The slices alias the buffer's storage and are only valid until the next
// mutation of the buffer. Consumers must copy what they keep.
type Range struct {
	// Positions holds 2 floats per vertex.
	Positions []float32

	// Colors holds 4 floats per vertex.
	Colors []float32

	// Sides holds 1 float per vertex.
	Sides []float32

	// Indices is the triangle list.
	Indices []uint32

	// VertexStart and IndexStart are the first vertex and index that
	// changed since the previous upload to the same binding. Elements
	// before them are unchanged. UsedRange reports zero for both.
	VertexStart int
	IndexStart  int
}

// VertexCount returns the number of vertices in the range.
func (r Range) VertexCount() int {
	return len(r.Sides)
}

// IndexCount returns the number of indices in the range.
func (r Range) IndexCount() int {
	return len(r.Indices)
}

// TriangleCount returns the number of triangles in the range.
func (r Range) TriangleCount() int {
	return len(r.Indices) / 3
}

// Empty reports whether the range contains no triangles.
func (r Range) Empty() bool {
	return len(r.Indices) == 0
}

// Binding is the external handle attached to a Buffer, typically the
// renderer's draw-call descriptor or device buffers.
//
// Rebind is called once when the binding is attached and again after every
// capacity growth, with the new physical capacity. Upload receives the used
// prefix on every UploadUsedRange; a zero-length range means draw nothing.
// An Upload may write only the elements from VertexStart and IndexStart on;
// both are zero after Rebind and Clear.
type Binding interface {
	Rebind(c Capacity)
	Upload(r Range)
}
