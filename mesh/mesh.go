// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mesh

// Mesh is an immutable triangulated mesh produced by Buffer.Freeze.
type Mesh struct {
	positions []float32
	colors    []float32
	sides     []float32
	indices   []uint32
	quads     int
}

// Range returns the mesh arrays. The slices must not be modified.
func (m *Mesh) Range() Range {
	if m == nil {
		return Range{}
	}
	return Range{
		Positions: m.positions,
		Colors:    m.colors,
		Sides:     m.sides,
		Indices:   m.indices,
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.sides)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.indices) / 3
}

// QuadCount returns the number of ribbon quads the mesh was built from.
func (m *Mesh) QuadCount() int {
	if m == nil {
		return 0
	}
	return m.quads
}

// Empty reports whether the mesh has no triangles.
func (m *Mesh) Empty() bool {
	return m.TriangleCount() == 0
}

// Bounds returns the axis-aligned bounding box of the vertices as
// (minX, minY, maxX, maxY). An empty mesh returns all zeros.
func (m *Mesh) Bounds() (minX, minY, maxX, maxY float32) {
	if m.VertexCount() == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = m.positions[0], m.positions[1]
	maxX, maxY = minX, minY
	for i := 2; i < len(m.positions); i += 2 {
		x, y := m.positions[i], m.positions[i+1]
		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}
	return minX, minY, maxX, maxY
}
