// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mesh

const (
	// VerticesPerSegment is the number of vertices in one quad.
	VerticesPerSegment = 4

	// IndicesPerSegment is the number of indices in one quad (two triangles).
	IndicesPerSegment = 6

	// DefaultSeedSegments is the initial capacity used by strokes and surfaces.
	DefaultSeedSegments = 1000

	// minSeedSegments is the smallest accepted seed capacity.
	minSeedSegments = 16
)

// Side tags for vertices.
const (
	SideLeft   float32 = -1
	SideCenter float32 = 0
	SideRight  float32 = 1
)

// QuadSides is the side tag set for AppendQuad in AL, AR, BL, BR order.
var QuadSides = [4]float32{SideLeft, SideRight, SideLeft, SideRight}

// Point is a vertex position in surface coordinates.
type Point struct {
	X, Y float32
}

// Color is an RGB tint. Alpha is passed separately per append.
type Color struct {
	R, G, B float32
}

// FanVertex is one arc vertex of a fan. It either introduces a new vertex
// or refers to a vertex already in the buffer (for example a ribbon edge).
type FanVertex struct {
	Pos    Point
	Side   float32
	Shared bool
	Index  uint32
}

// NewFanVertex returns a fan vertex that is appended to the buffer.
func NewFanVertex(p Point, side float32) FanVertex {
	return FanVertex{Pos: p, Side: side}
}

// SharedFanVertex returns a fan vertex that reuses buffer vertex index.
func SharedFanVertex(index uint32) FanVertex {
	return FanVertex{Shared: true, Index: index}
}

// Option configures a Buffer during creation.
type Option func(*Buffer)

// WithBinding attaches a binding at construction.
func WithBinding(b Binding) Option {
	return func(buf *Buffer) {
		buf.binding = b
	}
}

// Buffer is a growable geometry buffer with amortized-doubling capacity.
type Buffer struct {
	seed        int
	capSegments int

	positions []float32
	colors    []float32
	sides     []float32
	indices   []uint32

	vertCount  int
	indexCount int

	quads int

	// pairOpen is true when the last two vertices are the B edge of a quad,
	// so ContinueQuad can extend the strip.
	pairOpen bool

	// cleanVerts and cleanIndices count the leading elements the binding
	// already holds unchanged.
	cleanVerts   int
	cleanIndices int

	binding Binding
	growths int
	uploads int
}

// NewBuffer allocates a buffer with the given seed capacity in segments.
// Seeds below 16 are raised to 16.
func NewBuffer(seedSegments int, opts ...Option) *Buffer {
	if seedSegments < minSeedSegments {
		seedSegments = minSeedSegments
	}
	b := &Buffer{seed: seedSegments}
	b.alloc(seedSegments)
	for _, opt := range opts {
		opt(b)
	}
	if b.binding != nil {
		b.binding.Rebind(b.Capacity())
	}
	return b
}

// alloc replaces the backing arrays with arrays sized for segments,
// copying the used prefix.
func (b *Buffer) alloc(segments int) {
	c := capacityFor(segments)

	positions := make([]float32, c.Vertices*2)
	colors := make([]float32, c.Vertices*4)
	sides := make([]float32, c.Vertices)
	indices := make([]uint32, c.Indices)

	copy(positions, b.positions[:b.vertCount*2])
	copy(colors, b.colors[:b.vertCount*4])
	copy(sides, b.sides[:b.vertCount])
	copy(indices, b.indices[:b.indexCount])

	b.positions = positions
	b.colors = colors
	b.sides = sides
	b.indices = indices
	b.capSegments = segments
}

// Bind attaches b as the buffer's external handle and rebinds it to the
// current capacity. Passing nil detaches.
func (b *Buffer) Bind(binding Binding) {
	b.binding = binding
	b.markDirty()
	if binding != nil {
		binding.Rebind(b.Capacity())
	}
}

// Seed returns the seed capacity in segments.
func (b *Buffer) Seed() int {
	return b.seed
}

// Capacity returns the physical capacity.
func (b *Buffer) Capacity() Capacity {
	return capacityFor(b.capSegments)
}

// Growths returns how many times the buffer has reallocated.
func (b *Buffer) Growths() int {
	return b.growths
}

// Uploads returns how many times UploadUsedRange has been called.
func (b *Buffer) Uploads() int {
	return b.uploads
}

// SegmentsFor returns the number of segments needed to hold the given
// vertex and index counts.
func SegmentsFor(vertices, indices int) int {
	sv := (vertices + VerticesPerSegment - 1) / VerticesPerSegment
	si := (indices + IndicesPerSegment - 1) / IndicesPerSegment
	return max(sv, si)
}

// UsedSegments returns the number of segments currently in use.
func (b *Buffer) UsedSegments() int {
	return SegmentsFor(b.vertCount, b.indexCount)
}

// VertexCount returns the number of used vertices.
func (b *Buffer) VertexCount() int {
	return b.vertCount
}

// IndexCount returns the number of used indices.
func (b *Buffer) IndexCount() int {
	return b.indexCount
}

// QuadCount returns the number of quads appended since the last Clear.
func (b *Buffer) QuadCount() int {
	return b.quads
}

// TriangleCount returns the number of used triangles.
func (b *Buffer) TriangleCount() int {
	return b.indexCount / 3
}

// Reserve ensures room for segments more segments past the used prefix.
// When capacity is insufficient it doubles until sufficient, reallocates,
// copies the used prefix and rebinds the attached handle.
func (b *Buffer) Reserve(segments int) {
	if segments <= 0 {
		return
	}
	needed := b.UsedSegments() + segments
	if needed <= b.capSegments {
		return
	}
	newCap := b.capSegments
	for newCap < needed {
		newCap *= 2
	}
	b.alloc(newCap)
	b.growths++
	b.markDirty()
	if b.binding != nil {
		b.binding.Rebind(b.Capacity())
	}
}

// ReserveFan ensures room for a fan with the given number of new vertices
// and triangles.
func (b *Buffer) ReserveFan(newVertices, triangles int) {
	b.Reserve(SegmentsFor(newVertices, triangles*3))
}

func (b *Buffer) requireRoom(op string, vertices, indices int) {
	if b.vertCount+vertices > len(b.sides) || b.indexCount+indices > len(b.indices) {
		panic("mesh: " + op + " without Reserve")
	}
}

func (b *Buffer) putVertex(p Point, c Color, alpha, side float32) uint32 {
	i := b.vertCount
	b.positions[i*2] = p.X
	b.positions[i*2+1] = p.Y
	b.colors[i*4] = c.R
	b.colors[i*4+1] = c.G
	b.colors[i*4+2] = c.B
	b.colors[i*4+3] = alpha
	b.sides[i] = side
	b.vertCount++
	return uint32(i)
}

func (b *Buffer) putTriangle(i0, i1, i2 uint32) {
	b.indices[b.indexCount] = i0
	b.indices[b.indexCount+1] = i1
	b.indices[b.indexCount+2] = i2
	b.indexCount += 3
}

// AppendQuad writes the four corners of a segment and its two triangles
// {0,1,2} and {1,3,2} in local AL, AR, BL, BR order. It panics if Reserve
// did not leave room for one segment.
func (b *Buffer) AppendQuad(al, ar, bl, br Point, c Color, alpha float32, sides [4]float32) {
	b.requireRoom("AppendQuad", VerticesPerSegment, IndicesPerSegment)
	base := b.putVertex(al, c, alpha, sides[0])
	b.putVertex(ar, c, alpha, sides[1])
	b.putVertex(bl, c, alpha, sides[2])
	b.putVertex(br, c, alpha, sides[3])
	b.putTriangle(base, base+1, base+2)
	b.putTriangle(base+1, base+3, base+2)
	b.quads++
	b.pairOpen = true
}

// ContinueQuad appends a quad whose A edge is the B edge of the previous
// quad, writing only the two new corners. It panics if the last append was
// not a quad or if Reserve did not leave room.
func (b *Buffer) ContinueQuad(bl, br Point, c Color, alpha float32, sides [2]float32) {
	if !b.pairOpen {
		panic("mesh: ContinueQuad without a preceding quad")
	}
	b.requireRoom("ContinueQuad", 2, IndicesPerSegment)
	al := uint32(b.vertCount - 2)
	ar := al + 1
	nbl := b.putVertex(bl, c, alpha, sides[0])
	nbr := b.putVertex(br, c, alpha, sides[1])
	b.putTriangle(al, ar, nbl)
	b.putTriangle(ar, nbr, nbl)
	b.quads++
}

// AppendFan writes a center vertex (side 0) and the new arc vertices, then
// one triangle per consecutive arc pair sharing the center. Shared arc
// vertices refer to existing buffer vertices.
func (b *Buffer) AppendFan(center Point, arc []FanVertex, c Color, alpha float32) {
	if len(arc) < 2 {
		return
	}
	newVerts := 1
	for _, v := range arc {
		if !v.Shared {
			newVerts++
		}
	}
	b.requireRoom("AppendFan", newVerts, (len(arc)-1)*3)

	ci := b.putVertex(center, c, alpha, SideCenter)
	prev := b.fanIndex(arc[0], c, alpha)
	for _, v := range arc[1:] {
		cur := b.fanIndex(v, c, alpha)
		b.putTriangle(ci, prev, cur)
		prev = cur
	}
	b.pairOpen = false
}

func (b *Buffer) fanIndex(v FanVertex, c Color, alpha float32) uint32 {
	if v.Shared {
		return v.Index
	}
	return b.putVertex(v.Pos, c, alpha, v.Side)
}

// UsedRange returns the used prefix of each array.
func (b *Buffer) UsedRange() Range {
	return Range{
		Positions: b.positions[:b.vertCount*2],
		Colors:    b.colors[:b.vertCount*4],
		Sides:     b.sides[:b.vertCount],
		Indices:   b.indices[:b.indexCount],
	}
}

// UploadUsedRange hands the used prefix to the attached binding, with
// VertexStart and IndexStart set past the elements uploaded before and
// unchanged since. It must be called after every mutation that is to
// become visible.
func (b *Buffer) UploadUsedRange() {
	b.uploads++
	if b.binding == nil {
		return
	}
	r := b.UsedRange()
	r.VertexStart = min(b.cleanVerts, b.vertCount)
	r.IndexStart = min(b.cleanIndices, b.indexCount)
	b.binding.Upload(r)
	b.cleanVerts = b.vertCount
	b.cleanIndices = b.indexCount
}

// Clear resets the used counters. Storage is kept; capacity is unchanged.
func (b *Buffer) Clear() {
	b.vertCount = 0
	b.indexCount = 0
	b.quads = 0
	b.pairOpen = false
	b.markDirty()
}

// markDirty forces the next upload to start at zero.
func (b *Buffer) markDirty() {
	b.cleanVerts = 0
	b.cleanIndices = 0
}

// Freeze copies the used prefix into an immutable Mesh.
func (b *Buffer) Freeze() *Mesh {
	r := b.UsedRange()
	return &Mesh{
		positions: append([]float32(nil), r.Positions...),
		colors:    append([]float32(nil), r.Colors...),
		sides:     append([]float32(nil), r.Sides...),
		indices:   append([]uint32(nil), r.Indices...),
		quads:     b.quads,
	}
}
