// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ink/mesh"
)

// Byte sizes of one element of each stream.
const (
	positionStride = 8  // vec2<f32>
	colorStride    = 16 // vec4<f32>
	sideStride     = 4  // f32
	indexStride    = 4  // u32
)

// ErrBindingDestroyed is returned when a destroyed binding is used.
var ErrBindingDestroyed = errors.New("gpu: mesh binding destroyed")

// MeshBinding mirrors a mesh.Buffer in device memory.
//
// Rebind and Upload are called by the buffer and cannot return errors; the
// first failure is kept and reported by Err, and the binding draws nothing
// until the next successful Rebind.
type MeshBinding struct {
	device hal.Device
	queue  hal.Queue
	label  string

	positions hal.Buffer
	colors    hal.Buffer
	sides     hal.Buffer
	indices   hal.Buffer

	capacity    mesh.Capacity
	vertexCount int
	indexCount  uint32

	// staging is reused for float-to-byte conversion across uploads.
	staging []byte

	// writeBuffer copies bytes into a device buffer at a byte offset.
	writeBuffer func(dst hal.Buffer, offset uint64, data []byte)

	err       error
	destroyed bool
}

var _ mesh.Binding = (*MeshBinding)(nil)

// NewMeshBinding creates a binding. Device buffers are allocated on the
// first Rebind, which happens when the binding is attached to a buffer.
func NewMeshBinding(device hal.Device, queue hal.Queue, label string) *MeshBinding {
	b := &MeshBinding{device: device, queue: queue, label: label}
	b.writeBuffer = func(dst hal.Buffer, offset uint64, data []byte) {
		b.queue.WriteBuffer(dst, offset, data)
	}
	return b
}

// Rebind recreates the device buffers for capacity c. The previous
// contents are dropped; the owning buffer uploads its used prefix again
// on the next UploadUsedRange.
func (b *MeshBinding) Rebind(c mesh.Capacity) {
	if b.destroyed {
		b.err = ErrBindingDestroyed
		return
	}
	b.release()
	b.vertexCount = 0
	b.indexCount = 0
	b.err = nil

	var err error
	if b.positions, err = b.create("positions", c.Vertices*positionStride, gputypes.BufferUsageVertex); err != nil {
		b.fail(err)
		return
	}
	if b.colors, err = b.create("colors", c.Vertices*colorStride, gputypes.BufferUsageVertex); err != nil {
		b.fail(err)
		return
	}
	if b.sides, err = b.create("sides", c.Vertices*sideStride, gputypes.BufferUsageVertex); err != nil {
		b.fail(err)
		return
	}
	if b.indices, err = b.create("indices", c.Indices*indexStride, gputypes.BufferUsageIndex); err != nil {
		b.fail(err)
		return
	}
	b.capacity = c
	slogger().Debug("gpu: mesh binding allocated",
		"label", b.label, "segments", c.Segments, "vertices", c.Vertices, "indices", c.Indices)
}

// Upload writes the used prefix of r from r.VertexStart and r.IndexStart
// on. Elements before the starts are kept from earlier uploads; starts past
// what the device buffers hold fall back to a full write. An empty range
// only resets the draw count.
func (b *MeshBinding) Upload(r mesh.Range) {
	if b.destroyed || b.indices == nil {
		return
	}
	if r.VertexCount() > b.capacity.Vertices || r.IndexCount() > b.capacity.Indices {
		b.fail(fmt.Errorf("gpu: upload of %d vertices/%d indices exceeds capacity %d/%d",
			r.VertexCount(), r.IndexCount(), b.capacity.Vertices, b.capacity.Indices))
		return
	}
	vs, is := r.VertexStart, r.IndexStart
	if vs < 0 || vs > b.vertexCount || vs > r.VertexCount() {
		vs = 0
	}
	if is < 0 || is > int(b.indexCount) || is > r.IndexCount() {
		is = 0
	}
	b.vertexCount = r.VertexCount()
	b.indexCount = uint32(r.IndexCount()) //nolint:gosec // bounded by capacity
	if r.Empty() {
		return
	}
	b.write(b.positions, vs*positionStride, r.Positions[vs*2:])
	b.write(b.colors, vs*colorStride, r.Colors[vs*4:])
	b.write(b.sides, vs*sideStride, r.Sides[vs:])
	b.writeIndices(is*indexStride, r.Indices[is:])
}

// IndexCount returns the number of indices of the last upload.
func (b *MeshBinding) IndexCount() uint32 {
	return b.indexCount
}

// Capacity returns the capacity of the current device buffers.
func (b *MeshBinding) Capacity() mesh.Capacity {
	return b.capacity
}

// Err returns the first error since the last successful Rebind.
func (b *MeshBinding) Err() error {
	return b.err
}

// Destroy releases the device buffers. Safe to call multiple times.
func (b *MeshBinding) Destroy() {
	b.release()
	b.vertexCount = 0
	b.indexCount = 0
	b.destroyed = true
}

// record binds the streams and issues one indexed draw.
func (b *MeshBinding) record(rp hal.RenderPassEncoder) bool {
	if b.err != nil || b.indexCount == 0 || b.indices == nil {
		return false
	}
	rp.SetVertexBuffer(0, b.positions, 0)
	rp.SetVertexBuffer(1, b.colors, 0)
	rp.SetVertexBuffer(2, b.sides, 0)
	rp.SetIndexBuffer(b.indices, gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(b.indexCount, 1, 0, 0, 0)
	return true
}

func (b *MeshBinding) create(stream string, size int, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: b.label + "_" + stream,
		Size:  uint64(size), //nolint:gosec // capacity is positive
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s %s buffer: %w", b.label, stream, err)
	}
	return buf, nil
}

func (b *MeshBinding) fail(err error) {
	if b.err == nil {
		b.err = err
	}
	b.vertexCount = 0
	b.indexCount = 0
	slogger().Warn("gpu: mesh binding failed", "label", b.label, "err", err)
}

func (b *MeshBinding) write(dst hal.Buffer, offset int, src []float32) {
	if len(src) == 0 {
		return
	}
	data := b.stage(len(src) * 4)
	for i, v := range src {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	b.writeBuffer(dst, uint64(offset), data) //nolint:gosec // offset is non-negative
}

func (b *MeshBinding) writeIndices(offset int, src []uint32) {
	if len(src) == 0 {
		return
	}
	data := b.stage(len(src) * indexStride)
	for i, v := range src {
		binary.LittleEndian.PutUint32(data[i*4:], v)
	}
	b.writeBuffer(b.indices, uint64(offset), data) //nolint:gosec // offset is non-negative
}

func (b *MeshBinding) stage(n int) []byte {
	if cap(b.staging) < n {
		b.staging = make([]byte, n)
	}
	return b.staging[:n]
}

// release destroys the device buffers in reverse creation order.
func (b *MeshBinding) release() {
	if b.device == nil {
		return
	}
	for _, buf := range []*hal.Buffer{&b.indices, &b.sides, &b.colors, &b.positions} {
		if *buf != nil {
			b.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
	b.capacity = mesh.Capacity{}
}
