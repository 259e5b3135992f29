// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/ink/mesh"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// recordingPass captures the calls RibbonRenderer makes on a render pass.
// Methods it does not override panic through the nil embedded encoder.
type recordingPass struct {
	hal.RenderPassEncoder

	pipelines   int
	bindGroups  int
	slots       []uint32
	indexFormat gputypes.IndexFormat
	draws       []uint32
}

func (p *recordingPass) SetPipeline(hal.RenderPipeline) { p.pipelines++ }

func (p *recordingPass) SetBindGroup(uint32, hal.BindGroup, []uint32) { p.bindGroups++ }

func (p *recordingPass) SetVertexBuffer(slot uint32, _ hal.Buffer, _ uint64) {
	p.slots = append(p.slots, slot)
}

func (p *recordingPass) SetIndexBuffer(_ hal.Buffer, format gputypes.IndexFormat, _ uint64) {
	p.indexFormat = format
}

func (p *recordingPass) DrawIndexed(indexCount, _, _ uint32, _ int32, _ uint32) {
	p.draws = append(p.draws, indexCount)
}

// quadBuffer returns a buffer bound to b holding n quads.
func quadBuffer(b mesh.Binding, n int) *mesh.Buffer {
	buf := mesh.NewBuffer(16, mesh.WithBinding(b))
	buf.Reserve(n)
	for i := range n {
		x := float32(i) * 10
		buf.AppendQuad(
			mesh.Point{X: x, Y: 0}, mesh.Point{X: x, Y: 4},
			mesh.Point{X: x + 10, Y: 0}, mesh.Point{X: x + 10, Y: 4},
			mesh.Color{R: 1}, 1, mesh.QuadSides)
	}
	buf.UploadUsedRange()
	return buf
}
