// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu draws ink geometry with a shared wgpu device.
//
// A Renderer creates one Binding per geometry buffer. Attach the binding to
// an ephemeral tool or a surface with ink.WithBinding (or Surface.Bind) and
// the buffer keeps the device copy current: growth recreates the device
// buffers and every update writes the used prefix.
//
// Usage:
//
//	r, err := gpu.NewRenderer(provider)
//	if err != nil {
//	    return err
//	}
//	defer r.Destroy()
//
//	binding := r.NewBinding("surface")
//	surface := ink.NewSurface(ink.WithBinding(binding))
//
//	// per frame, inside a render pass owned by the application:
//	frame, err := r.Record(pass, width, height, settings.DrawParams(ink.BlendAdditive), binding)
//	...
//	frame.Destroy() // after submit
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ink"
	gpuimpl "github.com/gogpu/ink/internal/gpu"
)

// ErrNoHAL is returned when a device provider does not expose its HAL
// device and queue.
var ErrNoHAL = errors.New("gpu: provider does not expose HAL types")

// Binding mirrors one geometry buffer in device memory. It implements
// mesh.Binding.
type Binding = gpuimpl.MeshBinding

// Renderer records ribbon draws for one device.
type Renderer struct {
	device hal.Device
	r      *gpuimpl.RibbonRenderer
}

// NewRenderer creates a renderer on the provider's device, targeting its
// surface format. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewRenderer(provider gpucontext.DeviceProvider) (*Renderer, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewRendererFromHAL(device, queue, provider.SurfaceFormat()), nil
}

// NewRendererFromHAL creates a renderer on an explicit device and queue.
func NewRendererFromHAL(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *Renderer {
	gpuimpl.SetLogger(ink.Logger())
	ink.Logger().Debug("gpu: renderer created", "format", format)
	return &Renderer{
		device: device,
		r:      gpuimpl.NewRibbonRenderer(device, queue, format),
	}
}

// NewBinding creates a binding on the renderer's device.
func (r *Renderer) NewBinding(label string) *Binding {
	return r.r.NewBinding(label)
}

// Frame holds per-draw resources that must outlive command submission.
type Frame struct {
	device hal.Device
	res    *gpuimpl.FrameResources

	// Draws is the number of indexed draws recorded.
	Draws int
}

// Destroy releases the frame resources. Call after the pass was submitted.
func (f *Frame) Destroy() {
	if f == nil {
		return
	}
	f.res.Destroy(f.device)
}

// Record records one draw per non-empty binding into rp, using the blend
// mode and feather threshold of p, for a width x height target.
func (r *Renderer) Record(rp hal.RenderPassEncoder, width, height uint32, p ink.DrawParams, bindings ...*Binding) (*Frame, error) {
	res, err := r.r.Prepare(width, height, p)
	if err != nil {
		return nil, err
	}
	return &Frame{
		device: r.device,
		res:    res,
		Draws:  r.r.RecordDraws(rp, res, bindings...),
	}, nil
}

// Destroy releases the renderer's pipelines. Bindings are destroyed by
// their owners.
func (r *Renderer) Destroy() {
	r.r.Destroy()
}
