// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ink/mesh"
)

//go:embed shaders/ribbon.wgsl
var ribbonShaderSource string

// ribbonUniformSize is viewport (vec2<f32>) + feather threshold (f32) + pad.
const ribbonUniformSize = 16

// RibbonRenderer draws mesh bindings with the ribbon shader.
//
// Pipelines are created lazily, one per blend mode: BlendAlpha uses
// premultiplied source-over, BlendAdditive adds source to destination so
// overlapping translucent persistent ink accumulates.
type RibbonRenderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipelines     map[mesh.BlendMode]hal.RenderPipeline
}

// NewRibbonRenderer creates a renderer targeting color attachments of the
// given format.
func NewRibbonRenderer(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *RibbonRenderer {
	return &RibbonRenderer{
		device:    device,
		queue:     queue,
		format:    format,
		pipelines: make(map[mesh.BlendMode]hal.RenderPipeline),
	}
}

// RibbonShaderSource returns the WGSL source of the ribbon shader.
func RibbonShaderSource() string {
	return ribbonShaderSource
}

// CompileRibbonShader translates the ribbon shader to SPIR-V. It is used
// to reject a broken shader before any device object is created.
func CompileRibbonShader() ([]byte, error) {
	if ribbonShaderSource == "" {
		return nil, fmt.Errorf("ribbon shader source is empty")
	}
	spirv, err := naga.Compile(ribbonShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile ribbon shader: %w", err)
	}
	return spirv, nil
}

// NewBinding creates a mesh binding on the renderer's device.
func (r *RibbonRenderer) NewBinding(label string) *MeshBinding {
	return NewMeshBinding(r.device, r.queue, label)
}

// FrameResources holds the per-draw uniform buffer and bind group.
type FrameResources struct {
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	blend      mesh.BlendMode
}

// Destroy releases the resources. Call after the pass has been submitted.
func (f *FrameResources) Destroy(device hal.Device) {
	if f == nil {
		return
	}
	if f.bindGroup != nil {
		device.DestroyBindGroup(f.bindGroup)
		f.bindGroup = nil
	}
	if f.uniformBuf != nil {
		device.DestroyBuffer(f.uniformBuf)
		f.uniformBuf = nil
	}
}

// Prepare creates the pipeline for p.Blend if needed and uploads the
// viewport and feather parameters.
func (r *RibbonRenderer) Prepare(width, height uint32, p mesh.DrawParams) (*FrameResources, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("gpu: invalid viewport %dx%d", width, height)
	}
	if err := r.ensurePipeline(p.Blend); err != nil {
		return nil, err
	}

	uniformBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "ribbon_uniform",
		Size:  ribbonUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create ribbon uniform buffer: %w", err)
	}
	r.queue.WriteBuffer(uniformBuf, 0, makeRibbonUniform(width, height, p.FeatherThreshold))

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "ribbon_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: ribbonUniformSize,
			}},
		},
	})
	if err != nil {
		r.device.DestroyBuffer(uniformBuf)
		return nil, fmt.Errorf("create ribbon bind group: %w", err)
	}
	return &FrameResources{uniformBuf: uniformBuf, bindGroup: bindGroup, blend: p.Blend}, nil
}

// RecordDraws records one indexed draw per non-empty binding into rp, in
// order. It returns the number of draws recorded.
func (r *RibbonRenderer) RecordDraws(rp hal.RenderPassEncoder, res *FrameResources, bindings ...*MeshBinding) int {
	if res == nil {
		return 0
	}
	pipeline := r.pipelines[res.blend]
	if pipeline == nil {
		return 0
	}
	draws := 0
	for _, b := range bindings {
		if b == nil || b.indexCount == 0 || b.err != nil {
			continue
		}
		if draws == 0 {
			rp.SetPipeline(pipeline)
			rp.SetBindGroup(0, res.bindGroup, nil)
		}
		if b.record(rp) {
			draws++
		}
	}
	return draws
}

// Destroy releases all GPU resources held by the renderer. Safe to call
// multiple times.
func (r *RibbonRenderer) Destroy() {
	if r.device == nil {
		return
	}
	for mode, p := range r.pipelines {
		r.device.DestroyRenderPipeline(p)
		delete(r.pipelines, mode)
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

func (r *RibbonRenderer) ensurePipeline(mode mesh.BlendMode) error {
	if r.pipelines[mode] != nil {
		return nil
	}
	if r.shader == nil {
		if err := r.createLayouts(); err != nil {
			return err
		}
	}

	blend := blendState(mode)
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "ribbon_pipeline_" + mode.String(),
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    ribbonVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    r.format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create ribbon pipeline (%s): %w", mode, err)
	}
	r.pipelines[mode] = pipeline
	slogger().Debug("gpu: ribbon pipeline created", "blend", mode.String())
	return nil
}

func (r *RibbonRenderer) createLayouts() error {
	if _, err := CompileRibbonShader(); err != nil {
		return err
	}
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "ribbon_shader",
		Source: hal.ShaderSource{WGSL: ribbonShaderSource},
	})
	if err != nil {
		return fmt.Errorf("create ribbon shader module: %w", err)
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "ribbon_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create ribbon uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "ribbon_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create ribbon pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout
	return nil
}

// blendState returns the color target blending for mode. Fragment output
// is premultiplied.
func blendState(mode mesh.BlendMode) gputypes.BlendState {
	if mode != mesh.BlendAdditive {
		return gputypes.BlendStatePremultiplied()
	}
	add := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorOne,
		Operation: gputypes.BlendOperationAdd,
	}
	return gputypes.BlendState{Color: add, Alpha: add}
}

// ribbonVertexLayout returns one buffer layout per stream, matching the
// slots used by MeshBinding.
func ribbonVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: positionStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: colorStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 1},
			},
		},
		{
			ArrayStride: sideStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32, Offset: 0, ShaderLocation: 2},
			},
		},
	}
}

func makeRibbonUniform(w, h uint32, featherThreshold float32) []byte {
	buf := make([]byte, ribbonUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(w)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(h)))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(featherThreshold))
	return buf
}
