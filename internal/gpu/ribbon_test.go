// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ink/mesh"
)

func TestCompileRibbonShader(t *testing.T) {
	spirv, err := CompileRibbonShader()
	if err != nil {
		if strings.Contains(err.Error(), "not yet implemented") || strings.Contains(err.Error(), "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("CompileRibbonShader() error = %v", err)
	}
	if len(spirv) < 4 {
		t.Fatal("SPIR-V too short")
	}
	if magic := binary.LittleEndian.Uint32(spirv); magic != 0x07230203 {
		t.Errorf("SPIR-V magic = %#x, want 0x07230203", magic)
	}
	for _, entry := range []string{"vs_main", "fs_main"} {
		if !strings.Contains(RibbonShaderSource(), "fn "+entry) {
			t.Errorf("shader has no entry point %s", entry)
		}
	}
}

func TestRibbonRendererPrepare(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRibbonRenderer(device, queue, gputypes.TextureFormatBGRA8Unorm)
	defer r.Destroy()

	if r.shader != nil || len(r.pipelines) != 0 {
		t.Fatal("expected lazy pipeline creation")
	}

	alpha, err := r.Prepare(64, 48, mesh.DefaultDrawParams())
	if err != nil {
		t.Fatalf("Prepare(alpha) error = %v", err)
	}
	defer alpha.Destroy(device)
	first := r.pipelines[mesh.BlendAlpha]

	additive, err := r.Prepare(64, 48, mesh.DrawParams{FeatherThreshold: 0.85, Blend: mesh.BlendAdditive})
	if err != nil {
		t.Fatalf("Prepare(additive) error = %v", err)
	}
	defer additive.Destroy(device)

	if len(r.pipelines) != 2 {
		t.Errorf("len(pipelines) = %d, want 2", len(r.pipelines))
	}
	again, err := r.Prepare(32, 32, mesh.DefaultDrawParams())
	if err != nil {
		t.Fatal(err)
	}
	again.Destroy(device)
	if r.pipelines[mesh.BlendAlpha] != first {
		t.Error("pipeline was recreated unnecessarily")
	}

	if _, err := r.Prepare(0, 10, mesh.DefaultDrawParams()); err == nil {
		t.Error("Prepare with empty viewport should fail")
	}
}

func TestRibbonRendererRecordDraws(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRibbonRenderer(device, queue, gputypes.TextureFormatRGBA8Unorm)
	defer r.Destroy()

	full := r.NewBinding("full")
	defer full.Destroy()
	quadBuffer(full, 2)

	empty := r.NewBinding("empty")
	defer empty.Destroy()
	quadBuffer(empty, 0)

	res, err := r.Prepare(100, 100, mesh.DrawParams{FeatherThreshold: 0.85, Blend: mesh.BlendAdditive})
	if err != nil {
		t.Fatal(err)
	}
	defer res.Destroy(device)

	pass := &recordingPass{}
	if n := r.RecordDraws(pass, res, empty, nil, full); n != 1 {
		t.Fatalf("RecordDraws() = %d, want 1", n)
	}
	if pass.pipelines != 1 || pass.bindGroups != 1 {
		t.Errorf("pipelines set %d times, bind groups %d times; want 1, 1", pass.pipelines, pass.bindGroups)
	}
	if diff := cmp.Diff([]uint32{0, 1, 2}, pass.slots); diff != "" {
		t.Errorf("vertex slots mismatch (-want +got):\n%s", diff)
	}
	if pass.indexFormat != gputypes.IndexFormatUint32 {
		t.Errorf("index format = %v, want uint32", pass.indexFormat)
	}
	if diff := cmp.Diff([]uint32{12}, pass.draws); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}

	if n := r.RecordDraws(&recordingPass{}, nil, full); n != 0 {
		t.Errorf("RecordDraws(nil resources) = %d, want 0", n)
	}
}

func TestRibbonRendererDestroy(t *testing.T) {
	device, queue := createNoopDevice(t)
	r := NewRibbonRenderer(device, queue, gputypes.TextureFormatBGRA8Unorm)
	res, err := r.Prepare(8, 8, mesh.DefaultDrawParams())
	if err != nil {
		t.Fatal(err)
	}
	res.Destroy(device)
	res.Destroy(device)

	r.Destroy()
	if r.shader != nil || r.uniformLayout != nil || r.pipeLayout != nil || len(r.pipelines) != 0 {
		t.Error("Destroy left GPU objects behind")
	}
	r.Destroy()
}

func TestBlendState(t *testing.T) {
	if got, want := blendState(mesh.BlendAlpha), gputypes.BlendStatePremultiplied(); got != want {
		t.Errorf("blendState(alpha) = %+v, want premultiplied %+v", got, want)
	}
	add := blendState(mesh.BlendAdditive)
	for name, c := range map[string]gputypes.BlendComponent{"color": add.Color, "alpha": add.Alpha} {
		if c.SrcFactor != gputypes.BlendFactorOne || c.DstFactor != gputypes.BlendFactorOne ||
			c.Operation != gputypes.BlendOperationAdd {
			t.Errorf("additive %s = %+v, want one + one", name, c)
		}
	}
}

func TestMakeRibbonUniform(t *testing.T) {
	buf := makeRibbonUniform(640, 480, 0.85)
	if len(buf) != ribbonUniformSize {
		t.Fatalf("len = %d, want %d", len(buf), ribbonUniformSize)
	}
	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	if f(0) != 640 || f(4) != 480 || f(8) != 0.85 || f(12) != 0 {
		t.Errorf("uniform = [%v %v %v %v], want [640 480 0.85 0]", f(0), f(4), f(8), f(12))
	}
}
