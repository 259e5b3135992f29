// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newPersistent(t *testing.T, s Settings, opts ...Option) (*PersistentTool, *Surface, *recordingBinding) {
	t.Helper()
	rb := &recordingBinding{}
	surface := NewSurface(WithBinding(rb))
	tool, err := NewPersistentTool(surface, s, opts...)
	if err != nil {
		t.Fatalf("NewPersistentTool() error = %v", err)
	}
	return tool, surface, rb
}

func TestPersistentTwoStrokesThenClear(t *testing.T) {
	tool, surface, rb := newPersistent(t, DefaultSettings())

	drawStroke(tool, 1, line(12, 0, 5, 10, 0))
	afterFirst := surface.QuadCount()
	drawStroke(tool, 1, line(12, 0, 5, 40, 1000))

	if afterFirst == 0 || surface.QuadCount() <= afterFirst {
		t.Fatalf("QuadCount = %d after first stroke, %d after second; want growth",
			afterFirst, surface.QuadCount())
	}
	capacity := surface.Capacity()

	surface.Clear()
	if surface.UsedSegments() != 0 {
		t.Errorf("UsedSegments after Clear = %d, want 0", surface.UsedSegments())
	}
	if rb.vertices != 0 || rb.indices != 0 {
		t.Errorf("upload after Clear = %d vertices, %d indices; want 0", rb.vertices, rb.indices)
	}
	if surface.Capacity() != capacity {
		t.Errorf("Capacity after Clear = %+v, want %+v", surface.Capacity(), capacity)
	}

	drawStroke(tool, 1, line(12, 0, 5, 70, 2000))
	if surface.QuadCount() == 0 {
		t.Error("third stroke produced no quads")
	}
	if surface.Growths() != 0 || surface.Capacity() != capacity {
		t.Errorf("third stroke grew the surface: growths %d, capacity %+v", surface.Growths(), surface.Capacity())
	}
	if len(rb.rebinds) != 1 {
		t.Errorf("rebinds = %d, want 1 (construction only)", len(rb.rebinds))
	}
}

func TestPersistentClearReusesGrownCapacity(t *testing.T) {
	rb := &recordingBinding{}
	surface := NewSurface(WithSeedCapacity(16), WithBinding(rb))
	tool, err := NewPersistentTool(surface, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}

	drawStroke(tool, 7, line(60, 0, 4, 10, 0))
	grown := surface.Growths()
	if grown == 0 {
		t.Fatal("long stroke should have grown a 16-segment surface")
	}
	capacity := surface.Capacity()
	if k := capacity.Segments / 16; capacity.Segments%16 != 0 || k&(k-1) != 0 {
		t.Errorf("Capacity = %d, want 16 * 2^k", capacity.Segments)
	}

	surface.Clear()
	drawStroke(tool, 7, line(60, 0, 4, 50, 5000))
	if surface.Growths() != grown {
		t.Errorf("Growths after clear and redraw = %d, want %d", surface.Growths(), grown)
	}
	if len(rb.rebinds) != 1+grown {
		t.Errorf("rebinds = %d, want %d", len(rb.rebinds), 1+grown)
	}
}

func TestPersistentCappedBatchNearCapacity(t *testing.T) {
	for _, prefill := range []int{0, 3, 5, 8, 11, 14} {
		t.Run(fmt.Sprintf("prefill=%d", prefill), func(t *testing.T) {
			rb := &recordingBinding{}
			surface := NewSurface(WithSeedCapacity(16), WithBinding(rb))
			tool, err := NewPersistentTool(surface, DefaultSettings().WithCaps(false, false))
			if err != nil {
				t.Fatal(err)
			}
			if prefill > 0 {
				drawStroke(tool, 1, line(prefill+1, 0, 5, 80, 0))
			}
			before := surface.QuadCount()

			if err := tool.SetSettings(DefaultSettings()); err != nil {
				t.Fatal(err)
			}
			// The whole stroke arrives coalesced in the first event.
			tool.PointerDown(PointerEvent{PointerID: 2, Samples: line(14, 0, 20, 10, 1000)})
			if surface.QuadCount() <= before {
				t.Errorf("QuadCount = %d after capped batch, want more than %d", surface.QuadCount(), before)
			}
			tool.PointerUp(PointerEvent{PointerID: 2})

			c := surface.Capacity().Segments
			if k := c / 16; c%16 != 0 || k&(k-1) != 0 {
				t.Errorf("Capacity = %d, want 16 * 2^k", c)
			}
			if surface.UsedSegments() > c {
				t.Errorf("UsedSegments = %d exceeds capacity %d", surface.UsedSegments(), c)
			}
			if got := len(rb.rebinds); got != 1+surface.Growths() {
				t.Errorf("rebinds = %d, want %d", got, 1+surface.Growths())
			}
			if tool.State() != StateIdle {
				t.Errorf("State() = %v, want Idle", tool.State())
			}
		})
	}
}

func TestPersistentAppendsOnly(t *testing.T) {
	tool, surface, rb := newPersistent(t, DefaultSettings())
	samples := line(25, 0, 3, 10, 0)

	tool.PointerDown(PointerEvent{PointerID: 1, Samples: samples[:1]})
	var prev []float32
	for i, s := range samples[1:] {
		tool.PointerMove(PointerEvent{PointerID: 1, Samples: []Sample{s}})
		cur := surface.Range().Positions
		if len(cur) < len(prev) {
			t.Fatalf("move %d: used positions shrank from %d to %d", i, len(prev), len(cur))
		}
		if diff := cmp.Diff(prev, cur[:len(prev)]); diff != "" {
			t.Fatalf("move %d: existing geometry changed (-before +after):\n%s", i, diff)
		}
		prev = append([]float32(nil), cur...)
	}
	tool.PointerUp(PointerEvent{PointerID: 1})

	if rb.uploads < len(samples)-1 {
		t.Errorf("uploads = %d, want at least %d", rb.uploads, len(samples)-1)
	}
	if got := len(tool.window); got != 0 {
		t.Errorf("window after PointerUp = %d samples, want 0", got)
	}
}

func TestPersistentTrailingWindow(t *testing.T) {
	tool, _, _ := newPersistent(t, DefaultSettings())
	samples := line(50, 0, 2, 10, 0)

	tool.PointerDown(PointerEvent{PointerID: 1, Samples: samples[:1]})
	for _, s := range samples[1:] {
		tool.PointerMove(PointerEvent{PointerID: 1, Samples: []Sample{s}})
		if len(tool.window) > DefaultWindow {
			t.Fatalf("window = %d samples, want <= %d", len(tool.window), DefaultWindow)
		}
	}
	if len(tool.window) != DefaultWindow {
		t.Errorf("window = %d samples, want %d", len(tool.window), DefaultWindow)
	}
	if got := tool.window[len(tool.window)-1]; got != samples[len(samples)-1] {
		t.Errorf("window tail = %+v, want newest sample", got)
	}
}

func TestPersistentAlpha(t *testing.T) {
	tool, surface, _ := newPersistent(t, DefaultSettings())
	drawStroke(tool, 1, line(8, 0, 5, 10, 0))

	if err := tool.SetSettings(tool.Settings().WithAlpha(0.5)); err != nil {
		t.Fatal(err)
	}
	split := surface.Range().VertexCount()
	drawStroke(tool, 1, line(8, 0, 5, 40, 1000))

	colors := surface.Range().Colors
	for i := 0; i < len(colors)/4; i++ {
		want := float32(0.2)
		if i >= split {
			want = 0.5
		}
		if a := colors[i*4+3]; a != want {
			t.Fatalf("vertex %d alpha = %v, want %v", i, a, want)
		}
	}
}

func TestPersistentStateMachine(t *testing.T) {
	tool, surface, _ := newPersistent(t, DefaultSettings())
	if tool.State() != StateIdle {
		t.Fatalf("initial State = %v, want Idle", tool.State())
	}

	samples := line(6, 0, 5, 10, 0)
	tool.PointerDown(PointerEvent{PointerID: 3, Samples: samples[:1]})
	if tool.State() != StateDrawing {
		t.Fatalf("State after down = %v, want Drawing", tool.State())
	}

	// A second pointer is ignored throughout.
	tool.PointerDown(PointerEvent{PointerID: 4, Samples: line(1, 100, 0, 100, 0)})
	tool.PointerMove(PointerEvent{PointerID: 4, Samples: line(3, 100, 5, 100, 16)})
	if surface.QuadCount() != 0 {
		t.Errorf("foreign pointer produced %d quads", surface.QuadCount())
	}
	if tool.PointerUp(PointerEvent{PointerID: 4}) != nil || tool.State() != StateDrawing {
		t.Errorf("foreign pointer-up changed state to %v", tool.State())
	}

	for _, s := range samples[1:] {
		tool.PointerMove(PointerEvent{PointerID: 3, Samples: []Sample{s}})
	}
	before := surface.Range().TriangleCount()

	if obj := tool.Deactivate(); obj != nil {
		t.Errorf("Deactivate() = %v, want nil for persistent tool", obj)
	}
	if tool.State() != StateIdle {
		t.Errorf("State after Deactivate = %v, want Idle", tool.State())
	}
	if after := surface.Range().TriangleCount(); after <= before {
		t.Errorf("Deactivate did not finish the stroke: %d triangles, had %d", after, before)
	}
	if tool.Deactivate() != nil {
		t.Error("Deactivate while idle should be a no-op")
	}
}

func TestPersistentCapsOff(t *testing.T) {
	tool, surface, _ := newPersistent(t, DefaultSettings().WithCaps(false, false))
	drawStroke(tool, 1, line(10, 0, 5, 10, 0))
	r := surface.Range()
	// Independent quads only: 4 vertices and 2 triangles each.
	if r.VertexCount() != surface.QuadCount()*4 || r.TriangleCount() != surface.QuadCount()*2 {
		t.Errorf("vertices %d, triangles %d for %d quads", r.VertexCount(), r.TriangleCount(), surface.QuadCount())
	}
	for _, side := range r.Sides {
		if side == 0 {
			t.Fatal("found a cap center vertex with caps disabled")
		}
	}
}

func TestPersistentRejectsInvalidCenterline(t *testing.T) {
	bad := SmootherFunc(func(samples []Sample, _ Settings, _ bool) []CenterlinePoint {
		pts := make([]CenterlinePoint, len(samples))
		for i := range pts {
			pts[i].Position.X = math.NaN()
		}
		return pts
	})
	tool, surface, _ := newPersistent(t, DefaultSettings(), WithSmoother(bad))
	drawStroke(tool, 1, line(5, 0, 5, 10, 0))
	if surface.UsedSegments() != 0 {
		t.Errorf("UsedSegments = %d, want 0 for rejected center-lines", surface.UsedSegments())
	}
	if tool.State() != StateIdle {
		t.Errorf("State = %v, want Idle", tool.State())
	}
}

func TestPersistentDebugSegments(t *testing.T) {
	tool, _, _ := newPersistent(t, DefaultSettings(), WithDebugSegments(4))
	if tool.DebugSegments() != nil {
		t.Error("DebugSegments before drawing should be empty")
	}
	drawStroke(tool, 1, line(12, 0, 5, 10, 0))
	segs := tool.DebugSegments()
	if len(segs) == 0 || len(segs) > 4 {
		t.Fatalf("len(DebugSegments) = %d, want 1..4", len(segs))
	}
	for i, s := range segs {
		if s.CenterCurr.X < s.CenterPrev.X {
			t.Errorf("segment %d runs backwards: %v -> %v", i, s.CenterPrev, s.CenterCurr)
		}
	}

	plain, _, _ := newPersistent(t, DefaultSettings())
	drawStroke(plain, 1, line(4, 0, 5, 10, 0))
	if plain.DebugSegments() != nil {
		t.Error("DebugSegments without WithDebugSegments should be nil")
	}
}

func TestNewPersistentToolInvalidSettings(t *testing.T) {
	_, err := NewPersistentTool(NewSurface(), DefaultSettings().WithSize(-1))
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("NewPersistentTool() error = %v, want ErrInvalidSettings", err)
	}
	tool, _, _ := newPersistent(t, DefaultSettings())
	if err := tool.SetSettings(DefaultSettings().WithAlpha(0)); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("SetSettings() error = %v, want ErrInvalidSettings", err)
	}
	if tool.Settings().Alpha != 0.2 {
		t.Error("rejected settings must not be applied")
	}
}
