// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"github.com/gogpu/ink/internal/stroke"
	"github.com/gogpu/ink/mesh"
)

// EphemeralTool rebuilds the whole in-progress stroke on every update into
// a working buffer and, on completion, freezes it into a StrokeObject.
// Settings changes apply on the next rebuild.
type EphemeralTool struct {
	pointerTracker

	settings Settings
	smoother Smoother
	builder  *stroke.Builder
	scene    *Scene

	// buf is the preview buffer, reused across strokes.
	buf     *mesh.Buffer
	samples []Sample
	last    stroke.Result
}

var _ Tool = (*EphemeralTool)(nil)

// NewEphemeralTool creates a tool. Completed strokes are committed to the
// scene given WithScene and returned from PointerUp.
func NewEphemeralTool(s Settings, opts ...Option) (*EphemeralTool, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	seed := o.seed
	if seed <= 0 {
		seed = s.SeedSegments
	}
	var bopts []mesh.Option
	if o.binding != nil {
		bopts = append(bopts, mesh.WithBinding(o.binding))
	}
	t := &EphemeralTool{
		settings: s,
		smoother: o.smoother,
		builder:  stroke.NewBuilder(s.builderOptions(1)),
		scene:    o.scene,
		buf:      mesh.NewBuffer(seed, bopts...),
	}
	if o.debug > 0 {
		t.builder.SetDebug(stroke.NewDebugRing(o.debug))
	}
	return t, nil
}

// State returns the current stroke state.
func (t *EphemeralTool) State() State {
	return t.state
}

// Settings returns the active settings.
func (t *EphemeralTool) Settings() Settings {
	return t.settings
}

// SetSettings replaces the settings. An in-progress stroke is rebuilt
// with them on its next update.
func (t *EphemeralTool) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	t.settings = s
	t.builder.SetOptions(s.builderOptions(1))
	return nil
}

// Preview returns the used range of the in-progress stroke. The slices are
// only valid until the next event.
func (t *EphemeralTool) Preview() mesh.Range {
	return t.buf.UsedRange()
}

// Samples returns a copy of the accepted samples of the active stroke.
func (t *EphemeralTool) Samples() []Sample {
	return append([]Sample(nil), t.samples...)
}

// PointerDown starts a stroke with a fresh sample list.
func (t *EphemeralTool) PointerDown(ev PointerEvent) {
	if !t.begin(ev) {
		return
	}
	t.samples = nil
	t.samples = t.filter.Append(t.samples, ev.Samples...)
	t.rebuild(false)
}

// PointerMove extends the active stroke and rebuilds it.
func (t *EphemeralTool) PointerMove(ev PointerEvent) {
	if !t.owns(ev) {
		return
	}
	t.samples = t.filter.Append(t.samples, ev.Samples...)
	t.rebuild(false)
}

// PointerUp runs the final pass, freezes the mesh and returns the
// completed object. It returns nil when the event is ignored or the stroke
// has no samples.
func (t *EphemeralTool) PointerUp(ev PointerEvent) *StrokeObject {
	if !t.owns(ev) {
		return nil
	}
	t.samples = t.filter.Append(t.samples, ev.Samples...)
	t.state = StateCompleting
	t.rebuild(true)

	var obj *StrokeObject
	if len(t.samples) > 0 {
		obj = newStrokeObject(t.samples, t.buf.Freeze(), t.settings)
		if t.scene != nil {
			t.scene.Commit(obj)
		}
	}

	t.buf.Clear()
	t.buf.UploadUsedRange()
	t.samples = nil
	t.state = StateIdle
	return obj
}

// Deactivate finishes an in-progress stroke and returns its object.
func (t *EphemeralTool) Deactivate() *StrokeObject {
	if t.state != StateDrawing {
		return nil
	}
	return t.PointerUp(PointerEvent{PointerID: t.pointer})
}

// rebuild regenerates the working buffer from all samples. Rejected
// center-lines leave the previous geometry in place.
func (t *EphemeralTool) rebuild(final bool) {
	if len(t.samples) < 2 {
		if final {
			t.buf.Clear()
			t.buf.UploadUsedRange()
		}
		return
	}
	pts := t.smoother.Smooth(t.samples, t.settings, final)
	if err := stroke.Validate(pts); err != nil {
		Logger().Warn("ink: center-line rejected", "err", err, "final", final)
		return
	}

	growths := t.buf.Growths()
	t.buf.Clear()
	if len(pts) >= 2 {
		t.last = t.builder.Build(t.buf, pts, pts[len(pts)-1].RunningLength)
	} else {
		t.last = stroke.Result{}
	}
	t.buf.UploadUsedRange()
	logGrowth("stroke", t.buf, growths)

	Logger().Debug("ink: stroke rebuilt",
		"points", len(pts), "quads", t.last.Quads, "capTriangles", t.last.CapTriangles,
		"vertices", t.buf.VertexCount(), "capacity", t.buf.Capacity().Segments)
}

func logGrowth(what string, buf *mesh.Buffer, before int) {
	if g := buf.Growths(); g != before {
		Logger().Debug("ink: buffer grew", "buffer", what,
			"segments", buf.Capacity().Segments, "growths", g)
	}
}
