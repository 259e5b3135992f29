// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"math"

	"github.com/gogpu/ink/internal/stroke"
)

// PersistentTool draws strokes directly into a Surface. Each update only
// processes center-line points newer than the last consumed one and
// appends independent quads at the configured alpha, so overlapping ink
// accumulates under additive blending. Nothing is ever rebuilt.
type PersistentTool struct {
	pointerTracker

	surface  *Surface
	settings Settings
	smoother Smoother
	builder  *stroke.Builder
	debug    *stroke.DebugRing

	// window is the trailing run of raw samples fed to the smoother.
	window []Sample

	// marker is the last consumed center-line point.
	marker    stroke.CenterlinePoint
	hasMarker bool
	capped    bool
	stats     stroke.Result
}

var _ Tool = (*PersistentTool)(nil)

// NewPersistentTool creates a tool writing to surface.
func NewPersistentTool(surface *Surface, s Settings, opts ...Option) (*PersistentTool, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	t := &PersistentTool{
		surface:  surface,
		settings: s,
		smoother: o.smoother,
		builder:  stroke.NewBuilder(s.builderOptions(s.Alpha)),
	}
	if o.debug > 0 {
		t.debug = stroke.NewDebugRing(o.debug)
		t.builder.SetDebug(t.debug)
	}
	return t, nil
}

// State returns the current stroke state.
func (t *PersistentTool) State() State {
	return t.state
}

// Settings returns the active settings.
func (t *PersistentTool) Settings() Settings {
	return t.settings
}

// SetSettings replaces the settings. New values apply to segments appended
// afterwards; existing ink is unchanged.
func (t *PersistentTool) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	t.settings = s
	t.builder.SetOptions(s.builderOptions(s.Alpha))
	return nil
}

// Surface returns the surface the tool writes to.
func (t *PersistentTool) Surface() *Surface {
	return t.surface
}

// DebugSegments returns the recently emitted segments, oldest first, when
// the tool was created WithDebugSegments.
func (t *PersistentTool) DebugSegments() []DebugSegment {
	if t.debug == nil {
		return nil
	}
	return t.debug.Segments()
}

// PointerDown starts a stroke.
func (t *PersistentTool) PointerDown(ev PointerEvent) {
	if !t.begin(ev) {
		return
	}
	t.window = t.window[:0]
	t.hasMarker = false
	t.capped = false
	t.stats = stroke.Result{}
	if t.debug != nil {
		t.debug.Reset()
	}
	t.window = t.filter.Append(t.window, ev.Samples...)
	t.update(false)
}

// PointerMove extends the active stroke.
func (t *PersistentTool) PointerMove(ev PointerEvent) {
	if !t.owns(ev) {
		return
	}
	t.window = t.filter.Append(t.window, ev.Samples...)
	t.update(false)
}

// PointerUp runs the final pass and returns to Idle. The stroke stays on
// the surface; the result is always nil.
func (t *PersistentTool) PointerUp(ev PointerEvent) *StrokeObject {
	if !t.owns(ev) {
		return nil
	}
	t.window = t.filter.Append(t.window, ev.Samples...)
	t.state = StateCompleting
	t.update(true)

	Logger().Debug("ink: persistent stroke done",
		"quads", t.stats.Quads, "capTriangles", t.stats.CapTriangles, "skipped", t.stats.Skipped,
		"surfaceSegments", t.surface.UsedSegments())

	t.window = t.window[:0]
	t.hasMarker = false
	t.state = StateIdle
	return nil
}

// Deactivate finishes an in-progress stroke.
func (t *PersistentTool) Deactivate() *StrokeObject {
	if t.state != StateDrawing {
		return nil
	}
	return t.PointerUp(PointerEvent{PointerID: t.pointer})
}

func (t *PersistentTool) update(final bool) {
	if len(t.window) == 0 || (!final && len(t.window) < 2) {
		return
	}
	pts := t.smoother.Smooth(t.window, t.settings, final)
	if err := stroke.Validate(pts); err != nil {
		Logger().Warn("ink: center-line rejected", "err", err)
		t.trim(final)
		return
	}

	fresh := t.consume(pts, final)
	if len(fresh) > 0 {
		buf := t.surface.buf
		growths := buf.Growths()
		total := math.Inf(1)
		if final {
			total = fresh[len(fresh)-1].RunningLength
		}
		res := t.builder.Extend(buf, t.marker, fresh, total, !t.capped)
		if res.Quads > 0 {
			t.capped = true
		}
		t.marker = fresh[len(fresh)-1]
		if final && t.capped {
			res.Add(t.builder.CapEnd(buf, t.marker, total))
		}
		t.stats.Add(res)
		buf.UploadUsedRange()
		logGrowth("surface", buf, growths)
	} else if final && t.capped {
		buf := t.surface.buf
		t.stats.Add(t.builder.CapEnd(buf, t.marker, t.marker.RunningLength))
		buf.UploadUsedRange()
	}
	t.trim(final)
}

// consume returns the points newer than the marker, re-chained so their
// distances and running lengths continue from it. The first point of a
// stroke becomes the marker without producing geometry. On the final pass
// the exact end point is kept even when a provisional point with the same
// timestamp was already consumed.
func (t *PersistentTool) consume(pts []stroke.CenterlinePoint, final bool) []stroke.CenterlinePoint {
	if len(pts) == 0 {
		return nil
	}
	start := 0
	if !t.hasMarker {
		t.marker = pts[0]
		t.marker.Distance = 0
		t.marker.RunningLength = 0
		t.hasMarker = true
		start = 1
	}
	var fresh []stroke.CenterlinePoint
	prev := t.marker
	last := len(pts) - 1
	for i := start; i <= last; i++ {
		p := pts[i]
		settled := final && i == last && p.Time == t.marker.Time &&
			p.Position.Distance(t.marker.Position) > 0
		if p.Time <= t.marker.Time && !settled {
			continue
		}
		p.Distance = p.Position.Distance(prev.Position)
		p.RunningLength = prev.RunningLength + p.Distance
		fresh = append(fresh, p)
		prev = p
	}
	// A lone first point has no direction yet.
	if len(fresh) > 0 && t.marker.Normal.Length() == 0 {
		t.marker.Normal = fresh[0].Normal
	}
	return fresh
}

// trim keeps the trailing window of raw samples for smoothing continuity.
func (t *PersistentTool) trim(final bool) {
	if final {
		return
	}
	if n := t.settings.Window; len(t.window) > n {
		copy(t.window, t.window[len(t.window)-n:])
		t.window = t.window[:n]
	}
}
