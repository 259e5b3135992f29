// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"fmt"

	"github.com/gogpu/ink/internal/smooth"
	"github.com/gogpu/ink/internal/stroke"
	"github.com/gogpu/ink/mesh"
)

// State is the stroke state of a tool.
type State int

const (
	// StateIdle waits for a pointer-down.
	StateIdle State = iota
	// StateDrawing follows one active pointer.
	StateDrawing
	// StateCompleting runs the final geometry pass.
	StateCompleting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDrawing:
		return "Drawing"
	case StateCompleting:
		return "Completing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tool turns pointer events into ribbon geometry.
//
// Events must be delivered from a single goroutine in arrival order. Events
// for a pointer other than the one that started the current stroke are
// ignored.
type Tool interface {
	PointerDown(ev PointerEvent)
	PointerMove(ev PointerEvent)

	// PointerUp completes the stroke. Tools that promote strokes to
	// standalone objects return it; otherwise the result is nil.
	PointerUp(ev PointerEvent) *StrokeObject

	// Deactivate completes an in-progress stroke as if the pointer had been
	// released at the last known sample.
	Deactivate() *StrokeObject

	State() State
	Settings() Settings
	SetSettings(s Settings) error
}

// Smoother derives the stroke center-line from raw samples. final is set
// on the last pass of a stroke. Output is validated by the tool before use.
type Smoother interface {
	Smooth(samples []Sample, s Settings, final bool) []CenterlinePoint
}

// SmootherFunc adapts a function to Smoother.
type SmootherFunc func(samples []Sample, s Settings, final bool) []CenterlinePoint

// Smooth calls f.
func (f SmootherFunc) Smooth(samples []Sample, s Settings, final bool) []CenterlinePoint {
	return f(samples, s, final)
}

// DefaultSmoother returns the streamline smoother used when no other is
// configured.
func DefaultSmoother() Smoother {
	return SmootherFunc(func(samples []Sample, s Settings, final bool) []CenterlinePoint {
		return smooth.Points(samples, smooth.Options{
			Size:       s.Size,
			Streamline: s.Streamline,
			Final:      final,
		})
	})
}

// DebugSegment is the geometry of one emitted segment, recorded for
// overlays.
type DebugSegment = stroke.DebugSegment

// Option configures a tool or surface during creation.
type Option func(*options)

type options struct {
	smoother Smoother
	scene    *Scene
	binding  mesh.Binding
	seed     int
	debug    int
}

func defaultOptions() options {
	return options{smoother: DefaultSmoother()}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSmoother replaces the default smoother.
func WithSmoother(s Smoother) Option {
	return func(o *options) {
		if s != nil {
			o.smoother = s
		}
	}
}

// WithScene makes an ephemeral tool commit completed strokes to scene.
func WithScene(scene *Scene) Option {
	return func(o *options) {
		o.scene = scene
	}
}

// WithBinding attaches a renderer handle to the geometry buffer. For an
// ephemeral tool this is the in-progress preview; for a surface it is the
// accumulated ink.
func WithBinding(b mesh.Binding) Option {
	return func(o *options) {
		o.binding = b
	}
}

// WithSeedCapacity overrides the initial buffer capacity in segments.
func WithSeedCapacity(segments int) Option {
	return func(o *options) {
		o.seed = segments
	}
}

// WithDebugSegments records up to capacity recently emitted segments,
// retrievable with DebugSegments.
func WithDebugSegments(capacity int) Option {
	return func(o *options) {
		if capacity <= 0 {
			capacity = stroke.DefaultDebugCapacity
		}
		o.debug = capacity
	}
}

// pointerTracker holds the state machine shared by both tools.
type pointerTracker struct {
	state   State
	pointer int
	filter  SampleFilter
}

func (p *pointerTracker) begin(ev PointerEvent) bool {
	if p.state != StateIdle {
		return false
	}
	p.state = StateDrawing
	p.pointer = ev.PointerID
	p.filter.Reset()
	return true
}

func (p *pointerTracker) owns(ev PointerEvent) bool {
	return p.state == StateDrawing && ev.PointerID == p.pointer
}
