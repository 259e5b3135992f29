// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

// DefaultDebugCapacity is the number of segments a DebugRing keeps.
const DefaultDebugCapacity = 1000

// DebugSegment is the geometry of one emitted segment.
type DebugSegment struct {
	Quad
	CenterPrev, CenterCurr Point
	NormalPrev, NormalCurr Vec2
}

// DebugRing keeps the most recent emitted segments for overlay rendering.
type DebugRing struct {
	segs  []DebugSegment
	next  int
	full  bool
	total int
}

// NewDebugRing creates a ring holding up to capacity segments.
// Non-positive capacity selects DefaultDebugCapacity.
func NewDebugRing(capacity int) *DebugRing {
	if capacity <= 0 {
		capacity = DefaultDebugCapacity
	}
	return &DebugRing{segs: make([]DebugSegment, capacity)}
}

// Push records a segment, overwriting the oldest when full.
func (r *DebugRing) Push(s DebugSegment) {
	r.segs[r.next] = s
	r.next++
	r.total++
	if r.next == len(r.segs) {
		r.next = 0
		r.full = true
	}
}

// Len returns the number of retained segments.
func (r *DebugRing) Len() int {
	if r.full {
		return len(r.segs)
	}
	return r.next
}

// Total returns the number of segments ever pushed.
func (r *DebugRing) Total() int {
	return r.total
}

// Segments returns the retained segments, oldest first.
func (r *DebugRing) Segments() []DebugSegment {
	if !r.full {
		return append([]DebugSegment(nil), r.segs[:r.next]...)
	}
	out := make([]DebugSegment, 0, len(r.segs))
	out = append(out, r.segs[r.next:]...)
	return append(out, r.segs[:r.next]...)
}

// Reset drops all retained segments.
func (r *DebugRing) Reset() {
	r.next = 0
	r.full = false
	r.total = 0
}
