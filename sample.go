// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import "github.com/gogpu/ink/internal/stroke"

// Sample is one raw pointer sample in surface coordinates. Pressure is in
// [0, 1] and Time is a monotonic timestamp in milliseconds.
type Sample = stroke.Sample

// CenterlinePoint is one point of a smoothed stroke center-line.
type CenterlinePoint = stroke.CenterlinePoint

// DefaultPressure replaces device pressure reported as exactly 0.
const DefaultPressure = 0.5

// PointerEvent is one pointer event with its coalesced samples in arrival
// order.
type PointerEvent struct {
	PointerID int
	Samples   []Sample
}

// SampleFilter drops duplicate and out-of-order samples before they reach
// a tool. A sample is dropped when its timestamp is not after the last
// accepted one or its position equals the last accepted position. Device
// pressure of exactly 0 becomes DefaultPressure.
//
// The zero value is ready to use.
type SampleFilter struct {
	last    Sample
	has     bool
	dropped int
}

// Reset forgets the last accepted sample. Tools call it on pointer-down.
func (f *SampleFilter) Reset() {
	f.last = Sample{}
	f.has = false
}

// Dropped returns the number of samples rejected since creation.
func (f *SampleFilter) Dropped() int {
	return f.dropped
}

// Append filters in and appends the accepted samples to dst.
func (f *SampleFilter) Append(dst []Sample, in ...Sample) []Sample {
	for _, s := range in {
		if f.has && (s.Time <= f.last.Time || (s.X == f.last.X && s.Y == f.last.Y)) {
			f.dropped++
			continue
		}
		if s.Pressure == 0 {
			s.Pressure = DefaultPressure
		}
		f.last = s
		f.has = true
		dst = append(dst, s)
	}
	return dst
}
