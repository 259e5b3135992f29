// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package smooth turns raw pointer samples into a stroke center-line.
//
// Each sample is pulled toward the previous output point by a streamline
// factor, duplicates are dropped and a minimum travel distance is required
// before the first interior point is emitted. Every output point carries a
// unit normal, its pressure, the distance to its predecessor and the running
// arc length.
package smooth

import (
	"math"

	"github.com/gogpu/ink/internal/stroke"
)

// minStep is the smallest distance between consecutive output points.
const minStep = 1e-9

// Options controls center-line derivation.
type Options struct {
	// Size is the stroke base width. Interior points are held back until
	// the pen has travelled at least Size from the first sample.
	Size float64

	// Streamline in [0, 1]. Higher values lag further behind the pointer.
	Streamline float64

	// Final marks the last pass of a stroke. The final sample is then taken
	// as-is instead of being pulled toward its predecessor.
	Final bool
}

// streamlineFactor maps Streamline to the interpolation weight of the new
// sample.
func (o Options) streamlineFactor() float64 {
	s := math.Max(0, math.Min(1, o.Streamline))
	return 0.15 + (1-s)*0.85
}

// Points derives center-line points from samples. It returns nil for an
// empty input and a single point without a normal for one sample.
func Points(samples []stroke.Sample, opts Options) []stroke.CenterlinePoint {
	if len(samples) == 0 {
		return nil
	}
	t := opts.streamlineFactor()
	last := len(samples) - 1

	out := make([]stroke.CenterlinePoint, 1, len(samples))
	out[0] = stroke.CenterlinePoint{
		Position: samples[0].Point(),
		Pressure: clampPressure(samples[0].Pressure),
		Time:     samples[0].Time,
	}
	origin := out[0].Position

	reached := false
	for i := 1; i <= last; i++ {
		prev := out[len(out)-1]
		raw := samples[i].Point()
		pos := raw
		if !(opts.Final && i == last) {
			pos = prev.Position.Lerp(raw, t)
		}
		d := pos.Distance(prev.Position)
		if d < minStep {
			continue
		}
		if i < last && !reached {
			if pos.Distance(origin) < opts.Size {
				continue
			}
			reached = true
		}
		out = append(out, stroke.CenterlinePoint{
			Position:      pos,
			Normal:        pos.Sub(prev.Position).Normalize().Perp(),
			Pressure:      clampPressure(samples[i].Pressure),
			Distance:      d,
			RunningLength: prev.RunningLength + d,
			Time:          samples[i].Time,
		})
	}

	if len(out) > 1 {
		out[0].Normal = out[1].Normal
	}
	return out
}

func clampPressure(p float64) float64 {
	if math.IsNaN(p) {
		return 0.5
	}
	return math.Max(0, math.Min(1, p))
}
