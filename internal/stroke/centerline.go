// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCenterline is returned by Validate for malformed smoother output.
var ErrInvalidCenterline = errors.New("stroke: invalid centerline")

// unitTolerance is the accepted deviation of a normal's length from 1.
const unitTolerance = 1e-3

// Sample is one raw pointer sample in surface coordinates.
type Sample struct {
	X, Y float64

	// Pressure in [0, 1].
	Pressure float64

	// Time is a monotonic timestamp in milliseconds.
	Time float64
}

// Point returns the sample position.
func (s Sample) Point() Point {
	return Point{X: s.X, Y: s.Y}
}

// CenterlinePoint is one point of a smoothed stroke center-line.
type CenterlinePoint struct {
	Position Point

	// Normal is the unit normal of the travel direction. The ribbon's right
	// edge lies at Position + Normal*w.
	Normal Vec2

	// Pressure in [0, 1].
	Pressure float64

	// Distance to the previous point. Zero for the first point.
	Distance float64

	// RunningLength is the cumulative arc length up to this point.
	RunningLength float64

	// Time is the timestamp of the raw sample this point was derived from.
	Time float64
}

// Tangent returns the unit travel direction (Normal rotated clockwise).
func (p CenterlinePoint) Tangent() Vec2 {
	return Vec2{X: p.Normal.Y, Y: -p.Normal.X}
}

// Validate checks smoother output once at the tool boundary. Points must be
// finite, normals unit length (a lone point may have a zero normal),
// distances non-negative and running length non-decreasing.
func Validate(pts []CenterlinePoint) error {
	prevLen := 0.0
	for i, p := range pts {
		if !finite(p.Position.X, p.Position.Y, p.Normal.X, p.Normal.Y, p.Pressure, p.Distance, p.RunningLength) {
			return fmt.Errorf("%w: point %d is not finite", ErrInvalidCenterline, i)
		}
		n := p.Normal.Length()
		if math.Abs(n-1) > unitTolerance && !(len(pts) == 1 && n == 0) {
			return fmt.Errorf("%w: point %d normal length %g", ErrInvalidCenterline, i, n)
		}
		if p.Pressure < 0 || p.Pressure > 1 {
			return fmt.Errorf("%w: point %d pressure %g outside [0,1]", ErrInvalidCenterline, i, p.Pressure)
		}
		if p.Distance < 0 {
			return fmt.Errorf("%w: point %d negative distance %g", ErrInvalidCenterline, i, p.Distance)
		}
		if i > 0 && p.RunningLength < prevLen {
			return fmt.Errorf("%w: point %d running length decreases (%g < %g)",
				ErrInvalidCenterline, i, p.RunningLength, prevLen)
		}
		prevLen = p.RunningLength
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
