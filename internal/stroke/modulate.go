// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"fmt"
	"math"
)

// Easing selects the curve applied to pressure and taper progress.
type Easing int

const (
	// EaseLinear is the identity.
	EaseLinear Easing = iota
	// EaseIn is quadratic-in: t*t.
	EaseIn
	// EaseOut is quadratic-out: 1-(1-t)^2.
	EaseOut
	// EaseInOut is quadratic-in-out.
	EaseInOut
)

// String returns the preset name used in configuration files.
func (e Easing) String() string {
	switch e {
	case EaseLinear:
		return "linear"
	case EaseIn:
		return "easeIn"
	case EaseOut:
		return "easeOut"
	case EaseInOut:
		return "easeInOut"
	default:
		return fmt.Sprintf("Easing(%d)", int(e))
	}
}

// Valid reports whether e is a known preset.
func (e Easing) Valid() bool {
	return e >= EaseLinear && e <= EaseInOut
}

// ParseEasing parses a preset name.
func ParseEasing(s string) (Easing, error) {
	switch s {
	case "linear", "":
		return EaseLinear, nil
	case "easeIn":
		return EaseIn, nil
	case "easeOut":
		return EaseOut, nil
	case "easeInOut":
		return EaseInOut, nil
	}
	return EaseLinear, fmt.Errorf("stroke: unknown easing preset %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (e Easing) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("stroke: unknown easing preset %d", int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Easing) UnmarshalText(text []byte) error {
	v, err := ParseEasing(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Apply evaluates the easing curve at t.
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2
	default:
		return t
	}
}

// DefaultPressureBlend is the weight of device pressure when it is blended
// with the velocity proxy.
const DefaultPressureBlend = 0.5

// minHalfWidthFloor is the absolute lower bound of a half-width.
const minHalfWidthFloor = 0.01

// Modulation maps point attributes to a ribbon half-width.
type Modulation struct {
	// Size is the base width. Must be > 0.
	Size float64

	// Thinning in [-1, 1] scales how much pressure affects width.
	Thinning float64

	// SimulatePressure blends device pressure with the velocity proxy.
	// When false the velocity proxy alone drives width.
	SimulatePressure bool

	// PressureBlend is the device-pressure weight used when SimulatePressure
	// is set. The velocity proxy gets 1-PressureBlend.
	PressureBlend float64

	Easing Easing

	// TaperStart and TaperEnd are arc lengths over which width ramps in/out.
	TaperStart float64
	TaperEnd   float64
}

// MinHalfWidth returns the floor every half-width is clamped to.
func MinHalfWidth(size float64) float64 {
	return math.Max(minHalfWidthFloor, size*0.5)
}

// Pressure returns the normalized pressure p for a point.
func (m Modulation) Pressure(pt CenterlinePoint) float64 {
	velP := 1 - math.Min(1, pt.Distance/math.Max(1, m.Size))
	if !m.SimulatePressure {
		return velP
	}
	return m.PressureBlend*pt.Pressure + (1-m.PressureBlend)*velP
}

// HalfWidth returns the resolved half-width of pt. totalLength is the
// stroke's arc length; pass math.Inf(1) while the end is unknown, which
// disables the end taper.
func (m Modulation) HalfWidth(pt CenterlinePoint, totalLength float64) float64 {
	p := m.Pressure(pt)
	w := m.Easing.Apply(0.5-m.Thinning*(0.5-p)) * m.Size

	if m.TaperStart > 0 && pt.RunningLength < m.TaperStart {
		w *= m.Easing.Apply(clamp01(pt.RunningLength / m.TaperStart))
	}
	if m.TaperEnd > 0 && !math.IsInf(totalLength, 1) {
		remaining := totalLength - pt.RunningLength
		if remaining < m.TaperEnd {
			w *= m.Easing.Apply(clamp01(remaining / m.TaperEnd))
		}
	}

	return math.Max(w, MinHalfWidth(m.Size))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
