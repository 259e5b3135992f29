// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stroke

import (
	"math"
	"testing"
)

func TestHalfWidthFloor(t *testing.T) {
	sizes := []float64{0.001, 0.5, 1, 4, 16, 100}
	thinnings := []float64{-1, -0.5, 0, 0.5, 1}
	pressures := []float64{0, 0.25, 0.5, 1}
	distances := []float64{0, 0.5, 3, 50}
	easings := []Easing{EaseLinear, EaseIn, EaseOut, EaseInOut}

	for _, size := range sizes {
		floor := MinHalfWidth(size)
		if floor < size*0.5 {
			t.Fatalf("MinHalfWidth(%v) = %v, want >= %v", size, floor, size*0.5)
		}
		for _, thin := range thinnings {
			for _, p := range pressures {
				for _, d := range distances {
					for _, e := range easings {
						for _, sim := range []bool{false, true} {
							m := Modulation{
								Size:             size,
								Thinning:         thin,
								SimulatePressure: sim,
								PressureBlend:    DefaultPressureBlend,
								Easing:           e,
								TaperStart:       5,
								TaperEnd:         5,
							}
							pt := CenterlinePoint{Pressure: p, Distance: d, RunningLength: 1}
							if w := m.HalfWidth(pt, 2); w < size*0.5 {
								t.Errorf("HalfWidth(size=%v thin=%v p=%v d=%v %v sim=%v) = %v, want >= %v",
									size, thin, p, d, e, sim, w, size*0.5)
							}
						}
					}
				}
			}
		}
	}
}

func TestPressure(t *testing.T) {
	tests := []struct {
		name string
		m    Modulation
		pt   CenterlinePoint
		want float64
	}{
		{"still, velocity only", Modulation{Size: 4}, CenterlinePoint{Pressure: 0.2}, 1},
		{"fast, velocity only", Modulation{Size: 4}, CenterlinePoint{Pressure: 0.9, Distance: 10}, 0},
		{"half speed", Modulation{Size: 4}, CenterlinePoint{Distance: 2}, 0.5},
		{"small size normalizes by 1", Modulation{Size: 0.5}, CenterlinePoint{Distance: 0.5}, 0.5},
		{"blended", Modulation{Size: 4, SimulatePressure: true, PressureBlend: 0.5},
			CenterlinePoint{Pressure: 1, Distance: 2}, 0.75},
		{"blend weight", Modulation{Size: 4, SimulatePressure: true, PressureBlend: 1},
			CenterlinePoint{Pressure: 0.3, Distance: 100}, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Pressure(tt.pt); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Pressure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHalfWidthThinning(t *testing.T) {
	// Full thinning maps pressure straight to width.
	m := Modulation{Size: 10, Thinning: 1}
	slow := CenterlinePoint{Distance: 0}
	if w := m.HalfWidth(slow, math.Inf(1)); w != 10 {
		t.Errorf("HalfWidth(slow) = %v, want 10", w)
	}
	fast := CenterlinePoint{Distance: 20}
	if w := m.HalfWidth(fast, math.Inf(1)); w != 5 {
		t.Errorf("HalfWidth(fast) = %v, want floor 5", w)
	}

	// Negative thinning inverts the response.
	m.Thinning = -1
	if w := m.HalfWidth(fast, math.Inf(1)); w != 10 {
		t.Errorf("HalfWidth(fast, thinning=-1) = %v, want 10", w)
	}
}

func TestHalfWidthTaper(t *testing.T) {
	m := Modulation{Size: 10, Thinning: 1, TaperStart: 10, TaperEnd: 10}
	mid := func(run float64) CenterlinePoint {
		return CenterlinePoint{RunningLength: run}
	}
	tests := []struct {
		name  string
		run   float64
		total float64
		want  float64
	}{
		{"body", 50, 100, 10},
		{"start taper above floor", 8, 100, 8},
		{"start taper floored", 2, 100, 5},
		{"end taper", 93, 100, 7},
		{"end taper ignored while open", 99, math.Inf(1), 10},
		{"both tapers", 9, 18, 8.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.HalfWidth(mid(tt.run), tt.total); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("HalfWidth(run=%v, total=%v) = %v, want %v", tt.run, tt.total, got, tt.want)
			}
		})
	}
}

func TestEasingApply(t *testing.T) {
	tests := []struct {
		e    Easing
		t    float64
		want float64
	}{
		{EaseLinear, 0.3, 0.3},
		{EaseIn, 0.5, 0.25},
		{EaseOut, 0.5, 0.75},
		{EaseInOut, 0.25, 0.125},
		{EaseInOut, 0.75, 0.875},
		{EaseInOut, 0.5, 0.5},
		{EaseIn, 1, 1},
		{EaseOut, 0, 0},
	}
	for _, tt := range tests {
		if got := tt.e.Apply(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%v.Apply(%v) = %v, want %v", tt.e, tt.t, got, tt.want)
		}
	}
}

func TestEasingText(t *testing.T) {
	for _, e := range []Easing{EaseLinear, EaseIn, EaseOut, EaseInOut} {
		text, err := e.MarshalText()
		if err != nil {
			t.Fatalf("%v.MarshalText() error = %v", e, err)
		}
		var got Easing
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if got != e {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, e)
		}
	}

	if _, err := ParseEasing("bounce"); err == nil {
		t.Error("ParseEasing(bounce) should fail")
	}
	if e, err := ParseEasing(""); err != nil || e != EaseLinear {
		t.Errorf("ParseEasing(\"\") = %v, %v; want linear", e, err)
	}
	if _, err := Easing(9).MarshalText(); err == nil {
		t.Error("MarshalText of unknown preset should fail")
	}
	if got := Easing(9).String(); got != "Easing(9)" {
		t.Errorf("String() = %q, want Easing(9)", got)
	}
}
