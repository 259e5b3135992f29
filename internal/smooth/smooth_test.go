// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package smooth

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/ink/internal/stroke"
)

func samples(xy ...float64) []stroke.Sample {
	out := make([]stroke.Sample, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, stroke.Sample{X: xy[i], Y: xy[i+1], Pressure: 0.5, Time: float64(i) * 8})
	}
	return out
}

func TestPointsEmpty(t *testing.T) {
	if got := Points(nil, Options{Size: 4}); got != nil {
		t.Errorf("Points(nil) = %v, want nil", got)
	}
}

func TestPointsSingleSample(t *testing.T) {
	got := Points(samples(3, 4), Options{Size: 4})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Position != (stroke.Point{X: 3, Y: 4}) {
		t.Errorf("Position = %v, want (3,4)", got[0].Position)
	}
	if err := stroke.Validate(got); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestPointsFinalRaw(t *testing.T) {
	got := Points(samples(0, 0, 10, 0, 20, 0), Options{Size: 4, Streamline: 0, Final: true})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantX := []float64{0, 10, 20}
	wantRun := []float64{0, 10, 20}
	for i, p := range got {
		if p.Position.X != wantX[i] || p.Position.Y != 0 {
			t.Errorf("point %d = %v, want (%v,0)", i, p.Position, wantX[i])
		}
		if p.RunningLength != wantRun[i] {
			t.Errorf("point %d RunningLength = %v, want %v", i, p.RunningLength, wantRun[i])
		}
		if p.Normal.X != 0 || p.Normal.Y != 1 {
			t.Errorf("point %d Normal = %v, want (0,1)", i, p.Normal)
		}
	}
	if got[0].Distance != 0 || got[1].Distance != 10 {
		t.Errorf("distances = %v, %v; want 0, 10", got[0].Distance, got[1].Distance)
	}
}

func TestPointsDropsDuplicates(t *testing.T) {
	got := Points(samples(0, 0, 0, 0, 10, 0), Options{Size: 1, Final: true})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestPointsMinimumLength(t *testing.T) {
	got := Points(samples(0, 0, 1, 0, 2, 0, 30, 0), Options{Size: 10, Final: true})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (interior points below minimum length dropped)", len(got))
	}
	if got[1].Position.X != 30 {
		t.Errorf("last X = %v, want 30", got[1].Position.X)
	}
}

func TestPointsStreamline(t *testing.T) {
	tests := []struct {
		streamline float64
		wantX      float64
	}{
		{0, 100},
		{1, 15},
		{0.5, 57.5},
	}
	for _, tt := range tests {
		got := Points(samples(0, 0, 100, 0), Options{Streamline: tt.streamline})
		if len(got) != 2 {
			t.Fatalf("streamline %v: len = %d, want 2", tt.streamline, len(got))
		}
		if math.Abs(got[1].Position.X-tt.wantX) > 1e-9 {
			t.Errorf("streamline %v: X = %v, want %v", tt.streamline, got[1].Position.X, tt.wantX)
		}
	}
}

func TestPointsValidOnCurve(t *testing.T) {
	var in []stroke.Sample
	for i := 0; i < 64; i++ {
		a := float64(i) / 64 * 2 * math.Pi
		in = append(in, stroke.Sample{
			X:        100 + 50*math.Cos(a),
			Y:        100 + 50*math.Sin(a),
			Pressure: float64(i%10) / 9,
			Time:     float64(i),
		})
	}
	for _, final := range []bool{false, true} {
		got := Points(in, Options{Size: 4, Streamline: 0.5, Final: final})
		if len(got) < 2 {
			t.Fatalf("final=%v: len = %d", final, len(got))
		}
		if err := stroke.Validate(got); err != nil {
			t.Errorf("final=%v: Validate() = %v", final, err)
		}
	}
}

func TestPointsClampsPressure(t *testing.T) {
	in := []stroke.Sample{{X: 0, Pressure: 3}, {X: 10, Pressure: -1, Time: 1}, {X: 20, Pressure: math.NaN(), Time: 2}}
	got := Points(in, Options{Final: true})
	want := []float64{1, 0, 0.5}
	for i, p := range got {
		if p.Pressure != want[i] {
			t.Errorf("point %d Pressure = %v, want %v", i, p.Pressure, want[i])
		}
	}
}

func TestPointsStraightLine(t *testing.T) {
	got := Points(samples(0, 0, 10, 0, 25, 0), Options{Size: 4, Streamline: 0.2, Final: true})

	// t = 0.15 + 0.8*0.85 = 0.83; the last sample is taken raw.
	up := stroke.Vec2{X: 0, Y: 1}
	want := []stroke.CenterlinePoint{
		{Position: stroke.Point{}, Normal: up, Pressure: 0.5},
		{Position: stroke.Point{X: 8.3}, Normal: up, Pressure: 0.5, Distance: 8.3, RunningLength: 8.3, Time: 16},
		{Position: stroke.Point{X: 25}, Normal: up, Pressure: 0.5, Distance: 16.7, RunningLength: 25, Time: 32},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Points() mismatch (-want +got):\n%s", diff)
	}
}
