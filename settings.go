// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"fmt"
	"math"

	"github.com/gogpu/ink/internal/stroke"
	"github.com/gogpu/ink/mesh"
)

// EasingPreset selects the curve applied to pressure and taper progress.
type EasingPreset = stroke.Easing

// Easing presets.
const (
	EaseLinear = stroke.EaseLinear
	EaseIn     = stroke.EaseIn
	EaseOut    = stroke.EaseOut
	EaseInOut  = stroke.EaseInOut
)

// DefaultWindow is the default trailing sample window of persistent strokes.
const DefaultWindow = 20

// Settings is the stroke configuration shared by both tools.
//
// Zero values are not meaningful; start from DefaultSettings and override.
type Settings struct {
	// Size is the base stroke width. Must be > 0.
	Size float64 `toml:"size" yaml:"size"`

	// Thinning in [-1, 1] scales the effect of pressure on width.
	Thinning float64 `toml:"thinning" yaml:"thinning"`

	// Smoothing in [0, 1]. Accepted for compatibility with outline-based
	// smoothers; the default smoother does not use it.
	Smoothing float64 `toml:"smoothing" yaml:"smoothing"`

	// Streamline in [0, 1]. Higher values lag further behind the pointer.
	Streamline float64 `toml:"streamline" yaml:"streamline"`

	// SimulatePressure blends device pressure with a velocity proxy.
	SimulatePressure bool `toml:"simulatePressure" yaml:"simulatePressure"`

	Color RGB `toml:"strokeColor" yaml:"strokeColor"`

	// Alpha in (0, 1] is the additive intensity of each persistent segment.
	// Ephemeral strokes are always opaque.
	Alpha float64 `toml:"alpha" yaml:"alpha"`

	CapStart   bool    `toml:"capStart" yaml:"capStart"`
	CapEnd     bool    `toml:"capEnd" yaml:"capEnd"`
	TaperStart float64 `toml:"taperStart" yaml:"taperStart"`
	TaperEnd   float64 `toml:"taperEnd" yaml:"taperEnd"`

	Easing EasingPreset `toml:"easingPreset" yaml:"easingPreset"`

	// FeatherThreshold in [0, 1] is where the edge falloff begins.
	FeatherThreshold float64 `toml:"featherThreshold" yaml:"featherThreshold"`

	// CapSteps is the triangle count of each round cap (>= 2).
	CapSteps int `toml:"capSteps" yaml:"capSteps"`

	// PressureBlend in [0, 1] weights device pressure against the velocity
	// proxy when SimulatePressure is set.
	PressureBlend float64 `toml:"pressureBlend" yaml:"pressureBlend"`

	// SeedSegments is the initial geometry buffer capacity in quads.
	SeedSegments int `toml:"seedSegments" yaml:"seedSegments"`

	// Window is the number of trailing raw samples a persistent stroke keeps
	// between updates (>= 2).
	Window int `toml:"trailingWindow" yaml:"trailingWindow"`
}

// DefaultSettings returns the stock pen configuration.
func DefaultSettings() Settings {
	return Settings{
		Size:             4,
		Thinning:         0.5,
		Smoothing:        0.5,
		Streamline:       0.5,
		SimulatePressure: true,
		Color:            Red,
		Alpha:            0.2,
		CapStart:         true,
		CapEnd:           true,
		Easing:           EaseLinear,
		FeatherThreshold: mesh.DefaultFeatherThreshold,
		CapSteps:         stroke.DefaultCapSteps,
		PressureBlend:    stroke.DefaultPressureBlend,
		SeedSegments:     mesh.DefaultSeedSegments,
		Window:           DefaultWindow,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidSettings.
func (s Settings) Validate() error {
	switch {
	case !(s.Size > 0) || math.IsInf(s.Size, 0):
		return fmt.Errorf("%w: size %v must be a positive number", ErrInvalidSettings, s.Size)
	case !(s.Thinning >= -1 && s.Thinning <= 1):
		return fmt.Errorf("%w: thinning %v outside [-1, 1]", ErrInvalidSettings, s.Thinning)
	case !in01(s.Smoothing):
		return fmt.Errorf("%w: smoothing %v outside [0, 1]", ErrInvalidSettings, s.Smoothing)
	case !in01(s.Streamline):
		return fmt.Errorf("%w: streamline %v outside [0, 1]", ErrInvalidSettings, s.Streamline)
	case !s.Color.valid():
		return fmt.Errorf("%w: color %+v outside [0, 1]", ErrInvalidSettings, s.Color)
	case !(s.Alpha > 0 && s.Alpha <= 1):
		return fmt.Errorf("%w: alpha %v outside (0, 1]", ErrInvalidSettings, s.Alpha)
	case !(s.TaperStart >= 0) || !(s.TaperEnd >= 0):
		return fmt.Errorf("%w: tapers (%v, %v) must be >= 0", ErrInvalidSettings, s.TaperStart, s.TaperEnd)
	case !s.Easing.Valid():
		return fmt.Errorf("%w: unknown easing preset %d", ErrInvalidSettings, int(s.Easing))
	case !in01(s.FeatherThreshold):
		return fmt.Errorf("%w: feather threshold %v outside [0, 1]", ErrInvalidSettings, s.FeatherThreshold)
	case s.CapSteps < 2:
		return fmt.Errorf("%w: cap steps %d < 2", ErrInvalidSettings, s.CapSteps)
	case !in01(s.PressureBlend):
		return fmt.Errorf("%w: pressure blend %v outside [0, 1]", ErrInvalidSettings, s.PressureBlend)
	case s.SeedSegments < 0:
		return fmt.Errorf("%w: seed segments %d < 0", ErrInvalidSettings, s.SeedSegments)
	case s.Window < 2:
		return fmt.Errorf("%w: trailing window %d < 2", ErrInvalidSettings, s.Window)
	}
	return nil
}

// WithSize returns a copy with the given base size.
func (s Settings) WithSize(size float64) Settings {
	s.Size = size
	return s
}

// WithColor returns a copy with the given color.
func (s Settings) WithColor(c RGB) Settings {
	s.Color = c
	return s
}

// WithAlpha returns a copy with the given persistent alpha.
func (s Settings) WithAlpha(alpha float64) Settings {
	s.Alpha = alpha
	return s
}

// WithCaps returns a copy with the given cap flags.
func (s Settings) WithCaps(start, end bool) Settings {
	s.CapStart = start
	s.CapEnd = end
	return s
}

// WithTaper returns a copy with the given taper lengths.
func (s Settings) WithTaper(start, end float64) Settings {
	s.TaperStart = start
	s.TaperEnd = end
	return s
}

// WithEasing returns a copy with the given easing preset.
func (s Settings) WithEasing(e EasingPreset) Settings {
	s.Easing = e
	return s
}

// DrawParams returns the per-draw renderer configuration for blend.
func (s Settings) DrawParams(blend BlendMode) DrawParams {
	return DrawParams{
		FeatherThreshold: float32(s.FeatherThreshold),
		Blend:            blend,
	}
}

// builderOptions maps settings to ribbon builder options at the given
// vertex alpha.
func (s Settings) builderOptions(alpha float64) stroke.Options {
	return stroke.Options{
		Modulation: stroke.Modulation{
			Size:             s.Size,
			Thinning:         s.Thinning,
			SimulatePressure: s.SimulatePressure,
			PressureBlend:    s.PressureBlend,
			Easing:           s.Easing,
			TaperStart:       s.TaperStart,
			TaperEnd:         s.TaperEnd,
		},
		Color:    s.Color.mesh(),
		Alpha:    float32(alpha),
		CapStart: s.CapStart,
		CapEnd:   s.CapEnd,
		CapSteps: s.CapSteps,
	}
}
