// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mesh

import "fmt"

// DefaultFeatherThreshold is the |side| value where the edge falloff starts.
const DefaultFeatherThreshold = 0.85

// BlendMode selects how ribbon fragments composite onto the target.
type BlendMode int

const (
	// BlendAlpha composites premultiplied source-over. Used by ephemeral strokes.
	BlendAlpha BlendMode = iota

	// BlendAdditive adds premultiplied color into the target. Used by the
	// persistent ink surface.
	BlendAdditive
)

// String returns the string representation of BlendMode.
func (m BlendMode) String() string {
	switch m {
	case BlendAlpha:
		return "Alpha"
	case BlendAdditive:
		return "Additive"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// DrawParams is the fixed per-draw configuration handed to a renderer along
// with the buffer range.
type DrawParams struct {
	// FeatherThreshold in [0, 1]. Alpha is attenuated by
	// 1 - smoothstep(FeatherThreshold, 1, |side|).
	FeatherThreshold float32

	// Blend is the compositing mode.
	Blend BlendMode
}

// DefaultDrawParams returns source-over params with the default threshold.
func DefaultDrawParams() DrawParams {
	return DrawParams{
		FeatherThreshold: DefaultFeatherThreshold,
		Blend:            BlendAlpha,
	}
}
