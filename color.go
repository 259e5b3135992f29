// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/ink/mesh"
)

// RGB is a stroke tint. Each component is in the range [0, 1].
type RGB struct {
	R, G, B float64
}

// Red is the default stroke color.
var Red = RGB{R: 1}

// Hex creates a color from a hex string ("#rgb" or "#rrggbb", leading '#'
// optional). Malformed input yields black.
func Hex(hex string) RGB {
	c, err := ParseHex(hex)
	if err != nil {
		return RGB{}
	}
	return c
}

// ParseHex parses a hex color string.
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	s = strings.TrimPrefix(s, "0x")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("ink: invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("ink: invalid hex color %q: %w", hex, err)
	}
	return FromUint32(uint32(v)), nil
}

// FromUint32 converts a 0xRRGGBB value.
func FromUint32(v uint32) RGB {
	return RGB{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// Uint32 returns the color as 0xRRGGBB.
func (c RGB) Uint32() uint32 {
	return uint32(to255(c.R))<<16 | uint32(to255(c.G))<<8 | uint32(to255(c.B))
}

// String returns the color as "#rrggbb".
func (c RGB) String() string {
	return fmt.Sprintf("#%06x", c.Uint32())
}

// Color converts c to an opaque color.Color.
func (c RGB) Color() color.Color {
	return color.NRGBA{R: to255(c.R), G: to255(c.G), B: to255(c.B), A: 255}
}

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(text []byte) error {
	v, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c RGB) valid() bool {
	return in01(c.R) && in01(c.G) && in01(c.B)
}

func (c RGB) mesh() mesh.Color {
	return mesh.Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

func to255(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func in01(v float64) bool {
	return v >= 0 && v <= 1
}
