// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ink turns freehand pen input into anti-aliased, variable-width
// ribbon meshes in real time.
//
// # Overview
//
// Pointer samples are filtered, smoothed into a center-line, widened by a
// pressure/velocity/taper modulation and triangulated into quads plus
// round-cap fans. Every vertex carries a side tag in {-1, 0, +1} that the
// renderer turns into a soft edge falloff instead of multisampling.
//
// # Tools
//
// Two tools share the same state machine (Idle, Drawing, Completing):
//
//   - EphemeralTool rebuilds the whole stroke on every event and, on
//     pointer-up, freezes it into an immutable StrokeObject that is
//     returned and optionally committed to a Scene.
//   - PersistentTool appends only the new segments of every event to a
//     Surface, which grows forever until it is cleared as a unit.
//
// # Quick Start
//
//	surface := ink.NewSurface()
//	tool, err := ink.NewPersistentTool(surface, ink.DefaultSettings())
//	if err != nil {
//	    return err
//	}
//	tool.PointerDown(ink.PointerEvent{PointerID: 1, Samples: []ink.Sample{{X: 0, Y: 0, Pressure: 0.5, Time: 0}}})
//	tool.PointerMove(ink.PointerEvent{PointerID: 1, Samples: []ink.Sample{{X: 10, Y: 0, Pressure: 0.5, Time: 16}}})
//	tool.PointerUp(ink.PointerEvent{PointerID: 1})
//
//	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
//	ink.NewImageRenderer().DrawScene(img, nil, surface, ink.DefaultSettings().FeatherThreshold)
//
// # Rendering
//
// Geometry lives in mesh.Buffer values. Attach a mesh.Binding (for example
// from the gpu package) to receive the used prefix after every update, or
// draw on the CPU with ImageRenderer.
//
// # Coordinate System
//
// Sample coordinates are surface pixels: origin at the top-left, X right,
// Y down.
package ink

// Version is the current version of the library.
const Version = "0.1.0"
