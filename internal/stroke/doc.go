// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package stroke turns a smoothed center-line into a triangulated ribbon.
//
// # Algorithm Overview
//
// Each pair of consecutive centerline points becomes one quad. The corners
// are the points offset by their half-width along the unit normal:
//
//	AL = prev - n*wPrev    AR = prev + n*wPrev
//	BL = curr - n*wCurr    BR = curr + n*wCurr
//
// Left corners carry side tag -1 and right corners +1, so the rasterizer can
// feather alpha near both edges.
//
// # Width Modulation
//
// Half-widths come from [Modulation.HalfWidth]: a velocity proxy, optionally
// blended with device pressure, shaped by thinning and an easing curve,
// multiplied by start/end tapers and clamped to a floor of half the base
// size.
//
// # Round Caps
//
// Caps are semicircular fans centered on the stroke endpoints, spanning
// 180 degrees away from the stroke. They reuse the ribbon's edge vertices
// when the builder emits a shared strip.
package stroke
