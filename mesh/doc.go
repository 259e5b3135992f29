// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package mesh provides the growable geometry buffer that ribbon strokes are
// written into.
//
// A [Buffer] owns four co-indexed arrays:
//   - positions: two float32 per vertex (x, y)
//   - colors: four float32 per vertex (r, g, b, a)
//   - sides: one float32 per vertex, the edge feather tag in {-1, 0, +1}
//   - indices: uint32 triangle list
//
// Capacity is counted in segments. One segment is a quad of 4 vertices and
// 6 indices. The buffer is allocated once with a seed capacity and grows by
// doubling, copying only the used prefix of each array. It never shrinks:
// [Buffer.Clear] resets the used counters and keeps the backing storage.
//
// # Uploading
//
// A [Binding] is the external handle a renderer attaches to a buffer (for
// example the GPU buffers created by the gpu package). The buffer calls
// Rebind after every growth and hands the used prefix to Upload from
// [Buffer.UploadUsedRange]. The unused suffix is never transferred.
//
//	buf := mesh.NewBuffer(mesh.DefaultSeedSegments, mesh.WithBinding(b))
//	buf.Reserve(1)
//	buf.AppendQuad(al, ar, bl, br, color, 1, mesh.QuadSides)
//	buf.UploadUsedRange()
//
// # Ownership
//
// A buffer has exactly one writer, the stroke or surface that created it.
// Buffer is NOT safe for concurrent use.
package mesh
