// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu renders ink ribbon meshes with wgpu/hal.
//
// MeshBinding implements mesh.Binding on top of four device buffers
// (positions, colors, side tags and uint32 indices). Growth of the source
// buffer recreates them at the new capacity; every upload writes only the
// used prefix.
//
// RibbonRenderer owns the ribbon shader and one render pipeline per blend
// mode and records indexed draws of any number of bindings into a render
// pass supplied by the caller.
package gpu
