// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import "github.com/gogpu/ink/mesh"

// Surface is the single always-growing ink layer written by persistent
// tools. Geometry is only ever appended; Clear empties the whole surface.
//
// A surface has exactly one writer at a time.
type Surface struct {
	buf *mesh.Buffer
}

// NewSurface creates a surface. WithSeedCapacity and WithBinding apply;
// other options are ignored.
func NewSurface(opts ...Option) *Surface {
	o := applyOptions(opts)
	seed := o.seed
	if seed <= 0 {
		seed = mesh.DefaultSeedSegments
	}
	var bopts []mesh.Option
	if o.binding != nil {
		bopts = append(bopts, mesh.WithBinding(o.binding))
	}
	return &Surface{buf: mesh.NewBuffer(seed, bopts...)}
}

// Bind attaches a renderer handle and uploads the current contents.
func (s *Surface) Bind(b mesh.Binding) {
	s.buf.Bind(b)
	s.buf.UploadUsedRange()
}

// Clear logically empties the surface without releasing storage. The next
// upload is zero-length.
func (s *Surface) Clear() {
	used := s.buf.UsedSegments()
	s.buf.Clear()
	s.buf.UploadUsedRange()
	Logger().Info("ink: surface cleared",
		"segments", used, "capacity", s.buf.Capacity().Segments)
}

// UsedSegments returns the used size in segments.
func (s *Surface) UsedSegments() int {
	return s.buf.UsedSegments()
}

// QuadCount returns the number of ribbon quads on the surface.
func (s *Surface) QuadCount() int {
	return s.buf.QuadCount()
}

// Capacity returns the physical capacity of the backing arrays.
func (s *Surface) Capacity() mesh.Capacity {
	return s.buf.Capacity()
}

// Growths returns how many times the surface reallocated.
func (s *Surface) Growths() int {
	return s.buf.Growths()
}

// Range returns the used prefix of the surface arrays. The slices are only
// valid until the next stroke update.
func (s *Surface) Range() mesh.Range {
	return s.buf.UsedRange()
}

// Snapshot copies the current contents into an immutable mesh.
func (s *Surface) Snapshot() *mesh.Mesh {
	return s.buf.Freeze()
}
