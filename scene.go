// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ink

import (
	"github.com/google/uuid"

	"github.com/gogpu/ink/mesh"
)

// StrokeObject is a completed ephemeral stroke: the raw samples and the
// final triangulated mesh. It is immutable once created.
type StrokeObject struct {
	id       uuid.UUID
	samples  []Sample
	mesh     *mesh.Mesh
	settings Settings
	released bool
}

func newStrokeObject(samples []Sample, m *mesh.Mesh, s Settings) *StrokeObject {
	return &StrokeObject{
		id:       uuid.New(),
		samples:  append([]Sample(nil), samples...),
		mesh:     m,
		settings: s,
	}
}

// ID returns the object's unique identifier.
func (o *StrokeObject) ID() uuid.UUID {
	return o.id
}

// Mesh returns the frozen geometry, or nil once the owning scene released
// the object.
func (o *StrokeObject) Mesh() *mesh.Mesh {
	if o.released {
		return nil
	}
	return o.mesh
}

// RawSamples returns a copy of the filtered input samples.
func (o *StrokeObject) RawSamples() []Sample {
	return append([]Sample(nil), o.samples...)
}

// Settings returns the settings the stroke was completed with.
func (o *StrokeObject) Settings() Settings {
	return o.settings
}

// Released reports whether a scene clear destroyed the object.
func (o *StrokeObject) Released() bool {
	return o.released
}

// Scene owns committed stroke objects in commit order.
type Scene struct {
	objects []*StrokeObject
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Commit takes ownership of obj. Nil objects are ignored.
func (s *Scene) Commit(obj *StrokeObject) {
	if obj == nil {
		return
	}
	s.objects = append(s.objects, obj)
	Logger().Info("ink: stroke committed",
		"id", obj.id, "samples", len(obj.samples), "triangles", obj.mesh.TriangleCount())
}

// Objects returns the committed objects in commit order.
func (s *Scene) Objects() []*StrokeObject {
	return append([]*StrokeObject(nil), s.objects...)
}

// Len returns the number of committed objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Find returns the object with the given id.
func (s *Scene) Find(id uuid.UUID) (*StrokeObject, bool) {
	for _, o := range s.objects {
		if o.id == id {
			return o, true
		}
	}
	return nil, false
}

// Meshes returns the meshes of all committed objects, skipping empty ones.
func (s *Scene) Meshes() []*mesh.Mesh {
	out := make([]*mesh.Mesh, 0, len(s.objects))
	for _, o := range s.objects {
		if m := o.Mesh(); !m.Empty() {
			out = append(out, m)
		}
	}
	return out
}

// Clear releases every object and empties the scene. It returns the number
// of objects released.
func (s *Scene) Clear() int {
	n := len(s.objects)
	for i, o := range s.objects {
		o.released = true
		s.objects[i] = nil
	}
	s.objects = s.objects[:0]
	Logger().Info("ink: scene cleared", "objects", n)
	return n
}
