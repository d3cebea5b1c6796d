// Package physics provides a small rigid-body world: gravity,
// integration, and AABB collision resolution.
package physics

import "github.com/voxspace/roomwalk/pkg/math"

// Body is a rigid body with position, velocity, and an AABB from its
// half extents. Static bodies ignore gravity and never move.
type Body struct {
	Position    math.Vec3
	Velocity    math.Vec3
	HalfExtents math.Vec3
	Mass        float32
	Static      bool
}

// NewBody returns a body at position with the given half extents.
// A non-positive mass is treated as 1.
func NewBody(position, halfExtents math.Vec3, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Position:    position,
		HalfExtents: halfExtents,
		Mass:        mass,
		Static:      static,
	}
}

// aabb returns the body's box corners.
func (b *Body) aabb() (lo, hi math.Vec3) {
	h := b.HalfExtents
	return b.Position.Sub(h), b.Position.Add(h)
}
