// Package camera provides the perspective camera driven by either the
// keyboard/mouse integrator or XR device poses.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/voxspace/roomwalk/pkg/math"
)

// Camera is a perspective camera. While AutoUpdate is true its world
// matrix is derived from Position/Yaw/Pitch each time UpdateMatrices
// runs; when device poses supply authoritative transforms, callers turn
// AutoUpdate off and set the matrices directly.
type Camera struct {
	Position math.Vec3
	Yaw      float32 // radians, around Y
	Pitch    float32 // radians, around X

	FovY   float32 // radians
	Aspect float32
	Near   float32
	Far    float32

	// AutoUpdate gates UpdateMatrices. Must be disabled whenever World
	// and Projection come directly from an XR view.
	AutoUpdate bool

	World      math.Mat4 // camera-to-world
	View       math.Mat4 // world-to-camera (inverse of World)
	Projection math.Mat4
}

// New creates a camera with the given aspect ratio and a 60 degree
// vertical field of view.
func New(aspect float32) *Camera {
	c := &Camera{
		FovY:       math32.Pi / 3,
		Aspect:     aspect,
		Near:       0.1,
		Far:        100,
		AutoUpdate: true,
		World:      math.Identity(),
		View:       math.Identity(),
	}
	c.Projection = math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
	return c
}

// SetAspect updates the aspect ratio and reprojects.
func (c *Camera) SetAspect(aspect float32) {
	c.Aspect = aspect
	if c.AutoUpdate {
		c.Projection = math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
	}
}

// Forward returns the camera's forward direction from yaw/pitch.
func (c *Camera) Forward() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	return math.Vec3{
		X: -math32.Sin(c.Yaw) * cp,
		Y: math32.Sin(c.Pitch),
		Z: -math32.Cos(c.Yaw) * cp,
	}
}

// UpdateMatrices recomputes View/World/Projection from the camera's
// position and orientation. No-op while AutoUpdate is disabled.
func (c *Camera) UpdateMatrices() {
	if !c.AutoUpdate {
		return
	}
	target := c.Position.Add(c.Forward())
	c.View = math.LookAt(c.Position, target, math.Vec3{Y: 1})
	c.World = c.View.Inverse()
	c.Projection = math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// SetWorldMatrix sets the camera-to-world transform directly and derives
// the view matrix from it. Callers must have disabled AutoUpdate first.
func (c *Camera) SetWorldMatrix(world math.Mat4) {
	c.World = world
	c.View = world.Inverse()
	c.Position = world.Translation()
}

// SetProjection sets the projection matrix directly (e.g. from an XR view).
func (c *Camera) SetProjection(p math.Mat4) {
	c.Projection = p
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.Projection.Mul(c.View)
}
