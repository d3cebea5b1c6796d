package input

import (
	"github.com/chewxy/math32"

	"github.com/voxspace/roomwalk/pkg/math"
)

// State accumulates key and pointer input between frames. Integrate and
// TouchView are pure functions of the accumulated state, so the frame
// loop can call them once per frame regardless of how many events
// arrived in between.
type State struct {
	MoveSpeed        float32 // units per second
	MouseSensitivity float32 // radians per pixel
	InvertY          bool

	Yaw   float32
	Pitch float32

	held map[Key]bool

	touchActive    bool
	touchX, touchY float32
}

// NewState creates input state with the given tuning.
func NewState(moveSpeed, mouseSensitivity float32, invertY bool) *State {
	return &State{
		MoveSpeed:        moveSpeed,
		MouseSensitivity: mouseSensitivity,
		InvertY:          invertY,
		held:             make(map[Key]bool),
	}
}

// SetKey records a key going down or up.
func (s *State) SetKey(k Key, down bool) {
	if down {
		s.held[k] = true
	} else {
		delete(s.held, k)
	}
}

// Held reports whether a key is currently held.
func (s *State) Held(k Key) bool {
	return s.held[k]
}

// ApplyMouseDelta turns a pointer movement into a look rotation.
func (s *State) ApplyMouseDelta(dx, dy float32) {
	s.Yaw -= dx * s.MouseSensitivity
	if s.InvertY {
		dy = -dy
	}
	s.Pitch -= dy * s.MouseSensitivity
	// Keep pitch short of straight up/down.
	limit := math32.Pi/2 - 0.01
	if s.Pitch > limit {
		s.Pitch = limit
	}
	if s.Pitch < -limit {
		s.Pitch = -limit
	}
}

// SetTouch records the active touch position in pixels.
func (s *State) SetTouch(x, y float32) {
	s.touchActive = true
	s.touchX = x
	s.touchY = y
}

// ClearTouch ends the active touch.
func (s *State) ClearTouch() {
	s.touchActive = false
}

// Integrate advances pos from the held movement keys along the current
// yaw. Movement stays on the XZ plane; vertical motion is the bounds
// clamp's and physics' business, not the integrator's.
func (s *State) Integrate(pos *math.Vec3, dt float32) {
	var forward, right float32
	if s.held[KeyW] {
		forward++
	}
	if s.held[KeyS] {
		forward--
	}
	if s.held[KeyD] {
		right++
	}
	if s.held[KeyA] {
		right--
	}
	if forward == 0 && right == 0 {
		return
	}

	sin := math32.Sin(s.Yaw)
	cos := math32.Cos(s.Yaw)
	dir := math.Vec3{
		X: -sin*forward + cos*right,
		Z: -cos*forward - sin*right,
	}
	*pos = pos.Add(dir.Normalize().Scale(s.MoveSpeed * dt))
}

// TouchView maps the active touch to view space ([-1,1] on both axes,
// Y up). ok is false when no touch is active.
func (s *State) TouchView(viewportW, viewportH float32) (v math.Vec2, ok bool) {
	if !s.touchActive || viewportW <= 0 || viewportH <= 0 {
		return math.Vec2{}, false
	}
	return math.Vec2{
		X: 2.0*s.touchX/viewportW - 1.0,
		Y: 1.0 - 2.0*s.touchY/viewportH,
	}, true
}
