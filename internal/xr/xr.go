// Package xr defines the interfaces the frame loop consumes to drive an
// XR hardware session: session presence, per-frame viewer poses, per-eye
// views, and input sources. No hardware binding lives here; the package
// is the seam real device layers and test fakes plug into.
package xr

import (
	"errors"
	"time"

	"github.com/voxspace/roomwalk/pkg/math"
)

// Mode is the kind of XR session.
type Mode string

const (
	// ModeImmersive renders per-eye into a headset.
	ModeImmersive Mode = "immersive"
	// ModeMagicWindow drives a flat display from device orientation;
	// touch input steers the tracked position.
	ModeMagicWindow Mode = "magicwindow"
)

// ErrStaleReferenceSpace is returned by Frame.ViewerPose when the
// reference space has not caught up with a session or mode change. It is
// the one pose failure the frame loop swallows; anything else propagates.
var ErrStaleReferenceSpace = errors.New("xr: stale reference space")

// Provider reports whether an XR session exists right now.
type Provider interface {
	// Session returns the active session, or nil when none exists.
	Session() Session
}

// FrameCallback is invoked when the session delivers a frame. A non-nil
// error aborts the host pump.
type FrameCallback func(now time.Duration, frame Frame) error

// Session is one running XR session.
type Session interface {
	Mode() Mode
	ReferenceSpace() ReferenceSpace
	// RequestFrame schedules cb for the session's next frame. Session
	// frame requests cannot be canceled, only allowed to fire once more.
	RequestFrame(cb FrameCallback)
	// Framebuffer returns the GL framebuffer object the session's
	// compositor reads from. 0 means the default framebuffer.
	Framebuffer() uint32
	// InputSources returns the currently connected controllers.
	InputSources() []InputSource
}

// ReferenceSpace is the coordinate frame poses are expressed in. Opaque
// to the frame loop; it is only handed back to ViewerPose.
type ReferenceSpace interface {
	Kind() string
}

// Frame is one delivered XR frame.
type Frame interface {
	// ViewerPose returns the viewer pose for this frame, or
	// ErrStaleReferenceSpace when tracking has transiently lapsed.
	ViewerPose(space ReferenceSpace) (*ViewerPose, error)
}

// ViewerPose is the device-reported head pose with its per-eye views.
type ViewerPose struct {
	Transform math.Mat4
	Views     []View
}

// View is one eye's transform, projection, and sub-viewport.
type View struct {
	// Transform is the view's pose in reference space (camera-to-world).
	Transform  math.Mat4
	Projection math.Mat4
	Viewport   Viewport
}

// Viewport is a sub-rectangle of the session framebuffer.
type Viewport struct {
	X, Y, W, H int
}

// InputSource is one connected XR controller.
type InputSource interface {
	Handedness() string
	// RayPose returns the controller's pointer ray pose in reference
	// space (origin at translation, ray along -Z).
	RayPose() math.Mat4
}
