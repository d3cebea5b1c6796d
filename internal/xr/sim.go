package xr

import (
	"time"

	"github.com/voxspace/roomwalk/pkg/math"
)

// StaticProvider is an in-memory Provider holding whatever session the
// host installed. It serves both tests and running without a hardware
// binding.
type StaticProvider struct {
	Active Session
}

// Session returns the installed session (nil when none).
func (p *StaticProvider) Session() Session {
	return p.Active
}

// SimSpace is a trivially comparable reference space.
type SimSpace struct {
	Name string
}

// Kind returns the space's name.
func (s SimSpace) Kind() string { return s.Name }

// SimSession is a scriptable Session. The host installs a pose (or a
// pose error) and calls Fire to deliver frames.
type SimSession struct {
	SessionMode Mode
	Space       ReferenceSpace
	FB          uint32
	Sources     []InputSource

	// Pose is returned by ViewerPose; PoseErr takes precedence when set.
	Pose    *ViewerPose
	PoseErr error

	pending FrameCallback
	// FramesRequested counts RequestFrame calls.
	FramesRequested int
}

// NewSimSession returns an immersive session with a two-view pose.
func NewSimSession() *SimSession {
	return &SimSession{
		SessionMode: ModeImmersive,
		Space:       SimSpace{Name: "local-floor"},
		Pose: &ViewerPose{
			Transform: math.Identity(),
			Views: []View{
				{Transform: math.Identity(), Projection: math.Identity(), Viewport: Viewport{X: 0, Y: 0, W: 640, H: 720}},
				{Transform: math.Identity(), Projection: math.Identity(), Viewport: Viewport{X: 640, Y: 0, W: 640, H: 720}},
			},
		},
	}
}

// Mode returns the session mode.
func (s *SimSession) Mode() Mode { return s.SessionMode }

// ReferenceSpace returns the session's space.
func (s *SimSession) ReferenceSpace() ReferenceSpace { return s.Space }

// RequestFrame stores cb as the pending frame callback.
func (s *SimSession) RequestFrame(cb FrameCallback) {
	s.pending = cb
	s.FramesRequested++
}

// Framebuffer returns the session framebuffer handle.
func (s *SimSession) Framebuffer() uint32 { return s.FB }

// InputSources returns the connected controllers.
func (s *SimSession) InputSources() []InputSource { return s.Sources }

// Pending reports whether a frame callback is waiting.
func (s *SimSession) Pending() bool { return s.pending != nil }

// Fire delivers one frame to the pending callback. The callback is
// cleared before it runs, so a callback that re-requests leaves exactly
// one pending again. The bool reports whether anything was pending.
func (s *SimSession) Fire(now time.Duration) (bool, error) {
	cb := s.pending
	if cb == nil {
		return false, nil
	}
	s.pending = nil
	return true, cb(now, simFrame{session: s})
}

type simFrame struct {
	session *SimSession
}

// ViewerPose returns the scripted pose or error.
func (f simFrame) ViewerPose(space ReferenceSpace) (*ViewerPose, error) {
	if f.session.PoseErr != nil {
		return nil, f.session.PoseErr
	}
	return f.session.Pose, nil
}

// SimSource is a scriptable controller.
type SimSource struct {
	Hand string
	Pose math.Mat4
}

// Handedness returns the controller's hand.
func (i *SimSource) Handedness() string { return i.Hand }

// RayPose returns the controller's ray pose.
func (i *SimSource) RayPose() math.Mat4 { return i.Pose }
