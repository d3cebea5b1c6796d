package game

import (
	"github.com/voxspace/roomwalk/internal/assets"
	"github.com/voxspace/roomwalk/internal/audio"
	"github.com/voxspace/roomwalk/internal/engine/camera"
	"github.com/voxspace/roomwalk/internal/engine/input"
	"github.com/voxspace/roomwalk/internal/engine/renderer"
	"github.com/voxspace/roomwalk/internal/xr"
)

// Scene supplies a room's content: its graph, triggers, bounds, and
// per-frame behavior. Rooms own the frame loop; scenes only populate
// and animate.
type Scene interface {
	// Name identifies the scene in logs and state snapshots.
	Name() string

	// Setup populates the room: nodes, triggers, bounds, default
	// state. Called once per room instance; revisits reuse the
	// populated room.
	Setup(r *Room) error

	// OnAssetsLoaded runs after the room's queued assets resolve.
	OnAssetsLoaded(r *Room)

	// Animate advances scene-driven motion. Skipped while the room
	// is paused; rendering continues regardless.
	Animate(r *Room, dt float32)
}

// SceneFactory builds a scene for a router path.
type SceneFactory func() Scene

// Deps carries the engine services rooms and scenes share. The router
// hands the same Deps to every room it creates.
type Deps struct {
	Renderer renderer.Renderer
	Camera   *camera.Camera
	Sched    FrameScheduler
	XR       xr.Provider
	Input    *input.State
	Bus      *input.Bus
	Assets   *assets.Manager
	Audio    *audio.Manager
}

// LoopState names where the frame loop stands between callbacks.
type LoopState int

const (
	// LoopIdle means no frame is requested; the loop is stopped.
	LoopIdle LoopState = iota
	// LoopFallbackScheduled means a display-scheduler frame is
	// pending.
	LoopFallbackScheduled
	// LoopFallbackRendering means the last completed frame rendered
	// through the fallback path and re-requested.
	LoopFallbackRendering
	// LoopXRFrameRequested means an XR session frame is pending.
	LoopXRFrameRequested
	// LoopXRPosed means the last XR frame carried a usable viewer
	// pose and rendered.
	LoopXRPosed
	// LoopXRUnposed means the last XR frame had no usable pose; the
	// loop re-requested and skipped rendering.
	LoopXRUnposed
)

func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "idle"
	case LoopFallbackScheduled:
		return "fallback-scheduled"
	case LoopFallbackRendering:
		return "fallback-rendering"
	case LoopXRFrameRequested:
		return "xr-requested"
	case LoopXRPosed:
		return "xr-posed"
	case LoopXRUnposed:
		return "xr-unposed"
	default:
		return "unknown"
	}
}
