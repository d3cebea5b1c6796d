package game

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/voxspace/roomwalk/internal/engine/input"
	"github.com/voxspace/roomwalk/internal/engine/physics"
	"github.com/voxspace/roomwalk/internal/engine/picking"
	"github.com/voxspace/roomwalk/internal/engine/scenegraph"
	"github.com/voxspace/roomwalk/internal/logger"
	"github.com/voxspace/roomwalk/internal/xr"
	"github.com/voxspace/roomwalk/pkg/math"
)

// eyeHeight is the camera's offset above the tracked ground position in
// the fallback path. XR poses carry their own height.
const eyeHeight float32 = 1.6

// maxDelta caps the per-frame timestep so a stall does not launch
// physics or animation across the room.
const maxDelta float32 = 0.1

// Room is one running environment: a scene graph, its triggers and
// controllers, and the frame loop driving them. A room is created once
// per path and reused across visits; Activate and Deactivate bracket
// each visit.
type Room struct {
	name  string
	scene Scene
	deps  Deps

	root        *scenegraph.Node
	interactive *scenegraph.Node

	controllers  *Controllers
	interactions *Interactions
	world        *physics.World

	position math.Vec3
	bounds   math.Box3

	state map[string]any

	active          bool
	setup           bool
	paused          bool
	controlsEnabled bool

	// gen invalidates frame callbacks issued before a restart or
	// deactivation. Session frame requests cannot be canceled; a stale
	// callback compares its captured gen and returns untouched.
	gen         int
	frameHandle FrameHandle
	loopState   LoopState

	prev    time.Duration
	hasPrev bool

	listeners []input.Handle
}

// NewRoom creates an inactive room for the scene. Setup runs on first
// activation.
func NewRoom(name string, scene Scene, deps Deps) *Room {
	root := scenegraph.NewNode(name)
	interactive := scenegraph.NewNode("interactive")
	root.Add(interactive)
	return &Room{
		name:         name,
		scene:        scene,
		deps:         deps,
		root:         root,
		interactive:  interactive,
		controllers:  NewControllers(root),
		interactions: NewInteractions(),
		world:        physics.NewWorld(),
		bounds: math.Box3{
			Lower: math.Vec3{X: -1e6, Y: -1e6, Z: -1e6},
			Upper: math.Vec3{X: 1e6, Y: 1e6, Z: 1e6},
		},
		state:           make(map[string]any),
		controlsEnabled: true,
	}
}

// Name returns the room's name.
func (r *Room) Name() string { return r.name }

// Root returns the room's scene graph root.
func (r *Room) Root() *scenegraph.Node { return r.root }

// Deps returns the engine services the room was built with.
func (r *Room) Deps() Deps { return r.deps }

// Physics returns the room's physics world. Scenes that want
// simulation add bodies here and call UpdatePhysics from Animate.
func (r *Room) Physics() *physics.World { return r.world }

// Interactions returns the room's interaction dispatcher.
func (r *Room) Interactions() *Interactions { return r.interactions }

// Controllers returns the room's controller manager.
func (r *Room) Controllers() *Controllers { return r.controllers }

// LoopState reports where the frame loop currently stands.
func (r *Room) LoopState() LoopState { return r.loopState }

// Active reports whether the room is the one being driven.
func (r *Room) Active() bool { return r.active }

// Position returns the tracked ground position.
func (r *Room) Position() math.Vec3 { return r.position }

// SetPosition moves the tracked ground position (clamped next frame).
func (r *Room) SetPosition(p math.Vec3) { r.position = p }

// SetBounds restricts the tracked position to box.
func (r *Room) SetBounds(box math.Box3) { r.bounds = box }

// Bounds returns the movement bounds.
func (r *Room) Bounds() math.Box3 { return r.bounds }

// Paused reports whether scene animation is suspended. Rendering and
// movement continue while paused.
func (r *Room) Paused() bool { return r.paused }

// SetPaused suspends or resumes scene animation.
func (r *Room) SetPaused(p bool) { r.paused = p }

// SetControlsEnabled gates keyboard movement integration.
func (r *Room) SetControlsEnabled(on bool) { r.controlsEnabled = on }

// State returns the room's mutable state map. The router snapshots it
// on deactivation and merges the snapshot back over scene defaults on
// return visits.
func (r *Room) State() map[string]any { return r.state }

// StateDefault sets key to val only when the key is absent, so saved
// values from an earlier visit survive scene re-setup.
func (r *Room) StateDefault(key string, val any) {
	if _, ok := r.state[key]; !ok {
		r.state[key] = val
	}
}

// MergeState overlays saved values onto the state map. Defaults for
// keys the snapshot never recorded are kept.
func (r *Room) MergeState(saved map[string]any) {
	for k, v := range saved {
		r.state[k] = v
	}
}

// SnapshotState returns a copy of the state map.
func (r *Room) SnapshotState() map[string]any {
	out := make(map[string]any, len(r.state))
	for k, v := range r.state {
		out[k] = v
	}
	return out
}

// AddTrigger parents node under the room's interactive group and
// registers it with the dispatcher.
func (r *Room) AddTrigger(t *Trigger) {
	if t.Node != nil {
		r.interactive.Add(t.Node)
	}
	r.interactions.AddTrigger(t)
}

// UpdatePhysics steps the room's physics world. Called by scenes from
// Animate so simulation freezes with the pause flag.
func (r *Room) UpdatePhysics(dt float32) {
	r.world.Step(dt)
}

// Activate makes the room live: first-visit setup, asset resolution,
// input listeners, and the frame loop. Activating an active room is a
// no-op.
func (r *Room) Activate() error {
	if r.active {
		return nil
	}
	if !r.setup {
		if err := r.scene.Setup(r); err != nil {
			return fmt.Errorf("room %q: setup: %w", r.name, err)
		}
		r.setup = true
	}
	if r.deps.Assets != nil {
		if err := r.deps.Assets.Await(); err != nil {
			// Partial loads are cached; the scene decides what it can
			// show without the rest.
			logger.Warn("assets incomplete", zap.String("room", r.name), zap.Error(err))
		}
		r.scene.OnAssetsLoaded(r)
	}

	r.active = true
	r.subscribe()
	r.StartAnimation()
	logger.Info("room activated", zap.String("room", r.name))
	return nil
}

// Deactivate halts the frame loop, drops input listeners, and clears
// hover/selection. The graph and state stay for the next visit.
func (r *Room) Deactivate() {
	if !r.active {
		return
	}
	r.active = false
	r.gen++
	if r.frameHandle != 0 {
		r.deps.Sched.Cancel(r.frameHandle)
		r.frameHandle = 0
	}
	r.loopState = LoopIdle
	r.hasPrev = false
	r.unsubscribe()
	r.interactions.Clear()
	if r.deps.Audio != nil {
		r.deps.Audio.StopAmbience()
	}
	logger.Info("room deactivated", zap.String("room", r.name))
}

// StartAnimation requests the first frame from whichever source is
// present: the XR session if one exists, the display scheduler
// otherwise.
func (r *Room) StartAnimation() {
	r.hasPrev = false
	if s := r.session(); s != nil {
		s.RequestFrame(r.sessionCallback(r.gen))
		r.loopState = LoopXRFrameRequested
		return
	}
	r.frameHandle = r.deps.Sched.RequestFrame(r.displayCallback(r.gen))
	r.loopState = LoopFallbackScheduled
}

// Restart tears the loop down to a clean point and starts it again
// against the current session state. Pending display frames are
// canceled; pending session frames are invalidated by the generation
// bump and fire as no-ops. Controller visuals are rebuilt from the new
// session's sources on the next frame.
func (r *Room) Restart() {
	if !r.active {
		return
	}
	r.gen++
	if r.frameHandle != 0 {
		r.deps.Sched.Cancel(r.frameHandle)
		r.frameHandle = 0
	}
	r.controllers.RemoveAll()
	logger.Debug("frame loop restarting", zap.String("room", r.name))
	r.StartAnimation()
}

func (r *Room) session() xr.Session {
	if r.deps.XR == nil {
		return nil
	}
	return r.deps.XR.Session()
}

func (r *Room) displayCallback(gen int) FrameFunc {
	return func(now time.Duration) error {
		return r.onFrame(gen, now, nil)
	}
}

func (r *Room) sessionCallback(gen int) xr.FrameCallback {
	return func(now time.Duration, frame xr.Frame) error {
		return r.onFrame(gen, now, frame)
	}
}

// delta returns seconds since the previous frame, capped. The first
// frame after a (re)start reports zero.
func (r *Room) delta(now time.Duration) float32 {
	if !r.hasPrev {
		r.prev = now
		r.hasPrev = true
		return 0
	}
	dt := float32((now - r.prev).Seconds())
	r.prev = now
	if dt > maxDelta {
		dt = maxDelta
	}
	if dt < 0 {
		dt = 0
	}
	return dt
}

// onFrame is the frame loop body. frame is nil when the callback came
// from the display scheduler.
func (r *Room) onFrame(gen int, now time.Duration, frame xr.Frame) error {
	if gen != r.gen {
		// Superseded by a restart or deactivation.
		return nil
	}
	if !r.active {
		r.frameHandle = 0
		r.loopState = LoopIdle
		return nil
	}

	dt := r.delta(now)
	if !r.paused {
		r.scene.Animate(r, dt)
	}
	if r.controlsEnabled && r.deps.Input != nil {
		r.deps.Input.Integrate(&r.position, dt)
	}
	r.bounds.Clamp(&r.position)

	session := r.session()
	if session == nil {
		r.renderFallback()
		return nil
	}
	if frame == nil {
		// A session appeared while a display frame was in flight; hand
		// the loop over without rendering this tick.
		session.RequestFrame(r.sessionCallback(gen))
		r.loopState = LoopXRFrameRequested
		return nil
	}
	return r.renderXR(gen, session, frame, dt)
}

// renderFallback draws one flat-display frame and re-requests.
func (r *Room) renderFallback() {
	cam := r.deps.Camera
	rd := r.deps.Renderer

	cam.AutoUpdate = true
	if r.deps.Input != nil {
		cam.Yaw = r.deps.Input.Yaw
		cam.Pitch = r.deps.Input.Pitch
	}
	cam.Position = r.position.Add(math.Vec3{Y: eyeHeight})
	cam.UpdateMatrices()

	r.root.UpdateWorld(math.Identity())

	rd.SetAutoClear(true)
	rd.BindFramebuffer(0)
	w, h := rd.Size()
	rd.SetViewport(0, 0, w, h)
	rd.Render(r.root, cam)

	r.frameHandle = r.deps.Sched.RequestFrame(r.displayCallback(r.gen))
	r.loopState = LoopFallbackRendering
}

// renderXR draws one session frame: one pass per view into the
// session's framebuffer.
func (r *Room) renderXR(gen int, session xr.Session, frame xr.Frame, dt float32) error {
	pose, err := frame.ViewerPose(session.ReferenceSpace())
	if err != nil {
		if errors.Is(err, xr.ErrStaleReferenceSpace) {
			logger.Debug("viewer pose unavailable", zap.String("room", r.name))
			session.RequestFrame(r.sessionCallback(gen))
			r.loopState = LoopXRUnposed
			return nil
		}
		return fmt.Errorf("room %q: viewer pose: %w", r.name, err)
	}

	cam := r.deps.Camera
	rd := r.deps.Renderer
	offset := math.Translate(r.position.X, r.position.Y, r.position.Z)

	if session.Mode() == xr.ModeMagicWindow && r.deps.Input != nil {
		r.steerMagicWindow(pose, dt)
		offset = math.Translate(r.position.X, r.position.Y, r.position.Z)
	}

	cam.AutoUpdate = false
	rd.SetAutoClear(false)
	rd.BindFramebuffer(session.Framebuffer())
	rd.Clear()

	r.controllers.Sync(session.InputSources(), offset)
	r.root.UpdateWorld(math.Identity())
	r.interactions.Update(r.pointerRay(pose, offset))

	for i, view := range pose.Views {
		if i > 0 {
			rd.ClearDepth()
		}
		vp := view.Viewport
		rd.SetViewport(vp.X, vp.Y, vp.W, vp.H)
		cam.SetWorldMatrix(offset.Mul(view.Transform))
		cam.SetProjection(view.Projection)
		rd.Render(r.root, cam)
	}

	session.RequestFrame(r.sessionCallback(gen))
	r.loopState = LoopXRPosed
	return nil
}

// steerMagicWindow moves the tracked position from the active touch:
// the touch vector pans on the ground plane relative to where the
// device faces.
func (r *Room) steerMagicWindow(pose *xr.ViewerPose, dt float32) {
	w, h := r.deps.Renderer.Size()
	v, ok := r.deps.Input.TouchView(float32(w), float32(h))
	if !ok {
		return
	}
	forward := pose.Transform.TransformDirection(math.Vec3{Z: -1})
	forward.Y = 0
	right := pose.Transform.TransformDirection(math.Vec3{X: 1})
	right.Y = 0
	if forward.Length() == 0 || right.Length() == 0 {
		return
	}
	speed := r.deps.Input.MoveSpeed * dt
	step := right.Normalize().Scale(v.X * speed).Add(forward.Normalize().Scale(v.Y * speed))
	r.position = r.position.Add(step)
	r.bounds.Clamp(&r.position)
}

// pointerRay picks the interaction ray for this frame: the first
// controller's pointer if one is connected, the gaze direction
// otherwise.
func (r *Room) pointerRay(pose *xr.ViewerPose, offset math.Mat4) picking.Ray {
	var src math.Mat4
	if r.controllers.Len() > 0 {
		src = offset.Mul(r.controllers.List()[0].Source.RayPose())
	} else {
		src = offset.Mul(pose.Transform)
	}
	return picking.New(src.Translation(), src.TransformDirection(math.Vec3{Z: -1}))
}

// screenRay builds a pick ray from window pixel coordinates using the
// fallback camera.
func (r *Room) screenRay(x, y float32) picking.Ray {
	w, h := r.deps.Renderer.Size()
	inv := r.deps.Camera.ViewProjection().Inverse()
	return picking.ScreenToRay(x, y, float32(w), float32(h), inv)
}

// subscribe registers the room's bus listeners. Handles are recorded so
// Deactivate can remove exactly what was added.
func (r *Room) subscribe() {
	bus := r.deps.Bus
	if bus == nil {
		return
	}
	r.listeners = append(r.listeners,
		bus.Subscribe(input.EventMouseMove, func(ev input.Event) {
			if r.session() == nil {
				r.interactions.Update(r.screenRay(ev.X, ev.Y))
			}
		}),
		bus.Subscribe(input.EventMouseDown, func(ev input.Event) {
			if r.session() == nil {
				r.interactions.Press(r.screenRay(ev.X, ev.Y))
			}
		}),
		bus.Subscribe(input.EventMouseUp, func(ev input.Event) {
			r.interactions.Release()
		}),
		bus.Subscribe(input.EventKeyUp, func(ev input.Event) {
			if ev.Key == input.KeyP {
				r.SetPaused(!r.paused)
				logger.Debug("pause toggled",
					zap.String("room", r.name), zap.Bool("paused", r.paused))
			}
		}),
		bus.Subscribe(input.EventXRSessionChanged, func(ev input.Event) {
			r.Restart()
		}),
	)
}

func (r *Room) unsubscribe() {
	if r.deps.Bus == nil {
		return
	}
	for _, h := range r.listeners {
		r.deps.Bus.Unsubscribe(h)
	}
	r.listeners = nil
}
