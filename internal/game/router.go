package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/voxspace/roomwalk/internal/logger"
	"github.com/voxspace/roomwalk/internal/nav"
)

// HomePath is the landing path. It shows the overlay and runs no
// scene.
const HomePath = "/"

// Overlay is the landing surface the router shows at the home path and
// hides inside rooms.
type Overlay interface {
	Show()
	Hide()
}

// NopOverlay is an Overlay that does nothing.
type NopOverlay struct{}

func (NopOverlay) Show() {}
func (NopOverlay) Hide() {}

// Router maps paths to rooms and moves the single active room between
// them. Room instances are cached per path, and each room's state map
// is snapshotted on exit and merged back over scene defaults on
// return.
type Router struct {
	deps    Deps
	history nav.History
	overlay Overlay

	factories   map[string]SceneFactory
	rooms       map[string]*Room
	saved       map[string]map[string]any
	defaultPath string

	current     *Room
	currentPath string
}

// NewRouter creates a router over the given history and overlay.
// History pops (back/forward) re-enter the target room without pushing
// a new entry.
func NewRouter(deps Deps, history nav.History, overlay Overlay) *Router {
	if overlay == nil {
		overlay = NopOverlay{}
	}
	r := &Router{
		deps:      deps,
		history:   history,
		overlay:   overlay,
		factories: make(map[string]SceneFactory),
		rooms:     make(map[string]*Room),
		saved:     make(map[string]map[string]any),
	}
	history.OnPop(func(path string) {
		if err := r.switchTo(path); err != nil {
			logger.Error("history navigation failed",
				zap.String("path", path), zap.Error(err))
		}
	})
	return r
}

// Register binds a path to a scene factory.
func (r *Router) Register(path string, f SceneFactory) {
	r.factories[path] = f
}

// SetDefault names the room unknown paths fall back to.
func (r *Router) SetDefault(path string) {
	r.defaultPath = path
}

// Current returns the active room, or nil at the home path.
func (r *Router) Current() *Room { return r.current }

// CurrentPath returns the path the router is at.
func (r *Router) CurrentPath() string { return r.currentPath }

// Navigate pushes path onto the history and switches to it.
func (r *Router) Navigate(path string) error {
	r.history.Push(path)
	return r.switchTo(path)
}

// Back steps the history back one entry; the pop callback performs the
// switch. At the oldest entry it is a no-op.
func (r *Router) Back() { r.history.Back() }

// Forward steps the history forward one entry.
func (r *Router) Forward() { r.history.Forward() }

// SaveCurrent snapshots the active room's state without leaving it.
func (r *Router) SaveCurrent() {
	if r.current != nil {
		r.saved[r.currentPath] = r.current.SnapshotState()
	}
}

// Shutdown deactivates the active room and snapshots its state.
func (r *Router) Shutdown() {
	r.leave()
}

// leave deactivates the current room, saving its state.
func (r *Router) leave() {
	if r.current == nil {
		return
	}
	r.saved[r.currentPath] = r.current.SnapshotState()
	r.current.Deactivate()
	r.current = nil
}

// resolve maps path to a registered factory, falling back to the
// default room for unknown paths.
func (r *Router) resolve(path string) (string, SceneFactory, error) {
	if f, ok := r.factories[path]; ok {
		return path, f, nil
	}
	if f, ok := r.factories[r.defaultPath]; ok {
		logger.Warn("unknown path, using default",
			zap.String("path", path), zap.String("default", r.defaultPath))
		return r.defaultPath, f, nil
	}
	return "", nil, fmt.Errorf("router: no room for path %q and no default", path)
}

func (r *Router) switchTo(path string) error {
	r.leave()

	if path == HomePath {
		r.currentPath = path
		r.overlay.Show()
		logger.Info("at landing", zap.String("path", path))
		return nil
	}
	r.overlay.Hide()

	resolved, factory, err := r.resolve(path)
	if err != nil {
		return err
	}

	room, ok := r.rooms[resolved]
	if !ok {
		room = NewRoom(resolved, factory(), r.deps)
		r.rooms[resolved] = room
	}
	if snap, ok := r.saved[resolved]; ok {
		room.MergeState(snap)
	}

	r.currentPath = resolved
	r.current = room
	if err := room.Activate(); err != nil {
		r.current = nil
		return err
	}
	logger.Info("entered room", zap.String("path", resolved))
	return nil
}
