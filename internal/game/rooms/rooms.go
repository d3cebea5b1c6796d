// Package rooms holds the concrete environments: the home lobby and
// the rooms it links to. Scenes build content; the game package owns
// the loop that drives them.
package rooms

import (
	"go.uber.org/zap"

	"github.com/voxspace/roomwalk/internal/game"
	"github.com/voxspace/roomwalk/internal/logger"
)

// Navigator is the slice of the router scenes use to move between
// rooms.
type Navigator interface {
	Navigate(path string) error
}

// Register binds every room to its path on the router and makes the
// home lobby the fallback for unknown paths.
func Register(r *game.Router) {
	r.Register(HomePath, Home(r))
	r.Register(PlanetsPath, Planets(r))
	r.Register(GalleryPath, Gallery(r))
	r.SetDefault(HomePath)
}

// Room paths.
const (
	HomePath    = "/home"
	PlanetsPath = "/planets"
	GalleryPath = "/gallery"
)

// queueAmbience enqueues a room's ambience track for loading.
func queueAmbience(r *game.Room, path string) {
	if r.Deps().Assets != nil {
		r.Deps().Assets.Enqueue(path)
	}
}

// playAmbience starts a loaded ambience track. Missing or broken
// tracks leave the room silent.
func playAmbience(r *game.Room, path string) {
	deps := r.Deps()
	if deps.Assets == nil || deps.Audio == nil {
		return
	}
	data, err := deps.Assets.Load(path)
	if err != nil {
		logger.Debug("no ambience", zap.String("room", r.Name()), zap.Error(err))
		return
	}
	if err := deps.Audio.PlayAmbience(data); err != nil {
		logger.Warn("ambience playback failed",
			zap.String("room", r.Name()), zap.Error(err))
	}
}

// navigateOnRelease wires a trigger so that releasing a selection on
// it navigates to path.
func navigateOnRelease(t *game.Trigger, nav Navigator, path string) {
	t.Actions = map[string]func(){
		"navigate": func() {
			if err := nav.Navigate(path); err != nil {
				logger.Error("navigation failed",
					zap.String("path", path), zap.Error(err))
			}
		},
	}
	t.Caps.OnRelease = func(t *game.Trigger) { t.Invoke("navigate") }
}
