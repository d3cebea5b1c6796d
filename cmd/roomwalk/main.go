// Roomwalk is a walkable set of linked 3D rooms with an XR frame loop
// and a conventional-display fallback.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/voxspace/roomwalk/internal/assets"
	"github.com/voxspace/roomwalk/internal/audio"
	"github.com/voxspace/roomwalk/internal/config"
	"github.com/voxspace/roomwalk/internal/engine/camera"
	"github.com/voxspace/roomwalk/internal/engine/input"
	"github.com/voxspace/roomwalk/internal/engine/renderer"
	"github.com/voxspace/roomwalk/internal/engine/window"
	"github.com/voxspace/roomwalk/internal/game"
	"github.com/voxspace/roomwalk/internal/game/rooms"
	"github.com/voxspace/roomwalk/internal/logger"
	"github.com/voxspace/roomwalk/internal/nav"
	"github.com/voxspace/roomwalk/internal/xr"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Fatal("fatal", zap.Error(err))
	}
}

// landingOverlay is the surface shown at the landing path. Rendering a
// real menu is the platform shell's job; this build announces it on
// the log and waits for any click or key.
type landingOverlay struct {
	visible bool
}

func (o *landingOverlay) Show() {
	o.visible = true
	logger.Info("landing: click or press any key to enter")
}

func (o *landingOverlay) Hide() {
	o.visible = false
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "Roomwalk",
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      cfg.Display.VSync,
	})
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer win.Close()

	w, h := win.Size()
	rd, err := renderer.NewGL(renderer.Config{Width: w, Height: h})
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rd.Close()

	cam := camera.New(float32(w) / float32(h))
	state := input.NewState(cfg.Controls.MoveSpeed, cfg.Controls.MouseSensitivity, cfg.Controls.InvertY)
	bus := input.NewBus()
	sampler := input.NewSampler(state, bus, w, h)
	sched := game.NewDisplayScheduler()

	provider := &xr.StaticProvider{}
	if cfg.XR.Enabled {
		// No hardware binding in this build; the simulated session
		// exercises the session frame path end to end.
		sess := xr.NewSimSession()
		sess.SessionMode = xr.Mode(cfg.XR.Mode)
		provider.Active = sess
		logger.Info("xr session installed", zap.String("mode", cfg.XR.Mode))
	}

	assetMgr := assets.NewManager(cfg.Game.AssetDir)
	audioMgr := audio.New(cfg.Audio.MasterVolume, cfg.Audio.Muted)
	if err := audioMgr.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
	}
	defer audioMgr.Close()

	overlay := &landingOverlay{}
	deps := game.Deps{
		Renderer: rd,
		Camera:   cam,
		Sched:    sched,
		XR:       provider,
		Input:    state,
		Bus:      bus,
		Assets:   assetMgr,
		Audio:    audioMgr,
	}
	router := game.NewRouter(deps, nav.NewMemory(), overlay)
	rooms.Register(router)
	defer router.Shutdown()

	running := true
	bus.Subscribe(input.EventKeyUp, func(ev input.Event) {
		switch {
		case ev.Key == input.KeyEscape:
			running = false
		case overlay.visible:
			enterFromLanding(router)
		}
	})
	bus.Subscribe(input.EventMouseDown, func(ev input.Event) {
		if overlay.visible {
			enterFromLanding(router)
		}
	})
	bus.Subscribe(input.EventWindowResize, func(ev input.Event) {
		rd.SetSize(ev.Width, ev.Height)
		cam.SetAspect(float32(ev.Width) / float32(ev.Height))
		logger.Debug("resized", zap.Int("width", ev.Width), zap.Int("height", ev.Height))
	})

	if err := router.Navigate(cfg.Game.StartRoom); err != nil {
		return fmt.Errorf("start room: %w", err)
	}

	logger.Info("entering main loop", zap.String("start", cfg.Game.StartRoom))
	start := time.Now()
	frames := 0
	lastFPS := time.Duration(0)
	for running {
		if sampler.Poll() {
			break
		}
		now := time.Since(start)

		if sess, ok := provider.Active.(*xr.SimSession); ok {
			if _, err := sess.Fire(now); err != nil {
				return fmt.Errorf("frame: %w", err)
			}
		} else if err := sched.Pump(now); err != nil {
			return fmt.Errorf("frame: %w", err)
		}

		win.SwapBuffers()

		frames++
		if cfg.Game.ShowFPS && now-lastFPS >= time.Second {
			hits, misses := assetMgr.Stats()
			logger.Debug("fps",
				zap.Int("frames", frames),
				zap.Int("asset_hits", hits),
				zap.Int("asset_misses", misses),
			)
			frames = 0
			lastFPS = now
		}
	}

	logger.Info("shutting down")
	return nil
}

// enterFromLanding leaves the overlay for the lobby.
func enterFromLanding(router *game.Router) {
	if err := router.Navigate(rooms.HomePath); err != nil {
		logger.Error("failed to enter", zap.Error(err))
	}
}
