package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Sampler polls SDL events, folds them into a State, and re-publishes
// them on the Bus the frame loop subscribes to. All positions leave the
// sampler in pixels; SDL's normalized finger coordinates are scaled by
// the tracked window size.
type Sampler struct {
	state *State
	bus   *Bus

	winW, winH float32

	mouseDown  bool
	lastMouseX int32
	lastMouseY int32
}

// NewSampler creates a sampler feeding the given state and bus. width
// and height are the window's initial pixel size; resize events keep
// them current.
func NewSampler(state *State, bus *Bus, width, height int) *Sampler {
	return &Sampler{
		state: state,
		bus:   bus,
		winW:  float32(width),
		winH:  float32(height),
	}
}

// setSize records the window's pixel size for finger scaling.
func (s *Sampler) setSize(width, height int) {
	s.winW = float32(width)
	s.winH = float32(height)
}

// touch converts a normalized finger position ([0,1] from SDL) to
// pixels, records it, and republishes it like a mouse position.
func (s *Sampler) touch(nx, ny float32) {
	x := nx * s.winW
	y := ny * s.winH
	s.state.SetTouch(x, y)
	s.bus.Publish(Event{Type: EventTouchMove, X: x, Y: y})
}

// mapScancode converts SDL scancodes to the application's key set.
func mapScancode(sc sdl.Scancode) Key {
	switch sc {
	case sdl.SCANCODE_W, sdl.SCANCODE_UP:
		return KeyW
	case sdl.SCANCODE_A, sdl.SCANCODE_LEFT:
		return KeyA
	case sdl.SCANCODE_S, sdl.SCANCODE_DOWN:
		return KeyS
	case sdl.SCANCODE_D, sdl.SCANCODE_RIGHT:
		return KeyD
	case sdl.SCANCODE_P:
		return KeyP
	case sdl.SCANCODE_ESCAPE:
		return KeyEscape
	default:
		return KeyUnknown
	}
}

// Poll drains pending SDL events. Returns true if the application
// should quit.
func (s *Sampler) Poll() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.bus.Publish(Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				s.setSize(int(e.Data1), int(e.Data2))
				s.bus.Publish(Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			key := mapScancode(e.Keysym.Scancode)
			if e.Type == sdl.KEYDOWN {
				s.state.SetKey(key, true)
				s.bus.Publish(Event{Type: EventKeyDown, Key: key})
			} else if e.Type == sdl.KEYUP {
				s.state.SetKey(key, false)
				s.bus.Publish(Event{Type: EventKeyUp, Key: key})
			}

		case *sdl.MouseMotionEvent:
			if s.mouseDown {
				s.state.ApplyMouseDelta(float32(e.X-s.lastMouseX), float32(e.Y-s.lastMouseY))
			}
			s.lastMouseX = e.X
			s.lastMouseY = e.Y
			s.bus.Publish(Event{
				Type: EventMouseMove,
				X:    float32(e.X),
				Y:    float32(e.Y),
			})

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				s.mouseDown = true
				s.lastMouseX = e.X
				s.lastMouseY = e.Y
				s.bus.Publish(Event{
					Type:   EventMouseDown,
					X:      float32(e.X),
					Y:      float32(e.Y),
					Button: e.Button,
				})
			} else if e.Type == sdl.MOUSEBUTTONUP {
				s.mouseDown = false
				s.bus.Publish(Event{
					Type:   EventMouseUp,
					X:      float32(e.X),
					Y:      float32(e.Y),
					Button: e.Button,
				})
			}

		case *sdl.TouchFingerEvent:
			switch e.Type {
			case sdl.FINGERDOWN, sdl.FINGERMOTION:
				s.touch(e.X, e.Y)
			case sdl.FINGERUP:
				s.state.ClearTouch()
			}
		}
	}

	return false
}
