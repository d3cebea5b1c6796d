// Package input handles input sampling, the event bus the frame loop
// subscribes to, and the pure position integrator driven by accumulated
// key/mouse state.
package input

// EventType identifies a bus event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventTouchMove
	// EventXRSessionChanged fires when an XR session starts or ends;
	// the frame loop restarts itself on it.
	EventXRSessionChanged
)

// Key identifies the keys the application cares about.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyP
	KeyEscape
)

// Event is a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	X, Y   float32
	Width  int
	Height int
	Button uint8
}
