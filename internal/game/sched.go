// Package game implements the room lifecycle: the frame loop state
// machine, interaction dispatch, controller tracking, and the router
// that moves the user between rooms.
package game

import "time"

// FrameHandle identifies one pending conventional frame request. The
// zero value means no frame is pending.
type FrameHandle int

// FrameFunc is a scheduled frame callback. A non-nil error aborts the
// host pump.
type FrameFunc func(now time.Duration) error

// FrameScheduler hands out display-refresh frame callbacks. At most one
// request is pending per scheduler; requesting again replaces it.
type FrameScheduler interface {
	RequestFrame(cb FrameFunc) FrameHandle
	// Cancel drops a pending request. Stale handles are ignored.
	Cancel(h FrameHandle)
}

// DisplayScheduler is the conventional-display scheduler. The host loop
// calls Pump once per display refresh; a pending callback fires then.
type DisplayScheduler struct {
	next    FrameHandle
	pending FrameFunc
	handle  FrameHandle
}

// NewDisplayScheduler creates an empty scheduler.
func NewDisplayScheduler() *DisplayScheduler {
	return &DisplayScheduler{}
}

// RequestFrame schedules cb for the next Pump.
func (d *DisplayScheduler) RequestFrame(cb FrameFunc) FrameHandle {
	d.next++
	d.pending = cb
	d.handle = d.next
	return d.handle
}

// Cancel drops the pending request if h still identifies it.
func (d *DisplayScheduler) Cancel(h FrameHandle) {
	if h != 0 && h == d.handle {
		d.pending = nil
		d.handle = 0
	}
}

// Pending reports whether a callback is waiting.
func (d *DisplayScheduler) Pending() bool {
	return d.pending != nil
}

// Pump fires the pending callback, if any. The callback is cleared
// before it runs so that re-requesting from inside it leaves exactly
// one pending again.
func (d *DisplayScheduler) Pump(now time.Duration) error {
	cb := d.pending
	if cb == nil {
		return nil
	}
	d.pending = nil
	d.handle = 0
	return cb(now)
}
