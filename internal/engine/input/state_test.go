package input

import (
	"testing"

	"github.com/voxspace/roomwalk/pkg/math"
)

func TestIntegrateForward(t *testing.T) {
	s := NewState(2, 0.002, false)
	s.SetKey(KeyW, true)

	pos := math.Vec3{}
	s.Integrate(&pos, 0.5)

	// Yaw 0 faces -Z; half a second at speed 2 covers one unit.
	if pos.Z > -0.99 || pos.Z < -1.01 {
		t.Errorf("pos.Z = %v, want ~-1", pos.Z)
	}
	if pos.X < -0.01 || pos.X > 0.01 {
		t.Errorf("pos.X drifted: %v", pos.X)
	}
}

func TestIntegrateNoKeysIsNoop(t *testing.T) {
	s := NewState(2, 0.002, false)
	pos := math.Vec3{X: 1, Y: 2, Z: 3}
	s.Integrate(&pos, 1)
	if pos != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("position moved with no keys held: %v", pos)
	}
}

func TestIntegrateDiagonalIsNormalized(t *testing.T) {
	s := NewState(1, 0.002, false)
	s.SetKey(KeyW, true)
	s.SetKey(KeyD, true)

	pos := math.Vec3{}
	s.Integrate(&pos, 1)

	if d := pos.Length(); d < 0.99 || d > 1.01 {
		t.Errorf("diagonal speed = %v, want 1", d)
	}
}

func TestKeyRelease(t *testing.T) {
	s := NewState(1, 0.002, false)
	s.SetKey(KeyW, true)
	s.SetKey(KeyW, false)

	pos := math.Vec3{}
	s.Integrate(&pos, 1)
	if pos != (math.Vec3{}) {
		t.Errorf("released key still moves: %v", pos)
	}
}

func TestApplyMouseDeltaClampsPitch(t *testing.T) {
	s := NewState(1, 0.1, false)
	s.ApplyMouseDelta(0, -1000)
	if s.Pitch > 1.58 {
		t.Errorf("pitch unclamped: %v", s.Pitch)
	}
	s.ApplyMouseDelta(0, 2000)
	if s.Pitch < -1.58 {
		t.Errorf("pitch unclamped negative: %v", s.Pitch)
	}
}

func TestTouchView(t *testing.T) {
	s := NewState(1, 0.002, false)

	if _, ok := s.TouchView(800, 600); ok {
		t.Error("TouchView ok with no touch active")
	}

	s.SetTouch(400, 300)
	v, ok := s.TouchView(800, 600)
	if !ok {
		t.Fatal("TouchView not ok with active touch")
	}
	if v != (math.Vec2{}) {
		t.Errorf("center touch = %v, want origin", v)
	}

	s.SetTouch(800, 0)
	v, _ = s.TouchView(800, 600)
	if v != (math.Vec2{X: 1, Y: 1}) {
		t.Errorf("corner touch = %v, want {1 1}", v)
	}

	s.ClearTouch()
	if _, ok := s.TouchView(800, 600); ok {
		t.Error("TouchView ok after ClearTouch")
	}
}

func TestBusSubscribePublishUnsubscribe(t *testing.T) {
	b := NewBus()
	var got []Key
	h := b.Subscribe(EventKeyUp, func(ev Event) { got = append(got, ev.Key) })

	b.Publish(Event{Type: EventKeyUp, Key: KeyP})
	b.Publish(Event{Type: EventKeyDown, Key: KeyW}) // different type, ignored

	if len(got) != 1 || got[0] != KeyP {
		t.Fatalf("got %v, want [KeyP]", got)
	}

	b.Unsubscribe(h)
	b.Publish(Event{Type: EventKeyUp, Key: KeyP})
	if len(got) != 1 {
		t.Errorf("subscriber fired after Unsubscribe: %v", got)
	}
	if b.SubscriberCount(EventKeyUp) != 0 {
		t.Errorf("SubscriberCount = %d, want 0", b.SubscriberCount(EventKeyUp))
	}
}

func TestBusUnsubscribeDuringDelivery(t *testing.T) {
	b := NewBus()
	fired := 0
	var h Handle
	h = b.Subscribe(EventMouseDown, func(Event) {
		fired++
		b.Unsubscribe(h)
	})

	b.Publish(Event{Type: EventMouseDown})
	b.Publish(Event{Type: EventMouseDown})

	if fired != 1 {
		t.Errorf("fired %d times, want 1", fired)
	}
}
