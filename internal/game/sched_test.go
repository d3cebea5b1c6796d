package game

import (
	"errors"
	"testing"
	"time"
)

func TestSchedulerPumpWithoutRequestIsNoop(t *testing.T) {
	d := NewDisplayScheduler()
	if err := d.Pump(0); err != nil {
		t.Fatalf("Pump: %v", err)
	}
	if d.Pending() {
		t.Error("empty scheduler reports pending")
	}
}

func TestSchedulerRequestThenPump(t *testing.T) {
	d := NewDisplayScheduler()
	var got time.Duration
	h := d.RequestFrame(func(now time.Duration) error {
		got = now
		return nil
	})
	if h == 0 {
		t.Fatal("zero handle for live request")
	}
	if !d.Pending() {
		t.Fatal("not pending after request")
	}
	if err := d.Pump(16 * time.Millisecond); err != nil {
		t.Fatalf("Pump: %v", err)
	}
	if got != 16*time.Millisecond {
		t.Errorf("callback time = %v, want 16ms", got)
	}
	if d.Pending() {
		t.Error("still pending after pump")
	}
}

func TestSchedulerReRequestInsideCallback(t *testing.T) {
	d := NewDisplayScheduler()
	var fires int
	var cb FrameFunc
	cb = func(now time.Duration) error {
		fires++
		d.RequestFrame(cb)
		return nil
	}
	d.RequestFrame(cb)

	for i := 0; i < 3; i++ {
		if err := d.Pump(time.Duration(i) * 16 * time.Millisecond); err != nil {
			t.Fatalf("Pump: %v", err)
		}
	}
	if fires != 3 {
		t.Errorf("fires = %d, want 3 (one per pump)", fires)
	}
	if !d.Pending() {
		t.Error("re-request inside callback was lost")
	}
}

func TestSchedulerCancel(t *testing.T) {
	d := NewDisplayScheduler()
	h := d.RequestFrame(func(time.Duration) error {
		t.Error("canceled callback fired")
		return nil
	})
	d.Cancel(h)
	if d.Pending() {
		t.Error("pending after cancel")
	}
	if err := d.Pump(0); err != nil {
		t.Fatalf("Pump: %v", err)
	}
}

func TestSchedulerStaleCancelIgnored(t *testing.T) {
	d := NewDisplayScheduler()
	old := d.RequestFrame(func(time.Duration) error { return nil })
	if err := d.Pump(0); err != nil {
		t.Fatalf("Pump: %v", err)
	}

	var fired bool
	d.RequestFrame(func(time.Duration) error {
		fired = true
		return nil
	})
	d.Cancel(old)
	if !d.Pending() {
		t.Fatal("stale cancel dropped the live request")
	}
	if err := d.Pump(0); err != nil {
		t.Fatalf("Pump: %v", err)
	}
	if !fired {
		t.Error("live callback did not fire")
	}
}

func TestSchedulerCallbackErrorPropagates(t *testing.T) {
	d := NewDisplayScheduler()
	want := errors.New("frame failed")
	d.RequestFrame(func(time.Duration) error { return want })
	if err := d.Pump(0); !errors.Is(err, want) {
		t.Errorf("Pump error = %v, want %v", err, want)
	}
}
