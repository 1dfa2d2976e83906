package chemfiles

import (
	"testing"
)

type recordingObserver struct {
	events []HandleEvent
}

func (o *recordingObserver) OnHandleEvent(e HandleEvent) {
	o.events = append(o.events, e)
}

func TestRegistryLifecycle(t *testing.T) {
	r := newRegistry()
	obs := &recordingObserver{}
	r.subscribe(obs)

	r.add(10, "Atom")
	r.add(20, "Frame")
	if got := len(r.snapshot()); got != 2 {
		t.Fatalf("live count = %d, want 2", got)
	}

	r.remove(10)
	live := r.snapshot()
	if len(live) != 1 || live[0].Raw != 20 || live[0].Kind != "Frame" {
		t.Errorf("unexpected live set: %+v", live)
	}

	if len(obs.events) != 3 {
		t.Fatalf("got %d events, want 3", len(obs.events))
	}
	if obs.events[0].Type != HandleCreated || obs.events[0].Kind != "Atom" {
		t.Errorf("first event: %+v", obs.events[0])
	}
	if obs.events[2].Type != HandleReleased || obs.events[2].Raw != 10 {
		t.Errorf("release event: %+v", obs.events[2])
	}
}

func TestRegistryIgnoresZeroAndUnknown(t *testing.T) {
	r := newRegistry()
	obs := &recordingObserver{}
	r.subscribe(obs)

	r.add(0, "Atom")
	r.remove(99)
	if len(obs.events) != 0 {
		t.Errorf("got %d events, want none", len(obs.events))
	}

	r.unsubscribe(obs)
	r.add(1, "Atom")
	if len(obs.events) != 0 {
		t.Error("unsubscribed observer still notified")
	}
}
