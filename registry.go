package chemfiles

import (
	"sync"
)

// HandleEventType classifies a handle lifecycle event.
type HandleEventType int

const (
	// HandleCreated fires when a facade wraps a fresh engine handle.
	HandleCreated HandleEventType = iota
	// HandleReleased fires when the handle is freed.
	HandleReleased
)

// HandleEvent describes one lifecycle transition of an engine handle.
type HandleEvent struct {
	Type HandleEventType
	Raw  uint32
	Kind string
}

// HandleObserver receives handle lifecycle events.
type HandleObserver interface {
	OnHandleEvent(HandleEvent)
}

// HandleInfo identifies one live engine handle.
type HandleInfo struct {
	Raw  uint32
	Kind string
}

// registry tracks live engine handles. The engine heap is invisible to the
// Go garbage collector, so this is the only place a leak can be seen.
type registry struct {
	mu        sync.RWMutex
	live      map[uint32]string
	observers []HandleObserver
}

func newRegistry() *registry {
	return &registry{live: make(map[uint32]string)}
}

func (r *registry) add(raw uint32, kind string) {
	if raw == 0 {
		return
	}
	r.mu.Lock()
	r.live[raw] = kind
	r.mu.Unlock()
	r.notify(HandleEvent{Type: HandleCreated, Raw: raw, Kind: kind})
}

func (r *registry) remove(raw uint32) {
	r.mu.Lock()
	kind, ok := r.live[raw]
	delete(r.live, raw)
	r.mu.Unlock()
	if ok {
		r.notify(HandleEvent{Type: HandleReleased, Raw: raw, Kind: kind})
	}
}

func (r *registry) clear() {
	r.mu.Lock()
	r.live = make(map[uint32]string)
	r.mu.Unlock()
}

func (r *registry) snapshot() []HandleInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]HandleInfo, 0, len(r.live))
	for raw, kind := range r.live {
		out = append(out, HandleInfo{Raw: raw, Kind: kind})
	}
	return out
}

func (r *registry) subscribe(o HandleObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

func (r *registry) unsubscribe(o HandleObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

func (r *registry) notify(e HandleEvent) {
	r.mu.RLock()
	obs := make([]HandleObserver, len(r.observers))
	copy(obs, r.observers)
	r.mu.RUnlock()
	for _, o := range obs {
		o.OnHandleEvent(e)
	}
}

// LiveHandles returns every handle that has been created and not yet
// released, for leak checks in tests and tooling.
func LiveHandles() []HandleInfo {
	return handles.snapshot()
}

// SubscribeHandles registers an observer for handle lifecycle events.
func SubscribeHandles(o HandleObserver) {
	handles.subscribe(o)
}

// UnsubscribeHandles removes a previously registered observer.
func UnsubscribeHandles(o HandleObserver) {
	handles.unsubscribe(o)
}
