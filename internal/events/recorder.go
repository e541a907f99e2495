package events

import (
	"sync"
	"time"
)

// Recorder captures emitted events for inspection (dev/test use).
type Recorder struct {
	mu     sync.RWMutex
	events []Event
	sub    Subscription
}

// NewRecorder attaches a recorder to the bus.
func NewRecorder(bus *Bus) *Recorder {
	r := &Recorder{events: make([]Event, 0)}
	r.sub = bus.SubscribeAll(func(ev Event) {
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
	})
	return r
}

// Events returns recorded events, optionally filtered by type.
func (r *Recorder) Events(types ...Type) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(types) == 0 {
		out := make([]Event, len(r.events))
		copy(out, r.events)
		return out
	}

	filter := make(map[Type]bool, len(types))
	for _, t := range types {
		filter[t] = true
	}

	out := make([]Event, 0)
	for _, ev := range r.events {
		if filter[ev.Type] {
			out = append(out, ev)
		}
	}
	return out
}

// Since returns recorded events at or after the given time.
func (r *Recorder) Since(t time.Time) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Event, 0)
	for _, ev := range r.events {
		if ev.At.Before(t) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// Counts returns the number of recorded events per type.
func (r *Recorder) Counts() map[Type]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[Type]int)
	for _, ev := range r.events {
		counts[ev.Type]++
	}
	return counts
}

// Clear drops all recorded events.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.events = r.events[:0]
	r.mu.Unlock()
}

// Close detaches the recorder from the bus.
func (r *Recorder) Close() {
	r.sub.Cancel()
}
