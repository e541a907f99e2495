package events

import (
	"sync"
	"time"
)

// Handler receives a dispatched event.
type Handler func(Event)

// Bus is a typed publish/subscribe dispatcher. Dispatch is synchronous:
// Emit invokes every listener registered at the moment of emission, in
// registration order, before returning. Listeners may subscribe,
// unsubscribe, or emit further events during dispatch; the in-flight
// dispatch iterates over a snapshot and is unaffected.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Type][]subscription
	all    []subscription
	clock  interface{ Now() time.Time }
}

type subscription struct {
	id int
	fn Handler
}

// Subscription cancels a registered listener.
type Subscription struct {
	bus    *Bus
	typ    Type
	id     int
	global bool
}

func NewBus(clock interface{ Now() time.Time }) *Bus {
	return &Bus{
		nextID: 1,
		subs:   map[Type][]subscription{},
		clock:  clock,
	}
}

// Subscribe registers fn for events of the given type.
func (b *Bus) Subscribe(t Type, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[t] = append(b.subs[t], subscription{id: id, fn: fn})
	return Subscription{bus: b, typ: t, id: id}
}

// SubscribeAll registers fn for every event type.
func (b *Bus) SubscribeAll(fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.all = append(b.all, subscription{id: id, fn: fn})
	return Subscription{bus: b, id: id, global: true}
}

// Cancel removes the listener. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	if s.global {
		s.bus.all = removeSub(s.bus.all, s.id)
		return
	}
	s.bus.subs[s.typ] = removeSub(s.bus.subs[s.typ], s.id)
}

func removeSub(list []subscription, id int) []subscription {
	for i, sub := range list {
		if sub.id == id {
			out := make([]subscription, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}

// Emit publishes an event with the given type and payload.
func (b *Bus) Emit(t Type, data any) {
	b.mu.Lock()
	snapshot := make([]subscription, 0, len(b.subs[t])+len(b.all))
	snapshot = append(snapshot, b.subs[t]...)
	snapshot = append(snapshot, b.all...)
	at := time.Now()
	if b.clock != nil {
		at = b.clock.Now()
	}
	b.mu.Unlock()

	ev := Event{Type: t, At: at, Data: data}
	for _, sub := range snapshot {
		sub.fn(ev)
	}
}
