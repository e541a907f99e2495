package clock

import (
	"sort"
	"sync"
	"time"
)

// TimerHandle cancels a scheduled callback. Cancel is idempotent and a
// no-op after the callback has fired (for one-shot timers).
type TimerHandle interface {
	Cancel()
}

// Scheduler schedules future callbacks. Every timer is individually
// cancellable so owning components can tear down cleanly.
type Scheduler interface {
	After(d time.Duration, fn func()) TimerHandle
	Every(d time.Duration, fn func()) TimerHandle
}

// RealScheduler runs callbacks on real timers.
type RealScheduler struct{}

type realTimer struct {
	t *time.Timer
}

func (h realTimer) Cancel() { h.t.Stop() }

func (RealScheduler) After(d time.Duration, fn func()) TimerHandle {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (h *realTicker) Cancel() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
}

func (RealScheduler) Every(d time.Duration, fn func()) TimerHandle {
	h := &realTicker{ticker: time.NewTicker(d), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-h.ticker.C:
				fn()
			case <-h.done:
				return
			}
		}
	}()
	return h
}

// FakeScheduler keeps a due-time-ordered task table and fires tasks when
// its clock is advanced. Deterministic and test-friendly.
type FakeScheduler struct {
	mu     sync.Mutex
	clock  *FakeClock
	nextID int
	tasks  []*fakeTask
}

type fakeTask struct {
	id       int
	due      time.Time
	interval time.Duration // 0 for one-shot
	fn       func()
	canceled bool
}

type fakeHandle struct {
	s  *FakeScheduler
	id int
}

func (h fakeHandle) Cancel() {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	for _, t := range h.s.tasks {
		if t.id == h.id {
			t.canceled = true
		}
	}
}

func NewFakeScheduler(clock *FakeClock) *FakeScheduler {
	return &FakeScheduler{clock: clock, nextID: 1}
}

func (s *FakeScheduler) After(d time.Duration, fn func()) TimerHandle {
	return s.add(d, 0, fn)
}

func (s *FakeScheduler) Every(d time.Duration, fn func()) TimerHandle {
	return s.add(d, d, fn)
}

func (s *FakeScheduler) add(d, interval time.Duration, fn func()) TimerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.tasks = append(s.tasks, &fakeTask{
		id:       id,
		due:      s.clock.Now().Add(d),
		interval: interval,
		fn:       fn,
	})
	return fakeHandle{s: s, id: id}
}

// Pending reports the number of live scheduled tasks.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Advance moves the clock forward and fires every task that comes due,
// in due-time order. Repeating tasks fire once per elapsed interval.
// Callbacks run without the scheduler lock held, so they may schedule
// or cancel further tasks.
func (s *FakeScheduler) Advance(d time.Duration) {
	target := s.clock.Now().Add(d)

	for {
		s.mu.Lock()
		s.prune()

		var next *fakeTask
		for _, t := range s.tasks {
			if t.canceled || t.due.After(target) {
				continue
			}
			if next == nil || t.due.Before(next.due) {
				next = t
			}
		}
		if next == nil {
			s.mu.Unlock()
			break
		}

		fn := next.fn
		due := next.due
		if next.interval > 0 {
			next.due = next.due.Add(next.interval)
		} else {
			next.canceled = true
		}
		s.mu.Unlock()

		s.clock.Set(due)
		fn()
	}

	s.clock.Set(target)
}

func (s *FakeScheduler) prune() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.canceled {
			live = append(live, t)
		}
	}
	// Keep a stable order for deterministic same-instant firing.
	sort.SliceStable(live, func(i, j int) bool { return live[i].id < live[j].id })
	s.tasks = live
}
