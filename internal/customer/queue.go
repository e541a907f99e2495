package customer

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"gobbomarket/internal/catalog"
	"gobbomarket/internal/clock"
	"gobbomarket/internal/config"
	"gobbomarket/internal/events"
)

// TierSource reports the player's current tier; the Queue uses it to pick
// spawn rate and customer pool.
type TierSource interface {
	CurrentTier() int
}

// Queue spawns and expires customers on the injected scheduler. All of
// its timers are cancellable; Stop cancels every outstanding one so no
// stale callback fires after teardown.
type Queue struct {
	mu        sync.Mutex
	running   bool
	customers map[string]Customer
	patience  map[string]clock.TimerHandle
	spawn     clock.TimerHandle

	bus   *events.Bus
	clock clock.Clock
	sched clock.Scheduler
	cat   *catalog.Catalog
	bal   config.Balance
	tiers TierSource
	rng   *rand.Rand
}

func NewQueue(bus *events.Bus, clk clock.Clock, sched clock.Scheduler, cat *catalog.Catalog, bal config.Balance, tiers TierSource, rng *rand.Rand) *Queue {
	return &Queue{
		customers: map[string]Customer{},
		patience:  map[string]clock.TimerHandle{},
		bus:       bus,
		clock:     clk,
		sched:     sched,
		cat:       cat,
		bal:       bal,
		tiers:     tiers,
		rng:       rng,
	}
}

// Start begins spawning customers. Idempotent.
func (q *Queue) Start() {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	q.scheduleSpawn()
}

// Stop cancels the spawn timer and every patience timer, then clears the
// floor. Idempotent.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	if q.spawn != nil {
		q.spawn.Cancel()
		q.spawn = nil
	}
	for id, h := range q.patience {
		h.Cancel()
		delete(q.patience, id)
	}
	leaving := make([]Customer, 0, len(q.customers))
	for id, c := range q.customers {
		leaving = append(leaving, c)
		delete(q.customers, id)
	}
	q.mu.Unlock()

	for _, c := range leaving {
		q.bus.Emit(events.TypeCustomerLeft, events.CustomerLeft{
			CustomerID: c.ID, Race: c.Race, Reason: ReasonClosed,
		})
	}
}

// Customers returns the customers currently at the stall.
func (q *Queue) Customers() []Customer {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Customer, 0, len(q.customers))
	for _, c := range q.customers {
		out = append(out, c)
	}
	return out
}

// Get returns the customer with the given id.
func (q *Queue) Get(id string) (Customer, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	c, ok := q.customers[id]
	return c, ok
}

// Complete removes a customer after a finished sale.
func (q *Queue) Complete(id string) bool {
	return q.remove(id, ReasonServed)
}

// Leave removes a customer for the given reason.
func (q *Queue) Leave(id, reason string) bool {
	return q.remove(id, reason)
}

func (q *Queue) remove(id, reason string) bool {
	q.mu.Lock()
	c, ok := q.customers[id]
	if !ok {
		q.mu.Unlock()
		return false
	}
	delete(q.customers, id)
	if h, ok := q.patience[id]; ok {
		h.Cancel()
		delete(q.patience, id)
	}
	q.mu.Unlock()

	q.bus.Emit(events.TypeCustomerLeft, events.CustomerLeft{
		CustomerID: c.ID, Race: c.Race, Reason: reason,
	})
	return true
}

// spawnInterval shortens as the tier rises; busier markets draw crowds.
func (q *Queue) spawnInterval() time.Duration {
	sec := q.bal.SpawnIntervalSec - q.tiers.CurrentTier()*q.bal.SpawnIntervalTierReduce
	if sec < q.bal.SpawnIntervalMinSec {
		sec = q.bal.SpawnIntervalMinSec
	}
	return time.Duration(sec) * time.Second
}

func (q *Queue) scheduleSpawn() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.spawn = q.sched.After(q.spawnInterval(), q.spawnTick)
	q.mu.Unlock()
}

func (q *Queue) spawnTick() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	full := len(q.customers) >= q.bal.MaxCustomers
	q.mu.Unlock()

	if !full {
		q.spawnOne()
	}
	q.scheduleSpawn()
}

func (q *Queue) spawnOne() {
	pool := q.cat.ArchetypesForTier(q.tiers.CurrentTier())
	if len(pool) == 0 {
		return
	}
	arch := pool[q.rng.Intn(len(pool))]

	category := catalog.Category("")
	if len(arch.Categories) > 0 {
		category = arch.Categories[q.rng.Intn(len(arch.Categories))]
	}

	c := Customer{
		ID:               uuid.NewString(),
		Race:             arch.Race,
		DesiredCategory:  category,
		PatienceSec:      arch.PatienceSec,
		HaggleSkill:      rollBetween(q.rng, arch.HaggleSkillMin, arch.HaggleSkillMax),
		BudgetMultiplier: rollBetween(q.rng, arch.BudgetMin, arch.BudgetMax),
		ArrivedAt:        q.clock.Now(),
	}

	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.customers[c.ID] = c
	q.patience[c.ID] = q.sched.After(time.Duration(c.PatienceSec)*time.Second, func() {
		q.Leave(c.ID, ReasonImpatient)
	})
	q.mu.Unlock()

	q.bus.Emit(events.TypeCustomerArrived, events.CustomerArrived{
		CustomerID: c.ID, Race: c.Race, Category: string(category),
	})
}

func rollBetween(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
