package ledger

import (
	"sync"

	"gobbomarket/internal/catalog"
	"gobbomarket/internal/clock"
	"gobbomarket/internal/config"
	"gobbomarket/internal/events"
)

// Ledger is the state container. Every mutator is total: invalid input is
// rejected as a no-op result, never a panic. Mutators are serialized
// behind a single mutex; notifications are dispatched synchronously after
// the mutation commits, so a listener may re-enter another mutator
// without deadlocking.
type Ledger struct {
	mu    sync.Mutex
	state PlayerState

	bus   *events.Bus
	clock clock.Clock
	cat   *catalog.Catalog
	bal   config.Balance
}

type pendingEvent struct {
	typ  events.Type
	data any
}

func New(bus *events.Bus, clk clock.Clock, cat *catalog.Catalog, bal config.Balance) *Ledger {
	return &Ledger{
		state: newPlayerState(bal),
		bus:   bus,
		clock: clk,
		cat:   cat,
		bal:   bal,
	}
}

func (l *Ledger) dispatch(evs []pendingEvent) {
	for _, ev := range evs {
		l.bus.Emit(ev.typ, ev.data)
	}
}

// Snapshot returns a deep copy of the current state for read-only use.
func (l *Ledger) Snapshot() PlayerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneState(l.state)
}

func (l *Ledger) Coins() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Coins
}

func (l *Ledger) CurrentTier() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.CurrentTier
}

// UpgradeRank returns the owned rank for an upgrade id, 0 if not owned.
func (l *Ledger) UpgradeRank(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Upgrades[id]
}

// AddCoins credits coins. Non-positive amounts are ignored. The credited
// amount is clamped so coins never exceed the configured maximum; the
// clamped amount is what lands in coins, totalEarned, and the events.
func (l *Ledger) AddCoins(amount int, source string) {
	if amount <= 0 {
		return
	}

	l.mu.Lock()
	credit := amount
	if l.state.Coins+credit > l.bal.MaxCoins {
		credit = l.bal.MaxCoins - l.state.Coins
	}
	if credit <= 0 {
		l.mu.Unlock()
		return
	}
	l.state.Coins += credit
	l.state.TotalEarned += credit

	evs := []pendingEvent{
		{events.TypeCoinEarned, events.CoinEarned{Amount: credit, Source: source}},
		{events.TypeCoinChanged, events.CoinChange{Delta: credit, Total: l.state.Coins, Source: source}},
	}
	evs = append(evs, l.checkTierUnlockLocked()...)
	l.mu.Unlock()

	l.dispatch(evs)
}

// SpendCoins debits coins. Returns false without mutation when the amount
// is non-positive or exceeds the balance.
func (l *Ledger) SpendCoins(amount int, label string) bool {
	if amount <= 0 {
		return false
	}

	l.mu.Lock()
	if amount > l.state.Coins {
		l.mu.Unlock()
		return false
	}
	l.state.Coins -= amount
	l.state.TotalSpent += amount

	evs := []pendingEvent{
		{events.TypeCoinSpent, events.CoinSpent{Amount: amount, Label: label}},
		{events.TypeCoinChanged, events.CoinChange{Delta: -amount, Total: l.state.Coins, Source: label}},
	}
	l.mu.Unlock()

	l.dispatch(evs)
	return true
}

// AddReputation credits the aggregate reputation counter.
func (l *Ledger) AddReputation(amount int) {
	if amount <= 0 {
		return
	}

	l.mu.Lock()
	l.state.Reputation += amount
	evs := []pendingEvent{
		{events.TypeReputationChanged, events.ReputationChange{Delta: amount, Total: l.state.Reputation}},
	}
	evs = append(evs, l.checkTierUnlockLocked()...)
	l.mu.Unlock()

	l.dispatch(evs)
}

// AddRaceReputation credits both the named race bucket and the aggregate.
func (l *Ledger) AddRaceReputation(race string, amount int) {
	if amount <= 0 || race == "" {
		return
	}

	l.mu.Lock()
	l.state.RaceReputation[race] += amount
	l.state.Reputation += amount
	evs := []pendingEvent{
		{events.TypeReputationChanged, events.ReputationChange{Race: race, Delta: amount, Total: l.state.Reputation}},
	}
	evs = append(evs, l.checkTierUnlockLocked()...)
	l.mu.Unlock()

	l.dispatch(evs)
}

// AddToInventory appends an item. Fails when the stall is full.
func (l *Ledger) AddToInventory(item InventoryItem) bool {
	l.mu.Lock()
	if len(l.state.Inventory) >= l.state.StallSlots {
		l.mu.Unlock()
		return false
	}
	l.state.Inventory = append(l.state.Inventory, item)
	count := len(l.state.Inventory)
	l.mu.Unlock()

	l.bus.Emit(events.TypeInventoryChanged, events.InventoryChange{
		ItemID:  item.ID,
		GoodsID: item.GoodsID,
		Added:   true,
		Count:   count,
	})
	return true
}

// RemoveFromInventory removes and returns the item with the given id.
func (l *Ledger) RemoveFromInventory(id string) (InventoryItem, bool) {
	l.mu.Lock()
	idx := -1
	for i, it := range l.state.Inventory {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		l.mu.Unlock()
		return InventoryItem{}, false
	}
	item := l.state.Inventory[idx]
	l.state.Inventory = append(l.state.Inventory[:idx], l.state.Inventory[idx+1:]...)
	count := len(l.state.Inventory)
	l.mu.Unlock()

	l.bus.Emit(events.TypeInventoryChanged, events.InventoryChange{
		ItemID:  item.ID,
		GoodsID: item.GoodsID,
		Added:   false,
		Count:   count,
	})
	return item, true
}

// Item returns a copy of the inventory item with the given id.
func (l *Ledger) Item(id string) (InventoryItem, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, it := range l.state.Inventory {
		if it.ID == id {
			return it, true
		}
	}
	return InventoryItem{}, false
}

// AddUpgrade adds or increments an upgrade rank. Returns the new rank,
// or 0 when the upgrade is already at its catalog max rank.
func (l *Ledger) AddUpgrade(id string) int {
	maxRank := 1
	if u, ok := l.cat.UpgradeByID(id); ok && u.MaxRank > 0 {
		maxRank = u.MaxRank
	}

	l.mu.Lock()
	rank := l.state.Upgrades[id]
	if rank >= maxRank {
		l.mu.Unlock()
		return 0
	}
	rank++
	l.state.Upgrades[id] = rank
	l.mu.Unlock()

	l.bus.Emit(events.TypeUpgradePurchased, events.UpgradePurchased{UpgradeID: id, Rank: rank})
	return rank
}

// UnlockRecipe marks a goods id craftable. Idempotent; the event fires
// only on the first add.
func (l *Ledger) UnlockRecipe(goodsID string) bool {
	l.mu.Lock()
	if l.state.UnlockedRecipes[goodsID] {
		l.mu.Unlock()
		return false
	}
	l.state.UnlockedRecipes[goodsID] = true
	l.mu.Unlock()

	l.bus.Emit(events.TypeRecipeUnlocked, events.RecipeUnlocked{GoodsID: goodsID})
	return true
}

// AddMilestone marks a milestone achieved. Idempotent; the event fires
// only on the first add.
func (l *Ledger) AddMilestone(id, name string) bool {
	l.mu.Lock()
	if l.state.Milestones[id] {
		l.mu.Unlock()
		return false
	}
	l.state.Milestones[id] = true
	l.mu.Unlock()

	l.bus.Emit(events.TypeMilestoneReached, events.MilestoneReached{MilestoneID: id, Name: name})
	return true
}

// IncrementStallSlots grows the stall by one slot, up to the configured
// maximum. Returns the new slot count, or 0 when already at max.
func (l *Ledger) IncrementStallSlots() int {
	l.mu.Lock()
	if l.state.StallSlots >= l.bal.MaxStallSlots {
		l.mu.Unlock()
		return 0
	}
	l.state.StallSlots++
	slots := l.state.StallSlots
	l.mu.Unlock()

	l.bus.Emit(events.TypeStallUpgraded, events.StallUpgraded{Slots: slots})
	return slots
}

// RecordCraft bumps the crafted-items counter.
func (l *Ledger) RecordCraft() {
	l.mu.Lock()
	l.state.ItemsCrafted++
	n := l.state.ItemsCrafted
	l.mu.Unlock()

	l.bus.Emit(events.TypeCraftRecorded, events.CounterBump{Count: n})
}

// RecordSale bumps the sold-items counter.
func (l *Ledger) RecordSale() {
	l.mu.Lock()
	l.state.ItemsSold++
	n := l.state.ItemsSold
	l.mu.Unlock()

	l.bus.Emit(events.TypeSaleRecorded, events.CounterBump{Count: n})
}

// RecordHaggle bumps the win or loss counter.
func (l *Ledger) RecordHaggle(won bool) {
	l.mu.Lock()
	var n int
	if won {
		l.state.HaggleWins++
		n = l.state.HaggleWins
	} else {
		l.state.HaggleLosses++
		n = l.state.HaggleLosses
	}
	l.mu.Unlock()

	l.bus.Emit(events.TypeHaggleRecorded, events.HaggleRecorded{Won: won, Count: n})
}

// Reset replaces the whole state with a fresh default.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.state = newPlayerState(l.bal)
	l.mu.Unlock()

	l.bus.Emit(events.TypeGameReset, nil)
}

// Restore atomically replaces the live state with a loaded one. The
// incoming state is normalized first so invariants hold afterwards.
func (l *Ledger) Restore(s PlayerState) {
	s = normalizeState(s, l.bal)

	l.mu.Lock()
	l.state = cloneState(s)
	l.mu.Unlock()
}
