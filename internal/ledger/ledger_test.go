package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobbomarket/internal/catalog"
	"gobbomarket/internal/clock"
	"gobbomarket/internal/config"
	"gobbomarket/internal/events"
)

func newLedgerForTest(bal config.Balance) (*Ledger, *events.Recorder, *clock.FakeClock) {
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	bus := events.NewBus(fake)
	rec := events.NewRecorder(bus)
	l := New(bus, fake, catalog.Default(), bal)
	return l, rec, fake
}

func TestFreshStateDefaults(t *testing.T) {
	l, _, _ := newLedgerForTest(config.Default())

	snap := l.Snapshot()
	assert.Equal(t, 50, snap.Coins)
	assert.Equal(t, 0, snap.CurrentTier)
	assert.Equal(t, 4, snap.StallSlots)
	assert.Empty(t, snap.Inventory)
	assert.True(t, snap.UnlockedRecipes["mushroom_skewer"])
	assert.True(t, snap.UnlockedRecipes["swamp_brew"])
}

func TestAddCoins_NonPositiveIsNoOp(t *testing.T) {
	l, rec, _ := newLedgerForTest(config.Default())

	l.AddCoins(0, "test")
	l.AddCoins(-10, "test")

	assert.Equal(t, 50, l.Coins())
	assert.Empty(t, rec.Events(events.TypeCoinEarned))
}

func TestAddCoins_EmitsEarnedAndChanged(t *testing.T) {
	l, rec, _ := newLedgerForTest(config.Default())

	l.AddCoins(100, "sale")

	assert.Equal(t, 150, l.Coins())
	assert.Equal(t, 100, l.Snapshot().TotalEarned)

	earned := rec.Events(events.TypeCoinEarned)
	require.Len(t, earned, 1)
	assert.Equal(t, events.CoinEarned{Amount: 100, Source: "sale"}, earned[0].Data)

	changed := rec.Events(events.TypeCoinChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, events.CoinChange{Delta: 100, Total: 150, Source: "sale"}, changed[0].Data)
}

func TestAddCoins_ClampsAtMax(t *testing.T) {
	bal := config.Default()
	bal.MaxCoins = 100
	l, rec, _ := newLedgerForTest(bal)

	l.AddCoins(1000, "jackpot")

	assert.Equal(t, 100, l.Coins())
	assert.Equal(t, 50, l.Snapshot().TotalEarned)

	earned := rec.Events(events.TypeCoinEarned)
	require.Len(t, earned, 1)
	assert.Equal(t, events.CoinEarned{Amount: 50, Source: "jackpot"}, earned[0].Data)

	// Already at max: a further credit is a no-op, no event.
	l.AddCoins(5, "more")
	assert.Equal(t, 100, l.Coins())
	assert.Len(t, rec.Events(events.TypeCoinEarned), 1)
}

func TestSpendCoins_FailsWithoutMutation(t *testing.T) {
	l, rec, _ := newLedgerForTest(config.Default())
	l.AddCoins(100, "sale")
	require.Equal(t, 150, l.Coins())

	assert.False(t, l.SpendCoins(200, "x"))
	assert.Equal(t, 150, l.Coins())
	assert.Equal(t, 0, l.Snapshot().TotalSpent)

	assert.False(t, l.SpendCoins(0, "x"))
	assert.False(t, l.SpendCoins(-5, "x"))
	assert.Empty(t, rec.Events(events.TypeCoinSpent))
}

func TestSpendCoins_Succeeds(t *testing.T) {
	l, rec, _ := newLedgerForTest(config.Default())

	assert.True(t, l.SpendCoins(30, "upgrade"))
	assert.Equal(t, 20, l.Coins())
	assert.Equal(t, 30, l.Snapshot().TotalSpent)

	changed := rec.Events(events.TypeCoinChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, events.CoinChange{Delta: -30, Total: 20, Source: "upgrade"}, changed[0].Data)
}

func TestReputation_NonPositiveIsNoOp(t *testing.T) {
	l, rec, _ := newLedgerForTest(config.Default())

	l.AddReputation(0)
	l.AddReputation(-3)
	l.AddRaceReputation("goblin", 0)
	l.AddRaceReputation("", 5)

	snap := l.Snapshot()
	assert.Equal(t, 0, snap.Reputation)
	assert.Empty(t, snap.RaceReputation)
	assert.Empty(t, rec.Events(events.TypeReputationChanged))
}

func TestAddRaceReputation_UpdatesBucketAndAggregate(t *testing.T) {
	l, rec, _ := newLedgerForTest(config.Default())

	l.AddRaceReputation("goblin", 7)
	l.AddRaceReputation("goblin", 3)
	l.AddRaceReputation("human", 5)

	snap := l.Snapshot()
	assert.Equal(t, 15, snap.Reputation)
	assert.Equal(t, 10, snap.RaceReputation["goblin"])
	assert.Equal(t, 5, snap.RaceReputation["human"])
	assert.Len(t, rec.Events(events.TypeReputationChanged), 3)
}

func TestInventory_CapacityAndRemoval(t *testing.T) {
	bal := config.Default()
	bal.BaseStallSlots = 2
	l, rec, _ := newLedgerForTest(bal)

	require.True(t, l.AddToInventory(InventoryItem{ID: "a", GoodsID: "rusty_dagger", Quality: 1, BasePrice: 15}))
	require.True(t, l.AddToInventory(InventoryItem{ID: "b", GoodsID: "bone_charm", Quality: 2, BasePrice: 18}))

	// Full stall rejects the third.
	assert.False(t, l.AddToInventory(InventoryItem{ID: "c", GoodsID: "swamp_brew"}))
	assert.Len(t, l.Snapshot().Inventory, 2)

	item, ok := l.RemoveFromInventory("a")
	require.True(t, ok)
	assert.Equal(t, "rusty_dagger", item.GoodsID)
	assert.Len(t, l.Snapshot().Inventory, 1)

	_, ok = l.RemoveFromInventory("nope")
	assert.False(t, ok)

	// Two successful adds, one successful removal.
	assert.Len(t, rec.Events(events.TypeInventoryChanged), 3)
}

func TestIdempotentAdders(t *testing.T) {
	l, rec, _ := newLedgerForTest(config.Default())

	assert.True(t, l.UnlockRecipe("bone_charm"))
	assert.False(t, l.UnlockRecipe("bone_charm"))
	assert.Len(t, rec.Events(events.TypeRecipeUnlocked), 1)

	assert.True(t, l.AddMilestone("first_sale", "First Sale"))
	assert.False(t, l.AddMilestone("first_sale", "First Sale"))
	assert.Len(t, rec.Events(events.TypeMilestoneReached), 1)

	// Upgrades increment up to the catalog max rank.
	assert.Equal(t, 1, l.AddUpgrade("quick_hands_1"))
	assert.Equal(t, 0, l.AddUpgrade("quick_hands_1"))
	assert.Equal(t, 1, l.UpgradeRank("quick_hands_1"))
	assert.Len(t, rec.Events(events.TypeUpgradePurchased), 1)

	assert.Equal(t, 1, l.AddUpgrade("stall_extension"))
	assert.Equal(t, 2, l.AddUpgrade("stall_extension"))
	assert.Equal(t, 2, l.UpgradeRank("stall_extension"))
}

func TestStallSlots_CapAtMax(t *testing.T) {
	bal := config.Default()
	bal.BaseStallSlots = 4
	bal.MaxStallSlots = 5
	l, rec, _ := newLedgerForTest(bal)

	assert.Equal(t, 5, l.IncrementStallSlots())
	assert.Equal(t, 0, l.IncrementStallSlots())
	assert.Equal(t, 5, l.Snapshot().StallSlots)
	assert.Len(t, rec.Events(events.TypeStallUpgraded), 1)
}

func TestCounters(t *testing.T) {
	l, _, _ := newLedgerForTest(config.Default())

	l.RecordCraft()
	l.RecordSale()
	l.RecordSale()
	l.RecordHaggle(true)
	l.RecordHaggle(false)
	l.RecordHaggle(true)

	snap := l.Snapshot()
	assert.Equal(t, 1, snap.ItemsCrafted)
	assert.Equal(t, 2, snap.ItemsSold)
	assert.Equal(t, 2, snap.HaggleWins)
	assert.Equal(t, 1, snap.HaggleLosses)
}

func TestReset_RestoresDefaults(t *testing.T) {
	l, rec, _ := newLedgerForTest(config.Default())

	l.AddCoins(500, "sale")
	l.AddRaceReputation("goblin", 30)
	require.True(t, l.AddToInventory(InventoryItem{ID: "a", GoodsID: "bone_charm"}))

	l.Reset()

	snap := l.Snapshot()
	assert.Equal(t, 50, snap.Coins)
	assert.Equal(t, 0, snap.Reputation)
	assert.Empty(t, snap.Inventory)
	assert.Equal(t, 0, snap.TotalEarned)
	assert.Len(t, rec.Events(events.TypeGameReset), 1)
}

func TestListenerReentrancy(t *testing.T) {
	l, _, _ := newLedgerForTest(config.Default())
	bus := l.bus

	// A listener that spends on every earn must not deadlock, and both
	// mutations must land.
	bus.Subscribe(events.TypeCoinEarned, func(ev events.Event) {
		earned := ev.Data.(events.CoinEarned)
		if earned.Source == "sale" {
			l.SpendCoins(10, "tithe")
		}
	})

	l.AddCoins(100, "sale")
	assert.Equal(t, 140, l.Coins())
	assert.Equal(t, 10, l.Snapshot().TotalSpent)
}
