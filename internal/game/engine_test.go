package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobbomarket/internal/catalog"
	"gobbomarket/internal/clock"
	"gobbomarket/internal/config"
	"gobbomarket/internal/customer"
	"gobbomarket/internal/events"
	"gobbomarket/internal/ledger"
	"gobbomarket/internal/milestone"
	"gobbomarket/internal/reputation"
	"gobbomarket/internal/save"
)

type engineFixture struct {
	engine Engine
	ledger *ledger.Ledger
	queue  *customer.Queue
	clock  *clock.FakeClock
	sched  *clock.FakeScheduler
	rec    *events.Recorder
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	sched := clock.NewFakeScheduler(fake)
	bus := events.NewBus(fake)
	rec := events.NewRecorder(bus)
	cat := catalog.Default()
	bal := config.Default()
	l := ledger.New(bus, fake, cat, bal)
	q := customer.NewQueue(bus, fake, sched, cat, bal, l, rand.New(rand.NewSource(7)))
	mgr := save.NewManager(save.NewMemoryStore(), l, bus, fake, sched, nil)

	f := &engineFixture{
		engine: Engine{
			Ledger:     l,
			Bus:        bus,
			Clock:      fake,
			Catalog:    cat,
			Balance:    bal,
			Customers:  q,
			Saves:      mgr,
			Milestones: milestone.NewChecker(l, milestone.Defaults()),
		},
		ledger: l,
		queue:  q,
		clock:  fake,
		sched:  sched,
		rec:    rec,
	}
	t.Cleanup(q.Stop)
	return f
}

// spawnCustomer runs the queue until one customer is at the stall.
func (f *engineFixture) spawnCustomer(t *testing.T) customer.Customer {
	t.Helper()
	f.queue.Start()
	f.sched.Advance(20 * time.Second)
	custs := f.queue.Customers()
	require.NotEmpty(t, custs)
	return custs[0]
}

func TestBuyGoods(t *testing.T) {
	f := newEngineFixture(t)

	res, err := f.engine.BuyGoods("rusty_dagger")
	require.NoError(t, err)

	assert.Equal(t, 7, res.PricePaid) // material cost, no discounts
	assert.Equal(t, 36, res.CooldownSec)
	assert.Equal(t, "rusty_dagger", res.Item.GoodsID)
	assert.Equal(t, 1, res.Item.Quality)
	assert.Equal(t, 15, res.Item.BasePrice)

	assert.Equal(t, 43, f.ledger.Coins())
	assert.Len(t, f.ledger.Snapshot().Inventory, 1)
	assert.True(t, f.ledger.IsOnCooldown("rusty_dagger"))
}

func TestBuyGoods_Cooldown(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.BuyGoods("rusty_dagger")
	require.NoError(t, err)

	_, err = f.engine.BuyGoods("rusty_dagger")
	assert.ErrorIs(t, err, ErrOnCooldown)

	f.clock.Advance(36 * time.Second)
	_, err = f.engine.BuyGoods("rusty_dagger")
	assert.NoError(t, err)
}

func TestBuyGoods_UnknownGoods(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.BuyGoods("philosophers_stone")
	assert.Error(t, err)
	assert.Equal(t, 50, f.ledger.Coins())
}

func TestBuyGoods_StallFull(t *testing.T) {
	f := newEngineFixture(t)

	slots := f.ledger.Snapshot().StallSlots
	for i := 0; i < slots; i++ {
		require.True(t, f.ledger.AddToInventory(ledger.InventoryItem{ID: string(rune('a' + i)), GoodsID: "bone_charm"}))
	}

	_, err := f.engine.BuyGoods("rusty_dagger")
	assert.ErrorIs(t, err, ErrStallFull)
	assert.Equal(t, 50, f.ledger.Coins())
}

func TestBuyGoods_InsufficientCoins(t *testing.T) {
	f := newEngineFixture(t)
	require.True(t, f.ledger.SpendCoins(50, "test"))

	_, err := f.engine.BuyGoods("rusty_dagger")
	assert.ErrorIs(t, err, ErrInsufficientCoins)
	assert.Empty(t, f.ledger.Snapshot().Inventory)
	assert.False(t, f.ledger.IsOnCooldown("rusty_dagger"))
}

func TestBuyGoods_GuildDiscount(t *testing.T) {
	f := newEngineFixture(t)
	f.ledger.AddCoins(500, "test")
	_, err := f.engine.PurchaseUpgrade("guild_membership")
	require.NoError(t, err)

	res, err := f.engine.BuyGoods("rusty_dagger")
	require.NoError(t, err)
	assert.Equal(t, 6, res.PricePaid) // round(7 * 0.9)
}

func TestCraftItem(t *testing.T) {
	f := newEngineFixture(t)

	res, err := f.engine.CraftItem("rcp_mushroom_skewer", MinigameResult{Quality: 2, Completed: true})
	require.NoError(t, err)

	assert.Equal(t, 3, res.MaterialCost)
	assert.Equal(t, 20, res.CooldownSec)
	assert.Equal(t, 2, res.Item.Quality)
	assert.False(t, res.Item.Enchanted)
	assert.Contains(t, res.Milestones, "first_craft")

	snap := f.ledger.Snapshot()
	assert.Equal(t, 47, snap.Coins)
	assert.Equal(t, 1, snap.ItemsCrafted)
	assert.True(t, f.ledger.IsOnCooldown("mushroom_skewer"))
}

func TestCraftItem_QualityClampAndEnchant(t *testing.T) {
	f := newEngineFixture(t)

	res, err := f.engine.CraftItem("rcp_mushroom_skewer", MinigameResult{Quality: 9, Multiplier: 1.5, Completed: true})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Item.Quality)
	assert.True(t, res.Item.Enchanted)
	assert.Equal(t, 1.5, res.Item.EnchantMultiplier)
}

func TestCraftItem_Abandoned(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.CraftItem("rcp_mushroom_skewer", MinigameResult{Quality: 3})
	assert.ErrorIs(t, err, ErrMinigameAbandoned)
	assert.Equal(t, 50, f.ledger.Coins())
	assert.Equal(t, 0, f.ledger.Snapshot().ItemsCrafted)
}

func TestCraftItem_LockedRecipe(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.CraftItem("rcp_bone_charm", MinigameResult{Quality: 1, Completed: true})
	assert.ErrorIs(t, err, ErrRecipeLocked)
}

func TestCraftItem_TierTooLow(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.CraftItem("rcp_glow_moss_tea", MinigameResult{Quality: 1, Completed: true})
	assert.ErrorIs(t, err, ErrTierTooLow)
}

func TestCraftItem_Cooldown(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.CraftItem("rcp_mushroom_skewer", MinigameResult{Quality: 1, Completed: true})
	require.NoError(t, err)

	_, err = f.engine.CraftItem("rcp_mushroom_skewer", MinigameResult{Quality: 1, Completed: true})
	assert.ErrorIs(t, err, ErrOnCooldown)
}

func TestSellToCustomer(t *testing.T) {
	f := newEngineFixture(t)
	cust := f.spawnCustomer(t)

	buy, err := f.engine.BuyGoods("rusty_dagger")
	require.NoError(t, err)
	before := f.ledger.Coins()

	res, err := f.engine.SellToCustomer(buy.Item.ID, cust.ID, 1.1, reputation.OutcomeWin)
	require.NoError(t, err)

	assert.Equal(t, 15, res.Quote.Base)
	assert.Equal(t, 1.1, res.Quote.HaggleFactor)
	assert.GreaterOrEqual(t, res.Quote.Price, 1)
	assert.Equal(t, before+res.Quote.Price, f.ledger.Coins())

	// Quality-1 dagger on a clean win: base 2 + quality 0 + win 3.
	assert.Equal(t, 5, res.ReputationGain)
	assert.Contains(t, res.Milestones, "first_sale")

	snap := f.ledger.Snapshot()
	assert.Equal(t, 1, snap.ItemsSold)
	assert.Equal(t, 1, snap.HaggleWins)
	assert.Equal(t, 5, snap.RaceReputation[cust.Race])
	assert.Empty(t, snap.Inventory)

	_, ok := f.queue.Get(cust.ID)
	assert.False(t, ok)
	left := f.rec.Events(events.TypeCustomerLeft)
	require.NotEmpty(t, left)
	assert.Equal(t, customer.ReasonServed, left[len(left)-1].Data.(events.CustomerLeft).Reason)
}

func TestSellToCustomer_BustAwardsNothing(t *testing.T) {
	f := newEngineFixture(t)
	cust := f.spawnCustomer(t)

	buy, err := f.engine.BuyGoods("rusty_dagger")
	require.NoError(t, err)

	res, err := f.engine.SellToCustomer(buy.Item.ID, cust.ID, 0.8, reputation.OutcomeBust)
	require.NoError(t, err)

	// base 2 + quality 0 - bust 2 = 0: nothing applied.
	assert.Equal(t, 0, res.ReputationGain)

	snap := f.ledger.Snapshot()
	assert.Equal(t, 0, snap.Reputation)
	assert.Equal(t, 1, snap.ItemsSold)
	assert.Equal(t, 1, snap.HaggleLosses)
}

func TestSellToCustomer_UnknownItemOrCustomer(t *testing.T) {
	f := newEngineFixture(t)
	cust := f.spawnCustomer(t)

	_, err := f.engine.SellToCustomer("nope", cust.ID, 1.0, reputation.OutcomeSettle)
	assert.Error(t, err)

	buy, err := f.engine.BuyGoods("rusty_dagger")
	require.NoError(t, err)
	_, err = f.engine.SellToCustomer(buy.Item.ID, "nope", 1.0, reputation.OutcomeSettle)
	assert.Error(t, err)

	// The item stays on the stall when the sale never happens.
	assert.Len(t, f.ledger.Snapshot().Inventory, 1)
}

func TestFailHaggle(t *testing.T) {
	f := newEngineFixture(t)
	cust := f.spawnCustomer(t)

	f.engine.FailHaggle(cust.ID)

	assert.Equal(t, 1, f.ledger.Snapshot().HaggleLosses)
	_, ok := f.queue.Get(cust.ID)
	assert.False(t, ok)
}

func TestPurchaseUpgrade(t *testing.T) {
	f := newEngineFixture(t)
	f.ledger.AddCoins(200, "test")

	res, err := f.engine.PurchaseUpgrade("quick_hands_1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rank)
	assert.Equal(t, 80, res.PricePaid)
	assert.Equal(t, 1, f.ledger.UpgradeRank("quick_hands_1"))

	_, err = f.engine.PurchaseUpgrade("quick_hands_1")
	assert.Error(t, err)
}

func TestPurchaseUpgrade_ExtraStallSlot(t *testing.T) {
	f := newEngineFixture(t)
	f.ledger.AddCoins(300, "test")

	before := f.ledger.Snapshot().StallSlots
	res, err := f.engine.PurchaseUpgrade("stall_extension")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rank)
	assert.Equal(t, before+1, f.ledger.Snapshot().StallSlots)

	// Ranks stack up to the catalog cap.
	res, err = f.engine.PurchaseUpgrade("stall_extension")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rank)
}

func TestPurchaseUpgrade_InsufficientCoins(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.engine.PurchaseUpgrade("silver_tongue")
	assert.ErrorIs(t, err, ErrInsufficientCoins)
	assert.Equal(t, 0, f.ledger.UpgradeRank("silver_tongue"))
}

func TestUnlockRecipe(t *testing.T) {
	f := newEngineFixture(t)

	require.NoError(t, f.engine.UnlockRecipe("rcp_bone_charm"))
	snap := f.ledger.Snapshot()
	assert.Equal(t, 20, snap.Coins)
	assert.True(t, snap.UnlockedRecipes["bone_charm"])

	// Already unlocked: free no-op.
	require.NoError(t, f.engine.UnlockRecipe("rcp_bone_charm"))
	assert.Equal(t, 20, f.ledger.Coins())
}

func TestUnlockRecipe_Gates(t *testing.T) {
	f := newEngineFixture(t)

	assert.ErrorIs(t, f.engine.UnlockRecipe("rcp_glow_moss_tea"), ErrTierTooLow)

	require.True(t, f.ledger.SpendCoins(30, "test"))
	assert.ErrorIs(t, f.engine.UnlockRecipe("rcp_bone_charm"), ErrInsufficientCoins)
}

func TestEstimateItem(t *testing.T) {
	f := newEngineFixture(t)

	buy, err := f.engine.BuyGoods("rusty_dagger")
	require.NoError(t, err)

	val, ok := f.engine.EstimateItem(buy.Item.ID)
	require.True(t, ok)
	assert.Equal(t, 15, val) // base 15 at quality 1

	_, ok = f.engine.EstimateItem("nope")
	assert.False(t, ok)
}

func TestReputationLevel(t *testing.T) {
	f := newEngineFixture(t)

	assert.Equal(t, "Nobody", f.engine.ReputationLevel())
	f.ledger.AddRaceReputation("goblin", 60)
	assert.Equal(t, "Known", f.engine.ReputationLevel())
}
