package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gobbomarket/internal/catalog"
	"gobbomarket/internal/clock"
	"gobbomarket/internal/config"
	"gobbomarket/internal/customer"
	"gobbomarket/internal/events"
	"gobbomarket/internal/ledger"
	"gobbomarket/internal/milestone"
	"gobbomarket/internal/pricing"
	"gobbomarket/internal/reputation"
	"gobbomarket/internal/save"
)

// MinigameResult is the contract minigame modules report back with. The
// core never inspects how it was produced.
type MinigameResult struct {
	Score      float64 `json:"score"`
	Quality    int     `json:"quality"` // 0-4
	Multiplier float64 `json:"multiplier"`
	Completed  bool    `json:"completed"`
}

// Engine orchestrates the merchant flows the UI calls. Pricing and
// reputation are computed before the ledger mutators run; their outputs
// feed the mutators.
type Engine struct {
	Ledger     *ledger.Ledger
	Bus        *events.Bus
	Clock      clock.Clock
	Catalog    *catalog.Catalog
	Balance    config.Balance
	Customers  *customer.Queue
	Saves      *save.Manager
	Milestones *milestone.Checker
}

var (
	ErrOnCooldown        = errors.New("goods on cooldown")
	ErrStallFull         = errors.New("stall is full")
	ErrInsufficientCoins = errors.New("insufficient coins")
	ErrRecipeLocked      = errors.New("recipe is locked")
	ErrTierTooLow        = errors.New("tier too low")
	ErrMinigameAbandoned = errors.New("minigame not completed")
)

type BuyResult struct {
	Item        ledger.InventoryItem `json:"item"`
	PricePaid   int                  `json:"price_paid"`
	CooldownSec int                  `json:"cooldown_sec"`
}

// BuyGoods purchases one unit of a buyable goods id into the stall.
func (e Engine) BuyGoods(goodsID string) (BuyResult, error) {
	goods, ok := e.Catalog.GoodsByID(goodsID)
	if !ok {
		return BuyResult{}, fmt.Errorf("goods not found: %s", goodsID)
	}
	if e.Ledger.IsOnCooldown(goodsID) {
		return BuyResult{}, ErrOnCooldown
	}

	snap := e.Ledger.Snapshot()
	if len(snap.Inventory) >= snap.StallSlots {
		return BuyResult{}, ErrStallFull
	}

	price := pricing.CalculateBuyPrice(e.Catalog, e.Balance, e.Ledger, goodsID, snap.CurrentTier)
	if !e.Ledger.SpendCoins(price, "buy:"+goodsID) {
		return BuyResult{}, ErrInsufficientCoins
	}

	item := ledger.InventoryItem{
		ID:        uuid.NewString(),
		GoodsID:   goodsID,
		Quality:   1,
		BasePrice: goods.BasePrice,
	}
	if !e.Ledger.AddToInventory(item) {
		// Capacity was checked above; a listener shrank the stall
		// between the check and the add. Refund and report.
		e.Ledger.AddCoins(price, "refund:"+goodsID)
		return BuyResult{}, ErrStallFull
	}

	cooldown := e.Ledger.StartCooldown(goodsID, goods.CooldownSec)
	e.Milestones.Run()

	return BuyResult{Item: item, PricePaid: price, CooldownSec: cooldown}, nil
}

type CraftResult struct {
	Item         ledger.InventoryItem `json:"item"`
	MaterialCost int                  `json:"material_cost"`
	CooldownSec  int                  `json:"cooldown_sec"`
	Milestones   []string             `json:"milestones,omitempty"`
}

// CraftItem crafts a recipe's goods. The minigame result decides the
// item's quality; an enchant-grade multiplier marks the item enchanted.
func (e Engine) CraftItem(recipeID string, mg MinigameResult) (CraftResult, error) {
	rec, ok := e.Catalog.RecipeByID(recipeID)
	if !ok {
		return CraftResult{}, fmt.Errorf("recipe not found: %s", recipeID)
	}
	goods, ok := e.Catalog.GoodsByID(rec.GoodsID)
	if !ok {
		return CraftResult{}, fmt.Errorf("recipe %s references unknown goods %s", recipeID, rec.GoodsID)
	}
	if !mg.Completed {
		return CraftResult{}, ErrMinigameAbandoned
	}

	snap := e.Ledger.Snapshot()
	if snap.CurrentTier < rec.RequiredTier {
		return CraftResult{}, ErrTierTooLow
	}
	if !snap.UnlockedRecipes[rec.GoodsID] {
		return CraftResult{}, ErrRecipeLocked
	}
	if e.Ledger.IsOnCooldown(rec.GoodsID) {
		return CraftResult{}, ErrOnCooldown
	}
	if len(snap.Inventory) >= snap.StallSlots {
		return CraftResult{}, ErrStallFull
	}

	materials := pricing.CalculateBuyPrice(e.Catalog, e.Balance, e.Ledger, rec.GoodsID, snap.CurrentTier)
	if !e.Ledger.SpendCoins(materials, "craft:"+rec.GoodsID) {
		return CraftResult{}, ErrInsufficientCoins
	}

	quality := mg.Quality
	if quality < 0 {
		quality = 0
	}
	if quality > 4 {
		quality = 4
	}

	item := ledger.InventoryItem{
		ID:        uuid.NewString(),
		GoodsID:   rec.GoodsID,
		Quality:   quality,
		BasePrice: goods.BasePrice,
	}
	if mg.Multiplier > 1 {
		item.Enchanted = true
		item.EnchantMultiplier = mg.Multiplier
	}

	if !e.Ledger.AddToInventory(item) {
		e.Ledger.AddCoins(materials, "refund:"+rec.GoodsID)
		return CraftResult{}, ErrStallFull
	}

	e.Ledger.RecordCraft()
	cooldown := e.Ledger.StartCooldown(rec.GoodsID, goods.CooldownSec)
	newly := e.Milestones.Run()

	return CraftResult{
		Item:         item,
		MaterialCost: materials,
		CooldownSec:  cooldown,
		Milestones:   newly,
	}, nil
}

type SellResult struct {
	Quote          pricing.SellQuote `json:"quote"`
	ReputationGain int               `json:"reputation_gain"`
	Milestones     []string          `json:"milestones,omitempty"`
}

// SellToCustomer completes a sale: the quote is computed first, then the
// item leaves the stall, coins and counters land, reputation is awarded
// to the customer's race, and the customer departs satisfied.
func (e Engine) SellToCustomer(itemID, customerID string, haggleMultiplier float64, outcome reputation.Outcome) (SellResult, error) {
	item, ok := e.Ledger.Item(itemID)
	if !ok {
		return SellResult{}, fmt.Errorf("item not found: %s", itemID)
	}
	cust, ok := e.Customers.Get(customerID)
	if !ok {
		return SellResult{}, fmt.Errorf("customer not found: %s", customerID)
	}

	quote := pricing.CalculateSellPrice(e.Catalog, e.Balance, e.Ledger, item, pricing.Shopper{
		DesiredCategory:  cust.DesiredCategory,
		BudgetMultiplier: cust.BudgetMultiplier,
	}, haggleMultiplier)

	if _, ok := e.Ledger.RemoveFromInventory(itemID); !ok {
		return SellResult{}, fmt.Errorf("item not found: %s", itemID)
	}

	e.Ledger.AddCoins(quote.Price, "sale:"+item.GoodsID)
	e.Ledger.RecordSale()
	switch outcome {
	case reputation.OutcomeWin:
		e.Ledger.RecordHaggle(true)
	case reputation.OutcomeBust:
		e.Ledger.RecordHaggle(false)
	}

	gain := reputation.Award(e.Ledger, e.Balance, item.Quality, outcome, cust.Race)
	e.Customers.Complete(customerID)
	newly := e.Milestones.Run()

	return SellResult{Quote: quote, ReputationGain: gain, Milestones: newly}, nil
}

// FailHaggle records a haggle that collapsed without a sale; the
// customer storms off.
func (e Engine) FailHaggle(customerID string) {
	e.Ledger.RecordHaggle(false)
	e.Customers.Leave(customerID, customer.ReasonImpatient)
}

type UpgradeResult struct {
	UpgradeID string `json:"upgrade_id"`
	Rank      int    `json:"rank"`
	PricePaid int    `json:"price_paid"`
}

// PurchaseUpgrade buys an upgrade rank and applies its effect.
func (e Engine) PurchaseUpgrade(upgradeID string) (UpgradeResult, error) {
	u, ok := e.Catalog.UpgradeByID(upgradeID)
	if !ok {
		return UpgradeResult{}, fmt.Errorf("upgrade not found: %s", upgradeID)
	}
	if u.MaxRank > 0 && e.Ledger.UpgradeRank(upgradeID) >= u.MaxRank {
		return UpgradeResult{}, fmt.Errorf("upgrade at max rank: %s", upgradeID)
	}

	if !e.Ledger.SpendCoins(u.Cost, "upgrade:"+upgradeID) {
		return UpgradeResult{}, ErrInsufficientCoins
	}

	rank := e.Ledger.AddUpgrade(upgradeID)
	if rank == 0 {
		// Lost the race against a listener purchase. Refund.
		e.Ledger.AddCoins(u.Cost, "refund:"+upgradeID)
		return UpgradeResult{}, fmt.Errorf("upgrade at max rank: %s", upgradeID)
	}
	if u.Effect == catalog.EffectExtraStallSlot {
		e.Ledger.IncrementStallSlots()
	}
	e.Milestones.Run()

	return UpgradeResult{UpgradeID: upgradeID, Rank: rank, PricePaid: u.Cost}, nil
}

// UnlockRecipe pays a recipe's unlock cost and adds it to the book.
func (e Engine) UnlockRecipe(recipeID string) error {
	rec, ok := e.Catalog.RecipeByID(recipeID)
	if !ok {
		return fmt.Errorf("recipe not found: %s", recipeID)
	}
	if e.Ledger.CurrentTier() < rec.RequiredTier {
		return ErrTierTooLow
	}

	snap := e.Ledger.Snapshot()
	if snap.UnlockedRecipes[rec.GoodsID] {
		return nil
	}
	if rec.UnlockCost > 0 && !e.Ledger.SpendCoins(rec.UnlockCost, "recipe:"+rec.GoodsID) {
		return ErrInsufficientCoins
	}

	e.Ledger.UnlockRecipe(rec.GoodsID)
	e.Milestones.Run()
	return nil
}

// EstimateItem is the customer-independent display value of an item.
func (e Engine) EstimateItem(itemID string) (int, bool) {
	item, ok := e.Ledger.Item(itemID)
	if !ok {
		return 0, false
	}
	return pricing.EstimateValue(e.Catalog, e.Balance, item), true
}

// ReputationLevel is the display name for the current aggregate
// reputation.
func (e Engine) ReputationLevel() string {
	return reputation.Level(e.Balance, e.Ledger.Snapshot().Reputation)
}
