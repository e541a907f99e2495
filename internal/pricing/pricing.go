package pricing

import (
	"math"

	"gobbomarket/internal/catalog"
	"gobbomarket/internal/config"
	"gobbomarket/internal/ledger"
)

// UpgradeView is the read-only slice of the ledger pricing needs. The
// engine never mutates state through it.
type UpgradeView interface {
	UpgradeRank(id string) int
}

// Shopper is the customer-side pricing input.
type Shopper struct {
	DesiredCategory  catalog.Category
	BudgetMultiplier float64
}

// SellQuote is a sell price with every contributing factor, for display.
type SellQuote struct {
	Base           int     `json:"base"`
	QualityFactor  float64 `json:"quality_factor"`
	EnchantFactor  float64 `json:"enchant_factor"`
	CategoryFactor float64 `json:"category_factor"`
	BudgetFactor   float64 `json:"budget_factor"`
	HaggleFactor   float64 `json:"haggle_factor"`
	CraftFactor    float64 `json:"craft_factor"`
	GlobalFactor   float64 `json:"global_factor"`
	Price          int     `json:"price"`
}

// CalculateSellPrice computes the price a customer pays for an item.
// The catalog base price is used when the goods id resolves; otherwise
// the item's snapshotted base price stands in. Pure.
func CalculateSellPrice(cat *catalog.Catalog, bal config.Balance, owned UpgradeView, item ledger.InventoryItem, shopper Shopper, haggleMultiplier float64) SellQuote {
	goods, hasGoods := cat.GoodsByID(item.GoodsID)

	base := item.BasePrice
	if hasGoods {
		base = goods.BasePrice
	}

	q := SellQuote{
		Base:           base,
		QualityFactor:  bal.QualityMultiplier(item.Quality),
		EnchantFactor:  1.0,
		CategoryFactor: 1.0,
		BudgetFactor:   shopper.BudgetMultiplier,
		HaggleFactor:   haggleMultiplier,
		CraftFactor:    1.0,
		GlobalFactor:   1.0,
	}
	if q.BudgetFactor <= 0 {
		q.BudgetFactor = 1.0
	}
	if q.HaggleFactor <= 0 {
		q.HaggleFactor = 1.0
	}
	if item.Enchanted && item.EnchantMultiplier >= 1 {
		q.EnchantFactor = item.EnchantMultiplier
	}
	if hasGoods && shopper.DesiredCategory != "" && goods.Category == shopper.DesiredCategory {
		q.CategoryFactor = bal.CategoryMatchBonus
	}
	if hasGoods && goods.Craftable {
		q.CraftFactor = effectFactor(cat, owned, catalog.EffectCraftSellBonus)
	}
	q.GlobalFactor = effectFactor(cat, owned, catalog.EffectGlobalSellBonus)

	price := float64(base) * q.QualityFactor * q.EnchantFactor * q.CategoryFactor *
		q.BudgetFactor * q.HaggleFactor * q.CraftFactor * q.GlobalFactor
	q.Price = int(math.Round(price))
	if q.Price < 1 {
		q.Price = 1
	}
	return q
}

// CalculateBuyPrice computes the restock cost for a goods id at the
// given tier. Unknown goods price at 0.
func CalculateBuyPrice(cat *catalog.Catalog, bal config.Balance, owned UpgradeView, goodsID string, tier int) int {
	goods, ok := cat.GoodsByID(goodsID)
	if !ok {
		return 0
	}

	discount := 1.0 - float64(tier)*bal.TierBuyDiscount
	if discount < 0 {
		discount = 0
	}
	guild := effectFactor(cat, owned, catalog.EffectGuildDiscount)

	price := int(math.Round(float64(goods.MaterialCost) * discount * guild))
	if price < 1 {
		price = 1
	}
	return price
}

// EstimateValue is a customer-independent display estimate.
func EstimateValue(cat *catalog.Catalog, bal config.Balance, item ledger.InventoryItem) int {
	base := item.BasePrice
	if goods, ok := cat.GoodsByID(item.GoodsID); ok {
		base = goods.BasePrice
	}

	enchant := 1.0
	if item.Enchanted && item.EnchantMultiplier >= 1 {
		enchant = item.EnchantMultiplier
	}
	return int(math.Round(float64(base) * bal.QualityMultiplier(item.Quality) * enchant))
}

// effectFactor multiplies the factors of every owned upgrade carrying
// the effect; 1.0 when none are owned.
func effectFactor(cat *catalog.Catalog, owned UpgradeView, effect string) float64 {
	factor := 1.0
	for _, u := range cat.UpgradesByEffect(effect) {
		if owned.UpgradeRank(u.ID) >= 1 && u.Factor > 0 {
			factor *= u.Factor
		}
	}
	return factor
}
