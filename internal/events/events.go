package events

import "time"

type Type string

const (
	TypeCoinChanged       Type = "coin_changed"
	TypeCoinEarned        Type = "coin_earned"
	TypeCoinSpent         Type = "coin_spent"
	TypeReputationChanged Type = "reputation_changed"
	TypeTierUnlocked      Type = "tier_unlocked"
	TypeInventoryChanged  Type = "inventory_changed"
	TypeStallUpgraded     Type = "stall_upgraded"
	TypeUpgradePurchased  Type = "upgrade_purchased"
	TypeRecipeUnlocked    Type = "recipe_unlocked"
	TypeMilestoneReached  Type = "milestone_reached"
	TypeCooldownStarted   Type = "cooldown_started"
	TypeCooldownReady     Type = "cooldown_ready"
	TypeCustomerArrived   Type = "customer_arrived"
	TypeCustomerLeft      Type = "customer_left"
	TypeCraftRecorded     Type = "craft_recorded"
	TypeSaleRecorded      Type = "sale_recorded"
	TypeHaggleRecorded    Type = "haggle_recorded"
	TypeGameSaved         Type = "game_saved"
	TypeGameLoaded        Type = "game_loaded"
	TypeGameReset         Type = "game_reset"
)

// Event is a single notification produced by the core.
type Event struct {
	Type Type      `json:"type"`
	At   time.Time `json:"at"`
	Data any       `json:"data,omitempty"`
}

// Payloads carried in Event.Data, one struct per event family.

type CoinChange struct {
	Delta  int    `json:"delta"`
	Total  int    `json:"total"`
	Source string `json:"source,omitempty"`
}

type CoinEarned struct {
	Amount int    `json:"amount"`
	Source string `json:"source"`
}

type CoinSpent struct {
	Amount int    `json:"amount"`
	Label  string `json:"label"`
}

type ReputationChange struct {
	Race  string `json:"race,omitempty"`
	Delta int    `json:"delta"`
	Total int    `json:"total"`
}

type TierUnlocked struct {
	Tier int    `json:"tier"`
	Name string `json:"name"`
}

type InventoryChange struct {
	ItemID  string `json:"item_id"`
	GoodsID string `json:"goods_id"`
	Added   bool   `json:"added"`
	Count   int    `json:"count"`
}

type StallUpgraded struct {
	Slots int `json:"slots"`
}

type UpgradePurchased struct {
	UpgradeID string `json:"upgrade_id"`
	Rank      int    `json:"rank"`
}

type RecipeUnlocked struct {
	GoodsID string `json:"goods_id"`
}

type MilestoneReached struct {
	MilestoneID string `json:"milestone_id"`
	Name        string `json:"name"`
}

type Cooldown struct {
	GoodsID string `json:"goods_id"`
	Seconds int    `json:"seconds,omitempty"`
}

type CustomerArrived struct {
	CustomerID string `json:"customer_id"`
	Race       string `json:"race"`
	Category   string `json:"category"`
}

type CustomerLeft struct {
	CustomerID string `json:"customer_id"`
	Race       string `json:"race"`
	Reason     string `json:"reason"`
}

type CounterBump struct {
	Count int `json:"count"`
}

type HaggleRecorded struct {
	Won   bool `json:"won"`
	Count int  `json:"count"`
}

type SaveInfo struct {
	Version   int   `json:"version"`
	Timestamp int64 `json:"timestamp"`
}
