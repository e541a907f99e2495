package ledger

import (
	"gobbomarket/internal/catalog"
	"gobbomarket/internal/config"
)

// InventoryItem is a single stocked item. The id is generated at creation
// and never reused. BasePrice snapshots the catalog price at creation so
// pricing still works if the catalog entry later disappears.
type InventoryItem struct {
	ID                string  `json:"id"`
	GoodsID           string  `json:"goods_id"`
	Quality           int     `json:"quality"`
	Enchanted         bool    `json:"enchanted"`
	EnchantMultiplier float64 `json:"enchant_multiplier,omitempty"`
	BasePrice         int     `json:"base_price"`
}

// PlayerState is the single persistent record of player progress. All
// mutation goes through Ledger methods.
type PlayerState struct {
	Coins           int              `json:"coins"`
	Reputation      int              `json:"reputation"`
	RaceReputation  map[string]int   `json:"race_reputation"`
	CurrentTier     int              `json:"current_tier"`
	Inventory       []InventoryItem  `json:"inventory"`
	StallSlots      int              `json:"stall_slots"`
	Upgrades        map[string]int   `json:"upgrades"`
	UnlockedRecipes map[string]bool  `json:"unlocked_recipes"`
	Milestones      map[string]bool  `json:"milestones"`
	TotalEarned     int              `json:"total_earned"`
	TotalSpent      int              `json:"total_spent"`
	ItemsCrafted    int              `json:"items_crafted"`
	ItemsSold       int              `json:"items_sold"`
	HaggleWins      int              `json:"haggle_wins"`
	HaggleLosses    int              `json:"haggle_losses"`
	Cooldowns       map[string]int64 `json:"cooldowns"` // goods id -> expiry epoch ms
}

func newPlayerState(bal config.Balance) PlayerState {
	s := PlayerState{
		Coins:           bal.StartingCoins,
		RaceReputation:  map[string]int{},
		Inventory:       []InventoryItem{},
		StallSlots:      bal.BaseStallSlots,
		Upgrades:        map[string]int{},
		UnlockedRecipes: map[string]bool{},
		Milestones:      map[string]bool{},
		Cooldowns:       map[string]int64{},
	}
	for _, id := range catalog.StarterRecipes() {
		s.UnlockedRecipes[id] = true
	}
	return s
}

// normalizeState fills nil containers and clamps out-of-range values so a
// merged legacy payload can never violate the container's invariants.
func normalizeState(s PlayerState, bal config.Balance) PlayerState {
	if s.RaceReputation == nil {
		s.RaceReputation = map[string]int{}
	}
	if s.Inventory == nil {
		s.Inventory = []InventoryItem{}
	}
	if s.Upgrades == nil {
		s.Upgrades = map[string]int{}
	}
	if s.UnlockedRecipes == nil {
		s.UnlockedRecipes = map[string]bool{}
	}
	if s.Milestones == nil {
		s.Milestones = map[string]bool{}
	}
	if s.Cooldowns == nil {
		s.Cooldowns = map[string]int64{}
	}

	if s.Coins < 0 {
		s.Coins = 0
	}
	if s.Coins > bal.MaxCoins {
		s.Coins = bal.MaxCoins
	}
	if s.Reputation < 0 {
		s.Reputation = 0
	}
	for race, v := range s.RaceReputation {
		if v < 0 {
			s.RaceReputation[race] = 0
		}
	}
	if s.CurrentTier < 0 {
		s.CurrentTier = 0
	}
	if s.StallSlots < bal.BaseStallSlots {
		s.StallSlots = bal.BaseStallSlots
	}
	if s.StallSlots > bal.MaxStallSlots {
		s.StallSlots = bal.MaxStallSlots
	}
	for id, rank := range s.Upgrades {
		if rank < 1 {
			s.Upgrades[id] = 1
		}
	}
	if s.TotalEarned < 0 {
		s.TotalEarned = 0
	}
	if s.TotalSpent < 0 {
		s.TotalSpent = 0
	}
	if s.ItemsCrafted < 0 {
		s.ItemsCrafted = 0
	}
	if s.ItemsSold < 0 {
		s.ItemsSold = 0
	}
	if s.HaggleWins < 0 {
		s.HaggleWins = 0
	}
	if s.HaggleLosses < 0 {
		s.HaggleLosses = 0
	}
	return s
}

func cloneState(s PlayerState) PlayerState {
	out := s
	out.RaceReputation = cloneMapInt(s.RaceReputation)
	out.Upgrades = cloneMapInt(s.Upgrades)
	out.UnlockedRecipes = cloneMapBool(s.UnlockedRecipes)
	out.Milestones = cloneMapBool(s.Milestones)
	out.Cooldowns = cloneMapInt64(s.Cooldowns)
	out.Inventory = make([]InventoryItem, len(s.Inventory))
	copy(out.Inventory, s.Inventory)
	return out
}

func cloneMapInt(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneMapBool(src map[string]bool) map[string]bool {
	out := make(map[string]bool, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneMapInt64(src map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
