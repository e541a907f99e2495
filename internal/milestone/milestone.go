package milestone

import "gobbomarket/internal/ledger"

// Definition pairs a milestone id with the predicate that satisfies it.
// Predicates read a state snapshot and must be side-effect free.
type Definition struct {
	ID    string
	Name  string
	Check func(s ledger.PlayerState) bool
}

// Defaults returns the built-in milestone list.
func Defaults() []Definition {
	return []Definition{
		{ID: "first_sale", Name: "First Sale", Check: func(s ledger.PlayerState) bool {
			return s.ItemsSold >= 1
		}},
		{ID: "first_craft", Name: "Apprentice Crafter", Check: func(s ledger.PlayerState) bool {
			return s.ItemsCrafted >= 1
		}},
		{ID: "ten_crafts", Name: "Workshop Regular", Check: func(s ledger.PlayerState) bool {
			return s.ItemsCrafted >= 10
		}},
		{ID: "fifty_sales", Name: "Seasoned Seller", Check: func(s ledger.PlayerState) bool {
			return s.ItemsSold >= 50
		}},
		{ID: "hundred_sales", Name: "Pillar of the Market", Check: func(s ledger.PlayerState) bool {
			return s.ItemsSold >= 100
		}},
		{ID: "thousand_earned", Name: "Coin Counter", Check: func(s ledger.PlayerState) bool {
			return s.TotalEarned >= 1000
		}},
		{ID: "ten_thousand_earned", Name: "Gilded Goblin", Check: func(s ledger.PlayerState) bool {
			return s.TotalEarned >= 10000
		}},
		{ID: "haggle_ten_wins", Name: "Sharp Tongue", Check: func(s ledger.PlayerState) bool {
			return s.HaggleWins >= 10
		}},
		{ID: "full_stall", Name: "No Room to Spare", Check: func(s ledger.PlayerState) bool {
			return len(s.Inventory) >= s.StallSlots
		}},
		{ID: "shopfront_owner", Name: "Shopfront Owner", Check: func(s ledger.PlayerState) bool {
			return s.CurrentTier >= 2
		}},
		{ID: "grand_bazaar", Name: "Grand Bazaar Merchant", Check: func(s ledger.PlayerState) bool {
			return s.CurrentTier >= 3
		}},
		{ID: "five_recipes", Name: "Keeper of Secrets", Check: func(s ledger.PlayerState) bool {
			return len(s.UnlockedRecipes) >= 5
		}},
	}
}

// Checker evaluates milestone definitions against a ledger.
type Checker struct {
	ledger *ledger.Ledger
	defs   []Definition
}

func NewChecker(l *ledger.Ledger, defs []Definition) *Checker {
	return &Checker{ledger: l, defs: defs}
}

// Run scans all not-yet-achieved definitions against the current state,
// marks the newly satisfied ones, and returns exactly the new ids. A
// milestone is never re-reported; the ledger emits one event per new id.
func (c *Checker) Run() []string {
	snap := c.ledger.Snapshot()

	newly := []string{}
	for _, def := range c.defs {
		if snap.Milestones[def.ID] {
			continue
		}
		if !def.Check(snap) {
			continue
		}
		if c.ledger.AddMilestone(def.ID, def.Name) {
			newly = append(newly, def.ID)
		}
	}
	return newly
}
