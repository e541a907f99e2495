package catalog

// Category groups goods for customer preferences and pricing bonuses.
type Category string

const (
	CategoryPotion  Category = "potion"
	CategoryTrinket Category = "trinket"
	CategoryWeapon  Category = "weapon"
	CategoryFood    Category = "food"
	CategoryRelic   Category = "relic"
)

// Upgrade effect ids.
const (
	EffectQuickHands        = "quick_hands"         // cooldown discount, tier 0-1 goods
	EffectWorkshopEff       = "workshop_efficiency" // cooldown discount, craftables
	EffectSupplyChain       = "supply_chain"        // cooldown discount, buyables
	EffectUniversalSupplier = "universal_supplier"  // cooldown discount, everything
	EffectCraftSellBonus    = "craft_sell_bonus"    // sell price bonus on craftables
	EffectGlobalSellBonus   = "global_sell_bonus"   // sell price bonus on everything
	EffectGuildDiscount     = "guild_discount"      // buy price discount
	EffectExtraStallSlot    = "extra_stall_slot"    // +1 stall slot per rank
)

type Goods struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	BasePrice    int      `yaml:"base_price" json:"base_price"`
	MaterialCost int      `yaml:"material_cost" json:"material_cost"`
	Category     Category `yaml:"category" json:"category"`
	Tier         int      `yaml:"tier" json:"tier"`
	Craftable    bool     `yaml:"craftable" json:"craftable"`
	CooldownSec  int      `yaml:"cooldown_sec" json:"cooldown_sec"`
}

type Upgrade struct {
	ID      string  `yaml:"id" json:"id"`
	Name    string  `yaml:"name" json:"name"`
	Cost    int     `yaml:"cost" json:"cost"`
	MaxRank int     `yaml:"max_rank" json:"max_rank"`
	Effect  string  `yaml:"effect" json:"effect"`
	Factor  float64 `yaml:"factor" json:"factor"`
}

type Recipe struct {
	ID           string `yaml:"id" json:"id"`
	GoodsID      string `yaml:"goods_id" json:"goods_id"`
	UnlockCost   int    `yaml:"unlock_cost" json:"unlock_cost"`
	RequiredTier int    `yaml:"required_tier" json:"required_tier"`
}

// Archetype describes a customer race for the scheduler.
type Archetype struct {
	Race           string     `yaml:"race" json:"race"`
	PatienceSec    int        `yaml:"patience_sec" json:"patience_sec"`
	HaggleSkillMin float64    `yaml:"haggle_skill_min" json:"haggle_skill_min"`
	HaggleSkillMax float64    `yaml:"haggle_skill_max" json:"haggle_skill_max"`
	BudgetMin      float64    `yaml:"budget_min" json:"budget_min"`
	BudgetMax      float64    `yaml:"budget_max" json:"budget_max"`
	Categories     []Category `yaml:"categories" json:"categories"`
	MinTier        int        `yaml:"min_tier" json:"min_tier"`
}

// TierDef gates progression: both the coin threshold and every race
// requirement must be met for the tier to unlock.
type TierDef struct {
	Name          string         `yaml:"name" json:"name"`
	CoinThreshold int            `yaml:"coin_threshold" json:"coin_threshold"`
	Reputation    map[string]int `yaml:"reputation" json:"reputation"`
}

// Catalog is the read-only reference data consumed by the core. The core
// never mutates it.
type Catalog struct {
	Goods      []Goods     `yaml:"goods" json:"goods"`
	Upgrades   []Upgrade   `yaml:"upgrades" json:"upgrades"`
	Recipes    []Recipe    `yaml:"recipes" json:"recipes"`
	Archetypes []Archetype `yaml:"archetypes" json:"archetypes"`
	Tiers      []TierDef   `yaml:"tiers" json:"tiers"`

	goodsByID   map[string]Goods
	upgradeByID map[string]Upgrade
	recipeByID  map[string]Recipe
}

// index builds the lookup maps. Called once after construction/loading.
func (c *Catalog) index() {
	c.goodsByID = make(map[string]Goods, len(c.Goods))
	for _, g := range c.Goods {
		c.goodsByID[g.ID] = g
	}
	c.upgradeByID = make(map[string]Upgrade, len(c.Upgrades))
	for _, u := range c.Upgrades {
		c.upgradeByID[u.ID] = u
	}
	c.recipeByID = make(map[string]Recipe, len(c.Recipes))
	for _, r := range c.Recipes {
		c.recipeByID[r.ID] = r
	}
}

func (c *Catalog) GoodsByID(id string) (Goods, bool) {
	g, ok := c.goodsByID[id]
	return g, ok
}

func (c *Catalog) UpgradeByID(id string) (Upgrade, bool) {
	u, ok := c.upgradeByID[id]
	return u, ok
}

func (c *Catalog) RecipeByID(id string) (Recipe, bool) {
	r, ok := c.recipeByID[id]
	return r, ok
}

// Tier returns the tier definition at the given index.
func (c *Catalog) Tier(index int) (TierDef, bool) {
	if index < 0 || index >= len(c.Tiers) {
		return TierDef{}, false
	}
	return c.Tiers[index], true
}

// ArchetypesForTier returns the archetypes eligible at the given tier.
func (c *Catalog) ArchetypesForTier(tier int) []Archetype {
	out := make([]Archetype, 0, len(c.Archetypes))
	for _, a := range c.Archetypes {
		if a.MinTier <= tier {
			out = append(out, a)
		}
	}
	return out
}

// UpgradesByEffect returns all upgrades carrying the given effect id.
func (c *Catalog) UpgradesByEffect(effect string) []Upgrade {
	out := []Upgrade{}
	for _, u := range c.Upgrades {
		if u.Effect == effect {
			out = append(out, u)
		}
	}
	return out
}
