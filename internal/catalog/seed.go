package catalog

// Default returns the built-in reference data. A host can replace it via
// Load, but the core ships playable out of the box.
func Default() *Catalog {
	c := &Catalog{
		Goods: []Goods{
			{ID: "mushroom_skewer", Name: "Mushroom Skewer", BasePrice: 8, MaterialCost: 3, Category: CategoryFood, Tier: 0, Craftable: true, CooldownSec: 20},
			{ID: "swamp_brew", Name: "Swamp Brew", BasePrice: 12, MaterialCost: 5, Category: CategoryPotion, Tier: 0, Craftable: true, CooldownSec: 30},
			{ID: "rusty_dagger", Name: "Rusty Dagger", BasePrice: 15, MaterialCost: 7, Category: CategoryWeapon, Tier: 0, Craftable: false, CooldownSec: 36},
			{ID: "bone_charm", Name: "Bone Charm", BasePrice: 18, MaterialCost: 8, Category: CategoryTrinket, Tier: 0, Craftable: true, CooldownSec: 36},
			{ID: "glow_moss_tea", Name: "Glow Moss Tea", BasePrice: 25, MaterialCost: 10, Category: CategoryPotion, Tier: 1, Craftable: true, CooldownSec: 45},
			{ID: "polished_buckler", Name: "Polished Buckler", BasePrice: 40, MaterialCost: 18, Category: CategoryWeapon, Tier: 1, Craftable: false, CooldownSec: 60},
			{ID: "lucky_tooth", Name: "Lucky Tooth Pendant", BasePrice: 35, MaterialCost: 14, Category: CategoryTrinket, Tier: 1, Craftable: true, CooldownSec: 50},
			{ID: "ember_salts", Name: "Ember Salts", BasePrice: 60, MaterialCost: 26, Category: CategoryPotion, Tier: 2, Craftable: true, CooldownSec: 90},
			{ID: "dwarven_mail", Name: "Dwarven Mail Shirt", BasePrice: 110, MaterialCost: 55, Category: CategoryWeapon, Tier: 2, Craftable: false, CooldownSec: 120},
			{ID: "moon_idol", Name: "Moon Idol", BasePrice: 150, MaterialCost: 70, Category: CategoryRelic, Tier: 3, Craftable: true, CooldownSec: 180},
			{ID: "dragon_scale", Name: "Dragon Scale", BasePrice: 220, MaterialCost: 120, Category: CategoryRelic, Tier: 3, Craftable: false, CooldownSec: 240},
		},
		Upgrades: []Upgrade{
			{ID: "quick_hands_1", Name: "Quick Hands", Cost: 80, MaxRank: 1, Effect: EffectQuickHands, Factor: 0.75},
			{ID: "workshop_bellows", Name: "Workshop Bellows", Cost: 150, MaxRank: 1, Effect: EffectWorkshopEff, Factor: 0.80},
			{ID: "caravan_contacts", Name: "Caravan Contacts", Cost: 150, MaxRank: 1, Effect: EffectSupplyChain, Factor: 0.80},
			{ID: "goblin_wholesaler", Name: "Goblin Wholesaler", Cost: 400, MaxRank: 1, Effect: EffectUniversalSupplier, Factor: 0.75},
			{ID: "artisan_mark", Name: "Artisan's Mark", Cost: 200, MaxRank: 1, Effect: EffectCraftSellBonus, Factor: 1.15},
			{ID: "silver_tongue", Name: "Silver Tongue", Cost: 350, MaxRank: 1, Effect: EffectGlobalSellBonus, Factor: 1.10},
			{ID: "guild_membership", Name: "Guild Membership", Cost: 250, MaxRank: 1, Effect: EffectGuildDiscount, Factor: 0.90},
			{ID: "stall_extension", Name: "Stall Extension", Cost: 120, MaxRank: 8, Effect: EffectExtraStallSlot, Factor: 1},
		},
		Recipes: []Recipe{
			{ID: "rcp_mushroom_skewer", GoodsID: "mushroom_skewer", UnlockCost: 0, RequiredTier: 0},
			{ID: "rcp_swamp_brew", GoodsID: "swamp_brew", UnlockCost: 0, RequiredTier: 0},
			{ID: "rcp_bone_charm", GoodsID: "bone_charm", UnlockCost: 30, RequiredTier: 0},
			{ID: "rcp_glow_moss_tea", GoodsID: "glow_moss_tea", UnlockCost: 60, RequiredTier: 1},
			{ID: "rcp_lucky_tooth", GoodsID: "lucky_tooth", UnlockCost: 80, RequiredTier: 1},
			{ID: "rcp_ember_salts", GoodsID: "ember_salts", UnlockCost: 160, RequiredTier: 2},
			{ID: "rcp_moon_idol", GoodsID: "moon_idol", UnlockCost: 400, RequiredTier: 3},
		},
		Archetypes: []Archetype{
			{Race: "goblin", PatienceSec: 30, HaggleSkillMin: 0.1, HaggleSkillMax: 0.4, BudgetMin: 0.7, BudgetMax: 1.0, Categories: []Category{CategoryFood, CategoryTrinket}, MinTier: 0},
			{Race: "human", PatienceSec: 45, HaggleSkillMin: 0.3, HaggleSkillMax: 0.6, BudgetMin: 0.9, BudgetMax: 1.2, Categories: []Category{CategoryPotion, CategoryWeapon, CategoryFood}, MinTier: 0},
			{Race: "elf", PatienceSec: 60, HaggleSkillMin: 0.5, HaggleSkillMax: 0.9, BudgetMin: 1.1, BudgetMax: 1.5, Categories: []Category{CategoryPotion, CategoryTrinket, CategoryRelic}, MinTier: 1},
			{Race: "dwarf", PatienceSec: 40, HaggleSkillMin: 0.4, HaggleSkillMax: 0.7, BudgetMin: 1.0, BudgetMax: 1.4, Categories: []Category{CategoryWeapon, CategoryRelic}, MinTier: 1},
			{Race: "orc", PatienceSec: 25, HaggleSkillMin: 0.2, HaggleSkillMax: 0.5, BudgetMin: 0.8, BudgetMax: 1.3, Categories: []Category{CategoryWeapon, CategoryFood}, MinTier: 2},
		},
		Tiers: []TierDef{
			{Name: "Street Cart", CoinThreshold: 0, Reputation: map[string]int{}},
			{Name: "Market Stall", CoinThreshold: 200, Reputation: map[string]int{"goblin": 15}},
			{Name: "Shopfront", CoinThreshold: 1000, Reputation: map[string]int{"goblin": 40, "human": 25}},
			{Name: "Grand Bazaar", CoinThreshold: 5000, Reputation: map[string]int{"human": 100, "elf": 80, "dwarf": 60}},
		},
	}
	c.index()
	return c
}

// StarterRecipes returns the goods ids every fresh player begins with.
func StarterRecipes() []string {
	return []string{"mushroom_skewer", "swamp_brew"}
}
