package config

// Balance holds gameplay balance configuration
type Balance struct {
	// Coins
	MaxCoins      int `json:"max_coins"`
	StartingCoins int `json:"starting_coins"`

	// Stall
	BaseStallSlots int `json:"base_stall_slots"`
	MaxStallSlots  int `json:"max_stall_slots"`

	// Pricing
	QualityMultipliers []float64 `json:"quality_multipliers"`
	CategoryMatchBonus float64   `json:"category_match_bonus"`
	TierBuyDiscount    float64   `json:"tier_buy_discount"`

	// Reputation
	RepBaseAward    int   `json:"rep_base_award"`
	RepQualityBonus []int `json:"rep_quality_bonus"`
	RepWinBonus     int   `json:"rep_win_bonus"`
	RepSettleBonus  int   `json:"rep_settle_bonus"`
	RepBustPenalty  int   `json:"rep_bust_penalty"`
	RepLevelCutoffs []int `json:"rep_level_cutoffs"`

	// Customers
	SpawnIntervalSec        int `json:"spawn_interval_sec"`
	SpawnIntervalTierReduce int `json:"spawn_interval_tier_reduce"`
	SpawnIntervalMinSec     int `json:"spawn_interval_min_sec"`
	MaxCustomers            int `json:"max_customers"`

	// Saves
	AutoSaveIntervalSec int `json:"auto_save_interval_sec"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		MaxCoins:                999999,
		StartingCoins:           50,
		BaseStallSlots:          4,
		MaxStallSlots:           12,
		QualityMultipliers:      []float64{0.6, 1.0, 1.2, 1.5, 1.8},
		CategoryMatchBonus:      1.25,
		TierBuyDiscount:         0.05,
		RepBaseAward:            2,
		RepQualityBonus:         []int{0, 0, 3, 5, 10},
		RepWinBonus:             3,
		RepSettleBonus:          1,
		RepBustPenalty:          2,
		RepLevelCutoffs:         []int{10, 50, 200, 600, 1500},
		SpawnIntervalSec:        20,
		SpawnIntervalTierReduce: 2,
		SpawnIntervalMinSec:     8,
		MaxCustomers:            3,
		AutoSaveIntervalSec:     60,
	}
}

// Casual returns easier balance for casual players
func Casual() Balance {
	cfg := Default()
	cfg.StartingCoins = 150
	cfg.SpawnIntervalSec = 15
	cfg.RepBustPenalty = 1
	cfg.MaxCustomers = 4
	return cfg
}

// Hard returns harder balance for experienced players
func Hard() Balance {
	cfg := Default()
	cfg.StartingCoins = 25
	cfg.SpawnIntervalSec = 25
	cfg.SpawnIntervalMinSec = 12
	cfg.RepBustPenalty = 4
	cfg.MaxCustomers = 2
	return cfg
}

// QualityMultiplier looks up the price multiplier for a quality index,
// clamped to the table bounds.
func (b Balance) QualityMultiplier(quality int) float64 {
	if len(b.QualityMultipliers) == 0 {
		return 1.0
	}
	if quality < 0 {
		quality = 0
	}
	if quality >= len(b.QualityMultipliers) {
		quality = len(b.QualityMultipliers) - 1
	}
	return b.QualityMultipliers[quality]
}
