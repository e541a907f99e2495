package reputation

import (
	"gobbomarket/internal/config"
	"gobbomarket/internal/ledger"
)

// Outcome is the result of a haggling exchange.
type Outcome string

const (
	OutcomeWin    Outcome = "win"    // clean win
	OutcomeSettle Outcome = "settle" // voluntary settle
	OutcomeBust   Outcome = "bust"   // pushed too far
)

// Level names, poorest first.
var levelNames = []string{"Nobody", "Newcomer", "Known", "Respected", "Renowned", "Legendary"}

// Gain computes the reputation delta for a sale: base award + quality
// bonus + outcome adjustment. Can be negative on a bust. Pure.
func Gain(bal config.Balance, quality int, outcome Outcome) int {
	gain := bal.RepBaseAward

	if len(bal.RepQualityBonus) > 0 {
		idx := quality
		if idx < 0 {
			idx = 0
		}
		if idx >= len(bal.RepQualityBonus) {
			idx = len(bal.RepQualityBonus) - 1
		}
		gain += bal.RepQualityBonus[idx]
	}

	switch outcome {
	case OutcomeWin:
		gain += bal.RepWinBonus
	case OutcomeSettle:
		gain += bal.RepSettleBonus
	case OutcomeBust:
		gain -= bal.RepBustPenalty
	}
	return gain
}

// Award applies the computed gain to both the aggregate and the race
// bucket, and returns the applied amount. A non-positive gain applies
// nothing (reputation never decreases).
func Award(l *ledger.Ledger, bal config.Balance, quality int, outcome Outcome, race string) int {
	gain := Gain(bal, quality, outcome)
	if gain <= 0 {
		return 0
	}
	l.AddRaceReputation(race, gain)
	return gain
}

// Level maps an aggregate reputation total to its display name.
func Level(bal config.Balance, total int) string {
	for i, cutoff := range bal.RepLevelCutoffs {
		if total < cutoff {
			return levelNames[min(i, len(levelNames)-1)]
		}
	}
	return levelNames[len(levelNames)-1]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
