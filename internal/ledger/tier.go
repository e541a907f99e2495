package ledger

import "gobbomarket/internal/events"

// checkTierUnlockLocked advances the tier while the next tier's coin and
// per-race reputation thresholds are all met. A race the player has never
// served counts as 0. Several tiers can unlock from one mutation; one
// event is produced per tier, in ascending order. Tiers never regress.
// Caller holds l.mu.
func (l *Ledger) checkTierUnlockLocked() []pendingEvent {
	evs := []pendingEvent{}

	for {
		next := l.state.CurrentTier + 1
		td, ok := l.cat.Tier(next)
		if !ok {
			break
		}
		if l.state.TotalEarned < td.CoinThreshold {
			break
		}
		met := true
		for race, required := range td.Reputation {
			if l.state.RaceReputation[race] < required {
				met = false
				break
			}
		}
		if !met {
			break
		}

		l.state.CurrentTier = next
		evs = append(evs, pendingEvent{
			events.TypeTierUnlocked,
			events.TierUnlocked{Tier: next, Name: td.Name},
		})
	}

	return evs
}
