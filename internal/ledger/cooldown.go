package ledger

import (
	"math"

	"gobbomarket/internal/catalog"
	"gobbomarket/internal/events"
)

// StartCooldown puts a goods id on cooldown. The effective duration is
// the base multiplied by every applicable owned discount factor, floored
// once to whole seconds, minimum 1. Returns the effective seconds, or 0
// when the base duration is non-positive.
func (l *Ledger) StartCooldown(goodsID string, baseDurationSec int) int {
	if baseDurationSec <= 0 {
		return 0
	}

	goods, hasGoods := l.cat.GoodsByID(goodsID)

	l.mu.Lock()
	factor := 1.0
	for id, rank := range l.state.Upgrades {
		if rank < 1 {
			continue
		}
		u, ok := l.cat.UpgradeByID(id)
		if !ok || u.Factor <= 0 || u.Factor >= 1 {
			continue
		}
		if discountApplies(u.Effect, goods, hasGoods) {
			factor *= u.Factor
		}
	}

	effective := int(math.Floor(float64(baseDurationSec) * factor))
	if effective < 1 {
		effective = 1
	}
	now := l.clock.Now()
	l.state.Cooldowns[goodsID] = now.UnixMilli() + int64(effective)*1000
	l.mu.Unlock()

	l.bus.Emit(events.TypeCooldownStarted, events.Cooldown{GoodsID: goodsID, Seconds: effective})
	return effective
}

func discountApplies(effect string, goods catalog.Goods, hasGoods bool) bool {
	switch effect {
	case catalog.EffectUniversalSupplier:
		return true
	case catalog.EffectQuickHands:
		return hasGoods && goods.Tier <= 1
	case catalog.EffectWorkshopEff:
		return hasGoods && goods.Craftable
	case catalog.EffectSupplyChain:
		return hasGoods && !goods.Craftable
	}
	return false
}

// IsOnCooldown reports whether the goods id has an expiry strictly in
// the future.
func (l *Ledger) IsOnCooldown(goodsID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiry, ok := l.state.Cooldowns[goodsID]
	if !ok {
		return false
	}
	return expiry > l.clock.Now().UnixMilli()
}

// CooldownRemaining returns whole seconds left, rounded up, 0 when
// absent or expired.
func (l *Ledger) CooldownRemaining(goodsID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	expiry, ok := l.state.Cooldowns[goodsID]
	if !ok {
		return 0
	}
	remainingMs := expiry - l.clock.Now().UnixMilli()
	if remainingMs <= 0 {
		return 0
	}
	return int((remainingMs + 999) / 1000)
}

// CleanExpiredCooldowns removes every entry whose expiry has passed and
// announces each as ready. Idempotent.
func (l *Ledger) CleanExpiredCooldowns() {
	l.mu.Lock()
	now := l.clock.Now().UnixMilli()
	ready := []string{}
	for goodsID, expiry := range l.state.Cooldowns {
		if expiry <= now {
			delete(l.state.Cooldowns, goodsID)
			ready = append(ready, goodsID)
		}
	}
	l.mu.Unlock()

	for _, goodsID := range ready {
		l.bus.Emit(events.TypeCooldownReady, events.Cooldown{GoodsID: goodsID})
	}
}
