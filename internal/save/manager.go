package save

import (
	"encoding/json"
	"log/slog"
	"time"

	"gobbomarket/internal/clock"
	"gobbomarket/internal/events"
	"gobbomarket/internal/ledger"
)

// DefaultKey is the well-known storage key for the one save slot.
const DefaultKey = "gobbomarket_save"

// Envelope is the versioned wrapper around the serialized player state.
type Envelope struct {
	Version   int    `json:"version"`
	Timestamp int64  `json:"timestamp"` // epoch ms
	Data      string `json:"data"`
}

// Metadata is a read-only peek at a stored save.
type Metadata struct {
	Version   int
	Timestamp int64
}

// Manager is the save/load/migration pipeline. Every operation returns a
// boolean; nothing here is fatal. A failed load never partially mutates
// live state.
type Manager struct {
	store  Store
	ledger *ledger.Ledger
	bus    *events.Bus
	clock  clock.Clock
	sched  clock.Scheduler
	key    string
	log    *slog.Logger
}

func NewManager(store Store, l *ledger.Ledger, bus *events.Bus, clk clock.Clock, sched clock.Scheduler, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		store:  store,
		ledger: l,
		bus:    bus,
		clock:  clk,
		sched:  sched,
		key:    DefaultKey,
		log:    log,
	}
}

// Save serializes the current state into a current-version envelope and
// writes it.
func (m *Manager) Save() bool {
	text, err := m.ledger.Serialize()
	if err != nil {
		m.log.Error("serialize failed", "err", err)
		return false
	}

	env := Envelope{
		Version:   CurrentVersion,
		Timestamp: m.clock.Now().UnixMilli(),
		Data:      text,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		m.log.Error("encode envelope failed", "err", err)
		return false
	}

	if err := m.store.Set(m.key, string(raw)); err != nil {
		m.log.Error("write save failed", "err", err)
		return false
	}

	m.bus.Emit(events.TypeGameSaved, events.SaveInfo{Version: env.Version, Timestamp: env.Timestamp})
	return true
}

// Load reads the stored envelope and restores state from it. Returns
// false on a missing, corrupt, or invalid save, with live state left
// untouched. Legacy-version saves are migrated and immediately re-saved
// at the current version.
func (m *Manager) Load() bool {
	raw, ok, err := m.store.Get(m.key)
	if err != nil {
		m.log.Error("read save failed", "err", err)
		return false
	}
	if !ok {
		return false
	}

	env, ok := decodeEnvelope(raw)
	if !ok {
		m.log.Warn("save is corrupt, ignoring")
		return false
	}

	payload := env.Data
	legacy := env.Version != CurrentVersion
	if legacy {
		payload = migratePayload(payload, env.Version)
	}

	state, ok := m.ledger.DecodeState(payload)
	if !ok {
		m.log.Warn("save payload invalid, ignoring", "version", env.Version)
		return false
	}

	m.ledger.Restore(state)
	m.ledger.CleanExpiredCooldowns()

	if legacy {
		// Re-save now so subsequent loads skip migration.
		m.Save()
		m.log.Info("migrated save", "from", env.Version, "to", CurrentVersion)
	}

	m.bus.Emit(events.TypeGameLoaded, events.SaveInfo{Version: env.Version, Timestamp: env.Timestamp})
	return true
}

// Delete removes the stored save. Live state is untouched.
func (m *Manager) Delete() bool {
	if err := m.store.Remove(m.key); err != nil {
		m.log.Error("delete save failed", "err", err)
		return false
	}
	return true
}

// HasSave reports whether a stored entry exists, without validating it.
func (m *Manager) HasSave() bool {
	_, ok, err := m.store.Get(m.key)
	return err == nil && ok
}

// PeekMetadata returns the stored envelope's version and timestamp
// without mutating live state.
func (m *Manager) PeekMetadata() (Metadata, bool) {
	raw, ok, err := m.store.Get(m.key)
	if err != nil || !ok {
		return Metadata{}, false
	}
	env, ok := decodeEnvelope(raw)
	if !ok {
		return Metadata{}, false
	}
	return Metadata{Version: env.Version, Timestamp: env.Timestamp}, true
}

// PeekTier returns the tier recorded in the stored save without
// mutating live state.
func (m *Manager) PeekTier() (int, bool) {
	raw, ok, err := m.store.Get(m.key)
	if err != nil || !ok {
		return 0, false
	}
	env, ok := decodeEnvelope(raw)
	if !ok {
		return 0, false
	}

	var peek struct {
		CurrentTier int `json:"current_tier"`
	}
	if err := json.Unmarshal([]byte(env.Data), &peek); err != nil {
		return 0, false
	}
	return peek.CurrentTier, true
}

// AutoSave starts a repeating save on the scheduler and returns the
// cancellation handle. The caller owns its lifetime.
func (m *Manager) AutoSave(interval time.Duration) clock.TimerHandle {
	return m.sched.Every(interval, func() {
		if !m.Save() {
			m.log.Warn("autosave failed")
		}
	})
}

// decodeEnvelope parses raw stored text. Returns false when the text is
// not an envelope or the version field is not numeric.
func decodeEnvelope(raw string) (Envelope, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return Envelope{}, false
	}
	verRaw, ok := probe["version"]
	if !ok {
		return Envelope{}, false
	}
	var ver float64
	if err := json.Unmarshal(verRaw, &ver); err != nil {
		return Envelope{}, false
	}

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return Envelope{}, false
	}
	return env, true
}
