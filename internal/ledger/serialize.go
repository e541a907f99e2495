package ledger

import "encoding/json"

// Serialize renders the current state as JSON.
func (l *Ledger) Serialize() (string, error) {
	snap := l.Snapshot()
	b, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Deserialize validates and atomically restores state from JSON produced
// by Serialize (any version; missing fields absorb defaults). Returns
// false, leaving live state untouched, when the text is malformed or the
// required fields are absent.
func (l *Ledger) Deserialize(text string) bool {
	s, ok := l.DecodeState(text)
	if !ok {
		return false
	}
	l.Restore(s)
	return true
}

// DecodeState parses JSON into a PlayerState merged over fresh defaults,
// without touching live state. Required fields (coins, reputation) must
// be present and numeric.
func (l *Ledger) DecodeState(text string) (PlayerState, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return PlayerState{}, false
	}
	if !numericField(probe, "coins") || !numericField(probe, "reputation") {
		return PlayerState{}, false
	}

	// Unmarshal over a fresh default so fields the save predates keep
	// sane values.
	s := newPlayerState(l.bal)
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return PlayerState{}, false
	}
	return normalizeState(s, l.bal), true
}

func numericField(m map[string]json.RawMessage, key string) bool {
	raw, ok := m[key]
	if !ok {
		return false
	}
	var n float64
	return json.Unmarshal(raw, &n) == nil
}
