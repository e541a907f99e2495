package save

import "encoding/json"

// CurrentVersion is the envelope version this build writes.
const CurrentVersion = 2

// A migration lifts a decoded payload from one schema version to the
// next. Transforms are pure: they take the prior shape and return the
// next, never touching live state.
type migration struct {
	from  int
	apply func(map[string]any) map[string]any
}

// migrations is ordered by source version. Loading a version-N save
// applies the subsequence starting at N; the tolerant default-merge
// decode afterwards absorbs anything the transforms do not cover.
var migrations = []migration{
	{
		// v1 kept reputation under short keys and had no per-race map.
		from: 1,
		apply: func(m map[string]any) map[string]any {
			if v, ok := m["rep"]; ok {
				if _, exists := m["reputation"]; !exists {
					m["reputation"] = v
				}
				delete(m, "rep")
			}
			if v, ok := m["rep_by_race"]; ok {
				if _, exists := m["race_reputation"]; !exists {
					m["race_reputation"] = v
				}
				delete(m, "rep_by_race")
			}
			return m
		},
	},
}

// migratePayload lifts a serialized payload from the saved version to
// the current one. Payloads that do not decode as an object are passed
// through untouched; the tolerant decode downstream rejects them.
func migratePayload(payload string, fromVersion int) string {
	if fromVersion >= CurrentVersion {
		return payload
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return payload
	}

	for _, mig := range migrations {
		if mig.from < fromVersion {
			continue
		}
		m = mig.apply(m)
	}

	out, err := json.Marshal(m)
	if err != nil {
		return payload
	}
	return string(out)
}
