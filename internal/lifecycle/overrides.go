package lifecycle

import "encoding/json"

// Manual overrides are stored as a compact JSON object mapping task IDs to
// booleans. The map is sparse: an absent key defers to automatic inference,
// while a stored value (even one equal to the automatic value) is a manual
// decision and keeps its key. An empty map serializes to the empty string so
// vacuous state is never persisted.

// DecodeOverrides parses a stored override blob. A missing or malformed blob
// degrades to no overrides, it never fails: a corrupt value must turn the
// checklist fully automatic, not break the read path.
func DecodeOverrides(raw string) map[string]bool {
	if raw == "" {
		return map[string]bool{}
	}

	var overrides map[string]bool
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil || overrides == nil {
		return map[string]bool{}
	}

	return overrides
}

// EncodeOverrides serializes an override map. Empty (or nil) encodes to ""
// so the caller stores an absent value instead of an empty object literal.
func EncodeOverrides(overrides map[string]bool) string {
	if len(overrides) == 0 {
		return ""
	}

	// Marshalling a map[string]bool cannot fail.
	raw, _ := json.Marshal(overrides)
	return string(raw)
}

// SetOverride returns the override map with a manual decision applied: a
// value sets it, nil clears the key entirely (back to automatic inference).
// The input map is not mutated.
func SetOverride(overrides map[string]bool, taskID string, value *bool) map[string]bool {
	updated := make(map[string]bool, len(overrides)+1)
	for k, v := range overrides {
		updated[k] = v
	}

	if value == nil {
		delete(updated, taskID)
	} else {
		updated[taskID] = *value
	}

	return updated
}
