package domain

// MergeSettings applies an override mapping onto a base settings tree and
// returns a new mapping. Neither input is mutated.
//
// Rules, key by key:
//   - a nil override value deletes the key (deletion, not insertion of null)
//   - mapping onto mapping merges recursively, at arbitrary depth
//   - anything else replaces the key wholesale, including sequences and
//     type mismatches (override wins, no coercion error)
//
// Keys only present in base are preserved unchanged.
func MergeSettings(base, overrides map[string]any) map[string]any {
	result := make(map[string]any, len(base))
	for k, v := range base {
		result[k] = v
	}

	for k, ov := range overrides {
		if ov == nil {
			delete(result, k)
			continue
		}
		if ovMap, ok := ov.(map[string]any); ok {
			if baseMap, ok := result[k].(map[string]any); ok {
				result[k] = MergeSettings(baseMap, ovMap)
				continue
			}
		}
		result[k] = ov
	}

	return result
}
