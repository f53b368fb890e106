package command

import "sort"

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedVariableKeys[V any](m map[variableKey]V) []variableKey {
	keys := make([]variableKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].executionID != keys[j].executionID {
			return keys[i].executionID < keys[j].executionID
		}
		return keys[i].name < keys[j].name
	})
	return keys
}
