package model

import (
	"slices"
	"strings"
)

// nameSeparator joins the names along a parent chain.
const nameSeparator = " - "

// combinedName walks from start to its root and joins the names root first.
// The walk stops at the first id it has already visited, so a malformed parent chain
// that loops back on itself still terminates.
func combinedName[T any](start *T, id, name func(*T) string, parent func(*T) *T) string {
	var names []string
	seen := make(map[string]struct{})
	for cur := start; cur != nil; cur = parent(cur) {
		key := id(cur)
		if _, ok := seen[key]; ok {
			break
		}
		seen[key] = struct{}{}
		names = append(names, name(cur))
	}
	slices.Reverse(names)
	return strings.Join(names, nameSeparator)
}

func findByID[T any](items []*T, id func(*T) string, want string) *T {
	for _, item := range items {
		if id(item) == want {
			return item
		}
	}
	return nil
}
