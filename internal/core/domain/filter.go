package domain

import (
	"sort"
	"strings"
)

// Filter returns the items whose name contains query, compared
// case-insensitively. An empty query matches everything. The input slice
// is left untouched.
func Filter(items []Item, query string) []Item {
	out := make([]Item, 0, len(items))
	if query == "" {
		return append(out, items...)
	}

	needle := strings.ToLower(query)
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			out = append(out, it)
		}
	}
	return out
}

// SortByName orders items by name, case-insensitively, falling back to the
// exact name so that "Apple" and "apple" keep a fixed order.
func SortByName(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if a != b {
			return a < b
		}
		return items[i].Name < items[j].Name
	})
}
