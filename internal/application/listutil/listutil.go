// Package listutil holds in-memory roster edits for the member list page.
// Edits and deletes mutate the already-fetched list instead of re-fetching
// the roster after every action.
package listutil

// RemoveByID returns items without the element whose id matches.
// At most one element is removed; an unknown id returns the input
// unchanged.
// PRE: id uniquely identifies at most one element
// POST: length shrinks by at most one; order of the rest is preserved
func RemoveByID[T any](items []T, id string, idOf func(T) string) []T {
	for i, item := range items {
		if idOf(item) == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...)
		}
	}
	return items
}

// ReplaceByID returns items with the matching element swapped for
// replacement. Only that element changes; an unknown id returns the
// input unchanged.
// PRE: id uniquely identifies at most one element
// POST: length and order are preserved
func ReplaceByID[T any](items []T, id string, replacement T, idOf func(T) string) []T {
	for i, item := range items {
		if idOf(item) == id {
			out := make([]T, len(items))
			copy(out, items)
			out[i] = replacement
			return out
		}
	}
	return items
}
