// Package query is the in-memory search, filter, sort, and pagination
// engine applied on top of repository listings. Everything here is pure:
// inputs are never mutated and identical inputs produce identical outputs.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Search returns the items whose indexed fields contain term as a
// case-insensitive substring. An empty or whitespace term matches
// everything. fields extracts the searchable strings from one item.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Filter keeps the items matching every non-empty criterion. value extracts
// the item's value for a criterion key; criteria entries with an empty
// value are skipped, so "no selection" never filters anything out.
func Filter[T any](items []T, criteria map[string]string, value func(T, string) string) []T {
	active := make(map[string]string, len(criteria))
	for k, v := range criteria {
		if strings.TrimSpace(v) != "" {
			active[k] = v
		}
	}
	if len(active) == 0 {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for k, want := range active {
			if value(item, k) != want {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// SortBy returns a sorted copy ordered by less. The sort is stable so
// repeated application never reshuffles equal elements.
func SortBy[T any](items []T, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Alphabetical builds a less function over a string key using Arabic
// collation rules, so titles sort the way an Arabic reader expects rather
// than by raw code points.
func Alphabetical[T any](key func(T) string) func(a, b T) bool {
	c := collate.New(language.Arabic)
	return func(a, b T) bool {
		return c.CompareString(key(a), key(b)) < 0
	}
}

// Page slices out one page. Pages are 1-based; page values below 1 are
// treated as 1, and a page past the end yields an empty slice. perPage
// below 1 also yields an empty slice.
func Page[T any](items []T, page, perPage int) []T {
	if perPage < 1 {
		return []T{}
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// PageCount returns the number of pages needed for total items. Zero items
// is zero pages.
func PageCount(total, perPage int) int {
	if perPage < 1 || total < 1 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
