package collection

import "strings"

// Searchable exposes the text fields a free-text query is matched against.
type Searchable interface {
	SearchFields() []string
}

// Query is the list-screen filter: a free-text search plus an optional
// dropdown predicate.
type Query[T Searchable] struct {
	Search string
	Match  func(T) bool
}

// Apply filters items by the query, preserving order.
func (q Query[T]) Apply(items []T) []T {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if needle != "" && !matchesText(item, needle) {
			continue
		}
		if q.Match != nil && !q.Match(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesText(item Searchable, needle string) bool {
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// HasTag reports whether tags contains tag, ignoring case.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
