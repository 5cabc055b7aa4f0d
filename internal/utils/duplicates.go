package utils

import (
	"strings"
)

// SuggestionFilter drops titles that differ only in case from one already
// seen. It is not safe for concurrent use.
type SuggestionFilter struct {
	seen map[string]bool
}

// NewSuggestionFilter creates an empty filter
func NewSuggestionFilter() *SuggestionFilter {
	return &SuggestionFilter{seen: make(map[string]bool)}
}

// ShouldInclude reports whether title is new, and marks it as seen
func (f *SuggestionFilter) ShouldInclude(title string) bool {
	key := strings.ToLower(title)
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	return true
}
