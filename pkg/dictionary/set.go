package dictionary

import (
	"iter"
	"slices"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Set is the de-duplicated pattern set of one finder. Titles keep their
// insertion order; the patricia trie de-duplicates them.
// A Set is filled once and only read afterwards.
type Set struct {
	trie  *patricia.Trie
	items []string
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{trie: patricia.NewTrie()}
}

// Add inserts title and reports whether it was new. Empty titles are ignored.
func (s *Set) Add(title string) bool {
	if title == "" {
		return false
	}
	if !s.trie.Insert(patricia.Prefix(title), len(s.items)) {
		return false
	}
	s.items = append(s.items, title)
	return true
}

// Len returns the number of distinct titles.
func (s *Set) Len() int {
	return len(s.items)
}

// All yields the titles in insertion order.
func (s *Set) All() iter.Seq[string] {
	return slices.Values(s.items)
}
