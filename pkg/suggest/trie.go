package suggest

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// SearchTrie collects every title variant stored below lowerPrefix. Keys are
// lower-cased titles; items are the variants registered under them.
func SearchTrie(trie *patricia.Trie, lowerPrefix string) []string {
	if trie == nil {
		return nil
	}

	var titles []string
	err := trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		variants, ok := item.([]string)
		if !ok {
			log.Errorf("Unknown item type: %T for title %s", item, p)
			return nil
		}
		titles = append(titles, variants...)
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}
	return titles
}
