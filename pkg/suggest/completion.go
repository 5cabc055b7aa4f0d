package suggest

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"github.com/bastiangx/titleserve/internal/utils"
	"github.com/tchap/go-patricia/v2/patricia"
)

// defaultCacheSize bounds the number of prefixes whose results are kept.
const defaultCacheSize = 512

// Suggestion is one completed title.
type Suggestion struct {
	Title string `json:"title" msgpack:"w"`
	Rank  int    `json:"rank" msgpack:"r"`
}

// Completer answers prefix lookups over a title set. Titles that differ only
// in case are folded into the first one registered.
type Completer struct {
	trie     *patricia.Trie
	cache    *HotCache
	titles   int
	variants int
}

// NewCompleter returns an empty completer.
func NewCompleter() *Completer {
	return &Completer{
		trie:  patricia.NewTrie(),
		cache: NewHotCache(defaultCacheSize),
	}
}

// NewCompleterFrom registers every title of seq.
func NewCompleterFrom(seq iter.Seq[string]) *Completer {
	c := NewCompleter()
	for title := range seq {
		c.AddTitle(title)
	}
	return c
}

// AddTitle registers title. Adding invalidates cached results.
func (c *Completer) AddTitle(title string) {
	if title == "" {
		return
	}
	key := patricia.Prefix(strings.ToLower(title))
	c.variants++
	if item := c.trie.Get(key); item != nil {
		variants := item.([]string)
		if slices.Contains(variants, title) {
			c.variants--
			return
		}
		c.trie.Set(key, append(variants, title))
	} else {
		c.trie.Insert(key, []string{title})
		c.titles++
	}
	c.cache.Clear()
}

// Complete returns up to limit titles starting with prefix, ignoring case.
// Shorter titles rank first, ties are broken alphabetically. A limit <= 0
// returns every match.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	lowerPrefix := strings.ToLower(strings.TrimSpace(prefix))
	if !utils.IsValidPrefix(lowerPrefix) {
		return []Suggestion{}
	}

	titles, ok := c.cache.Get(lowerPrefix)
	if !ok {
		titles = c.search(lowerPrefix)
		c.cache.Put(lowerPrefix, titles)
	}

	if limit > 0 && len(titles) > limit {
		titles = titles[:limit]
	}
	ranks := utils.RankList(len(titles))
	out := make([]Suggestion, len(titles))
	for i, title := range titles {
		out[i] = Suggestion{Title: title, Rank: ranks[i]}
	}
	return out
}

func (c *Completer) search(lowerPrefix string) []string {
	filter := utils.NewSuggestionFilter()
	var titles []string
	for _, title := range SearchTrie(c.trie, lowerPrefix) {
		if filter.ShouldInclude(title) {
			titles = append(titles, title)
		}
	}
	slices.SortFunc(titles, func(a, b string) int {
		if n := cmp.Compare(len(a), len(b)); n != 0 {
			return n
		}
		return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return titles
}

// Stats returns title counts and cache statistics.
func (c *Completer) Stats() map[string]int {
	stats := map[string]int{
		"titles":   c.titles,
		"variants": c.variants,
	}
	for k, v := range c.cache.Stats() {
		stats[k] = v
	}
	return stats
}
