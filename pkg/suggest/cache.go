package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
)

// HotCache keeps the sorted results of recently looked up prefixes. When full
// the least recently used prefix is evicted. It is safe for concurrent use.
type HotCache struct {
	entries     map[string][]string
	accessTime  map[string]int64
	accessCount int64
	hits        int
	misses      int
	maxEntries  int
	mu          sync.Mutex
}

// NewHotCache creates a cache holding at most maxEntries prefixes
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		entries:    make(map[string][]string, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached titles for prefix
func (hc *HotCache) Get(prefix string) ([]string, bool) {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	titles, ok := hc.entries[prefix]
	if !ok {
		hc.misses++
		return nil, false
	}
	hc.hits++
	hc.markAccessed(prefix)
	return titles, true
}

// Put stores titles for prefix. The slice must not be modified afterwards.
func (hc *HotCache) Put(prefix string, titles []string) {
	if hc.maxEntries <= 0 {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if _, ok := hc.entries[prefix]; !ok && len(hc.entries) >= hc.maxEntries {
		hc.evictLRU()
	}
	hc.entries[prefix] = titles
	hc.markAccessed(prefix)
}

// Clear drops every entry
func (hc *HotCache) Clear() {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	clear(hc.entries)
	clear(hc.accessTime)
}

// Stats returns cache occupancy and hit counters
func (hc *HotCache) Stats() map[string]int {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"cacheEntries": len(hc.entries),
		"maxCacheSize": hc.maxEntries,
		"cacheHits":    hc.hits,
		"cacheMisses":  hc.misses,
	}
}

func (hc *HotCache) markAccessed(prefix string) {
	hc.accessCount++
	hc.accessTime[prefix] = hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldest string
	oldestTime := int64(math.MaxInt64)
	for prefix, t := range hc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldest = prefix
		}
	}
	if oldestTime != math.MaxInt64 {
		delete(hc.entries, oldest)
		delete(hc.accessTime, oldest)
		log.Debugf("Evicted prefix '%s' from lookup cache", oldest)
	}
}
