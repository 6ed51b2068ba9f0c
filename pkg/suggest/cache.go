package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// HotCache keeps ranked completion lists for recently used prefixes.
// Entries are keyed by lower-cased prefix in a patricia trie so that a
// dictionary change to one word can drop exactly the prefixes of that word.
type HotCache struct {
	hotTrie     *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	hits        int64
	misses      int64
	maxEntries  int
	mu          sync.Mutex
}

// NewHotCache creates a cache holding at most maxEntries prefixes.
// A size below one disables caching.
func NewHotCache(maxEntries int) *HotCache {
	return &HotCache{
		hotTrie:    patricia.NewTrie(),
		accessTime: make(map[string]int64, max(maxEntries, 0)),
		maxEntries: maxEntries,
	}
}

// Get returns the cached list for prefix.
func (hc *HotCache) Get(prefix string) ([]Suggestion, bool) {
	if hc == nil || hc.maxEntries < 1 || prefix == "" {
		return nil, false
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	item := hc.hotTrie.Get(patricia.Prefix(prefix))
	if item == nil {
		hc.misses++
		return nil, false
	}
	hc.hits++
	hc.markAccessed(prefix)
	return item.([]Suggestion), true
}

// Put stores the full ranked list for prefix, evicting the least recently
// used prefix when full.
func (hc *HotCache) Put(prefix string, results []Suggestion) {
	if hc == nil || hc.maxEntries < 1 || prefix == "" {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	if _, ok := hc.accessTime[prefix]; !ok && len(hc.accessTime) >= hc.maxEntries {
		hc.evictLRU()
	}
	hc.hotTrie.Set(patricia.Prefix(prefix), results)
	hc.markAccessed(prefix)
}

// Invalidate drops every cached prefix of word, the word itself included.
func (hc *HotCache) Invalidate(word string) {
	if hc == nil || hc.maxEntries < 1 || word == "" {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	var stale []patricia.Prefix
	err := hc.hotTrie.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, append(patricia.Prefix(nil), p...))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting hot cache prefixes: %v", err)
	}
	for _, p := range stale {
		hc.hotTrie.Delete(p)
		delete(hc.accessTime, string(p))
	}
	if len(stale) > 0 {
		log.Debugf("Invalidated %d cached prefixes of %q", len(stale), word)
	}
}

// Clear drops every entry.
func (hc *HotCache) Clear() {
	if hc == nil {
		return
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.hotTrie = patricia.NewTrie()
	hc.accessTime = make(map[string]int64, max(hc.maxEntries, 0))
}

// Len returns the number of cached prefixes.
func (hc *HotCache) Len() int {
	if hc == nil {
		return 0
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return len(hc.accessTime)
}

func (hc *HotCache) Stats() map[string]int {
	if hc == nil {
		return map[string]int{}
	}
	hc.mu.Lock()
	defer hc.mu.Unlock()

	return map[string]int{
		"hotCacheEntries": len(hc.accessTime),
		"maxHotEntries":   hc.maxEntries,
		"hotCacheHits":    int(hc.hits),
		"hotCacheMisses":  int(hc.misses),
	}
}

func (hc *HotCache) markAccessed(prefix string) {
	hc.accessCount++
	hc.accessTime[prefix] = hc.accessCount
}

func (hc *HotCache) evictLRU() {
	var oldest string
	var oldestTime int64 = math.MaxInt64

	for prefix, t := range hc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldest = prefix
		}
	}

	if oldest != "" {
		hc.hotTrie.Delete(patricia.Prefix(oldest))
		delete(hc.accessTime, oldest)
		log.Debugf("Evicted prefix '%s' from hot cache", oldest)
	}
}
