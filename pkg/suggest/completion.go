package suggest

import (
	"sort"
	"strings"
	"sync"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
	"github.com/hbollon/go-edlib"
)

// Suggestion is one ranked word returned by Complete or Correct.
type Suggestion struct {
	Word            string `msgpack:"w"`
	Frequency       int    `msgpack:"r"`
	WasCorrected    bool   `msgpack:"c,omitempty"`
	OriginalPrefix  string `msgpack:"o,omitempty"`
	CorrectedPrefix string `msgpack:"x,omitempty"`
}

// Options tune a Completer.
type Options struct {
	// CacheSize is the number of prefixes kept in the HotCache. Zero disables it.
	CacheSize int
	// MinFrequency hides completions scored below it.
	MinFrequency int
	// RankCorrections orders corrections by similarity to the input instead
	// of edit kind.
	RankCorrections bool
}

// DefaultOptions returns the options used by NewCompleter.
func DefaultOptions() Options {
	return Options{CacheSize: 2048, RankCorrections: true}
}

// OptionsFromConfig reads the completer settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CacheSize:       cfg.Suggest.CacheSize,
		MinFrequency:    cfg.Dict.MinFreqThreshold,
		RankCorrections: cfg.Suggest.RankCorrections,
	}
}

// Completer is safe for concurrent use. Words are stored lower-cased and
// the capitalization of the query is re-applied to results.
type Completer struct {
	mu           sync.RWMutex
	trie         *trie.Trie
	wordFreqs    map[string]int
	maxFrequency int
	hotCache     *HotCache
	opts         Options
}

func NewCompleter() *Completer {
	return NewCompleterWithOptions(DefaultOptions())
}

func NewCompleterWithOptions(opts Options) *Completer {
	return &Completer{
		trie:      trie.New(),
		wordFreqs: make(map[string]int),
		hotCache:  NewHotCache(opts.CacheSize),
		opts:      opts,
	}
}

// SetOptions replaces the options of a running completer. The HotCache is
// rebuilt with the new size since its lists depend on MinFrequency.
func (c *Completer) SetOptions(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts = opts
	c.hotCache = NewHotCache(opts.CacheSize)
	log.Debugf("Completer options updated: %+v", opts)
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// AddWord stores word with frequency, replacing the frequency of a word
// that is already stored.
func (c *Completer) AddWord(word string, frequency int) {
	word = normalize(word)
	if word == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.trie.Insert(word)
	c.wordFreqs[word] = frequency
	if frequency > c.maxFrequency {
		c.maxFrequency = frequency
	}
	c.hotCache.Invalidate(word)
}

// RemoveWord deletes word and reports whether it was stored.
func (c *Completer) RemoveWord(word string) bool {
	word = normalize(word)
	if word == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.trie.Remove(word) {
		return false
	}
	delete(c.wordFreqs, word)
	c.hotCache.Invalidate(word)
	return true
}

// Contains reports whether word is stored, ignoring case.
func (c *Completer) Contains(word string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trie.Contains(normalize(word))
}

// Frequency returns the stored frequency of word.
func (c *Completer) Frequency(word string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	freq, ok := c.wordFreqs[normalize(word)]
	return freq, ok
}

// Complete returns the stored words that extend prefix, highest frequency
// first. The prefix itself is never returned. A limit of zero or less
// returns everything.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	lowerPrefix, caps := utils.ProcessCapitals(strings.TrimSpace(prefix))

	c.mu.RLock()
	ranked, ok := c.hotCache.Get(lowerPrefix)
	if !ok {
		ranked = c.rankCompletions(lowerPrefix)
		c.hotCache.Put(lowerPrefix, ranked)
	}
	c.mu.RUnlock()

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	// Cached slices are shared; results get their own copy.
	results := make([]Suggestion, len(ranked))
	for i, s := range ranked {
		s.Word = utils.ApplyCapitals(s.Word, caps)
		results[i] = s
	}
	return results
}

// rankCompletions must be called with c.mu held.
func (c *Completer) rankCompletions(lowerPrefix string) []Suggestion {
	suffixes := c.trie.Complete(lowerPrefix)
	suggestions := make([]Suggestion, 0, len(suffixes))
	for _, suffix := range suffixes {
		word := lowerPrefix + suffix
		freq := c.wordFreqs[word]
		if freq < c.opts.MinFrequency {
			continue
		}
		suggestions = append(suggestions, Suggestion{Word: word, Frequency: freq})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Frequency != suggestions[j].Frequency {
			return suggestions[i].Frequency > suggestions[j].Frequency
		}
		return suggestions[i].Word < suggestions[j].Word
	})
	return suggestions
}

// Correct returns stored words one edit away from word. It returns nil
// when word is stored or empty.
func (c *Completer) Correct(word string, limit int) []Suggestion {
	lower, caps := utils.ProcessCapitals(strings.TrimSpace(word))
	if lower == "" {
		return nil
	}

	c.mu.RLock()
	found := c.trie.Suggest(lower)
	if !found.Found() {
		c.mu.RUnlock()
		return nil
	}
	filter := utils.NewSuggestionFilter(lower)
	corrections := make([]Suggestion, 0, len(found.Words))
	for _, w := range found.Words {
		// The same word can come from more than one edit kind.
		if !filter.ShouldInclude(w) {
			continue
		}
		corrections = append(corrections, Suggestion{
			Word:            w,
			Frequency:       c.wordFreqs[w],
			WasCorrected:    true,
			OriginalPrefix:  word,
			CorrectedPrefix: utils.ApplyCapitals(w, caps),
		})
	}
	c.mu.RUnlock()

	if c.opts.RankCorrections {
		rankBySimilarity(lower, corrections)
	}
	if limit > 0 && len(corrections) > limit {
		corrections = corrections[:limit]
	}
	for i := range corrections {
		corrections[i].Word = corrections[i].CorrectedPrefix
	}
	return corrections
}

// rankBySimilarity orders corrections by Jaro-Winkler similarity to word,
// then frequency.
func rankBySimilarity(word string, corrections []Suggestion) {
	similarity := make(map[string]float32, len(corrections))
	for _, s := range corrections {
		sim, err := edlib.StringsSimilarity(word, s.Word, edlib.JaroWinkler)
		if err != nil {
			log.Debugf("Similarity of %q and %q: %v", word, s.Word, err)
		}
		similarity[s.Word] = sim
	}
	sort.SliceStable(corrections, func(i, j int) bool {
		a, b := corrections[i], corrections[j]
		if similarity[a.Word] != similarity[b.Word] {
			return similarity[a.Word] > similarity[b.Word]
		}
		return a.Frequency > b.Frequency
	})
}

// Words returns every stored word.
func (c *Completer) Words() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	words := make([]string, 0, len(c.wordFreqs))
	for w := range c.wordFreqs {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	stats := map[string]int{
		"totalWords":   c.trie.Len(),
		"maxFrequency": c.maxFrequency,
	}
	c.mu.RUnlock()

	for k, v := range c.hotCache.Stats() {
		stats[k] = v
	}
	return stats
}
