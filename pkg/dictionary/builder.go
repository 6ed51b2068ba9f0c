/*
Package dictionary bulk-loads words into a trie.

Two sources are supported: line-oriented text files, one word per line in
descending frequency order, and binary chunk files (dict_0001.bin, ...)
that carry a rank per word. Words are handed to a Sink so the same loaders
feed both a bare trie.Trie and the ranked suggest.Completer.
*/
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/charmbracelet/log"
)

// MaxScore is the score given to the highest ranked word.
const MaxScore = 65535

// Sink receives loaded words.
type Sink interface {
	AddWord(word string, frequency int)
	RemoveWord(word string) bool
	Contains(word string) bool
}

// ScoreForRank converts a 1-based rank into a score, highest first.
// Ranks past MaxScore all score 1.
func ScoreForRank(rank int) int {
	if rank < 1 {
		rank = 1
	}
	if rank > MaxScore {
		return 1
	}
	return MaxScore - rank + 1
}

// Builder reads one word per line from a text source.
type Builder struct {
	reader io.Reader
	lines  int
}

// NewBuilder creates a Builder reading from r.
func NewBuilder(r io.Reader) *Builder {
	return &Builder{reader: r}
}

// Lines caps the number of lines read. Zero or less reads everything.
func (b *Builder) Lines(n int) *Builder {
	b.lines = n
	return b
}

// Build reads the source into a new trie. Read errors are logged and
// whatever was read up to that point is kept.
func (b *Builder) Build() *trie.Trie {
	t := trie.New()
	if b.reader == nil {
		return t
	}
	if _, err := b.BuildInto(trieSink{t}); err != nil {
		log.Errorf("Dictionary read stopped early: %v", err)
	}
	return t
}

// BuildInto streams the source into sink and returns the number of words
// handed over. Lines are trimmed; empty lines and lines that are not valid
// UTF-8 are skipped without counting toward the rank. Each line counts
// toward the Lines cap.
func (b *Builder) BuildInto(sink Sink) (int, error) {
	if b.reader == nil {
		return 0, nil
	}

	scanner := bufio.NewScanner(b.reader)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	added := 0
	for line := 1; scanner.Scan(); line++ {
		if b.lines > 0 && line > b.lines {
			break
		}
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if !utf8.ValidString(word) {
			log.Warnf("Skipping line %d: invalid UTF-8", line)
			continue
		}
		added++
		sink.AddWord(word, ScoreForRank(added))
	}
	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("read dictionary after %d words: %w", added, err)
	}
	log.Debugf("Loaded %d words from text dictionary", added)
	return added, nil
}

// trieSink adapts a bare trie to Sink; frequencies are dropped.
type trieSink struct {
	t *trie.Trie
}

func (s trieSink) AddWord(word string, _ int) { s.t.Insert(word) }

func (s trieSink) RemoveWord(word string) bool { return s.t.Remove(word) }

func (s trieSink) Contains(word string) bool { return s.t.Contains(word) }
