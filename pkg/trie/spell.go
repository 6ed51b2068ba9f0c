package trie

import (
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
)

// Alphabet is the set of letters tried by alteration and insertion edits.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// EditKind names a family of single-edit candidates.
type EditKind int

const (
	Deletion EditKind = iota
	Transposition
	Alteration
	Insertion
)

// EditKinds lists every family in the order Suggest tries them.
var EditKinds = []EditKind{Deletion, Transposition, Alteration, Insertion}

func (k EditKind) String() string {
	switch k {
	case Deletion:
		return "deletion"
	case Transposition:
		return "transposition"
	case Alteration:
		return "alteration"
	case Insertion:
		return "insertion"
	}
	return "unknown"
}

// Suggestions is the result of Suggest.
//
// Needed is false when the word is already stored and nothing was tried.
// When Needed is true, an empty Words means no single-edit candidate is
// stored.
type Suggestions struct {
	Needed bool
	Words  []string
}

// Found reports whether at least one correction was found.
func (s Suggestions) Found() bool {
	return s.Needed && len(s.Words) > 0
}

// Suggest returns the stored words one deletion, adjacent transposition,
// alteration or insertion away from word.
func (t *Trie) Suggest(word string) Suggestions {
	if t.Contains(word) {
		return Suggestions{}
	}
	if !utf8.ValidString(word) {
		return Suggestions{Needed: true}
	}

	res := Suggestions{Needed: true}
	for _, kind := range EditKinds {
		res.Words = append(res.Words, t.Candidates(word, kind)...)
	}
	return res
}

// Candidates returns the stored words reachable from word by a single edit
// of the given kind. Each word appears once, in generation order.
func (t *Trie) Candidates(word string, kind EditKind) []string {
	if !utf8.ValidString(word) {
		return nil
	}
	runes := []rune(word)
	c := &candidates{trie: t, seen: mapset.NewThreadUnsafeSet[string]()}

	switch kind {
	case Deletion:
		c.deletions(runes)
	case Transposition:
		c.transpositions(runes)
	case Alteration:
		c.alterations(runes)
	case Insertion:
		c.insertions(runes)
	}
	return c.found
}

type candidates struct {
	trie  *Trie
	seen  mapset.Set[string]
	found []string
}

// check records candidate when it is stored and not yet reported.
func (c *candidates) check(candidate []rune) {
	s := string(candidate)
	if !c.trie.Contains(s) {
		return
	}
	if c.seen.Add(s) {
		c.found = append(c.found, s)
	}
}

// deletions drops the character at each position: |word|-1 long.
func (c *candidates) deletions(word []rune) {
	buf := make([]rune, 0, len(word))
	for i := range word {
		buf = append(buf[:0], word[:i]...)
		buf = append(buf, word[i+1:]...)
		c.check(buf)
	}
}

// transpositions swaps each adjacent pair: same length.
func (c *candidates) transpositions(word []rune) {
	buf := make([]rune, len(word))
	copy(buf, word)
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] == buf[i+1] {
			continue
		}
		buf[i], buf[i+1] = buf[i+1], buf[i]
		c.check(buf)
		buf[i], buf[i+1] = buf[i+1], buf[i]
	}
}

// alterations replaces each position with every letter: same length.
func (c *candidates) alterations(word []rune) {
	buf := make([]rune, len(word))
	copy(buf, word)
	for i, orig := range word {
		for _, letter := range Alphabet {
			if letter == orig {
				continue
			}
			buf[i] = letter
			c.check(buf)
		}
		buf[i] = orig
	}
}

// insertions puts every letter at each of the |word|+1 positions.
func (c *candidates) insertions(word []rune) {
	buf := make([]rune, len(word)+1)
	for i := 0; i <= len(word); i++ {
		copy(buf[:i], word[:i])
		copy(buf[i+1:], word[i:])
		for _, letter := range Alphabet {
			buf[i] = letter
			c.check(buf)
		}
	}
}
