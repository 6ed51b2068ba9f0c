/*
Package trie implements an in-memory prefix tree over words with exact
membership, prefix completion and single-edit spelling suggestions.

Nodes live in an arena and are addressed by NodeIndex; every node is owned
by the children map of exactly one parent. A Trie is not safe for concurrent
mutation. Concurrent reads are safe while no Insert or Remove is running;
callers that mix both wrap it, see pkg/suggest.

	t := trie.From("and", "ant", "anymore")
	t.Contains("ant")   // true
	t.Complete("an")    // [d t ymore] in any order
	t.Suggest("nat")    // Needed, [ant]
*/
package trie

import "unicode/utf8"

// Trie is a prefix tree of words.
type Trie struct {
	nodes *arena
	words int
}

// New returns an empty Trie.
func New() *Trie {
	return &Trie{nodes: newArena()}
}

// From builds a Trie holding words.
func From(words ...string) *Trie {
	t := New()
	for _, w := range words {
		t.Insert(w)
	}
	return t
}

// Len returns the number of distinct words stored.
func (t *Trie) Len() int {
	return t.words
}

// Insert adds word. Inserting a word that is already stored is a no-op.
// The empty string is ignored because the root never terminates a word,
// and so is a word that is not valid UTF-8.
func (t *Trie) Insert(word string) bool {
	if !storable(word) {
		return false
	}
	cur := rootIndex
	for _, c := range word {
		next, ok := t.nodes.child(cur, c)
		if !ok {
			next = t.nodes.addChild(cur, c, false)
		}
		cur = next
	}

	n := t.nodes.node(cur)
	if n.EndOfWord {
		return false
	}
	n.EndOfWord = true
	t.words++
	return true
}

// Contains reports whether word is stored.
func (t *Trie) Contains(word string) bool {
	idx, ok := t.GoTo(word)
	if !ok || idx == rootIndex {
		return false
	}
	return t.nodes.node(idx).EndOfWord
}

// GoTo follows path from the root and returns the node it ends on.
// The empty path resolves to the root; invalid UTF-8 resolves nowhere.
func (t *Trie) GoTo(path string) (NodeIndex, bool) {
	if !utf8.ValidString(path) {
		return 0, false
	}
	cur := rootIndex
	for _, c := range path {
		next, ok := t.nodes.child(cur, c)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// Node returns a copy of the node at idx. The Children map is shared with
// the trie and must not be modified.
func (t *Trie) Node(idx NodeIndex) Node {
	return *t.nodes.node(idx)
}

// Remove deletes word and reports whether it was stored. Removing an
// absent word leaves the trie and its count untouched.
//
// While descending, the deepest ancestor that terminates another word or
// branches is kept as the cut point; everything below it on word's path
// belongs to word alone and is released.
func (t *Trie) Remove(word string) bool {
	if !storable(word) {
		return false
	}
	runes := []rune(word)

	cutParent := rootIndex
	cutChar := runes[0]

	cur := rootIndex
	for i, c := range runes {
		next, ok := t.nodes.child(cur, c)
		if !ok {
			return false
		}
		cur = next

		if i == len(runes)-1 {
			break
		}
		n := t.nodes.node(cur)
		if n.EndOfWord || len(n.Children) > 1 {
			cutParent = cur
			cutChar = runes[i+1]
		}
	}

	n := t.nodes.node(cur)
	if !n.EndOfWord {
		return false
	}
	if len(n.Children) > 0 {
		n.EndOfWord = false
	} else {
		t.nodes.cut(cutParent, cutChar)
	}
	t.words--
	return true
}

// Words returns every stored word grouped by its first character.
func (t *Trie) Words() map[rune][]string {
	root := t.nodes.node(rootIndex)
	res := make(map[rune][]string, len(root.Children))
	for c, child := range root.Children {
		res[c] = t.nodes.collect(child)
	}
	return res
}

// WordsFrom returns every word stored in the subtree at idx, each starting
// with the character of idx itself. For the root, whose character is not
// part of any word, all stored words are returned.
func (t *Trie) WordsFrom(idx NodeIndex) []string {
	if idx != rootIndex {
		return t.nodes.collect(idx)
	}
	var words []string
	for _, child := range t.nodes.node(rootIndex).Children {
		words = append(words, t.nodes.collect(child)...)
	}
	return words
}

// storable reports whether word can be held by a trie.
func storable(word string) bool {
	return word != "" && utf8.ValidString(word)
}
