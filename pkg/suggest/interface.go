// Package suggest ranks completions and spelling corrections on top of a trie.Trie.
package suggest

import "github.com/bastiangx/wordtrie/pkg/dictionary"

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	dictionary.Sink

	// Complete returns suggestions for a given prefix with a limit
	Complete(prefix string, limit int) []Suggestion

	// Correct returns spelling corrections for an absent word
	Correct(word string, limit int) []Suggestion

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}

var _ ICompleter = (*Completer)(nil)
