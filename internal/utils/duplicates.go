package utils

import (
	"strings"
)

// SuggestionFilter drops repeated words and the input word itself,
// ignoring case.
type SuggestionFilter struct {
	seenWords map[string]struct{}
}

// NewSuggestionFilter creates a filter that already excludes input.
func NewSuggestionFilter(input string) *SuggestionFilter {
	f := &SuggestionFilter{seenWords: make(map[string]struct{})}
	f.seenWords[strings.ToLower(input)] = struct{}{}
	return f
}

// ShouldInclude returns true the first time a word is seen.
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	lower := strings.ToLower(word)
	if _, seen := f.seenWords[lower]; seen {
		return false
	}
	f.seenWords[lower] = struct{}{}
	return true
}
