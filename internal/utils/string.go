package utils

import (
	"strings"
	"unicode"
)

// CapitalInfo remembers which rune positions of an input were upper case.
type CapitalInfo struct {
	positions []bool
}

// ProcessCapitals returns the lower-cased form of s together with the
// positions that were capitalized.
func ProcessCapitals(s string) (string, CapitalInfo) {
	runes := []rune(s)
	info := CapitalInfo{positions: make([]bool, len(runes))}
	for i, r := range runes {
		info.positions[i] = unicode.IsUpper(r)
	}
	return strings.ToLower(s), info
}

// HasCapitals reports whether any position was capitalized.
func (ci CapitalInfo) HasCapitals() bool {
	for _, up := range ci.positions {
		if up {
			return true
		}
	}
	return false
}

// ApplyCapitals upper-cases the runes of word at the remembered positions.
// Positions past the end of word are ignored.
func ApplyCapitals(word string, info CapitalInfo) string {
	if !info.HasCapitals() {
		return word
	}
	runes := []rune(word)
	for i := 0; i < len(runes) && i < len(info.positions); i++ {
		if info.positions[i] {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}
	return string(runes)
}
