package trie

// Complete returns the suffixes of every stored word that extends prefix.
// The prefix itself is never reported, even when it is a stored word; use
// Contains for that. Order is unspecified.
func (t *Trie) Complete(prefix string) []string {
	suffixes := make([]string, 0, 8)

	idx, ok := t.GoTo(prefix)
	if !ok {
		return suffixes
	}
	for _, child := range t.nodes.node(idx).Children {
		suffixes = append(suffixes, t.nodes.collect(child)...)
	}
	return suffixes
}
