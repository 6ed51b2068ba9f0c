package trie

// frame is a pending traversal entry. depth 1 is the starting node.
type frame struct {
	depth int
	idx   NodeIndex
}

// collect returns every word that terminates at or below start. Each word
// begins with start's own character. Order is unspecified.
func (a *arena) collect(start NodeIndex) []string {
	words := make([]string, 0, 8)
	stack := make([]frame, 0, 16)
	stack = append(stack, frame{depth: 1, idx: start})

	word := make([]rune, 0, 16)

	for len(stack) > 0 {
		top := len(stack) - 1
		f := stack[top]
		stack = stack[:top]

		n := a.node(f.idx)
		word = append(word, n.Value)

		if len(n.Children) == 0 {
			if n.EndOfWord {
				words = append(words, string(word))
			}
			if len(stack) == 0 {
				break
			}
			// Back up to the branch point of the next pending entry so its
			// path is rebuilt without characters from this one.
			word = word[:stack[len(stack)-1].depth-1]
			continue
		}

		if n.EndOfWord {
			words = append(words, string(word))
		}
		for _, child := range n.Children {
			stack = append(stack, frame{depth: f.depth + 1, idx: child})
		}
	}
	return words
}
