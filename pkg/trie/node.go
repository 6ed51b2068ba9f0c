package trie

// NodeIndex addresses a node inside the trie's arena.
type NodeIndex int32

// rootIndex is the sentinel root; it is allocated once and never freed.
const rootIndex NodeIndex = 0

// rootValue is the root's character. It is never matched against input
// because lookups start from the root's children.
const rootValue rune = 0

// Node is one character position on a path from the root.
type Node struct {
	Value     rune
	Children  map[rune]NodeIndex
	EndOfWord bool
}

// arena owns every node. Parents refer to children by index, so readers
// can hold an index while the owning edge stays in the parent's map.
type arena struct {
	nodes []Node
	free  []NodeIndex
}

func newArena() *arena {
	a := &arena{nodes: make([]Node, 0, 64)}
	a.nodes = append(a.nodes, Node{
		Value:    rootValue,
		Children: make(map[rune]NodeIndex),
	})
	return a
}

// alloc returns a fresh node, reusing a freed slot when one is available.
func (a *arena) alloc(value rune, endOfWord bool) NodeIndex {
	n := Node{Value: value, Children: make(map[rune]NodeIndex), EndOfWord: endOfWord}
	if k := len(a.free); k > 0 {
		idx := a.free[k-1]
		a.free = a.free[:k-1]
		a.nodes[idx] = n
		return idx
	}
	a.nodes = append(a.nodes, n)
	return NodeIndex(len(a.nodes) - 1)
}

func (a *arena) node(idx NodeIndex) *Node {
	return &a.nodes[idx]
}

func (a *arena) child(idx NodeIndex, c rune) (NodeIndex, bool) {
	child, ok := a.nodes[idx].Children[c]
	return child, ok
}

// addChild creates a child for c under parent and returns it.
func (a *arena) addChild(parent NodeIndex, c rune, endOfWord bool) NodeIndex {
	idx := a.alloc(c, endOfWord)
	a.nodes[parent].Children[c] = idx
	return idx
}

// cut detaches the child for c from parent and releases the whole
// subtree below it back to the free list.
func (a *arena) cut(parent NodeIndex, c rune) {
	idx, ok := a.nodes[parent].Children[c]
	if !ok {
		return
	}
	delete(a.nodes[parent].Children, c)

	pending := []NodeIndex{idx}
	for len(pending) > 0 {
		last := len(pending) - 1
		cur := pending[last]
		pending = pending[:last]
		for _, ch := range a.nodes[cur].Children {
			pending = append(pending, ch)
		}
		a.nodes[cur] = Node{}
		a.free = append(a.free, cur)
	}
}

// live reports the number of allocated nodes, root included.
func (a *arena) live() int {
	return len(a.nodes) - len(a.free)
}
