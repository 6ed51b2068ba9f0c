package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaReusesFreedSlots(t *testing.T) {
	a := newArena()
	p := a.addChild(rootIndex, 'a', false)
	a.addChild(p, 'b', true)
	a.addChild(p, 'c', true)
	assert.Equal(t, 4, a.live())

	a.cut(rootIndex, 'a')
	assert.Equal(t, 1, a.live())
	assert.Empty(t, a.node(rootIndex).Children)

	a.addChild(rootIndex, 'x', true)
	assert.Equal(t, 2, a.live())
	assert.Len(t, a.nodes, 4, "freed slots are reused before growing")
}

func TestArenaCutMissingChild(t *testing.T) {
	a := newArena()
	a.addChild(rootIndex, 'a', true)
	a.cut(rootIndex, 'z')
	assert.Equal(t, 2, a.live())
}
