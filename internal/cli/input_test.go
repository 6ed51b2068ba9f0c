package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, c *suggest.Completer, noFilter bool, input string) string {
	t.Helper()
	var out bytes.Buffer
	h := NewInputHandler(c, 1, 24, 5, noFilter)
	h.SetIO(strings.NewReader(input), &out)
	require.NoError(t, h.Start())
	return out.String()
}

func newCompleter() *suggest.Completer {
	c := suggest.NewCompleter()
	c.AddWord("and", 100)
	c.AddWord("ant", 300)
	c.AddWord("anymore", 2000)
	c.AddWord("bird", 50)
	return c
}

func TestCompletions(t *testing.T) {
	out := run(t, newCompleter(), false, "an\n")
	assert.Contains(t, out, "Found 3 suggestions for prefix 'an'")
	assert.Contains(t, out, "anymore")
	assert.Contains(t, out, "2,000")
	assert.Less(t, strings.Index(out, "anymore"), strings.Index(out, "ant"))
}

func TestDidYouMean(t *testing.T) {
	out := run(t, newCompleter(), false, "brd\nbird\nzzyx\n")
	assert.Contains(t, out, "No suggestions found for prefix: 'brd'")
	assert.Contains(t, out, "did you mean:")
	assert.Contains(t, out, "bird")
	assert.Contains(t, out, "'bird' is a word with no longer completions")
	assert.Contains(t, out, "no suggestions found for 'zzyx'")
}

func TestFilter(t *testing.T) {
	out := run(t, newCompleter(), false, "aaa\n12\n")
	assert.Contains(t, out, "'aaa' (filtered out)")
	assert.Contains(t, out, "'12' (filtered out)")

	out = run(t, newCompleter(), true, "aaa\n")
	assert.NotContains(t, out, "filtered out")
}

func TestPrefixLength(t *testing.T) {
	out := run(t, newCompleter(), false, strings.Repeat("a", 30)+"\n")
	assert.Contains(t, out, "Prefix too long")
}

func TestWordCommands(t *testing.T) {
	c := newCompleter()
	out := run(t, c, false, strings.Join([]string{
		":add birb 40",
		":add birb 45",
		":has birb",
		":add b1rd",
		":add birb x",
		":rm bird",
		":rm bird",
		":fix brb",
		":fix birb",
		":has",
		":nope",
	}, "\n"))

	assert.Contains(t, out, "added")
	assert.Contains(t, out, "updated")
	assert.Contains(t, out, "is in the dictionary")
	assert.Contains(t, out, `cannot add "b1rd"`)
	assert.Contains(t, out, "frequency must be a positive number")
	assert.Contains(t, out, "removed")
	assert.Contains(t, out, "bird is not in the dictionary")
	assert.Contains(t, out, "did you mean:")
	assert.Contains(t, out, "no suggestions needed")
	assert.Contains(t, out, "usage: :has word")
	assert.Contains(t, out, "unknown command :nope")

	assert.True(t, c.Contains("birb"))
	assert.False(t, c.Contains("bird"))
	freq, _ := c.Frequency("birb")
	assert.Equal(t, 45, freq)
}

func TestStatsAndQuit(t *testing.T) {
	out := run(t, newCompleter(), false, "an\n:stats\n:q\n:add never\n")
	assert.Contains(t, out, "totalWords")
	assert.Contains(t, out, "requests")
	assert.NotContains(t, out, "added")
}

func TestHelp(t *testing.T) {
	out := run(t, newCompleter(), false, ":help\n:\n")
	assert.Equal(t, 2, strings.Count(out, ":fix word"))
}
