package dictionary

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordtrie/pkg/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapSink records words with their frequency.
type mapSink map[string]int

func (m mapSink) AddWord(word string, frequency int) { m[word] = frequency }

func (m mapSink) RemoveWord(word string) bool {
	if _, ok := m[word]; !ok {
		return false
	}
	delete(m, word)
	return true
}

func (m mapSink) Contains(word string) bool {
	_, ok := m[word]
	return ok
}

func writeNamedChunk(t *testing.T, dir, name string, words []string, firstRank int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, words, firstRank))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0644))
}

func writeChunkFile(t *testing.T, dir string, id int, words []string, firstRank int) {
	t.Helper()
	writeNamedChunk(t, dir, ChunkFileName(id), words, firstRank)
}

func TestScoreForRank(t *testing.T) {
	assert.Equal(t, MaxScore, ScoreForRank(1))
	assert.Equal(t, MaxScore-9, ScoreForRank(10))
	assert.Equal(t, MaxScore, ScoreForRank(0))
	assert.Equal(t, 1, ScoreForRank(MaxScore))
	assert.Equal(t, 1, ScoreForRank(MaxScore+100))
}

func TestBuild(t *testing.T) {
	tr := NewBuilder(strings.NewReader("and\nant\n\nanymore\nbird\n")).Build()

	assert.Equal(t, 4, tr.Len())
	for _, w := range []string{"and", "ant", "anymore", "bird"} {
		assert.True(t, tr.Contains(w), w)
	}
	assert.ElementsMatch(t, []string{"d", "t", "ymore"}, tr.Complete("an"))
}

func TestBuildNilReader(t *testing.T) {
	assert.Equal(t, 0, NewBuilder(nil).Build().Len())
}

func TestBuildIntoTrimsAndRanks(t *testing.T) {
	sink := mapSink{}
	n, err := NewBuilder(strings.NewReader("  the \r\n\nof\n\xff\xfe\nand\n")).BuildInto(sink)
	require.NoError(t, err)

	assert.Equal(t, 3, n)
	assert.Equal(t, mapSink{
		"the": MaxScore,
		"of":  MaxScore - 1,
		"and": MaxScore - 2,
	}, sink)
}

func TestBuildIntoLinesCap(t *testing.T) {
	sink := mapSink{}
	// Blank lines still count toward the cap.
	n, err := NewBuilder(strings.NewReader("the\n\nof\nand\nto\n")).Lines(3).BuildInto(sink)
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Contains(t, sink, "the")
	assert.Contains(t, sink, "of")
	assert.NotContains(t, sink, "and")
}

func TestChunkRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, []string{"the", "über", "of"}, 5))

	entries, err := ReadChunk(&buf)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Word: "the", Score: ScoreForRank(5)},
		{Word: "über", Score: ScoreForRank(6)},
		{Word: "of", Score: ScoreForRank(7)},
	}, entries)
}

func TestReadChunkTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, []string{"alpha", "beta"}, 1))
	data := buf.Bytes()[:buf.Len()-3]

	entries, err := ReadChunk(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrCorruptChunk)
	assert.Equal(t, []Entry{{Word: "alpha", Score: MaxScore}}, entries)

	_, err = ReadChunk(bytes.NewReader([]byte{1, 0}))
	assert.ErrorIs(t, err, ErrCorruptChunk)
}

func TestSplitIntoChunks(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	n, err := SplitIntoChunks(dir, []string{"a", "b", "c", "d", "e"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	file, err := os.Open(filepath.Join(dir, ChunkFileName(2)))
	require.NoError(t, err)
	defer file.Close()
	entries, err := ReadChunk(file)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"c", ScoreForRank(3)}, {"d", ScoreForRank(4)}}, entries)

	_, err = SplitIntoChunks(dir, []string{"a"}, 0)
	assert.Error(t, err)
}

func TestLoaderAvailable(t *testing.T) {
	dir := t.TempDir()
	writeChunkFile(t, dir, 2, []string{"c"}, 3)
	writeChunkFile(t, dir, 1, []string{"a", "b"}, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dict_x.bin"), []byte{0, 0, 0, 0}, 0644))

	chunks, err := NewLoader(dir, mapSink{}).GetAvailable()
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].ID)
	assert.Equal(t, 2, chunks[0].WordCount)
	assert.Equal(t, 2, chunks[1].ID)
	assert.Equal(t, 1, chunks[1].WordCount)
}

func TestLoaderLoadEvict(t *testing.T) {
	dir := t.TempDir()
	writeChunkFile(t, dir, 1, []string{"a", "b"}, 1)
	writeChunkFile(t, dir, 2, []string{"b", "c"}, 3)

	sink := mapSink{}
	l := NewLoader(dir, sink)
	require.NoError(t, l.Load(1))
	require.NoError(t, l.Load(2))
	require.NoError(t, l.Load(2))

	// b keeps the score from the chunk that loaded it first.
	assert.Equal(t, mapSink{"a": MaxScore, "b": MaxScore - 1, "c": MaxScore - 3}, sink)
	assert.Equal(t, []int{1, 2}, l.GetLoadedIDs())

	stats := l.GetStats()
	assert.Equal(t, 3, stats.LoadedWords)
	assert.Equal(t, 2, stats.LoadedChunks)
	assert.Equal(t, 2, stats.AvailableChunks)
	assert.Equal(t, MaxScore, stats.MaxFrequency)

	require.NoError(t, l.Evict(2))
	assert.Equal(t, mapSink{"a": MaxScore, "b": MaxScore - 1}, sink)

	require.NoError(t, l.Evict(1))
	assert.Empty(t, sink)
	assert.Equal(t, 0, l.GetStats().LoadedWords)

	assert.ErrorIs(t, l.Evict(1), ErrChunkNotLoaded)
	assert.Error(t, l.Load(9))
}

func TestLoaderUnpaddedNames(t *testing.T) {
	dir := t.TempDir()
	writeNamedChunk(t, dir, "dict_1.bin", []string{"alpha", "beta"}, 1)
	writeChunkFile(t, dir, 2, []string{"gamma"}, 3)

	sink := mapSink{}
	l := NewLoader(dir, sink)
	n, err := l.LoadUpTo(0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, mapSink{"alpha": MaxScore, "beta": MaxScore - 1, "gamma": MaxScore - 2}, sink)

	direct := mapSink{}
	require.NoError(t, NewLoader(dir, direct).Load(1))
	assert.Len(t, direct, 2)
}

func TestLoaderDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeChunkFile(t, dir, 1, []string{"a"}, 1)
	writeNamedChunk(t, dir, "dict_1.bin", []string{"x", "y"}, 1)

	chunks, err := NewLoader(dir, mapSink{}).GetAvailable()
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, ChunkFileName(1), filepath.Base(chunks[0].Filename))
	assert.Equal(t, 1, chunks[0].WordCount)
}

func TestLoaderKeepsExistingWords(t *testing.T) {
	dir := t.TempDir()
	writeChunkFile(t, dir, 1, []string{"zebra", "apple"}, 1)

	tr := trie.New()
	tr.Insert("zebra")
	l := NewLoader(dir, trieSink{tr})

	require.NoError(t, l.Load(1))
	assert.Equal(t, 1, l.GetStats().LoadedWords)
	assert.True(t, tr.Contains("apple"))

	require.NoError(t, l.Evict(1))
	assert.True(t, tr.Contains("zebra"))
	assert.False(t, tr.Contains("apple"))
}

func TestLoaderLoadUpTo(t *testing.T) {
	dir := t.TempDir()
	_, err := SplitIntoChunks(dir, []string{"a", "b", "c", "d", "e", "f"}, 2)
	require.NoError(t, err)

	l := NewLoader(dir, mapSink{})
	n, err := l.LoadUpTo(3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 4, l.GetStats().LoadedWords)

	all := NewLoader(dir, mapSink{})
	n, err = all.LoadUpTo(0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = NewLoader(t.TempDir(), mapSink{}).LoadUpTo(0)
	assert.ErrorIs(t, err, ErrNoChunks)
}

func TestRuntimeLoaderSetDictionarySize(t *testing.T) {
	dir := t.TempDir()
	_, err := SplitIntoChunks(dir, []string{"a", "b", "c", "d", "e"}, 2)
	require.NoError(t, err)

	sink := mapSink{}
	rl := NewRuntimeLoader(NewLoader(dir, sink))

	count, err := rl.GetAvailableChunkCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, rl.SetDictionarySize(2))
	assert.Equal(t, 2, rl.CurrentChunks())
	assert.Len(t, sink, 4)

	require.NoError(t, rl.SetDictionarySize(3))
	assert.Len(t, sink, 5)

	require.NoError(t, rl.SetDictionarySize(1))
	assert.Equal(t, mapSink{"a": MaxScore, "b": MaxScore - 1}, sink)

	assert.Error(t, rl.SetDictionarySize(0))
	assert.Error(t, rl.SetDictionarySize(4))
	assert.Equal(t, 1, rl.CurrentChunks())
}

func TestRuntimeLoaderOptions(t *testing.T) {
	dir := t.TempDir()
	words := make([]string, 2500)
	for i := range words {
		words[i] = strings.Repeat("x", i%7+1) + string(rune('a'+i%26))
	}
	_, err := SplitIntoChunks(dir, words, 1000)
	require.NoError(t, err)

	opts, err := NewRuntimeLoader(NewLoader(dir, mapSink{})).GetDictionarySizeOptions()
	require.NoError(t, err)
	assert.Equal(t, []DictionarySizeOption{
		{ChunkCount: 1, WordCount: 1000, SizeLabel: "1K words"},
		{ChunkCount: 2, WordCount: 2000, SizeLabel: "2K words"},
		{ChunkCount: 3, WordCount: 2500, SizeLabel: "2K words"},
	}, opts)
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	writeChunkFile(t, dir, 1, []string{"a"}, 1)
	text := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(text, []byte("the\nof\n"), 0644))
	other := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(other, []byte{1, 2, 3, 4}, 0644))

	format, err := DetectFileFormat(filepath.Join(dir, ChunkFileName(1)))
	require.NoError(t, err)
	assert.Equal(t, FormatChunk, format)

	format, err = DetectFileFormat(text)
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	format, err = DetectFileFormat(other)
	assert.Error(t, err)
	assert.Equal(t, FormatUnknown, format)
	assert.Equal(t, "Unknown", format.String())
}

func TestValidateChunkFormatRejectsNegativeCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), ChunkFileName(1))
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xff, 0xff, 0xff}, 0644))
	assert.Error(t, ValidateFileFormat(path, FormatChunk))
}
