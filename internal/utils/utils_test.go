package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInput(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"hello", true},
		{"über", true},
		{"well-known", true},
		{"", false},
		{"1234", false},
		{"a$", false},
		{"aaa", false},
		{"aa", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidInput(tt.input), "%q", tt.input)
	}
}

func TestIsWord(t *testing.T) {
	assert.True(t, IsWord("bird"))
	assert.True(t, IsWord("Straße"))
	assert.False(t, IsWord(""))
	assert.False(t, IsWord("b1rd"))
	assert.False(t, IsWord("two words"))
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter("Bird")
	assert.False(t, f.ShouldInclude("bird"))
	assert.True(t, f.ShouldInclude("bard"))
	assert.False(t, f.ShouldInclude("BARD"))
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "0", FormatWithCommas(0))
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "65,535", FormatWithCommas(65535))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
	assert.Equal(t, "-12,345", FormatWithCommas(-12345))
}

func TestCapitals(t *testing.T) {
	lower, caps := ProcessCapitals("HeLlo")
	assert.Equal(t, "hello", lower)
	assert.True(t, caps.HasCapitals())
	assert.Equal(t, "HeLlo world", ApplyCapitals("hello world", caps))
	assert.Equal(t, "He", ApplyCapitals("he", caps))

	lower, caps = ProcessCapitals("Über")
	assert.Equal(t, "über", lower)
	assert.Equal(t, "Überall", ApplyCapitals("überall", caps))

	_, caps = ProcessCapitals("plain")
	assert.False(t, caps.HasCapitals())
	assert.Equal(t, "plainly", ApplyCapitals("plainly", caps))
}

func TestHasChunkFiles(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, HasChunkFiles(dir))
	assert.False(t, HasChunkFiles(filepath.Join(dir, "missing")))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dict_0001.bin"), []byte{0, 0, 0, 0}, 0644))
	assert.True(t, HasChunkFiles(dir))
}

func TestSaveAndLoadTOML(t *testing.T) {
	type section struct {
		Size int  `toml:"size"`
		On   bool `toml:"on"`
	}
	type doc struct {
		Main section `toml:"main"`
	}

	path := filepath.Join(t.TempDir(), "x.toml")
	require.NoError(t, SaveTOMLFile(doc{Main: section{Size: 3, On: true}}, path))

	var got doc
	unknown, err := LoadTOMLFile(path, &got)
	require.NoError(t, err)
	assert.Empty(t, unknown)
	assert.Equal(t, 3, got.Main.Size)

	require.NoError(t, os.WriteFile(path, []byte("[main]\nsize = 4\nextra = 1\n"), 0644))
	unknown, err = LoadTOMLFile(path, &got)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.extra"}, unknown)

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)
	sec, ok := ExtractSection(data, "main")
	require.True(t, ok)
	size, ok := ExtractInt64(sec, "size")
	assert.True(t, ok)
	assert.Equal(t, 4, size)
	_, ok = ExtractBool(sec, "size")
	assert.False(t, ok)
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	res := CheckDirStatus(dir)
	assert.True(t, res.Exists)
	assert.True(t, res.Writable)
	assert.NoError(t, res.Error)
	assert.True(t, FileExists(dir))
}
