package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, `
[server]
max_limit = 10

[dict]
max_lines = 500

[suggest]
cache_size = 16
rank_corrections = false
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Server.MaxLimit)
	assert.Equal(t, 500, cfg.Dict.MaxLines)
	assert.Equal(t, 16, cfg.Suggest.CacheSize)
	assert.False(t, cfg.Suggest.RankCorrections)
	assert.Equal(t, DefaultConfig().CLI, cfg.CLI)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, `
[server]
max_limit = "lots"
max_prefix = 30

[cli]
default_limit = 5
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Server.MaxLimit, cfg.Server.MaxLimit)
	assert.Equal(t, 30, cfg.Server.MaxPrefix)
	assert.Equal(t, 5, cfg.CLI.DefaultLimit)
}

func TestLoadConfigGarbageFallsBackToDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, "this is = = not toml [")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigRejectsInvalidRanges(t *testing.T) {
	path := writeFile(t, t.TempDir(), FileName, `
[server]
min_prefix = 10
max_prefix = 2
`)
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadConfigWithPriority(t *testing.T) {
	dir := t.TempDir()
	custom := writeFile(t, dir, "custom.toml", "[cli]\ndefault_limit = 3\n")
	defaultPath := filepath.Join(dir, "default", FileName)

	cfg, used := LoadConfigWithPriority(custom, defaultPath)
	assert.Equal(t, custom, used)
	assert.Equal(t, 3, cfg.CLI.DefaultLimit)

	cfg, used = LoadConfigWithPriority(filepath.Join(dir, "missing.toml"), defaultPath)
	assert.Equal(t, defaultPath, used)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, used = LoadConfigWithPriority("", "")
	assert.Empty(t, used)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()

	limit := 12
	off := false
	require.NoError(t, cfg.Update(path, &limit, nil, nil, &off))

	saved, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, saved.Server.MaxLimit)
	assert.False(t, saved.Server.EnableFilter)

	bad := 0
	assert.ErrorIs(t, cfg.Update(path, &bad, nil, nil, nil), ErrInvalid)
}
