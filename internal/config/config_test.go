package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "librarian", "cards.db"), cfg.Database)
	assert.Equal(t, "info", cfg.LogLevel)

	_, err = os.Stat(filepath.Join(dir, "config", "librarian", "config.toml"))
	assert.NoError(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "librarian.toml")
	content := `database = "/tmp/cards.db"
log_format = "json"
tables_file = "tables.toml"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cards.db", cfg.Database)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "tables.toml", cfg.TablesFile)
	// Unset keys keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("database = "), 0644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "error decoding config file")
}

func TestInitAndSetDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	got, err := Init(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = Init(path, false)
	assert.ErrorContains(t, err, "already exists")
	_, err = Init(path, true)
	assert.NoError(t, err)

	db := filepath.Join(t.TempDir(), "other.db")
	require.NoError(t, SetDatabase(path, db))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, db, cfg.Database)
}

func TestEnsureDatabaseDir(t *testing.T) {
	db := filepath.Join(t.TempDir(), "a", "b", "cards.db")
	require.NoError(t, EnsureDatabaseDir(db))
	info, err := os.Stat(filepath.Dir(db))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, EnsureDatabaseDir(":memory:"))
}
