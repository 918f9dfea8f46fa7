package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "openai", cfg.Embedder.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, DefaultCollection, cfg.Qdrant.Collection)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kizuna init")
}

func TestLoad_MergesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	content := "qdrant:\n  host: qdrant.example.com\n"
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "qdrant.example.com", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port, "unset values keep defaults")
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.Embedder.APIKey)
}

func TestLoad_FileKeyWinsOverEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	content := "embedder:\n  api_key: sk-from-file\n"
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0644))
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-from-file", cfg.Embedder.APIKey)
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	err := WriteDefault(dir)
	require.Error(t, err, "refuses to overwrite")
	assert.Contains(t, err.Error(), "already exists")
}

func TestDatabasePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/base", DefaultConfigDir, DefaultDatabaseFile), cfg.DatabasePath("/base"))

	cfg.SQLite.Path = "/elsewhere/data.db"
	assert.Equal(t, "/elsewhere/data.db", cfg.DatabasePath("/base"))
}
