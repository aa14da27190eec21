package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "renamarr", "config.toml")

	err := WriteDefault(path)
	require.NoError(t, err, "WriteDefault failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read written file")

	// Check for key sections
	assert.Contains(t, string(content), "[server]")
	assert.Contains(t, string(content), "[renaming]")
	assert.Contains(t, string(content), "${TMDB_API_KEY}")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfig_Write_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg := &Config{Server: ServerConfig{Port: 9100}}
	require.NoError(t, cfg.Write(path))

	loaded, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, loaded.Server.Port)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestWriteDefault_CreatesDir(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "deep", "config.toml")

	err := WriteDefault(path)
	require.NoError(t, err, "WriteDefault failed")

	_, err = os.Stat(path)
	assert.False(t, os.IsNotExist(err), "file was not created")
}

func TestConfig_Write(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: 9000},
		Renaming: RenamingConfig{NamingScheme: "{n} [{y}]", OutputDir: "/media/movies"},
	}

	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	err := cfg.Write(path)
	require.NoError(t, err, "Write failed")

	content, _ := os.ReadFile(path)
	assert.Contains(t, string(content), "127.0.0.1")
	assert.Contains(t, string(content), "9000")
	assert.Contains(t, string(content), "/media/movies")

	// The written file loads back
	loaded, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, "{n} [{y}]", loaded.Renaming.NamingScheme)
}

func TestDefaultConfig_OnlyRequiresTMDBKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	require.NoError(t, os.Unsetenv("TMDB_API_KEY"))
	_, missing := substituteEnvVars(defaultConfig)
	assert.Equal(t, []string{"TMDB_API_KEY"}, missing)

	t.Setenv("TMDB_API_KEY", "k")
	content, missing := substituteEnvVars(defaultConfig)
	assert.Empty(t, missing)
	assert.Contains(t, content, `api_key = "k"`)
	assert.Contains(t, content, `# token = "${PLEX_TOKEN}"`)
}
