package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStub(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("[server]\n"), 0644))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Contains(t, DefaultPath(), filepath.Join(".config", "renamarr", "config.toml"))

	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/renamarr/config.toml", DefaultPath())
}

func TestDiscover_EnvOverride(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "custom.toml")
	writeStub(t, cfgPath)
	t.Setenv(EnvConfig, cfgPath)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_EnvOverrideMissing(t *testing.T) {
	t.Setenv(EnvConfig, "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvConfig)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDiscover_WorkingDir(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"config.toml", []string{"config.toml"}, "config.toml"},
		{"renamarr.toml", []string{"renamarr.toml"}, "renamarr.toml"},
		{"config.toml preferred", []string{"renamarr.toml", "config.toml"}, "config.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				writeStub(t, filepath.Join(dir, f))
			}
			t.Chdir(dir)
			t.Setenv(EnvConfig, "")
			t.Setenv("XDG_CONFIG_HOME", "/nonexistent/xdg")

			path, err := Discover()
			require.NoError(t, err)
			assert.Equal(t, tt.want, path)
		})
	}
}

func TestDiscover_XDG(t *testing.T) {
	t.Chdir(t.TempDir())
	xdg := t.TempDir()
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	want := filepath.Join(xdg, "renamarr", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(want), 0755))
	writeStub(t, want)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestDiscover_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config.toml"), 0755))
	writeStub(t, filepath.Join(dir, "renamarr.toml"))
	t.Chdir(dir)
	t.Setenv(EnvConfig, "")

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "renamarr.toml", path)
}

func TestDiscover_NotFound(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", "/nonexistent/xdg")

	_, err := Discover()
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "renamarr.toml")
}
