package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/renamarr/internal/config"
	"github.com/vmunix/renamarr/internal/jobs"
	"github.com/vmunix/renamarr/internal/metadata"
	"github.com/vmunix/renamarr/internal/scheduler"
)

func loadConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg, err := config.LoadWithoutValidation(path)
	require.NoError(t, err)
	return cfg
}

func TestOpenDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "renamarr.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
	assert.Equal(t, 0, count(t, db, "rename_history"))
	assert.Equal(t, 0, count(t, db, "events"))
}

func TestOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "renamarr.db")
	cfg := loadConfig(t, `
[server]
database = "`+dbPath+`"

[tmdb]
api_key = "test-key"

[matching]
ffprobe_path = "/nonexistent/ffprobe"
extract_media_info = true

[plex]
url = "http://plex.local:32400"
token = "tok"
`)

	svc, err := Open(cfg, "1.2.3", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, svc.Close()) })

	assert.NotNil(t, svc.Runner)
	assert.NotNil(t, svc.Matcher)
	assert.NotNil(t, svc.Plex)
	assert.False(t, svc.MediaInfo.Available())
	assert.FileExists(t, dbPath)
}

func TestOpen_WithoutPlex(t *testing.T) {
	cfg := loadConfig(t, `
[server]
database = "`+filepath.Join(t.TempDir(), "r.db")+`"
`)
	svc, err := Open(cfg, "dev", nil)
	require.NoError(t, err)
	defer svc.Close()

	assert.Nil(t, svc.Plex)
}

func TestDefaults(t *testing.T) {
	cfg := loadConfig(t, `
[tmdb]
language = "de"

[matching]
default_source = "tvdb"

[renaming]
naming_scheme = "{n} - {s00e00}"
operation = "copy"

[jobs]
webhook_url = "http://hooks.local/done"
`)

	assert.Equal(t, jobs.Defaults{
		DataSource:   metadata.SourceTVDB,
		NamingScheme: "{n} - {s00e00}",
		Operation:    jobs.OpCopy,
		Language:     "de",
		WebhookURL:   "http://hooks.local/done",
	}, Defaults(cfg))
}

func TestDataSource(t *testing.T) {
	tests := []struct {
		in   string
		want metadata.DataSource
	}{
		{"", metadata.SourceTMDB},
		{"tmdb", metadata.SourceTMDB},
		{"TMDB", metadata.SourceTMDB},
		{"tvdb", metadata.SourceTVDB},
		{"TheTVDB", metadata.SourceTVDB},
		{"AniDB", metadata.DataSource("AniDB")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DataSource(tt.in))
		})
	}
}

func TestWatches(t *testing.T) {
	cfg := loadConfig(t, `
[renaming]
naming_scheme = "{n}"
operation = "copy"
output_dir = "/library"

[[watch]]
dir = "/downloads/movies"
schedule = "@every 15m"

[[watch]]
name = "tv"
dir = "/downloads/tv"
schedule = "0 * * * *"
naming_scheme = "{n} - {s00e00}"
operation = "move"
dry_run = true
`)

	assert.Equal(t, []scheduler.Watch{
		{
			Name:         "/downloads/movies",
			Schedule:     "@every 15m",
			Dir:          "/downloads/movies",
			NamingScheme: "{n}",
			OutputDir:    "/library",
			Operation:    jobs.OpCopy,
		},
		{
			Name:         "tv",
			Schedule:     "0 * * * *",
			Dir:          "/downloads/tv",
			NamingScheme: "{n} - {s00e00}",
			OutputDir:    "/library",
			Operation:    jobs.OpMove,
			DryRun:       true,
		},
	}, Watches(cfg))

	assert.Empty(t, Watches(&config.Config{}))
}

func TestServices_CachePruner(t *testing.T) {
	cfg := loadConfig(t, `
[server]
database = "`+filepath.Join(t.TempDir(), "r.db")+`"
`)
	svc, err := Open(cfg, "dev", testLogger())
	require.NoError(t, err)
	defer svc.Close()

	ctx := context.Background()
	_, err = svc.DB.Exec(`INSERT INTO metadata_cache (key, value, expires_at) VALUES ('gone', '{}', ?)`,
		time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)

	n, err := svc.CachePruner().Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
