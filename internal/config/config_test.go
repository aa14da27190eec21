package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseTestConfig is a helper that writes content to a temp file and loads it without validation.
func parseTestConfig(t *testing.T, content string) (*Config, error) {
	t.Helper()
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return LoadWithoutValidation(cfgPath)
}

func TestConfig_AllSections(t *testing.T) {
	content := `
[server]
host = "127.0.0.1"
port = 9090
log_level = "debug"
database = "/var/lib/renamarr/renamarr.db"
cors_origins = ["http://localhost:3000"]
api_rate_limit = 60

[tmdb]
api_key = "tmdb-key"
language = "de"
base_url = "http://tmdb.local/3"
rate_limit = 10
cache_ttl = "6h"

[tvdb]
api_key = "tvdb-key"

[matching]
default_source = "tvdb"
timeout = "45s"
extract_media_info = true
ffprobe_path = "/usr/bin/ffprobe"

[renaming]
naming_scheme = "preset:Kodi - Movie"
operation = "copy"
output_dir = "/media"
overwrite = true
download_artwork = true
write_metadata = true

[jobs]
max_jobs = 50
webhook_url = "http://hooks.local/renamarr"

[events]
retention = "48h"

[plex]
url = "http://plex:32400"
token = "plex-token"
local_path = "/media"
remote_path = "/data"
`
	cfg, err := parseTestConfig(t, content)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.ListenAddr())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 60, cfg.Server.APIRateLimit)

	assert.Equal(t, "tmdb-key", cfg.TMDB.APIKey)
	assert.Equal(t, "de", cfg.TMDB.Language)
	assert.Equal(t, 10.0, cfg.TMDB.RateLimit)
	assert.Equal(t, 6*time.Hour, cfg.TMDB.CacheTTL)
	assert.Equal(t, "tvdb-key", cfg.TVDB.APIKey)

	assert.Equal(t, "tvdb", cfg.Matching.DefaultSource)
	assert.Equal(t, 45*time.Second, cfg.Matching.Timeout)
	assert.True(t, cfg.Matching.ExtractMediaInfo)

	assert.Equal(t, RenamingConfig{
		NamingScheme:    "preset:Kodi - Movie",
		Operation:       "copy",
		OutputDir:       "/media",
		Overwrite:       true,
		DownloadArtwork: true,
		WriteMetadata:   true,
	}, cfg.Renaming)

	assert.Equal(t, 50, cfg.Jobs.MaxJobs)
	assert.Equal(t, "http://hooks.local/renamarr", cfg.Jobs.WebhookURL)
	assert.Equal(t, 48*time.Hour, cfg.Events.Retention)

	require.NotNil(t, cfg.Plex)
	assert.Equal(t, "/data", cfg.Plex.RemotePath)
	assert.Empty(t, cfg.Validate())
}

func TestConfig_PlexOptional(t *testing.T) {
	cfg, err := parseTestConfig(t, "[server]\nport = 8585\n")
	require.NoError(t, err)
	assert.Nil(t, cfg.Plex)
	assert.Nil(t, cfg.Watch)
}
