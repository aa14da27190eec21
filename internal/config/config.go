// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	TMDB     TMDBConfig     `toml:"tmdb"`
	TVDB     TVDBConfig     `toml:"tvdb"`
	Matching MatchingConfig `toml:"matching"`
	Renaming RenamingConfig `toml:"renaming"`
	Jobs     JobsConfig     `toml:"jobs"`
	Watch    []WatchConfig  `toml:"watch"`
	Plex     *PlexConfig    `toml:"plex"`
	Events   EventsConfig   `toml:"events"`
}

type ServerConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	LogLevel     string   `toml:"log_level"`
	Database     string   `toml:"database"`
	CORSOrigins  []string `toml:"cors_origins"`
	APIRateLimit int      `toml:"api_rate_limit"` // requests per minute per client IP
}

type TMDBConfig struct {
	APIKey    string        `toml:"api_key"`
	Language  string        `toml:"language"`
	BaseURL   string        `toml:"base_url"`
	RateLimit float64       `toml:"rate_limit"` // requests per second
	CacheTTL  time.Duration `toml:"cache_ttl"`
}

type TVDBConfig struct {
	APIKey string `toml:"api_key"`
}

type MatchingConfig struct {
	DefaultSource    string        `toml:"default_source"`
	Timeout          time.Duration `toml:"timeout"`
	ExtractMediaInfo bool          `toml:"extract_media_info"`
	FFprobePath      string        `toml:"ffprobe_path"`
}

type RenamingConfig struct {
	NamingScheme    string `toml:"naming_scheme"`
	Operation       string `toml:"operation"`
	OutputDir       string `toml:"output_dir"`
	Overwrite       bool   `toml:"overwrite"`
	DownloadArtwork bool   `toml:"download_artwork"`
	WriteMetadata   bool   `toml:"write_metadata"`
}

type JobsConfig struct {
	MaxJobs    int    `toml:"max_jobs"`
	WebhookURL string `toml:"webhook_url"`
}

// WatchConfig is a directory renamed on a cron schedule.
type WatchConfig struct {
	Name         string `toml:"name"`
	Schedule     string `toml:"schedule"`
	Dir          string `toml:"dir"`
	NamingScheme string `toml:"naming_scheme"`
	OutputDir    string `toml:"output_dir"`
	Operation    string `toml:"operation"`
	DryRun       bool   `toml:"dry_run"`
}

type PlexConfig struct {
	URL        string `toml:"url"`
	Token      string `toml:"token"`
	LocalPath  string `toml:"local_path"`  // path prefix as seen by renamarr
	RemotePath string `toml:"remote_path"` // same prefix as seen by Plex
}

type EventsConfig struct {
	Retention time.Duration `toml:"retention"`
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation and missing-variable checks.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.Database == "" {
		c.Server.Database = "./data/renamarr.db"
	}
	if c.Server.APIRateLimit == 0 {
		c.Server.APIRateLimit = 300
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = "en"
	}
	if c.TMDB.RateLimit == 0 {
		c.TMDB.RateLimit = 4
	}
	if c.TMDB.CacheTTL == 0 {
		c.TMDB.CacheTTL = 24 * time.Hour
	}
	if c.Matching.DefaultSource == "" {
		c.Matching.DefaultSource = "tmdb"
	}
	if c.Matching.Timeout == 0 {
		c.Matching.Timeout = 30 * time.Second
	}
	if c.Matching.FFprobePath == "" {
		c.Matching.FFprobePath = "ffprobe"
	}
	if c.Renaming.NamingScheme == "" {
		c.Renaming.NamingScheme = "{n} ({y})"
	}
	if c.Renaming.Operation == "" {
		c.Renaming.Operation = "move"
	}
	if c.Jobs.MaxJobs == 0 {
		c.Jobs.MaxJobs = 200
	}
	if c.Events.Retention == 0 {
		c.Events.Retention = 30 * 24 * time.Hour
	}
	for i := range c.Watch {
		w := &c.Watch[i]
		if w.Name == "" {
			w.Name = w.Dir
		}
		if w.NamingScheme == "" {
			w.NamingScheme = c.Renaming.NamingScheme
		}
		if w.OutputDir == "" {
			w.OutputDir = c.Renaming.OutputDir
		}
		if w.Operation == "" {
			w.Operation = c.Renaming.Operation
		}
	}
}

// ListenAddr returns host:port for the HTTP server.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references and returns the names
// (or ":?" messages) of those it could not resolve. Unresolved references
// are left in place. Comment text is copied unchanged.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		code, comment := splitComment(line)
		if !strings.Contains(code, "${") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(code, func(match string) string {
			value, miss := resolveEnvVar(match)
			if miss != "" {
				missing = append(missing, miss)
			}
			return value
		}) + comment
	}
	return strings.Join(lines, ""), missing
}

// resolveEnvVar expands a single reference. miss is set when the reference
// cannot be resolved, in which case the reference itself is returned.
func resolveEnvVar(match string) (value, miss string) {
	parts := envVarPattern.FindStringSubmatch(match)
	name, op, arg := parts[1], parts[2], parts[3]
	value, ok := os.LookupEnv(name)

	switch op {
	case ":-":
		if value == "" {
			return arg, ""
		}
		return value, ""
	case ":?":
		if value == "" {
			return match, fmt.Sprintf("%s: %s", name, strings.TrimSpace(arg))
		}
		return value, ""
	}

	if !ok {
		return match, name
	}
	return value, ""
}

// splitComment splits a TOML line at the first '#' outside a string.
func splitComment(line string) (code, comment string) {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote == '"' && c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return line[:i], line[i:]
		}
	}
	return line, ""
}
