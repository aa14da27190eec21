// internal/config/validate.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validSources = map[string]bool{
	"tmdb": true, "tvdb": true,
}

var validOperations = map[string]bool{
	"move": true, "copy": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}
	if c.Server.APIRateLimit < 0 {
		errs = append(errs, fmt.Sprintf("server.api_rate_limit: must be positive, got %d", c.Server.APIRateLimit))
	}

	if c.TMDB.RateLimit <= 0 {
		errs = append(errs, fmt.Sprintf("tmdb.rate_limit: must be positive, got %g", c.TMDB.RateLimit))
	}

	// Matching and renaming
	if !validSources[c.Matching.DefaultSource] {
		errs = append(errs, fmt.Sprintf("matching.default_source: must be one of tmdb, tvdb; got %q", c.Matching.DefaultSource))
	}
	if strings.TrimSpace(c.Renaming.NamingScheme) == "" {
		errs = append(errs, "renaming.naming_scheme: required")
	}
	if !validOperations[c.Renaming.Operation] {
		errs = append(errs, fmt.Sprintf("renaming.operation: must be one of move, copy; got %q", c.Renaming.Operation))
	}

	if c.Jobs.MaxJobs <= 0 {
		errs = append(errs, fmt.Sprintf("jobs.max_jobs: must be positive, got %d", c.Jobs.MaxJobs))
	}

	// Watches
	for i, w := range c.Watch {
		prefix := fmt.Sprintf("watch[%d]", i)
		if w.Dir == "" {
			errs = append(errs, prefix+".dir: required")
		} else if _, err := os.Stat(w.Dir); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("%s.dir: warning: directory %q does not exist", prefix, w.Dir))
		}
		if _, err := cron.ParseStandard(w.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("%s.schedule: invalid cron expression %q: %v", prefix, w.Schedule, err))
		}
		if !validOperations[w.Operation] {
			errs = append(errs, fmt.Sprintf("%s.operation: must be one of move, copy; got %q", prefix, w.Operation))
		}
	}

	// Plex validation
	if c.Plex != nil {
		if c.Plex.URL == "" {
			errs = append(errs, "plex.url: required when plex is configured")
		}
		if c.Plex.Token == "" {
			errs = append(errs, "plex.token: required when plex is configured")
		}
		if (c.Plex.LocalPath == "") != (c.Plex.RemotePath == "") {
			errs = append(errs, "plex.local_path and plex.remote_path: must be set together")
		}
	}

	if c.Events.Retention < 0 {
		errs = append(errs, fmt.Sprintf("events.retention: must not be negative, got %s", c.Events.Retention))
	}

	return errs
}
