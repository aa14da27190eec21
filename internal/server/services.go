package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/vmunix/renamarr/internal/config"
	"github.com/vmunix/renamarr/internal/events"
	"github.com/vmunix/renamarr/internal/importer"
	"github.com/vmunix/renamarr/internal/jobs"
	"github.com/vmunix/renamarr/internal/mediainfo"
	"github.com/vmunix/renamarr/internal/metadata"
	"github.com/vmunix/renamarr/internal/migrations"
	"github.com/vmunix/renamarr/internal/notify"
	"github.com/vmunix/renamarr/internal/presets"
	"github.com/vmunix/renamarr/internal/scheduler"
	"github.com/vmunix/renamarr/internal/tmdb"
	"github.com/vmunix/renamarr/pkg/tvdb"
)

// Services are the long-lived collaborators built from a config. The daemon
// and the in-process CLI rename share them.
type Services struct {
	DB        *sql.DB
	Cache     *metadata.Cache
	EventLog  *events.EventLog
	Bus       *events.Bus
	History   *importer.HistoryStore
	Presets   *presets.Store
	TMDB      *tmdb.Client
	Matcher   *metadata.Matcher
	MediaInfo *mediainfo.Extractor
	Plex      *notify.Plex // nil without a [plex] section
	Runner    *jobs.Runner
}

// OpenDB opens the sqlite database at path, creating its directory, and
// applies the schema.
func OpenDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// sqlite has a single writer.
	db.SetMaxOpenConns(1)

	if err := migrations.Apply(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return db, nil
}

// Open builds every service for cfg. Close releases them.
func Open(cfg *config.Config, version string, log *slog.Logger) (*Services, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	db, err := OpenDB(cfg.Server.Database)
	if err != nil {
		return nil, err
	}

	s := &Services{
		DB:       db,
		Cache:    metadata.NewCache(db),
		EventLog: events.NewEventLog(db),
		History:  importer.NewHistoryStore(db),
		Presets:  presets.NewStore(db),
	}
	s.Bus = events.NewBus(s.EventLog, log)

	tmdbOpts := []tmdb.Option{
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithRateLimit(cfg.TMDB.RateLimit),
		tmdb.WithStore(s.Cache, cfg.TMDB.CacheTTL),
		tmdb.WithLogger(log),
	}
	if cfg.TMDB.BaseURL != "" {
		tmdbOpts = append(tmdbOpts, tmdb.WithBaseURL(cfg.TMDB.BaseURL))
	}
	s.TMDB = tmdb.NewClient(cfg.TMDB.APIKey, tmdbOpts...)

	series := metadata.NewTVDBService(tvdb.New(cfg.TVDB.APIKey, tvdb.WithLogger(log)), s.Cache, log)

	s.MediaInfo = mediainfo.New(cfg.Matching.FFprobePath, log)
	var tech metadata.TechExtractor
	if cfg.Matching.ExtractMediaInfo && s.MediaInfo.Available() {
		tech = s.MediaInfo
	}

	s.Matcher = metadata.NewMatcher(metadata.MatcherConfig{
		TMDBKey:  cfg.TMDB.APIKey,
		TVDBKey:  cfg.TVDB.APIKey,
		Language: cfg.TMDB.Language,
		Timeout:  cfg.Matching.Timeout,
	}, s.TMDB, series, tech, log)

	deps := jobs.Deps{
		Resolver: s.Matcher,
		Files:    importer.FileOps{},
		Artwork:  importer.NewArtwork(s.TMDB, log),
		Metadata: importer.NewNFOWriter(log),
		Notifier: notify.NewWebhook("renamarr/"+version, log),
		History:  s.History,
		Schemes:  s.Presets,
		Bus:      s.Bus,
	}
	if cfg.Plex != nil {
		s.Plex = notify.NewPlex(notify.PlexConfig{
			URL:        cfg.Plex.URL,
			Token:      cfg.Plex.Token,
			LocalPath:  cfg.Plex.LocalPath,
			RemotePath: cfg.Plex.RemotePath,
		}, log)
		deps.Media = s.Plex
	}

	s.Runner, err = jobs.NewRunner(deps, Defaults(cfg), log)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("create runner: %w", err)
	}
	return s, nil
}

// Close shuts the event bus and the database.
func (s *Services) Close() error {
	var errs []error
	if s.Bus != nil {
		errs = append(errs, s.Bus.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}

// Defaults maps the config's renaming settings onto job request defaults.
func Defaults(cfg *config.Config) jobs.Defaults {
	return jobs.Defaults{
		DataSource:   DataSource(cfg.Matching.DefaultSource),
		NamingScheme: cfg.Renaming.NamingScheme,
		Operation:    jobs.Operation(cfg.Renaming.Operation),
		Language:     cfg.TMDB.Language,
		WebhookURL:   cfg.Jobs.WebhookURL,
	}
}

// DataSource maps a config source name ("tmdb", "tvdb") to its provider.
// Provider names are accepted as-is.
func DataSource(name string) metadata.DataSource {
	switch strings.ToLower(name) {
	case "", "tmdb":
		return metadata.SourceTMDB
	case "tvdb":
		return metadata.SourceTVDB
	}
	return metadata.DataSource(name)
}

// Watches converts [[watch]] entries for the scheduler.
func Watches(cfg *config.Config) []scheduler.Watch {
	out := make([]scheduler.Watch, 0, len(cfg.Watch))
	for _, w := range cfg.Watch {
		out = append(out, scheduler.Watch{
			Name:         w.Name,
			Schedule:     w.Schedule,
			Dir:          w.Dir,
			NamingScheme: w.NamingScheme,
			OutputDir:    w.OutputDir,
			Operation:    jobs.Operation(w.Operation),
			DryRun:       w.DryRun,
		})
	}
	return out
}

// CachePruner prunes the sqlite response cache and the TMDB client's memory
// cache together.
func (s *Services) CachePruner() CachePruner {
	return cachePruner{store: s.Cache, mem: s.TMDB}
}

type cachePruner struct {
	store *metadata.Cache
	mem   *tmdb.Client
}

func (c cachePruner) Prune(ctx context.Context) (int64, error) {
	var n int64
	if c.mem != nil {
		n = int64(c.mem.PurgeCache())
	}
	if c.store == nil {
		return n, nil
	}
	m, err := c.store.Prune(ctx)
	return n + m, err
}
