package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vmunix/renamarr/internal/mediainfo"
	"github.com/vmunix/renamarr/internal/tmdb"
	"github.com/vmunix/renamarr/pkg/release"
	"github.com/vmunix/renamarr/pkg/tvdb"
)

const (
	defaultMatchTimeout = 30 * time.Second
	maxSearchResults    = 10
)

var placeholderKeys = map[string]bool{
	"YOUR_TMDB_API_KEY":      true,
	"YOUR_TMDB_API_KEY_HERE": true,
	"YOUR_TVDB_API_KEY":      true,
	"YOUR_TVDB_API_KEY_HERE": true,
}

// IsPlaceholderKey reports whether key is empty or a sample value from a template config.
func IsPlaceholderKey(key string) bool {
	return key == "" || placeholderKeys[key]
}

// MovieDB is the subset of the TMDB client used for matching.
type MovieDB interface {
	SearchMovie(ctx context.Context, query string, year int, lang string) ([]tmdb.MovieResult, error)
	SearchTV(ctx context.Context, query string, lang string) ([]tmdb.TVResult, error)
	GetMovie(ctx context.Context, tmdbID int64, lang string) (*tmdb.Movie, error)
	GetEpisode(ctx context.Context, tmdbID int64, season, episode int, lang string) (*tmdb.Episode, error)
}

// SeriesDB is the subset of the TVDB service used for matching.
type SeriesDB interface {
	Search(ctx context.Context, query string) ([]tvdb.SearchResult, error)
	GetEpisodes(ctx context.Context, seriesID int) ([]tvdb.Episode, error)
}

// TechExtractor reads technical stream info from a file.
type TechExtractor interface {
	Extract(ctx context.Context, path string) (mediainfo.Info, error)
}

// MatcherConfig carries credentials and limits. Nothing is read from the environment.
type MatcherConfig struct {
	TMDBKey  string
	TVDBKey  string
	Language string
	Timeout  time.Duration // per-file deadline for upstream calls
}

// Matcher identifies media files from their names.
type Matcher struct {
	cfg    MatcherConfig
	movies MovieDB
	series SeriesDB // nil when TVDB is not configured
	tech   TechExtractor
	log    *slog.Logger
}

// NewMatcher creates a Matcher. series and tech may be nil.
func NewMatcher(cfg MatcherConfig, movies MovieDB, series SeriesDB, tech TechExtractor, log *slog.Logger) *Matcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultMatchTimeout
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	return &Matcher{
		cfg:    cfg,
		movies: movies,
		series: series,
		tech:   tech,
		log:    log.With("component", "matcher"),
	}
}

// Configured reports whether TMDB lookups can run.
func (m *Matcher) Configured() bool {
	return !IsPlaceholderKey(m.cfg.TMDBKey)
}

// TVDBConfigured reports whether TheTVDB lookups can run.
func (m *Matcher) TVDBConfigured() bool {
	return m.series != nil && !IsPlaceholderKey(m.cfg.TVDBKey)
}

// MatchFile parses the file's name and looks it up. A nil match with a nil error
// means the provider had no result.
func (m *Matcher) MatchFile(ctx context.Context, path string, source DataSource, opts MatchOptions) (*MatchInfo, error) {
	if !source.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, source)
	}
	if !m.Configured() {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	lang := opts.Language
	if lang == "" {
		lang = m.cfg.Language
	}

	info := release.Parse(filepath.Base(path))

	var (
		match *MatchInfo
		err   error
	)
	switch {
	case source == SourceTVDB && info.IsTV && m.TVDBConfigured():
		match, err = m.matchTVDB(ctx, info)
	case source == SourceTVDB:
		m.log.Debug("TheTVDB unavailable for this file, using TheMovieDB", "file", path, "is_tv", info.IsTV)
		fallthrough
	default:
		if info.IsTV {
			match, err = m.matchTMDBEpisode(ctx, info, lang)
		} else {
			match, err = m.matchTMDBMovie(ctx, info, lang)
		}
	}
	if err != nil || match == nil {
		return nil, err
	}

	if opts.ExtractTech && m.tech != nil {
		tech, err := m.tech.Extract(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("extract media info: %w", err)
		}
		match = match.WithTech(tech)
	}
	return match, nil
}

func (m *Matcher) matchTMDBMovie(ctx context.Context, info *release.Info, lang string) (*MatchInfo, error) {
	year := 0
	if info.Year != nil {
		year = *info.Year
	}
	results, err := m.movies.SearchMovie(ctx, release.SearchQuery(info.Title), year, lang)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	names := make([]string, len(results))
	years := make([]string, len(results))
	for i, r := range results {
		names[i], years[i] = r.Title, r.Year()
	}
	pick := results[pickCandidate(info.Title, yearString(info.Year), names, years)]

	match := &MatchInfo{
		Title:      pick.Title,
		Year:       pick.Year(),
		Type:       TypeMovie,
		TMDBID:     pick.ID,
		Overview:   pick.Overview,
		PosterPath: pick.PosterPath,
	}

	// Genres only come with the full record.
	movie, err := m.movies.GetMovie(ctx, pick.ID, lang)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		m.log.Warn("movie details unavailable", "tmdb_id", pick.ID, "error", err)
		return match, nil
	}
	match.Genres = tmdb.GenreNames(movie.Genres)
	if movie.PosterPath != "" {
		match.PosterPath = movie.PosterPath
	}
	return match, nil
}

func (m *Matcher) matchTMDBEpisode(ctx context.Context, info *release.Info, lang string) (*MatchInfo, error) {
	results, err := m.movies.SearchTV(ctx, release.SearchQuery(info.Title), lang)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	names := make([]string, len(results))
	years := make([]string, len(results))
	for i, r := range results {
		names[i], years[i] = r.Name, r.Year()
	}
	show := results[pickCandidate(info.Title, "", names, years)]

	match := &MatchInfo{
		Title:      show.Name,
		Year:       show.Year(),
		Type:       TypeTV,
		TMDBID:     show.ID,
		Season:     *info.Season,
		Episode:    *info.Episode,
		Overview:   show.Overview,
		PosterPath: show.PosterPath,
	}

	ep, err := m.movies.GetEpisode(ctx, show.ID, *info.Season, *info.Episode, lang)
	switch {
	case err == nil:
		match.EpisodeTitle = ep.Name
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return nil, err
	default:
		m.log.Debug("episode lookup failed", "tmdb_id", show.ID, "season", *info.Season, "episode", *info.Episode, "error", err)
	}
	return match, nil
}

func (m *Matcher) matchTVDB(ctx context.Context, info *release.Info) (*MatchInfo, error) {
	results, err := m.series.Search(ctx, release.SearchQuery(info.Title))
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	names := make([]string, len(results))
	years := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
		if r.Year > 0 {
			years[i] = strconv.Itoa(r.Year)
		}
	}
	idx := pickCandidate(info.Title, "", names, years)
	series := results[idx]

	match := &MatchInfo{
		Title:    series.Name,
		Year:     years[idx],
		Type:     TypeTV,
		TVDBID:   series.ID,
		Season:   *info.Season,
		Episode:  *info.Episode,
		Overview: series.Overview,
	}

	episodes, err := m.series.GetEpisodes(ctx, series.ID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		m.log.Debug("episode list unavailable", "tvdb_id", series.ID, "error", err)
		return match, nil
	}
	if ep := tvdb.FindEpisode(episodes, *info.Season, *info.Episode); ep != nil {
		match.EpisodeTitle = ep.Name
	}
	return match, nil
}

// Search runs a free-text lookup. kind is "movie", "tv", or empty for both.
func (m *Matcher) Search(ctx context.Context, query string, year int, kind MediaType, lang string) ([]SearchResult, error) {
	if !m.Configured() {
		return nil, ErrNotConfigured
	}
	if lang == "" {
		lang = m.cfg.Language
	}
	query = release.SearchQuery(query)

	var out []SearchResult
	if kind == "" || kind == TypeMovie {
		movies, err := m.movies.SearchMovie(ctx, query, year, lang)
		if err != nil {
			return nil, err
		}
		for _, r := range movies[:min(len(movies), maxSearchResults)] {
			out = append(out, SearchResult{Title: r.Title, Year: r.Year(), Type: TypeMovie, TMDBID: r.ID, Overview: r.Overview})
		}
	}
	if kind == "" || kind == TypeTV {
		shows, err := m.movies.SearchTV(ctx, query, lang)
		if err != nil {
			return nil, err
		}
		for _, r := range shows[:min(len(shows), maxSearchResults)] {
			out = append(out, SearchResult{Title: r.Name, Year: r.Year(), Type: TypeTV, TMDBID: r.ID, Overview: r.Overview})
		}
	}
	return out, nil
}

// pickCandidate returns the index of the best-matching candidate title. A confident
// candidate with the parsed year beats a closer title from another year. With no
// confident candidate the provider's first result wins.
func pickCandidate(title, year string, names, years []string) int {
	best := release.MatchTitle(title, names)
	if best.Index < 0 {
		return 0
	}
	if year == "" || years[best.Index] == year {
		return best.Index
	}
	for i := range names {
		if years[i] != year {
			continue
		}
		if release.MatchTitle(title, names[i:i+1]).Confidence >= release.ConfidenceMedium {
			return i
		}
	}
	return best.Index
}

func yearString(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}
