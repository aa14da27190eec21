// internal/importer/artwork.go
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/renamarr/internal/metadata"
	"github.com/vmunix/renamarr/internal/tmdb"
)

// PosterSize is the TMDB image size downloaded for posters.
const PosterSize = "w500"

// PosterSource resolves and downloads TMDB poster images.
type PosterSource interface {
	GetMovie(ctx context.Context, tmdbID int64, lang string) (*tmdb.Movie, error)
	GetTV(ctx context.Context, tmdbID int64, lang string) (*tmdb.TVShow, error)
	DownloadImage(ctx context.Context, path, size string, w io.Writer) (int64, error)
}

// Artwork saves poster images next to renamed files.
type Artwork struct {
	source PosterSource
	log    *slog.Logger
}

// NewArtwork creates an Artwork downloader.
func NewArtwork(source PosterSource, log *slog.Logger) *Artwork {
	return &Artwork{source: source, log: log.With("component", "artwork")}
}

// DownloadPoster writes "<title>_poster.jpg" into dir and returns its path.
// It returns an empty path with no error when the match has no poster.
func (a *Artwork) DownloadPoster(ctx context.Context, mi *metadata.MatchInfo, dir string) (string, error) {
	if mi == nil || mi.TMDBID == 0 {
		return "", nil
	}

	poster := mi.PosterPath
	if poster == "" {
		var err error
		poster, err = a.lookupPoster(ctx, mi)
		if err != nil {
			return "", err
		}
	}
	if poster == "" {
		a.log.Debug("no poster available", "tmdb_id", mi.TMDBID)
		return "", nil
	}

	title := mi.Title
	if title == "" {
		title = "Unknown"
	}
	name := SanitizeFilename(strings.ReplaceAll(title, "/", "-")) + "_poster.jpg"
	path := filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create poster file: %w", err)
	}

	n, err := a.source.DownloadImage(ctx, poster, PosterSize, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("download poster: %w", err)
	}

	a.log.Debug("poster saved", "path", path, "bytes", n)
	return path, nil
}

func (a *Artwork) lookupPoster(ctx context.Context, mi *metadata.MatchInfo) (string, error) {
	if mi.Type == metadata.TypeTV {
		show, err := a.source.GetTV(ctx, mi.TMDBID, "")
		if err != nil {
			return "", fmt.Errorf("lookup series poster: %w", err)
		}
		return show.PosterPath, nil
	}
	movie, err := a.source.GetMovie(ctx, mi.TMDBID, "")
	if err != nil {
		return "", fmt.Errorf("lookup movie poster: %w", err)
	}
	return movie.PosterPath, nil
}
