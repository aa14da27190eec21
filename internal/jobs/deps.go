package jobs

//go:generate mockgen -source=deps.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/vmunix/renamarr/internal/importer"
	"github.com/vmunix/renamarr/internal/metadata"
)

// Resolver identifies the media item behind a file. A nil match with a nil
// error means nothing was found.
type Resolver interface {
	MatchFile(ctx context.Context, path string, source metadata.DataSource, opts metadata.MatchOptions) (*metadata.MatchInfo, error)
}

// FileOps performs the filesystem side of a rename.
type FileOps interface {
	Move(src, dst string) error
	Copy(src, dst string) error
	Replace(src, dst string) error
	Remove(path string) error
}

// ArtworkDownloader saves a poster next to a renamed file.
type ArtworkDownloader interface {
	DownloadPoster(ctx context.Context, mi *metadata.MatchInfo, dir string) (string, error)
}

// MetadataWriter writes a metadata sidecar for a renamed file.
type MetadataWriter interface {
	Write(ctx context.Context, path string, mi *metadata.MatchInfo, posterPath string) (bool, error)
}

// Notifier delivers the completion callback of a job.
type Notifier interface {
	Post(ctx context.Context, url string, payload any) error
}

// HistoryRecorder records renames so they can be undone.
type HistoryRecorder interface {
	Add(ctx context.Context, h *importer.HistoryEntry) error
}

// MediaServer is asked to rescan the destinations of a completed job.
type MediaServer interface {
	ScanPaths(ctx context.Context, paths []string) error
}

// SchemeResolver expands preset references in naming schemes.
type SchemeResolver interface {
	Resolve(ctx context.Context, scheme string) (string, error)
}
