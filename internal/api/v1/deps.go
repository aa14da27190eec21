package v1

import (
	"context"
	"errors"

	"github.com/vmunix/renamarr/internal/events"
	"github.com/vmunix/renamarr/internal/importer"
	"github.com/vmunix/renamarr/internal/jobs"
	"github.com/vmunix/renamarr/internal/metadata"
	"github.com/vmunix/renamarr/internal/notify"
	"github.com/vmunix/renamarr/internal/presets"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// JobQueue manages asynchronous rename jobs. *jobs.Queue satisfies it.
type JobQueue interface {
	Submit(req jobs.Request) *jobs.Job
	Get(id string) *jobs.Job
	List() []*jobs.Job
	Cancel(id string) bool
	Delete(id string) bool
	Counts() map[jobs.Status]int
}

// SyncRunner runs the rename pipeline inline. *jobs.Runner satisfies it.
type SyncRunner interface {
	Match(ctx context.Context, req jobs.MatchRequest) (*jobs.MatchResponse, error)
	Rename(ctx context.Context, req jobs.Request) (*jobs.RenameResponse, error)
}

// Searcher looks up titles and reports provider configuration.
// *metadata.Matcher satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, year int, kind metadata.MediaType, lang string) ([]metadata.SearchResult, error)
	Configured() bool
	TVDBConfigured() bool
}

// History lists and reverses past renames. *importer.HistoryStore satisfies it.
type History interface {
	List(ctx context.Context, limit int) ([]*importer.HistoryEntry, error)
	CanUndo(ctx context.Context) (bool, error)
	CanRedo(ctx context.Context) (bool, error)
	Undo(ctx context.Context) (*importer.HistoryEntry, error)
	Redo(ctx context.Context) (*importer.HistoryEntry, error)
}

// Presets manages naming scheme presets. *presets.Store satisfies it.
type Presets interface {
	List(ctx context.Context) ([]presets.Preset, error)
	Save(ctx context.Context, name, scheme string) error
	Delete(ctx context.Context, name string) error
	Rename(ctx context.Context, oldName, newName string) error
}

// MediaInfo reports whether technical extraction is possible.
type MediaInfo interface {
	Available() bool
}

// MediaServer is the media server notified after jobs. *notify.Plex satisfies it.
type MediaServer interface {
	Identity(ctx context.Context) (*notify.Identity, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Jobs     JobQueue
	Runner   SyncRunner
	Searcher Searcher

	// Optional dependencies (nil if not configured)
	History   History
	Presets   Presets
	MediaInfo MediaInfo
	Plex      MediaServer
	Bus       *events.Bus      // live job events for websocket clients
	EventLog  *events.EventLog // persisted job events for replay
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Jobs == nil {
		return errors.New("job queue is required")
	}
	if d.Runner == nil {
		return errors.New("runner is required")
	}
	if d.Searcher == nil {
		return errors.New("searcher is required")
	}
	return nil
}
