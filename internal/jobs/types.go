// Package jobs runs batch renames: a queue of asynchronous jobs and the
// per-file pipeline (match, render, move or copy) they share with the
// synchronous match and rename calls.
package jobs

import (
	"time"

	"github.com/vmunix/renamarr/internal/metadata"
)

// Status is a job's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether a job in this status will never change again.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Operation is how a file reaches its destination.
type Operation string

const (
	OpMove Operation = "move"
	OpCopy Operation = "copy"
)

// Valid reports whether o is a known operation. Empty means the default.
func (o Operation) Valid() bool {
	return o == "" || o == OpMove || o == OpCopy
}

// DefaultScheme is used when neither the request nor the config names one.
const DefaultScheme = "{n} ({y})"

// Request is the snapshot of a submitted batch.
type Request struct {
	Files           []string            `json:"files"`
	DataSource      metadata.DataSource `json:"data_source"`
	NamingScheme    string              `json:"naming_scheme"`
	OutputDir       string              `json:"output_dir,omitempty"`
	Operation       Operation           `json:"operation"`
	DryRun          bool                `json:"dry_run"`
	DownloadArtwork bool                `json:"download_artwork"`
	WriteMetadata   bool                `json:"write_metadata"`
	Language        string              `json:"language"`
	Overwrite       bool                `json:"overwrite"`
	WebhookURL      string              `json:"webhook_url,omitempty"`
}

// Defaults fill empty request fields.
type Defaults struct {
	DataSource   metadata.DataSource
	NamingScheme string
	Operation    Operation
	Language     string
	WebhookURL   string
}

func (r Request) withDefaults(d Defaults) Request {
	r.Files = append([]string(nil), r.Files...)
	if r.DataSource == "" {
		r.DataSource = d.DataSource
	}
	if r.DataSource == "" {
		r.DataSource = metadata.SourceTMDB
	}
	if r.NamingScheme == "" {
		r.NamingScheme = d.NamingScheme
	}
	if r.NamingScheme == "" {
		r.NamingScheme = DefaultScheme
	}
	if r.Operation == "" {
		r.Operation = d.Operation
	}
	if r.Operation == "" {
		r.Operation = OpMove
	}
	if r.Language == "" {
		r.Language = d.Language
	}
	if r.Language == "" {
		r.Language = "en"
	}
	if r.WebhookURL == "" {
		r.WebhookURL = d.WebhookURL
	}
	return r
}

// Progress tracks how far through its files a job is.
type Progress struct {
	Current     int     `json:"current"`
	Total       int     `json:"total"`
	Percent     float64 `json:"percent"`
	CurrentFile string  `json:"current_file,omitempty"`
}

// Result is the outcome for one file. Exactly one of Success, Conflict or a
// non-empty Error holds.
type Result struct {
	Original    string              `json:"original"`
	Destination string              `json:"destination,omitempty"`
	Success     bool                `json:"success"`
	DryRun      bool                `json:"dry_run"`
	Conflict    bool                `json:"conflict"`
	Error       string              `json:"error,omitempty"`
	Match       *metadata.MatchInfo `json:"match_info,omitempty"`
}

// Summary is the outward view of a job.
type Summary struct {
	ID            string     `json:"job_id"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Progress      Progress   `json:"progress"`
	FileCount     int        `json:"file_count"`
	RenamedCount  int        `json:"renamed_count"`
	ErrorCount    int        `json:"error_count"`
	ConflictCount int        `json:"conflict_count"`
	LastMessage   string     `json:"last_message,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// Detail adds the request, results and recent log lines to a Summary.
type Detail struct {
	Summary
	Request Request  `json:"request"`
	Results []Result `json:"results"`
	Log     []string `json:"log"`
}

// MatchRequest asks for matches and proposed names without touching files.
type MatchRequest struct {
	Files            []string            `json:"files"`
	DataSource       metadata.DataSource `json:"data_source"`
	NamingScheme     string              `json:"naming_scheme"`
	Language         string              `json:"language"`
	ExtractMediaInfo bool                `json:"extract_media_info"`
}

// FileMatch is the match outcome for one file.
type FileMatch struct {
	File    string              `json:"file"`
	Matched bool                `json:"matched"`
	NewName string              `json:"new_name,omitempty"`
	Match   *metadata.MatchInfo `json:"match_info,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// MatchResponse collects FileMatch results.
type MatchResponse struct {
	Results      []FileMatch `json:"results"`
	MatchedCount int         `json:"matched_count"`
	Total        int         `json:"total"`
	DurationMS   float64     `json:"duration_ms"`
}

// RenameResponse is the outcome of a synchronous rename.
type RenameResponse struct {
	Results       []Result `json:"results"`
	RenamedCount  int      `json:"renamed_count"`
	SkippedCount  int      `json:"skipped_count"`
	ConflictCount int      `json:"conflict_count"`
	Total         int      `json:"total"`
	DryRun        bool     `json:"dry_run"`
	DurationMS    float64  `json:"duration_ms"`
}
