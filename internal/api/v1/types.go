// internal/api/v1/types.go
package v1

import (
	"github.com/vmunix/renamarr/internal/checksum"
	"github.com/vmunix/renamarr/internal/importer"
	"github.com/vmunix/renamarr/internal/jobs"
	"github.com/vmunix/renamarr/internal/metadata"
	"github.com/vmunix/renamarr/internal/presets"
	"github.com/vmunix/renamarr/pkg/release"
)

// renameRequest is the body of POST /jobs and POST /rename.
type renameRequest struct {
	Files           []string `json:"files" validate:"required,min=1,dive,required"`
	DataSource      string   `json:"data_source" validate:"omitempty,oneof=TheMovieDB TheTVDB"`
	NamingScheme    string   `json:"naming_scheme"`
	OutputDir       string   `json:"output_dir"`
	Operation       string   `json:"operation" validate:"omitempty,oneof=move copy"`
	DryRun          bool     `json:"dry_run"`
	DownloadArtwork bool     `json:"download_artwork"`
	WriteMetadata   bool     `json:"write_metadata"`
	Language        string   `json:"language" validate:"omitempty,min=2,max=5"`
	Overwrite       bool     `json:"overwrite"`
	WebhookURL      string   `json:"webhook_url" validate:"omitempty,url"`
}

func (r renameRequest) toJobRequest() jobs.Request {
	return jobs.Request{
		Files:           r.Files,
		DataSource:      metadata.DataSource(r.DataSource),
		NamingScheme:    r.NamingScheme,
		OutputDir:       r.OutputDir,
		Operation:       jobs.Operation(r.Operation),
		DryRun:          r.DryRun,
		DownloadArtwork: r.DownloadArtwork,
		WriteMetadata:   r.WriteMetadata,
		Language:        r.Language,
		Overwrite:       r.Overwrite,
		WebhookURL:      r.WebhookURL,
	}
}

// matchRequest is the body of POST /match.
type matchRequest struct {
	Files            []string `json:"files" validate:"required,min=1,dive,required"`
	DataSource       string   `json:"data_source" validate:"omitempty,oneof=TheMovieDB TheTVDB"`
	NamingScheme     string   `json:"naming_scheme"`
	Language         string   `json:"language" validate:"omitempty,min=2,max=5"`
	ExtractMediaInfo bool     `json:"extract_media_info"`
}

type cancelResponse struct {
	JobID     string `json:"job_id"`
	Cancelled bool   `json:"cancelled"`
}

type parseRequest struct {
	Filename string `json:"filename" validate:"required"`
}

type parseResponse struct {
	Filename string `json:"filename"`
	release.Info
	Tech techResponse `json:"tech"`
}

type techResponse struct {
	Resolution string `json:"resolution,omitempty"`
	Source     string `json:"source,omitempty"`
	Codec      string `json:"codec,omitempty"`
	Audio      string `json:"audio,omitempty"`
	Channels   string `json:"channels,omitempty"`
	BitDepth   string `json:"bit_depth,omitempty"`
}

type searchRequest struct {
	Query    string `json:"query" validate:"required"`
	Year     int    `json:"year" validate:"omitempty,min=1800,max=3000"`
	Type     string `json:"type" validate:"omitempty,oneof=movie tv"`
	Language string `json:"language" validate:"omitempty,min=2,max=5"`
}

type searchResponse struct {
	Results []metadata.SearchResult `json:"results"`
	Query   string                  `json:"query"`
	Total   int                     `json:"total"`
}

type scanRequest struct {
	Directory  string   `json:"directory" validate:"required"`
	Recursive  *bool    `json:"recursive"`
	Extensions []string `json:"extensions"`
}

type scanResponse struct {
	Directory string                 `json:"directory"`
	Files     []importer.ScannedFile `json:"files"`
	Count     int                    `json:"count"`
}

type checksumRequest struct {
	Files     []string `json:"files" validate:"required,min=1,dive,required"`
	Algorithm string   `json:"algorithm" validate:"omitempty,oneof=md5 sha1 sha256"`
	SaveSFV   bool     `json:"save_sfv"`
}

type checksumResponse struct {
	Results   []checksum.Result  `json:"results"`
	Algorithm checksum.Algorithm `json:"algorithm"`
}

type presetRequest struct {
	Name   string `json:"name" validate:"required"`
	Scheme string `json:"scheme" validate:"required"`
}

type renamePresetRequest struct {
	Name string `json:"name" validate:"required"`
}

type presetsResponse struct {
	Presets []presets.Preset `json:"presets"`
}

type historyResponse struct {
	Entries []*importer.HistoryEntry `json:"entries"`
	Total   int                      `json:"total"`
	CanUndo bool                     `json:"can_undo"`
	CanRedo bool                     `json:"can_redo"`
}

type healthResponse struct {
	Status             string         `json:"status"`
	Version            string         `json:"version"`
	TMDBKeySet         bool           `json:"tmdb_key_set"`
	TVDBKeySet         bool           `json:"tvdb_key_set"`
	MediaInfoAvailable bool           `json:"mediainfo_available"`
	PlexConnected      *bool          `json:"plex_connected,omitempty"`
	Jobs               map[string]int `json:"jobs"`
}

type tokensResponse struct {
	Tokens  []importer.Token `json:"tokens"`
	Presets []presets.Preset `json:"presets,omitempty"`
}

// EventResponse is the API representation of a persisted event.
type EventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	OccurredAt string `json:"occurred_at"`
	Payload    any    `json:"payload,omitempty"`
}

type listEventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
}
