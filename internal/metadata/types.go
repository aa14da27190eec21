package metadata

import (
	"github.com/vmunix/renamarr/internal/mediainfo"
)

// DataSource selects the online database a file is matched against.
type DataSource string

const (
	SourceTMDB DataSource = "TheMovieDB"
	SourceTVDB DataSource = "TheTVDB"
)

// Valid reports whether s names a supported source. Empty means the default.
func (s DataSource) Valid() bool {
	return s == "" || s == SourceTMDB || s == SourceTVDB
}

// MediaType classifies a match.
type MediaType string

const (
	TypeMovie MediaType = "movie"
	TypeTV    MediaType = "tv"
)

// MatchInfo describes the media item a file was identified as.
// Season and Episode are zero for movies.
type MatchInfo struct {
	Title        string    `json:"title"`
	Year         string    `json:"year,omitempty"`
	Type         MediaType `json:"type"`
	TMDBID       int64     `json:"tmdb_id,omitempty"`
	TVDBID       int       `json:"tvdb_id,omitempty"`
	Season       int       `json:"season,omitempty"`
	Episode      int       `json:"episode,omitempty"`
	EpisodeTitle string    `json:"episode_title,omitempty"`
	Overview     string    `json:"overview,omitempty"`
	Genres       []string  `json:"genres,omitempty"`
	PosterPath   string    `json:"poster_path,omitempty"`

	Resolution string `json:"resolution,omitempty"`
	VideoCodec string `json:"video_codec,omitempty"`
	AudioCodec string `json:"audio_codec,omitempty"`
	Channels   string `json:"channels,omitempty"`
	BitDepth   string `json:"bit_depth,omitempty"`
}

// WithTech returns a copy of m carrying the given technical fields.
func (m MatchInfo) WithTech(t mediainfo.Info) *MatchInfo {
	m.Resolution = t.Resolution
	m.VideoCodec = t.VideoCodec
	m.AudioCodec = t.AudioCodec
	m.Channels = t.Channels
	m.BitDepth = t.BitDepth
	return &m
}

// MatchOptions tunes a single lookup.
type MatchOptions struct {
	Language    string // ISO 639-1, passed through to the provider
	ExtractTech bool   // merge technical stream info into the match
}

// SearchResult is one candidate returned by a free-text search.
type SearchResult struct {
	Title    string    `json:"title"`
	Year     string    `json:"year,omitempty"`
	Type     MediaType `json:"type"`
	TMDBID   int64     `json:"tmdb_id,omitempty"`
	Overview string    `json:"overview,omitempty"`
}
