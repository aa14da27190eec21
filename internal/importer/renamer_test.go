// internal/importer/renamer_test.go
package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/renamarr/internal/metadata"
)

func TestRender(t *testing.T) {
	movie := &metadata.MatchInfo{Title: "The Matrix", Year: "1999", Type: metadata.TypeMovie}
	episode := &metadata.MatchInfo{
		Title: "Breaking Bad", Year: "2008", Type: metadata.TypeTV,
		Season: 1, Episode: 2, EpisodeTitle: "Cat's in the Bag...",
	}
	tech := &metadata.MatchInfo{
		Title: "Dune", Year: "2021",
		Resolution: "2160p", VideoCodec: "HEVC", AudioCodec: "TrueHD", Channels: "7.1", BitDepth: "10bit",
	}

	tests := []struct {
		name   string
		path   string
		match  *metadata.MatchInfo
		scheme string
		want   string
	}{
		{
			name:   "movie folder",
			path:   "/in/The.Matrix.1999.mkv",
			match:  movie,
			scheme: "{n} ({y})/{n} ({y})",
			want:   "The Matrix (1999)/The Matrix (1999).mkv",
		},
		{
			name:   "default scheme",
			path:   "/in/The.Matrix.1999.mkv",
			match:  movie,
			scheme: "",
			want:   "The Matrix (1999)/The Matrix (1999).mkv",
		},
		{
			name:   "episode",
			path:   "/in/bb.s01e02.mp4",
			match:  episode,
			scheme: "{n}/Season 01/{n} - {s00e00} - {t}",
			want:   "Breaking Bad/Season 01/Breaking Bad - S01E02 - Cat's in the Bag....mp4",
		},
		{
			name:   "split season and episode",
			path:   "/in/bb.mkv",
			match:  episode,
			scheme: "{n} {s}{e}",
			want:   "Breaking Bad S01E02.mkv",
		},
		{
			name:   "technical tokens",
			path:   "/in/dune.mkv",
			match:  tech,
			scheme: "{n} ({y}) [{vf} {vc} {af} {ac}] {bit_depth}",
			want:   "Dune (2021) [2160p HEVC TrueHD 7.1] 10bit.mkv",
		},
		{
			name:   "long form aliases",
			path:   "/in/dune.mkv",
			match:  tech,
			scheme: "{resolution}-{video_codec}-{audio_codec}-{channels}",
			want:   "2160p-HEVC-TrueHD-7.1.mkv",
		},
		{
			name:   "unknown token kept",
			path:   "/in/x.mkv",
			match:  movie,
			scheme: "{n} {foo}",
			want:   "The Matrix {foo}.mkv",
		},
		{
			name:   "missing title",
			path:   "/in/x.avi",
			match:  &metadata.MatchInfo{Year: "2000"},
			scheme: "{n} ({y})",
			want:   "Unknown (2000).avi",
		},
		{
			name:   "extension already present",
			path:   "/in/x.mkv",
			match:  movie,
			scheme: "{n}.mkv",
			want:   "The Matrix.mkv",
		},
		{
			name:   "separators and whitespace collapse",
			path:   "/in/x.mkv",
			match:  movie,
			scheme: "  {n}//\\{n}   {y}  ",
			want:   "The Matrix/The Matrix 1999.mkv",
		},
		{
			name:   "zero season treated as absent",
			path:   "/in/x.mkv",
			match:  &metadata.MatchInfo{Title: "Show", Season: 0, Episode: 5},
			scheme: "{n} {s00e00}",
			want:   "Show.mkv",
		},
		{
			name:   "zero episode treated as absent",
			path:   "/in/x.mkv",
			match:  &metadata.MatchInfo{Title: "Show", Season: 2, Episode: 0},
			scheme: "{n} {s}{e}",
			want:   "Show.mkv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.path, tt.match, tt.scheme))
		})
	}
}

func TestRender_NilMatch(t *testing.T) {
	assert.Equal(t, "Some.File.2020.mkv", Render("/downloads/Some.File.2020.mkv", nil, "{n} ({y})"))
}

func TestRender_SanitizesTitleOnly(t *testing.T) {
	mi := &metadata.MatchInfo{Title: `What If...? <A/B> "C" | D * E \ F: G`, Year: "2021"}
	got := Render("/in/x.mkv", mi, "{n}/{y}")

	assert.Equal(t, "What If... AB C D E F G/2021.mkv", got)
	dir, file := filepath.Split(got)
	assert.Equal(t, "2021.mkv", file, "scheme separator preserved")
	assert.False(t, strings.ContainsAny(strings.TrimSuffix(dir, "/"), `<>:"/\|?*`))
}

func TestRender_AlwaysEndsWithExtension(t *testing.T) {
	mi := &metadata.MatchInfo{Title: "T", Year: "2000"}
	for _, ext := range MediaExtensions {
		for _, scheme := range []string{"", "{n}", "{n}/{y}", "{foo}", "{n}.txt"} {
			got := Render("/in/file"+ext, mi, scheme)
			assert.True(t, strings.HasSuffix(got, ext), "Render(%q) = %q", scheme, got)
		}
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "The Matrix (1999).mkv", Preview("{n} ({y})", false))
	assert.Equal(t, "Breaking Bad - S01E02.mkv", Preview("{n} - {s00e00}", true))
}

func TestTokens_AllRendered(t *testing.T) {
	for _, tok := range Tokens {
		got := Preview(tok.Token, true)
		assert.NotContains(t, got, tok.Token, "token %s should be substituted", tok.Token)
	}
}
