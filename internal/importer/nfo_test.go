// internal/importer/nfo_test.go
package importer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/renamarr/internal/metadata"
)

func TestNFOWriter_Movie(t *testing.T) {
	w := NewNFOWriter(testLogger())
	dir := t.TempDir()
	video := filepath.Join(dir, "Heat (1995).mkv")

	mi := &metadata.MatchInfo{
		Title: "Heat", Year: "1995", Type: metadata.TypeMovie, TMDBID: 949,
		Overview: "Cops & robbers", Genres: []string{"Action", "Crime"},
	}
	ok, err := w.Write(context.Background(), video, mi, filepath.Join(dir, "Heat_poster.jpg"))
	require.NoError(t, err)
	assert.True(t, ok)

	got := readFile(t, filepath.Join(dir, "Heat (1995).nfo"))
	assert.Contains(t, got, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, got, "<movie>")
	assert.Contains(t, got, "<title>Heat</title>")
	assert.Contains(t, got, "<year>1995</year>")
	assert.Contains(t, got, "<plot>Cops &amp; robbers</plot>")
	assert.Contains(t, got, "<genre>Crime</genre>")
	assert.Contains(t, got, `<uniqueid type="tmdb" default="true">949</uniqueid>`)
	assert.Contains(t, got, "<thumb>Heat_poster.jpg</thumb>")
}

func TestNFOWriter_Episode(t *testing.T) {
	w := NewNFOWriter(testLogger())
	video := filepath.Join(t.TempDir(), "Breaking Bad - S01E02.mkv")

	mi := &metadata.MatchInfo{
		Title: "Breaking Bad", Type: metadata.TypeTV, TVDBID: 81189,
		Season: 1, Episode: 2, EpisodeTitle: "Cat's in the Bag...",
	}
	ok, err := w.Write(context.Background(), video, mi, "")
	require.NoError(t, err)
	assert.True(t, ok)

	got := readFile(t, filepath.Join(filepath.Dir(video), "Breaking Bad - S01E02.nfo"))
	assert.Contains(t, got, "<episodedetails>")
	assert.Contains(t, got, "<showtitle>Breaking Bad</showtitle>")
	assert.Contains(t, got, "<season>1</season>")
	assert.Contains(t, got, "<episode>2</episode>")
	assert.Contains(t, got, `<uniqueid type="tvdb" default="true">81189</uniqueid>`)
	assert.NotContains(t, got, "<thumb>")
}

func TestNFOWriter_NilMatch(t *testing.T) {
	w := NewNFOWriter(testLogger())
	ok, err := w.Write(context.Background(), filepath.Join(t.TempDir(), "x.mkv"), nil, "")
	require.NoError(t, err)
	assert.False(t, ok)
}
