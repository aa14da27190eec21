// internal/importer/nfo.go
package importer

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/renamarr/internal/metadata"
)

type nfoUniqueID struct {
	Type    string `xml:"type,attr"`
	Default bool   `xml:"default,attr,omitempty"`
	Value   string `xml:",chardata"`
}

type movieNFO struct {
	XMLName   xml.Name      `xml:"movie"`
	Title     string        `xml:"title"`
	Year      string        `xml:"year,omitempty"`
	Plot      string        `xml:"plot,omitempty"`
	Genres    []string      `xml:"genre"`
	UniqueIDs []nfoUniqueID `xml:"uniqueid"`
	Thumb     string        `xml:"thumb,omitempty"`
}

type episodeNFO struct {
	XMLName   xml.Name      `xml:"episodedetails"`
	Title     string        `xml:"title"`
	ShowTitle string        `xml:"showtitle"`
	Season    int           `xml:"season"`
	Episode   int           `xml:"episode"`
	Year      string        `xml:"year,omitempty"`
	Plot      string        `xml:"plot,omitempty"`
	Genres    []string      `xml:"genre"`
	UniqueIDs []nfoUniqueID `xml:"uniqueid"`
	Thumb     string        `xml:"thumb,omitempty"`
}

// NFOWriter writes Kodi-style .nfo sidecar files.
type NFOWriter struct {
	log *slog.Logger
}

// NewNFOWriter creates an NFOWriter.
func NewNFOWriter(log *slog.Logger) *NFOWriter {
	return &NFOWriter{log: log.With("component", "nfo")}
}

// Write creates "<stem>.nfo" beside path. posterPath, when set, is referenced
// as the thumb. It returns false when there is nothing to write.
func (w *NFOWriter) Write(_ context.Context, path string, mi *metadata.MatchInfo, posterPath string) (bool, error) {
	if mi == nil {
		return false, nil
	}

	thumb := ""
	if posterPath != "" {
		thumb = filepath.Base(posterPath)
	}

	var doc any
	if mi.Type == metadata.TypeTV {
		title := mi.EpisodeTitle
		if title == "" {
			title = fmt.Sprintf("Episode %d", mi.Episode)
		}
		doc = episodeNFO{
			Title:     title,
			ShowTitle: mi.Title,
			Season:    mi.Season,
			Episode:   mi.Episode,
			Year:      mi.Year,
			Plot:      mi.Overview,
			Genres:    mi.Genres,
			UniqueIDs: uniqueIDs(mi),
			Thumb:     thumb,
		}
	} else {
		doc = movieNFO{
			Title:     mi.Title,
			Year:      mi.Year,
			Plot:      mi.Overview,
			Genres:    mi.Genres,
			UniqueIDs: uniqueIDs(mi),
			Thumb:     thumb,
		}
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return false, fmt.Errorf("marshal nfo: %w", err)
	}

	nfo := strings.TrimSuffix(path, filepath.Ext(path)) + ".nfo"
	content := append([]byte(xml.Header), data...)
	content = append(content, '\n')
	if err := os.WriteFile(nfo, content, 0644); err != nil {
		return false, fmt.Errorf("write nfo: %w", err)
	}

	w.log.Debug("nfo written", "path", nfo)
	return true, nil
}

func uniqueIDs(mi *metadata.MatchInfo) []nfoUniqueID {
	var ids []nfoUniqueID
	if mi.TMDBID != 0 {
		ids = append(ids, nfoUniqueID{Type: "tmdb", Default: true, Value: fmt.Sprint(mi.TMDBID)})
	}
	if mi.TVDBID != 0 {
		ids = append(ids, nfoUniqueID{Type: "tvdb", Default: mi.TMDBID == 0, Value: fmt.Sprint(mi.TVDBID)})
	}
	return ids
}
