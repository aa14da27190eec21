// internal/notify/plex.go
package notify

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// PlexConfig holds the connection settings for a Plex Media Server.
type PlexConfig struct {
	URL        string
	Token      string
	LocalPath  string // Path prefix on this machine
	RemotePath string // Same prefix as seen by Plex
}

// Plex asks a Plex Media Server to rescan the directories renamed files landed in.
type Plex struct {
	baseURL    string
	token      string
	localPath  string
	remotePath string
	httpClient *http.Client
	log        *slog.Logger
}

// NewPlex creates a Plex client.
func NewPlex(cfg PlexConfig, log *slog.Logger) *Plex {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Plex{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		token:      cfg.Token,
		localPath:  cfg.LocalPath,
		remotePath: cfg.RemotePath,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.With("component", "plex"),
	}
}

// translateToRemote converts a local path to the path Plex expects.
func (p *Plex) translateToRemote(path string) string {
	if p.localPath == "" || p.remotePath == "" {
		return path
	}
	if strings.HasPrefix(path, p.localPath) {
		return p.remotePath + path[len(p.localPath):]
	}
	return path
}

// Identity holds Plex server identity information.
type Identity struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type identityResponse struct {
	XMLName      xml.Name `xml:"MediaContainer"`
	FriendlyName string   `xml:"friendlyName,attr"`
	Version      string   `xml:"version,attr"`
}

// Section represents a Plex library section.
type Section struct {
	Key       string     `xml:"key,attr"`
	Title     string     `xml:"title,attr"`
	Type      string     `xml:"type,attr"`
	Locations []Location `xml:"Location"`
}

// Location represents a library section's filesystem location.
type Location struct {
	Path string `xml:"path,attr"`
}

type sectionsResponse struct {
	XMLName  xml.Name  `xml:"MediaContainer"`
	Sections []Section `xml:"Directory"`
}

func (p *Plex) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", p.token)
	req.Header.Set("Accept", "application/xml")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Identity returns the Plex server name and version.
func (p *Plex) Identity(ctx context.Context) (*Identity, error) {
	var result identityResponse
	if err := p.get(ctx, p.baseURL+"/", &result); err != nil {
		return nil, err
	}
	return &Identity{Name: result.FriendlyName, Version: result.Version}, nil
}

// Sections returns all library sections.
func (p *Plex) Sections(ctx context.Context) ([]Section, error) {
	var result sectionsResponse
	if err := p.get(ctx, p.baseURL+"/library/sections", &result); err != nil {
		return nil, err
	}
	return result.Sections, nil
}

// ScanPaths triggers a partial scan of each distinct directory containing one
// of the given files. Directories outside every library section are skipped.
func (p *Plex) ScanPaths(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	sections, err := p.Sections(ctx)
	if err != nil {
		return fmt.Errorf("get sections: %w", err)
	}

	seen := make(map[string]bool)
	for _, path := range paths {
		remoteDir := filepath.Dir(p.translateToRemote(path))
		if seen[remoteDir] {
			continue
		}
		seen[remoteDir] = true

		key := sectionFor(sections, remoteDir)
		if key == "" {
			p.log.Warn("no library section for path", "path", path, "remote", remoteDir)
			continue
		}

		start := time.Now()
		scanURL := fmt.Sprintf("%s/library/sections/%s/refresh?path=%s",
			p.baseURL, key, url.QueryEscape(remoteDir))
		if err := p.get(ctx, scanURL, nil); err != nil {
			return fmt.Errorf("scan %s: %w", remoteDir, err)
		}
		p.log.Debug("scan triggered", "section", key, "path", remoteDir, "duration_ms", time.Since(start).Milliseconds())
	}
	return nil
}

// sectionFor returns the key of the first section whose location contains dir.
func sectionFor(sections []Section, dir string) string {
	for _, section := range sections {
		for _, loc := range section.Locations {
			root := strings.TrimSuffix(loc.Path, "/")
			if dir == root || strings.HasPrefix(dir, root+"/") {
				return section.Key
			}
		}
	}
	return ""
}
