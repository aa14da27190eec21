// internal/importer/files.go
package importer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// MediaExtensions are the file extensions treated as renameable media.
var MediaExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".m4v", ".mpg", ".mpeg", ".flv", ".wmv"}

// IsVideoFile reports whether path has a media extension (case-insensitive).
func IsVideoFile(path string) bool {
	return hasExtension(path, MediaExtensions)
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext != "" && slices.Contains(exts, ext)
}

// ExpandPaths turns a mix of files and directories into a flat list of media
// files. Directories are walked recursively and their files sorted; inputs keep
// their order. Missing paths and non-media files are dropped.
func ExpandPaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if IsVideoFile(p) {
				out = append(out, p)
			}
			continue
		}
		found, err := Scan(p, true, nil)
		if err != nil {
			continue
		}
		for _, f := range found {
			out = append(out, f.Path)
		}
	}
	return out
}

// ScannedFile is a media file found by Scan.
type ScannedFile struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Scan lists files under dir whose extension is in exts (MediaExtensions when
// empty), sorted by path. Entries that cannot be read below dir are skipped;
// only a failure on dir itself is an error.
func Scan(dir string, recursive bool, exts []string) ([]ScannedFile, error) {
	if len(exts) == 0 {
		exts = MediaExtensions
	}
	exts = normalizeExtensions(exts)

	var files []ScannedFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasExtension(path, exts) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, ScannedFile{Path: path, Name: d.Name(), Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	slices.SortFunc(files, func(a, b ScannedFile) int { return strings.Compare(a.Path, b.Path) })
	return files, nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
