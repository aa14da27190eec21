// internal/importer/files_test.go
package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"movie.mkv", true},
		{"movie.MKV", true},
		{"movie.mp4", true},
		{"movie.avi", true},
		{"movie.m4v", true},
		{"movie.mpeg", true},
		{"movie.wmv", true},
		{"movie.txt", false},
		{"movie.nfo", false},
		{"movie.srt", false},
		{"movie", false},
		{".mkv", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVideoFile(tt.path), "IsVideoFile(%q)", tt.path)
		})
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib")
	b := writeFile(t, filepath.Join(lib, "b.mkv"), "b")
	a := writeFile(t, filepath.Join(lib, "a.MP4"), "a")
	nested := writeFile(t, filepath.Join(lib, "sub", "c.avi"), "c")
	writeFile(t, filepath.Join(lib, "notes.txt"), "x")
	loose := writeFile(t, filepath.Join(dir, "loose.mov"), "l")
	text := writeFile(t, filepath.Join(dir, "readme.txt"), "r")

	got := ExpandPaths([]string{loose, lib, text, filepath.Join(dir, "missing.mkv")})

	assert.Equal(t, []string{loose, a, b, nested}, got)
}

func TestExpandPaths_UnreadableSubdirKeepsRest(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.mkv"), "a")
	z := writeFile(t, filepath.Join(dir, "z", "z.mkv"), "z")
	locked := filepath.Join(dir, "m-locked")
	writeFile(t, filepath.Join(locked, "hidden.mkv"), "h")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	got := ExpandPaths([]string{dir})

	assert.Contains(t, got, a)
	assert.Contains(t, got, z)
}

func TestExpandPaths_Empty(t *testing.T) {
	assert.Empty(t, ExpandPaths(nil))
	assert.Empty(t, ExpandPaths([]string{t.TempDir()}))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mkv"), "aaaa")
	writeFile(t, filepath.Join(dir, "b.srt"), "s")
	writeFile(t, filepath.Join(dir, "deep", "c.mkv"), "c")

	flat, err := Scan(dir, false, nil)
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Equal(t, "a.mkv", flat[0].Name)
	assert.Equal(t, int64(4), flat[0].Size)

	all, err := Scan(dir, true, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	subs, err := Scan(dir, true, []string{"SRT", " .ass "})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "b.srt", subs[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), true, nil)
	assert.Error(t, err)
}
