package checksum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCompute(t *testing.T) {
	path := writeFile(t, "movie.mkv", "hello")

	tests := []struct {
		algo Algorithm
		want string
	}{
		{MD5, "5d41402abc4b2a76b9719d911017c592"},
		{SHA1, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{SHA256, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
	}
	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			got, err := Compute(path, tt.algo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_Errors(t *testing.T) {
	path := writeFile(t, "movie.mkv", "hello")

	_, err := Compute(path, "crc32")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	_, err = Compute(filepath.Join(t.TempDir(), "missing.mkv"), SHA256)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteSidecar(t *testing.T) {
	path := writeFile(t, "Movie (2010).mkv", "hello")

	out, err := WriteSidecar(path, "abc123", MD5)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "Movie (2010).md5"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "abc123  Movie (2010).mkv\n", string(data))

	_, err = WriteSidecar(path, "abc123", "sfv")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestFiles(t *testing.T) {
	path := writeFile(t, "movie.mkv", "hello")
	missing := filepath.Join(t.TempDir(), "missing.mkv")

	results := Files([]string{path, missing}, SHA256, true)
	require.Len(t, results, 2)

	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", results[0].Checksum)
	assert.Equal(t, SidecarPath(path, SHA256), results[0].Sidecar)
	assert.FileExists(t, results[0].Sidecar)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, missing, results[1].File)
	assert.Equal(t, "File not found", results[1].Error)
	assert.Empty(t, results[1].Checksum)
}
