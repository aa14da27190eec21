// Package checksum computes file digests and writes verification sidecars.
package checksum

import (
	"crypto/md5"  //nolint:gosec // md5 sidecars are for integrity checks, not security
	"crypto/sha1" //nolint:gosec // same as md5
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Algorithm names a supported digest.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
)

// DefaultAlgorithm is used when none is given.
const DefaultAlgorithm = SHA256

// ErrUnsupportedAlgorithm is returned for an unknown algorithm name.
var ErrUnsupportedAlgorithm = errors.New("unsupported checksum algorithm")

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool {
	switch a {
	case MD5, SHA1, SHA256:
		return true
	}
	return false
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA256:
		return sha256.New(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, a)
}

// Compute returns the lowercase hex digest of the file at path.
func Compute(path string, algo Algorithm) (string, error) {
	h, err := algo.newHash()
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SidecarPath returns where the sidecar for path is written: the path with
// its extension replaced by the algorithm name.
func SidecarPath(path string, algo Algorithm) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + string(algo)
}

// WriteSidecar writes "<sum>  <basename>\n" next to path and returns the
// sidecar's location.
func WriteSidecar(path, sum string, algo Algorithm) (string, error) {
	if !algo.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algo)
	}
	out := SidecarPath(path, algo)
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(path))
	if err := os.WriteFile(out, []byte(line), 0644); err != nil {
		return "", fmt.Errorf("write sidecar: %w", err)
	}
	return out, nil
}

// Result is the outcome for one file of a batch.
type Result struct {
	File      string    `json:"file"`
	Checksum  string    `json:"checksum,omitempty"`
	Algorithm Algorithm `json:"algorithm"`
	Sidecar   string    `json:"sfv_file,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Files computes checksums for each file, optionally writing sidecars.
// Per-file failures are reported in the result rather than aborting.
func Files(files []string, algo Algorithm, sidecar bool) []Result {
	results := make([]Result, 0, len(files))
	for _, path := range files {
		r := Result{File: path, Algorithm: algo}
		if _, err := os.Stat(path); err != nil {
			r.Error = "File not found"
			results = append(results, r)
			continue
		}

		sum, err := Compute(path, algo)
		if err != nil {
			r.Error = err.Error()
			results = append(results, r)
			continue
		}
		r.Checksum = sum

		if sidecar {
			out, err := WriteSidecar(path, sum, algo)
			if err != nil {
				r.Error = err.Error()
			}
			r.Sidecar = out
		}
		results = append(results, r)
	}
	return results
}
