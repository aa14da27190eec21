package jobs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vmunix/renamarr/internal/importer"
	"github.com/vmunix/renamarr/internal/metadata"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// touch creates a small file and returns its path.
func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(name), 0644))
	return path
}

// stemMatch matches every file as a movie titled after its stem.
func stemMatch(_ context.Context, path string, _ metadata.DataSource, _ metadata.MatchOptions) (*metadata.MatchInfo, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &metadata.MatchInfo{Title: stem, Year: "2000", Type: metadata.TypeMovie}, nil
}

func newTestRunner(t *testing.T, deps Deps) *Runner {
	t.Helper()
	if deps.Files == nil {
		deps.Files = importer.FileOps{}
	}
	r, err := NewRunner(deps, Defaults{}, testLogger())
	require.NoError(t, err)
	return r
}

func newTestQueue(t *testing.T, deps Deps, maxJobs int) *Queue {
	t.Helper()
	q := NewQueue(context.Background(), newTestRunner(t, deps), maxJobs, testLogger())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = q.Wait(ctx)
	})
	return q
}

func waitDone(t *testing.T, job *Job) {
	t.Helper()
	select {
	case <-job.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("job %s did not finish", job.ID())
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
