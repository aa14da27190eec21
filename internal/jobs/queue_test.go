package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/renamarr/internal/jobs/mocks"
	"github.com/vmunix/renamarr/internal/metadata"
)

// blockingResolver returns a resolver whose first call signals started and
// then waits for release. Later calls match immediately.
func blockingResolver(ctrl *gomock.Controller, started chan<- struct{}, release <-chan struct{}) *mocks.MockResolver {
	resolver := mocks.NewMockResolver(ctrl)
	first := resolver.EXPECT().MatchFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, path string, src metadata.DataSource, opts metadata.MatchOptions) (*metadata.MatchInfo, error) {
			started <- struct{}{}
			<-release
			return stemMatch(ctx, path, src, opts)
		})
	resolver.EXPECT().MatchFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(stemMatch).After(first).AnyTimes()
	return resolver
}

func TestQueue_SubmitAppliesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	r, err := NewRunner(Deps{Resolver: mocks.NewMockResolver(ctrl), Files: mocks.NewMockFileOps(ctrl)},
		Defaults{NamingScheme: "{n}", Language: "fr", WebhookURL: "http://hooks.local/done"}, testLogger())
	require.NoError(t, err)
	q := NewQueue(context.Background(), r, 0, testLogger())

	job := q.Submit(Request{Files: []string{}})
	waitDone(t, job)

	req := job.Request()
	assert.Equal(t, metadata.SourceTMDB, req.DataSource)
	assert.Equal(t, "{n}", req.NamingScheme)
	assert.Equal(t, OpMove, req.Operation)
	assert.Equal(t, "fr", req.Language)
	assert.Equal(t, "http://hooks.local/done", req.WebhookURL)
	assert.NotEmpty(t, job.ID())
}

func TestQueue_GetListDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := newTestQueue(t, Deps{Resolver: mocks.NewMockResolver(ctrl)}, 0)

	first := q.Submit(Request{})
	second := q.Submit(Request{})
	third := q.Submit(Request{})
	for _, j := range []*Job{first, second, third} {
		waitDone(t, j)
	}

	assert.Same(t, second, q.Get(second.ID()))
	assert.Nil(t, q.Get("nope"))

	list := q.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{third.ID(), second.ID(), first.ID()},
		[]string{list[0].ID(), list[1].ID(), list[2].ID()})

	assert.True(t, q.Delete(second.ID()))
	assert.False(t, q.Delete(second.ID()))
	assert.Nil(t, q.Get(second.ID()))
	assert.Len(t, q.List(), 2)
	assert.Equal(t, map[Status]int{StatusCompleted: 2}, q.Counts())
}

func TestQueue_CancelStopsBeforeNextFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	resolver := blockingResolver(ctrl, started, release)

	dir := t.TempDir()
	for _, name := range []string{"a.mkv", "b.mkv", "c.mkv"} {
		touch(t, dir, name)
	}

	q := newTestQueue(t, Deps{Resolver: resolver}, 0)
	job := q.Submit(Request{Files: []string{dir}, DryRun: true})

	<-started
	assert.Equal(t, StatusRunning, job.Status())
	assert.True(t, q.Cancel(job.ID()))
	close(release)
	waitDone(t, job)

	d := job.Detail()
	assert.Equal(t, StatusCancelled, d.Status)
	require.Len(t, d.Results, 1)
	assert.Equal(t, 1, d.RenamedCount)
	assert.Equal(t, 3, d.Progress.Total)
	assert.Contains(t, d.LastMessage, "Done: 1 renamed, 0 errors, 0 conflicts")

	// Cancelling a terminal job still reports that the job exists
	assert.True(t, q.Cancel(job.ID()))
	assert.Equal(t, StatusCancelled, job.Status())
	assert.False(t, q.Cancel("unknown"))
}

func TestQueue_BaseContextCancelsJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	resolver := blockingResolver(ctrl, started, release)

	dir := t.TempDir()
	touch(t, dir, "a.mkv")
	touch(t, dir, "b.mkv")

	ctx, cancel := context.WithCancel(context.Background())
	q := NewQueue(ctx, newTestRunner(t, Deps{Resolver: resolver}), 0, testLogger())
	job := q.Submit(Request{Files: []string{dir}, DryRun: true})

	<-started
	cancel()
	close(release)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, q.Wait(waitCtx))

	assert.Equal(t, StatusCancelled, job.Status())
	assert.Len(t, job.Results(), 1)
}

func TestQueue_EvictsOldestTerminalJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := newTestQueue(t, Deps{Resolver: mocks.NewMockResolver(ctrl)}, 3)

	var done []*Job
	for range 3 {
		j := q.Submit(Request{})
		waitDone(t, j)
		done = append(done, j)
	}

	latest := q.Submit(Request{})
	waitDone(t, latest)

	assert.Nil(t, q.Get(done[0].ID()), "oldest completed job should be evicted")
	assert.NotNil(t, q.Get(done[1].ID()))
	assert.NotNil(t, q.Get(done[2].ID()))
	assert.NotNil(t, q.Get(latest.ID()))
	assert.Len(t, q.List(), 3)
}

func TestQueue_NeverEvictsActiveJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	resolver := mocks.NewMockResolver(ctrl)
	resolver.EXPECT().MatchFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, path string, src metadata.DataSource, opts metadata.MatchOptions) (*metadata.MatchInfo, error) {
			started <- struct{}{}
			<-release
			return stemMatch(ctx, path, src, opts)
		}).Times(2)

	dir := t.TempDir()
	a := touch(t, dir, "a.mkv")
	b := touch(t, dir, "b.mkv")

	q := newTestQueue(t, Deps{Resolver: resolver}, 1)
	first := q.Submit(Request{Files: []string{a}, DryRun: true})
	<-started
	second := q.Submit(Request{Files: []string{b}, DryRun: true})
	<-started

	// Both are running, so the queue holds more than its cap
	assert.Len(t, q.List(), 2)
	assert.NotNil(t, q.Get(first.ID()))
	assert.NotNil(t, q.Get(second.ID()))

	close(release)
	waitDone(t, first)
	waitDone(t, second)

	// The next submission trims back to the cap, oldest terminal first
	third := q.Submit(Request{})
	waitDone(t, third)
	assert.Len(t, q.List(), 1)
	assert.NotNil(t, q.Get(third.ID()))
}

func TestQueue_WaitHonoursContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	resolver := blockingResolver(ctrl, started, release)

	src := touch(t, t.TempDir(), "a.mkv")
	q := newTestQueue(t, Deps{Resolver: resolver}, 0)
	job := q.Submit(Request{Files: []string{src}, DryRun: true})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Wait(ctx), context.DeadlineExceeded)

	close(release)
	waitDone(t, job)
}
