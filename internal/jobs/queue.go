package jobs

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/vmunix/renamarr/internal/events"
	"github.com/vmunix/renamarr/internal/metrics"
)

// DefaultMaxJobs is how many jobs the queue retains when unconfigured.
const DefaultMaxJobs = 200

// Queue owns every job and runs each on its own goroutine. It retains at
// most maxJobs entries, evicting the oldest terminal jobs first.
type Queue struct {
	ctx     context.Context
	runner  *Runner
	maxJobs int
	log     *slog.Logger

	mu   sync.Mutex
	jobs map[string]*Job
	seq  uint64
	wg   sync.WaitGroup
}

// NewQueue creates a queue. Jobs run with ctx as their base context, so
// cancelling it stops every job at its next file.
func NewQueue(ctx context.Context, runner *Runner, maxJobs int, log *slog.Logger) *Queue {
	if maxJobs <= 0 {
		maxJobs = DefaultMaxJobs
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Queue{
		ctx:     ctx,
		runner:  runner,
		maxJobs: maxJobs,
		log:     log.With("component", "queue"),
		jobs:    make(map[string]*Job),
	}
}

// Submit stores a new pending job and starts it. It never blocks on the job.
func (q *Queue) Submit(req Request) *Job {
	req = req.withDefaults(q.runner.defaults)

	q.mu.Lock()
	q.seq++
	job := newJob(uuid.NewString(), q.seq, req)
	q.jobs[job.ID()] = job
	evicted := q.evictLocked()
	q.wg.Add(1)
	q.mu.Unlock()

	metrics.JobsSubmitted.Inc()
	q.log.Info("job submitted", "job_id", job.ID(), "inputs", len(req.Files), "dry_run", req.DryRun, "evicted", evicted)
	q.runner.publish(q.ctx, &events.JobSubmitted{
		BaseEvent: events.JobEvent(events.EventJobSubmitted, job.ID()),
		Inputs:    len(req.Files),
		DryRun:    req.DryRun,
	})
	q.updateMetrics()

	go func() {
		defer q.wg.Done()
		defer q.updateMetrics()
		q.runner.Run(q.ctx, job)
	}()
	return job
}

// evictLocked removes the oldest terminal jobs while the queue is over its
// cap. Active jobs are never evicted.
func (q *Queue) evictLocked() int {
	over := len(q.jobs) - q.maxJobs
	if over <= 0 {
		return 0
	}

	var terminal []*Job
	for _, j := range q.jobs {
		if j.Status().Terminal() {
			terminal = append(terminal, j)
		}
	}
	slices.SortFunc(terminal, func(a, b *Job) int {
		return cmp.Or(a.createdAt.Compare(b.createdAt), cmp.Compare(a.seq, b.seq))
	})

	n := min(over, len(terminal))
	for _, j := range terminal[:n] {
		delete(q.jobs, j.ID())
	}
	return n
}

// Get returns the job with id, or nil.
func (q *Queue) Get(id string) *Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.jobs[id]
}

// List returns every job, newest first.
func (q *Queue) List() []*Job {
	q.mu.Lock()
	list := make([]*Job, 0, len(q.jobs))
	for _, j := range q.jobs {
		list = append(list, j)
	}
	q.mu.Unlock()

	slices.SortFunc(list, func(a, b *Job) int {
		return cmp.Or(b.createdAt.Compare(a.createdAt), cmp.Compare(b.seq, a.seq))
	})
	return list
}

// Cancel flags the job for cancellation. It reports whether the job exists,
// not whether it has stopped.
func (q *Queue) Cancel(id string) bool {
	job := q.Get(id)
	if job == nil {
		return false
	}
	if job.Cancel() {
		q.log.Info("job cancel requested", "job_id", id)
	}
	return true
}

// Delete removes the job record regardless of its status.
func (q *Queue) Delete(id string) bool {
	q.mu.Lock()
	_, ok := q.jobs[id]
	delete(q.jobs, id)
	q.mu.Unlock()

	if ok {
		q.updateMetrics()
	}
	return ok
}

// Counts returns the number of held jobs per status.
func (q *Queue) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, j := range q.List() {
		counts[j.Status()]++
	}
	return counts
}

// Wait blocks until every job goroutine has exited or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) updateMetrics() {
	var active, terminal int
	for status, n := range q.Counts() {
		if status.Terminal() {
			terminal += n
		} else {
			active += n
		}
	}
	metrics.UpdateQueueSize(active, terminal)
}
