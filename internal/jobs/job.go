package jobs

import (
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// maxLogLines is how many activity log lines Detail exposes.
const maxLogLines = 200

// Job is one batch rename. Its fields are written by the job's own goroutine
// and by Cancel, always under mu.
type Job struct {
	id        string
	seq       uint64
	request   Request
	createdAt time.Time
	done      chan struct{}

	mu          sync.Mutex
	status      Status
	startedAt   *time.Time
	completedAt *time.Time
	progress    Progress
	results     []Result
	log         []string
	renamed     int
	errors      int
	conflicts   int
	lastMessage string
	err         string
	cancelled   bool
}

func newJob(id string, seq uint64, req Request) *Job {
	return &Job{
		id:        id,
		seq:       seq,
		request:   req,
		createdAt: time.Now().UTC(),
		done:      make(chan struct{}),
		status:    StatusPending,
	}
}

// ID returns the job's identifier.
func (j *Job) ID() string { return j.id }

// Request returns the submitted request with defaults applied.
func (j *Job) Request() Request { return j.request }

// Done is closed once the job has reached a terminal status.
func (j *Job) Done() <-chan struct{} { return j.done }

// Status returns the current status.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Cancel asks a pending or running job to stop before its next file.
// It reports whether the request was accepted.
func (j *Job) Cancel() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status.Terminal() {
		return false
	}
	j.cancelled = true
	return true
}

func (j *Job) isCancelled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cancelled
}

// Summary returns a snapshot of the job's state.
func (j *Job) Summary() Summary {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.summaryLocked()
}

func (j *Job) summaryLocked() Summary {
	return Summary{
		ID:            j.id,
		Status:        j.status,
		CreatedAt:     j.createdAt,
		StartedAt:     j.startedAt,
		CompletedAt:   j.completedAt,
		Progress:      j.progress,
		FileCount:     len(j.request.Files),
		RenamedCount:  j.renamed,
		ErrorCount:    j.errors,
		ConflictCount: j.conflicts,
		LastMessage:   j.lastMessage,
		Error:         j.err,
	}
}

// Detail returns the summary plus results and the most recent log lines.
func (j *Job) Detail() Detail {
	j.mu.Lock()
	defer j.mu.Unlock()

	log := j.log
	if len(log) > maxLogLines {
		log = log[len(log)-maxLogLines:]
	}
	return Detail{
		Summary: j.summaryLocked(),
		Request: j.request,
		Results: slices.Clone(j.results),
		Log:     slices.Clone(log),
	}
}

// Results returns a copy of the per-file results recorded so far.
func (j *Job) Results() []Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.results)
}

func (j *Job) start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now().UTC()
	j.status = StatusRunning
	j.startedAt = &now
}

func (j *Job) setTotal(total int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.progress = Progress{Total: total}
}

func (j *Job) advance(i int, path string) Progress {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.progress.Current = i
	j.progress.Percent = percent(i, j.progress.Total)
	j.progress.CurrentFile = filepath.Base(path)
	return j.progress
}

func (j *Job) record(r Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = append(j.results, r)
	switch {
	case r.Success:
		j.renamed++
	case r.Conflict:
		j.conflicts++
	default:
		j.errors++
	}
}

func (j *Job) appendLog(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lastMessage = msg
	j.log = append(j.log, "["+time.Now().Format("15:04:05")+"] "+msg)
}

// complete ends the file loop: progress goes to 100% and the status becomes
// completed, or cancelled when the flag was raised.
func (j *Job) complete() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.progress.Current = j.progress.Total
	j.progress.Percent = 100
	j.progress.CurrentFile = ""
	if j.cancelled {
		j.status = StatusCancelled
	} else {
		j.status = StatusCompleted
	}
	return j.status
}

func (j *Job) fail(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.status = StatusFailed
	j.err = err.Error()
}

// finish stamps the completion time.
func (j *Job) finish() Summary {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now().UTC()
	j.completedAt = &now
	return j.summaryLocked()
}

// release wakes everything waiting on Done.
func (j *Job) release() { close(j.done) }

func percent(i, total int) float64 {
	return math.Round(float64(i)/float64(max(total, 1))*1000) / 10
}
