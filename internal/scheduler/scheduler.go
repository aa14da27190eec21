// Package scheduler submits rename jobs for watched directories on cron
// schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vmunix/renamarr/internal/jobs"
)

// Watch is a directory processed on a schedule.
type Watch struct {
	Name         string
	Schedule     string
	Dir          string
	NamingScheme string
	OutputDir    string
	Operation    jobs.Operation
	DryRun       bool
}

func (w Watch) request() jobs.Request {
	return jobs.Request{
		Files:        []string{w.Dir},
		NamingScheme: w.NamingScheme,
		OutputDir:    w.OutputDir,
		Operation:    w.Operation,
		DryRun:       w.DryRun,
	}
}

// Submitter accepts jobs. *jobs.Queue satisfies it.
type Submitter interface {
	Submit(req jobs.Request) *jobs.Job
}

// Entry describes a registered watch and its next run.
type Entry struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	Dir      string    `json:"dir"`
	Next     time.Time `json:"next"`
	LastJob  string    `json:"last_job_id,omitempty"`
}

type registered struct {
	watch Watch
	id    cron.EntryID
	last  *jobs.Job
}

// Scheduler runs one cron entry per watch. A tick is skipped while the
// watch's previous job is still active.
type Scheduler struct {
	cron    *cron.Cron
	submit  Submitter
	log     *slog.Logger
	mu      sync.Mutex
	watches []*registered
}

// New creates a scheduler and registers every watch. Schedules use the
// standard five-field cron format.
func New(submit Submitter, watches []Watch, log *slog.Logger) (*Scheduler, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Scheduler{
		cron:   cron.New(),
		submit: submit,
		log:    log.With("component", "scheduler"),
	}

	for _, w := range watches {
		r := &registered{watch: w}
		id, err := s.cron.AddFunc(w.Schedule, func() { s.tick(r) })
		if err != nil {
			return nil, fmt.Errorf("watch %q: invalid schedule %q: %w", w.Name, w.Schedule, err)
		}
		r.id = id
		s.watches = append(s.watches, r)
	}
	return s, nil
}

// Start runs the cron loop until ctx is done, then stops it and waits for
// running ticks to return.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("scheduler started", "watches", len(s.watches))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
	return nil
}

// Entries lists the registered watches.
func (s *Scheduler) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.watches))
	for _, r := range s.watches {
		e := Entry{
			Name:     r.watch.Name,
			Schedule: r.watch.Schedule,
			Dir:      r.watch.Dir,
			Next:     s.cron.Entry(r.id).Next,
		}
		if r.last != nil {
			e.LastJob = r.last.ID()
		}
		out = append(out, e)
	}
	return out
}

// tick submits a job for the watch unless its previous job is still active.
// It reports whether a job was submitted.
func (s *Scheduler) tick(r *registered) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.log.With("watch", r.watch.Name)
	if r.last != nil && !r.last.Status().Terminal() {
		log.Info("previous job still active, skipping", "job_id", r.last.ID())
		return false
	}

	r.last = s.submit.Submit(r.watch.request())
	log.Info("watch job submitted", "job_id", r.last.ID(), "dir", r.watch.Dir)
	return true
}
