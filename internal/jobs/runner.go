package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vmunix/renamarr/internal/events"
	"github.com/vmunix/renamarr/internal/importer"
	"github.com/vmunix/renamarr/internal/metadata"
	"github.com/vmunix/renamarr/internal/metrics"
)

// Deps are the collaborators of a Runner. Resolver and Files are required;
// the rest may be nil.
type Deps struct {
	Resolver Resolver
	Files    FileOps
	Artwork  ArtworkDownloader
	Metadata MetadataWriter
	Notifier Notifier
	History  HistoryRecorder
	Media    MediaServer
	Schemes  SchemeResolver
	Bus      *events.Bus
}

// Validate checks that the required collaborators are present.
func (d Deps) Validate() error {
	if d.Resolver == nil {
		return errors.New("resolver is required")
	}
	if d.Files == nil {
		return errors.New("file operations are required")
	}
	return nil
}

// Runner executes the per-file rename pipeline for jobs and synchronous calls.
type Runner struct {
	deps     Deps
	defaults Defaults
	log      *slog.Logger
}

// NewRunner creates a runner.
func NewRunner(deps Deps, defaults Defaults, log *slog.Logger) (*Runner, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{deps: deps, defaults: defaults, log: log.With("component", "runner")}, nil
}

// Run executes job to a terminal status. It never returns early: cancellation
// of ctx is observed between files, like Job.Cancel.
func (r *Runner) Run(ctx context.Context, job *Job) {
	start := time.Now()
	job.start()
	log := r.log.With("job_id", job.ID())
	log.Info("job started", "inputs", len(job.Request().Files))

	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("panic: %v", p)
			job.fail(err)
			job.appendLog("Job failed: %v", err)
		}
		s := job.finish()
		duration := time.Since(start)
		metrics.RecordJobFinished(string(s.Status), duration)
		log.Info("job finished", "status", s.Status, "renamed", s.RenamedCount,
			"errors", s.ErrorCount, "conflicts", s.ConflictCount, "duration_ms", duration.Milliseconds())
		r.publish(ctx, &events.JobFinished{
			BaseEvent: events.JobEvent(events.EventJobFinished, job.ID()),
			Status:    string(s.Status),
			Renamed:   s.RenamedCount,
			Errors:    s.ErrorCount,
			Conflicts: s.ConflictCount,
			Error:     s.Error,
			Duration:  duration.Milliseconds(),
		})
		job.release()
	}()

	if err := r.execute(ctx, job, log); err != nil {
		job.fail(err)
		job.appendLog("Job failed: %v", err)
	}
}

func (r *Runner) execute(ctx context.Context, job *Job, log *slog.Logger) error {
	req := job.Request()
	if !req.DataSource.Valid() {
		return fmt.Errorf("%w: %s", metadata.ErrUnsupportedSource, req.DataSource)
	}
	if !req.Operation.Valid() {
		return fmt.Errorf("unsupported operation: %s", req.Operation)
	}
	scheme, err := r.resolveScheme(ctx, req.NamingScheme)
	if err != nil {
		return err
	}

	files := importer.ExpandPaths(req.Files)
	job.setTotal(len(files))
	job.appendLog("Starting job: %d file(s)", len(files))

	var renamed []string
	for i, path := range files {
		if ctx.Err() != nil {
			job.Cancel()
		}
		if job.isCancelled() {
			break
		}

		p := job.advance(i, path)
		r.publish(ctx, &events.JobProgress{
			BaseEvent:   events.JobEvent(events.EventJobProgress, job.ID()),
			Current:     p.Current,
			Total:       p.Total,
			Percent:     p.Percent,
			CurrentFile: p.CurrentFile,
		})

		res, line := r.processFile(ctx, job.ID(), req, scheme, path)
		job.appendLog("%s", line)
		job.record(res)
		r.recordResult(ctx, job.ID(), res)
		if res.Success && !res.DryRun {
			renamed = append(renamed, res.Destination)
		}
		if res.Error != "" {
			log.Warn("file failed", "file", path, "error", res.Error)
		}
	}

	status := job.complete()
	s := job.Summary()
	job.appendLog("Done: %d renamed, %d errors, %d conflicts", s.RenamedCount, s.ErrorCount, s.ConflictCount)
	r.publish(ctx, &events.JobProgress{
		BaseEvent: events.JobEvent(events.EventJobProgress, job.ID()),
		Current:   s.Progress.Current,
		Total:     s.Progress.Total,
		Percent:   s.Progress.Percent,
	})

	if status != StatusCompleted {
		return nil
	}
	if len(renamed) > 0 && r.deps.Media != nil {
		if err := r.deps.Media.ScanPaths(context.WithoutCancel(ctx), renamed); err != nil {
			log.Warn("media server refresh failed", "error", err)
			job.appendLog("Media server refresh failed: %v", err)
		}
	}
	if req.WebhookURL != "" && r.deps.Notifier != nil {
		if err := r.deps.Notifier.Post(context.WithoutCancel(ctx), req.WebhookURL, job.Summary()); err != nil {
			log.Warn("webhook failed", "url", req.WebhookURL, "error", err)
			job.appendLog("Webhook failed: %v", err)
		}
	}
	return nil
}

// processFile runs one file through match, render, conflict check and the
// filesystem operation. Failures are captured in the result, never returned.
func (r *Runner) processFile(ctx context.Context, jobID string, req Request, scheme, path string) (Result, string) {
	res := Result{Original: path, DryRun: req.DryRun}
	name := filepath.Base(path)

	mi, err := r.deps.Resolver.MatchFile(ctx, path, req.DataSource, metadata.MatchOptions{
		Language:    req.Language,
		ExtractTech: true,
	})
	if err != nil {
		res.Error = err.Error()
		return res, fmt.Sprintf("✗  Error: %s: %v", name, err)
	}
	if mi == nil {
		res.Error = msgNoMatch
		return res, "✗  No match: " + name
	}

	base := req.OutputDir
	if base == "" {
		base = filepath.Dir(path)
	}
	dest := filepath.Join(base, importer.Render(path, mi, scheme))
	if err := importer.ValidatePath(dest, base); err != nil {
		res.Error = err.Error()
		return res, fmt.Sprintf("✗  Error: %s: %v", name, err)
	}

	same := samePath(path, dest)
	exists := fileExists(dest)
	if exists && !same && !req.Overwrite {
		res.Destination = dest
		res.Conflict = true
		return res, "⚠  Conflict: " + filepath.Base(dest)
	}

	if !req.DryRun {
		if err := r.apply(ctx, jobID, req, path, dest, mi, exists && !same); err != nil {
			res.Error = err.Error()
			return res, fmt.Sprintf("✗  Error: %s: %v", name, err)
		}
	}

	res.Success = true
	res.Destination = dest
	res.Match = mi

	mode := "DRY-RUN"
	if !req.DryRun {
		mode = strings.ToUpper(string(req.Operation))
	}
	return res, fmt.Sprintf("✓  [%s] %s → %s", mode, name, filepath.Base(dest))
}

// apply moves or copies path to dest, then runs the best-effort side effects.
func (r *Runner) apply(ctx context.Context, jobID string, req Request, path, dest string, mi *metadata.MatchInfo, replace bool) error {
	var err error
	if replace {
		err = r.replace(req.Operation, path, dest)
	} else {
		err = r.transfer(req.Operation, path, dest)
	}
	if err != nil {
		return err
	}

	r.publish(ctx, &events.FileRenamed{
		BaseEvent:   events.JobEvent(events.EventFileRenamed, jobID),
		Original:    path,
		Destination: dest,
		Operation:   string(req.Operation),
	})

	if r.deps.History != nil {
		entry := &importer.HistoryEntry{
			JobID:        jobID,
			OriginalPath: path,
			NewPath:      dest,
			Operation:    string(req.Operation),
			Match:        mi,
		}
		if err := r.deps.History.Add(ctx, entry); err != nil {
			r.log.Warn("failed to record history", "file", dest, "error", err)
		}
	}

	var poster string
	if req.DownloadArtwork && r.deps.Artwork != nil {
		p, err := r.deps.Artwork.DownloadPoster(ctx, mi, filepath.Dir(dest))
		if err != nil {
			r.log.Warn("artwork download failed", "file", dest, "error", err)
		}
		poster = p
	}
	if req.WriteMetadata && r.deps.Metadata != nil {
		if _, err := r.deps.Metadata.Write(ctx, dest, mi, poster); err != nil {
			r.log.Warn("metadata write failed", "file", dest, "error", err)
		}
	}
	return nil
}

func (r *Runner) transfer(op Operation, src, dst string) error {
	if op == OpCopy {
		return r.deps.Files.Copy(src, dst)
	}
	return r.deps.Files.Move(src, dst)
}

// replace transfers path to a staging name beside dest and then swaps it in.
// dest is untouched until the transfer has succeeded.
func (r *Runner) replace(op Operation, path, dest string) error {
	staged := stagingPath(dest)
	if err := r.deps.Files.Remove(staged); err != nil {
		return err
	}
	if err := r.transfer(op, path, staged); err != nil {
		return err
	}
	if err := r.deps.Files.Replace(staged, dest); err != nil {
		if op == OpCopy {
			_ = r.deps.Files.Remove(staged)
		} else if rerr := r.deps.Files.Move(staged, path); rerr != nil {
			r.log.Warn("failed to restore source", "file", path, "staged", staged, "error", rerr)
		}
		return err
	}
	return nil
}

// stagingPath is the hidden name a replacement is written to before it
// takes dest's place.
func stagingPath(dest string) string {
	return filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+".renamarr-tmp")
}

func (r *Runner) recordResult(ctx context.Context, jobID string, res Result) {
	outcome := "renamed"
	switch {
	case res.Conflict:
		outcome = "conflict"
	case !res.Success:
		outcome = "error"
	}
	metrics.RecordFile(outcome, res.DryRun)

	r.publish(ctx, &events.JobFile{
		BaseEvent:   events.JobEvent(events.EventJobFile, jobID),
		Original:    res.Original,
		Destination: res.Destination,
		Success:     res.Success,
		Conflict:    res.Conflict,
		DryRun:      res.DryRun,
		Error:       res.Error,
	})
}

// Match resolves each file and proposes a new name without touching it.
func (r *Runner) Match(ctx context.Context, req MatchRequest) (*MatchResponse, error) {
	start := time.Now()
	norm := Request{DataSource: req.DataSource, NamingScheme: req.NamingScheme, Language: req.Language}.withDefaults(r.defaults)
	if !norm.DataSource.Valid() {
		return nil, fmt.Errorf("%w: %s", metadata.ErrUnsupportedSource, norm.DataSource)
	}
	scheme, err := r.resolveScheme(ctx, norm.NamingScheme)
	if err != nil {
		return nil, err
	}

	resp := &MatchResponse{Results: make([]FileMatch, 0, len(req.Files))}
	for _, path := range req.Files {
		fm := FileMatch{File: path}
		switch mi, err := r.matchExisting(ctx, path, norm, req.ExtractMediaInfo); {
		case err != nil:
			fm.Error = err.Error()
		case mi == nil:
			fm.Error = msgNoMatch
		default:
			fm.Matched = true
			fm.NewName = importer.Render(path, mi, scheme)
			fm.Match = mi
			resp.MatchedCount++
		}
		resp.Results = append(resp.Results, fm)
	}
	resp.Total = len(resp.Results)
	resp.DurationMS = elapsedMS(start)
	return resp, nil
}

func (r *Runner) matchExisting(ctx context.Context, path string, req Request, tech bool) (*metadata.MatchInfo, error) {
	if !fileExists(path) {
		return nil, fmt.Errorf("%s: %s", msgFileNotFound, path)
	}
	return r.deps.Resolver.MatchFile(ctx, path, req.DataSource, metadata.MatchOptions{
		Language:    req.Language,
		ExtractTech: tech,
	})
}

// Rename runs the job pipeline synchronously over the listed files.
// Directories are not expanded and the webhook is not called.
func (r *Runner) Rename(ctx context.Context, req Request) (*RenameResponse, error) {
	start := time.Now()
	req = req.withDefaults(r.defaults)
	if !req.DataSource.Valid() {
		return nil, fmt.Errorf("%w: %s", metadata.ErrUnsupportedSource, req.DataSource)
	}
	if !req.Operation.Valid() {
		return nil, fmt.Errorf("unsupported operation: %s", req.Operation)
	}
	scheme, err := r.resolveScheme(ctx, req.NamingScheme)
	if err != nil {
		return nil, err
	}

	resp := &RenameResponse{Results: make([]Result, 0, len(req.Files)), DryRun: req.DryRun}
	for _, path := range req.Files {
		var res Result
		if fileExists(path) {
			res, _ = r.processFile(ctx, "", req, scheme, path)
		} else {
			res = Result{Original: path, DryRun: req.DryRun, Error: msgFileNotFound}
		}
		switch {
		case res.Success:
			resp.RenamedCount++
		case res.Conflict:
			resp.ConflictCount++
		default:
			resp.SkippedCount++
		}
		resp.Results = append(resp.Results, res)
	}
	resp.Total = len(resp.Results)
	resp.DurationMS = elapsedMS(start)
	return resp, nil
}

func (r *Runner) resolveScheme(ctx context.Context, scheme string) (string, error) {
	if r.deps.Schemes == nil {
		return scheme, nil
	}
	resolved, err := r.deps.Schemes.Resolve(ctx, scheme)
	if err != nil {
		return "", fmt.Errorf("resolve naming scheme: %w", err)
	}
	return resolved, nil
}

func (r *Runner) publish(ctx context.Context, e events.Event) {
	if r.deps.Bus == nil {
		return
	}
	if err := r.deps.Bus.Publish(context.WithoutCancel(ctx), e); err != nil {
		r.log.Warn("failed to publish event", "type", e.EventType(), "error", err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()/100) / 10
}
