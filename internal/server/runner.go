// Package server runs the daemon's background components.
package server

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Component is a long-running background task. Start blocks until ctx is
// done and returns nil on a clean stop.
type Component interface {
	Start(ctx context.Context) error
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(ctx context.Context) error

// Start calls f.
func (f ComponentFunc) Start(ctx context.Context) error { return f(ctx) }

// Runner manages the background components.
type Runner struct {
	components map[string]Component
	order      []string
	logger     *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		components: make(map[string]Component),
		logger:     logger.With("component", "runner"),
	}
}

// Add registers a component. A nil component is ignored so optional parts
// can be passed unconditionally.
func (r *Runner) Add(name string, c Component) {
	if c == nil {
		return
	}
	if _, ok := r.components[name]; !ok {
		r.order = append(r.order, name)
	}
	r.components[name] = c
}

// Run starts all components and blocks until ctx is canceled or one of
// them fails, which stops the others.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, name := range r.order {
		c := r.components[name]
		g.Go(func() error {
			r.logger.Debug("component starting", "name", name)
			err := c.Start(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Error("component failed", "name", name, "error", err)
				return err
			}
			r.logger.Debug("component stopped", "name", name)
			return nil
		})
	}

	// Keep Run blocking even with no components.
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	return g.Wait()
}
