package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/vmunix/renamarr/internal/importer"
	"github.com/vmunix/renamarr/internal/metrics"
)

// DefaultMaintenanceInterval is how often expired rows are pruned.
const DefaultMaintenanceInterval = time.Hour

// CachePruner drops expired metadata cache rows. *metadata.Cache satisfies it.
type CachePruner interface {
	Prune(ctx context.Context) (int64, error)
}

// HistoryPruner trims rename history. *importer.HistoryStore satisfies it.
type HistoryPruner interface {
	Prune(ctx context.Context, keep int) (int64, error)
}

// EventPruner drops old persisted events. *events.EventLog satisfies it.
type EventPruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// MaintenanceConfig tunes periodic pruning. Zero values select defaults;
// a zero EventRetention keeps events forever.
type MaintenanceConfig struct {
	Interval       time.Duration
	HistoryKeep    int
	EventRetention time.Duration
}

// Report counts the rows removed by one maintenance pass.
type Report struct {
	Cache   int64
	History int64
	Events  int64
}

// Maintenance prunes the database on a fixed interval. Any pruner may be nil.
type Maintenance struct {
	cfg     MaintenanceConfig
	cache   CachePruner
	history HistoryPruner
	events  EventPruner
	log     *slog.Logger
}

// NewMaintenance creates a maintenance task.
func NewMaintenance(cfg MaintenanceConfig, cache CachePruner, history HistoryPruner, events EventPruner, log *slog.Logger) *Maintenance {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultMaintenanceInterval
	}
	if cfg.HistoryKeep <= 0 {
		cfg.HistoryKeep = importer.DefaultHistoryLimit
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Maintenance{
		cfg:     cfg,
		cache:   cache,
		history: history,
		events:  events,
		log:     log.With("component", "maintenance"),
	}
}

// Run prunes once immediately and then on every tick until ctx is done.
func (m *Maintenance) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	m.log.Info("maintenance started", "interval", m.cfg.Interval)
	m.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			m.log.Info("maintenance stopped")
			return nil
		case <-ticker.C:
			m.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single pass. Failures are logged and do not stop the
// remaining steps.
func (m *Maintenance) RunOnce(ctx context.Context) Report {
	var r Report
	if m.cache != nil {
		r.Cache = m.step("metadata_cache", func() (int64, error) { return m.cache.Prune(ctx) })
	}
	if m.history != nil {
		r.History = m.step("rename_history", func() (int64, error) { return m.history.Prune(ctx, m.cfg.HistoryKeep) })
	}
	if m.events != nil && m.cfg.EventRetention > 0 {
		r.Events = m.step("events", func() (int64, error) { return m.events.Prune(ctx, m.cfg.EventRetention) })
	}
	if r.Cache+r.History+r.Events > 0 {
		m.log.Info("maintenance pruned rows", "cache", r.Cache, "history", r.History, "events", r.Events)
	}
	return r
}

func (m *Maintenance) step(table string, prune func() (int64, error)) int64 {
	n, err := prune()
	if err != nil {
		m.log.Error("prune failed", "table", table, "error", err)
		return 0
	}
	metrics.RowsPruned.WithLabelValues(table).Add(float64(n))
	return n
}
