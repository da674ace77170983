package service

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/synthome/stitch/domain/catalog"
)

// Catalog answers queries about previously assembled constructs.
type Catalog struct {
	store  catalog.Store
	closed *atomic.Bool
	logger *slog.Logger
}

// NewCatalog creates a new Catalog service.
func NewCatalog(store catalog.Store, closed *atomic.Bool, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		store:  store,
		closed: closed,
		logger: logger,
	}
}

// ByRun returns the entries recorded under one run id in insertion order.
func (c Catalog) ByRun(ctx context.Context, runID string) ([]catalog.Entry, error) {
	if c.closed != nil && c.closed.Load() {
		return nil, ErrClientClosed
	}
	return c.store.ByRun(ctx, runID)
}

// ByExperiment returns the entries recorded for an experiment family.
func (c Catalog) ByExperiment(ctx context.Context, experiment string) ([]catalog.Entry, error) {
	if c.closed != nil && c.closed.Load() {
		return nil, ErrClientClosed
	}
	return c.store.ByExperiment(ctx, experiment)
}

// Construct returns the most recently recorded entry for a construct name.
func (c Catalog) Construct(ctx context.Context, name string) (catalog.Entry, error) {
	if c.closed != nil && c.closed.Load() {
		return catalog.Entry{}, ErrClientClosed
	}
	return c.store.GetByName(ctx, name)
}

// Experiments lists the distinct experiment families recorded.
func (c Catalog) Experiments(ctx context.Context) ([]string, error) {
	if c.closed != nil && c.closed.Load() {
		return nil, ErrClientClosed
	}
	return c.store.Experiments(ctx)
}

// CountByRun returns the number of entries recorded under a run id.
func (c Catalog) CountByRun(ctx context.Context, runID string) (int64, error) {
	if c.closed != nil && c.closed.Load() {
		return 0, ErrClientClosed
	}
	return c.store.CountByRun(ctx, runID)
}

// DeleteRun removes the entries of one run.
func (c Catalog) DeleteRun(ctx context.Context, runID string) error {
	if c.closed != nil && c.closed.Load() {
		return ErrClientClosed
	}
	c.logger.Info("deleting catalog run", slog.String("run_id", runID))
	return c.store.DeleteByRun(ctx, runID)
}
