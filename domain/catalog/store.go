package catalog

import (
	"context"

	"github.com/synthome/stitch/internal/database"
)

// Store defines the interface for catalog persistence.
type Store interface {
	// SaveBatch writes the entries of one run atomically and returns them
	// with ids assigned.
	SaveBatch(ctx context.Context, entries []Entry) ([]Entry, error)

	// Find retrieves entries matching the query, features and events
	// included.
	Find(ctx context.Context, query database.Query) ([]Entry, error)

	// ByRun retrieves the entries recorded under one run id in insertion
	// order.
	ByRun(ctx context.Context, runID string) ([]Entry, error)

	// ByExperiment retrieves the entries recorded for an experiment family.
	ByExperiment(ctx context.Context, experiment string) ([]Entry, error)

	// GetByName retrieves the most recently recorded entry for a construct
	// name.
	GetByName(ctx context.Context, name string) (Entry, error)

	// Experiments lists the distinct experiment families recorded.
	Experiments(ctx context.Context) ([]string, error)

	// CountByRun returns the number of entries recorded under a run id.
	CountByRun(ctx context.Context, runID string) (int64, error)

	// DeleteByRun removes the entries of one run.
	DeleteByRun(ctx context.Context, runID string) error
}
