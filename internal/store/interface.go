package store

import (
	"context"

	"tracer/internal/store/model"
)

// Store is the entry point for database access.
type Store interface {
	// Runs returns the trace-run repository.
	Runs() RunRepository
	// Close closes the store connection.
	Close() error
}

// RunRepository handles trace-run persistence.
type RunRepository interface {
	// Save persists a run together with its exposure rows, in one transaction.
	Save(ctx context.Context, run *model.TraceRunModel, exposures []model.ExposureModel) error
	// Latest returns the most recent run, or nil when the store is empty.
	Latest(ctx context.Context) (*model.TraceRunModel, error)
	// ListRecent lists recent runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.TraceRunModel, error)
	// Exposures lists the exposure rows of one run, in appearance order.
	Exposures(ctx context.Context, runID string) ([]model.ExposureModel, error)
}
