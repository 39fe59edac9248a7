// Package repository defines the evaluation store interface and its
// in-memory and SQLite backings.
package repository

import (
	"context"
	"time"

	"github.com/hirelens/hirelens/internal/domain/model"
)

// Store provides read/write access to job statuses and completed
// evaluations. Records are last-writer-wins and completed evaluations are
// treated as immutable by callers.
type Store interface {
	// SetStatus upserts the lifecycle snapshot for a job.
	SetStatus(ctx context.Context, id string, status model.JobStatus) error

	// Status returns the lifecycle snapshot for a job.
	// Returns ErrNotFound for unknown ids.
	Status(ctx context.Context, id string) (model.JobStatus, error)

	// Put stores a completed evaluation keyed by its id.
	Put(ctx context.Context, eval model.Evaluation) error

	// Get returns the completed evaluation for a job.
	// Returns ErrNotFound when no result has been stored.
	Get(ctx context.Context, id string) (model.Evaluation, error)

	// Delete removes the status and any result for a job.
	// Returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error

	// List returns a summary of every tracked job.
	List(ctx context.Context) ([]model.JobSummary, error)

	// Count returns the number of tracked jobs.
	Count(ctx context.Context) int

	// DeleteCompletedBefore removes terminal jobs completed before the
	// cutoff and returns how many were deleted.
	DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
