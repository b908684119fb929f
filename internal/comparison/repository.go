package comparison

import (
	"context"
	"errors"

	"cardscout/internal/allocation"
)

var ErrRunNotFound = errors.New("comparison run not found")

// RunRepository defines the data-access contract for comparison runs.
// Service and worker depend ONLY on this interface.
type RunRepository interface {
	Create(ctx context.Context, run *Run) error
	GetByID(ctx context.Context, id string) (*Run, error)
	ListByUser(ctx context.Context, userID string) ([]*Run, error)

	// ClaimPending atomically claims the oldest PENDING run and marks it
	// RUNNING. Returns (nil, nil) when nothing is pending.
	ClaimPending(ctx context.Context) (*Run, error)

	MarkCompleted(ctx context.Context, id string, result *allocation.Result) error
	MarkFailed(ctx context.Context, id string, reason string) error
	SetExportURL(ctx context.Context, id string, url string) error
}
