package comparison

import (
	"time"

	"cardscout/internal/allocation"
)

// Run statuses. A run is created PENDING, claimed RUNNING by the worker,
// and ends COMPLETED or FAILED.
const (
	StatusPending   = "PENDING"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// Run is one price-comparison request: the submitted want-list, the
// consolidation policy it was run with, and (once completed) the allocation
// result.
type Run struct {
	ID       string                  `json:"id"`
	UserID   string                  `json:"user_id"`
	Decklist string                  `json:"decklist"`
	Sources  []string                `json:"sources"`
	Filter   allocation.FilterConfig `json:"filter"`

	Status    string             `json:"status"`
	Result    *allocation.Result `json:"result,omitempty"`
	Error     *string            `json:"error,omitempty"`
	ExportURL *string            `json:"export_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
