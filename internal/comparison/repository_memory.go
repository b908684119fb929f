package comparison

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"cardscout/internal/allocation"
)

// InMemoryRunRepository backs tests and the one-shot CLI.
type InMemoryRunRepository struct {
	mu   sync.Mutex
	runs map[string]*Run
}

func NewInMemoryRunRepository() *InMemoryRunRepository {
	return &InMemoryRunRepository{runs: make(map[string]*Run)}
}

func (r *InMemoryRunRepository) Create(_ context.Context, run *Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Status == "" {
		run.Status = StatusPending
	}
	run.CreatedAt = time.Now()
	run.UpdatedAt = run.CreatedAt

	copied := *run
	r.runs[run.ID] = &copied
	return nil
}

func (r *InMemoryRunRepository) GetByID(_ context.Context, id string) (*Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	copied := *run
	return &copied, nil
}

func (r *InMemoryRunRepository) ListByUser(_ context.Context, userID string) ([]*Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var runs []*Run
	for _, run := range r.runs {
		if run.UserID == userID {
			copied := *run
			runs = append(runs, &copied)
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

func (r *InMemoryRunRepository) ClaimPending(_ context.Context) (*Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var oldest *Run
	for _, run := range r.runs {
		if run.Status != StatusPending {
			continue
		}
		if oldest == nil || run.CreatedAt.Before(oldest.CreatedAt) {
			oldest = run
		}
	}
	if oldest == nil {
		return nil, nil
	}

	oldest.Status = StatusRunning
	oldest.UpdatedAt = time.Now()
	copied := *oldest
	return &copied, nil
}

func (r *InMemoryRunRepository) MarkCompleted(_ context.Context, id string, result *allocation.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id]
	if !ok {
		return ErrRunNotFound
	}
	run.Status = StatusCompleted
	run.Result = result
	run.Error = nil
	run.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRunRepository) MarkFailed(_ context.Context, id string, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id]
	if !ok {
		return ErrRunNotFound
	}
	run.Status = StatusFailed
	run.Error = &reason
	run.UpdatedAt = time.Now()
	return nil
}

func (r *InMemoryRunRepository) SetExportURL(_ context.Context, id string, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id]
	if !ok {
		return ErrRunNotFound
	}
	run.ExportURL = &url
	run.UpdatedAt = time.Now()
	return nil
}
