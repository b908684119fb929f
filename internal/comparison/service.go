package comparison

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"cardscout/internal/allocation"
	"cardscout/internal/decklist"
	"cardscout/internal/export"
	"cardscout/internal/pricing"
	"cardscout/internal/sources"
)

var (
	ErrEmptyDecklist = errors.New("decklist contains no parsable cards")
	ErrNotOwner      = errors.New("run belongs to another user")
	ErrNotCompleted  = errors.New("run is not completed yet")
)

// Uploader pushes an export to object storage and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo     RunRepository
	uploader Uploader

	// buildSources is swappable so tests can inject stub vendors.
	buildSources func(names []string) ([]sources.Source, error)
}

func NewService(repo RunRepository, uploader Uploader) *Service {
	return &Service{
		repo:         repo,
		uploader:     uploader,
		buildSources: sources.Build,
	}
}

// Submit validates a comparison request and queues it for the worker.
// Configuration problems are rejected here, before any vendor is contacted.
func (s *Service) Submit(ctx context.Context, userID, list string, sourceNames []string, filter *allocation.FilterConfig) (*Run, error) {
	cfg := allocation.DefaultFilterConfig()
	if filter != nil {
		cfg = *filter
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if len(sourceNames) == 0 {
		sourceNames = sources.DefaultSourceNames()
	}
	if _, err := s.buildSources(sourceNames); err != nil {
		return nil, err
	}

	if cards := decklist.ParseMoxfield(list); len(cards) == 0 {
		return nil, ErrEmptyDecklist
	}

	run := &Run{
		UserID:   userID,
		Decklist: list,
		Sources:  sourceNames,
		Filter:   cfg,
		Status:   StatusPending,
	}
	if err := s.repo.Create(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

// GetRun returns a run, enforcing ownership unless the caller is an admin.
func (s *Service) GetRun(ctx context.Context, id, userID, role string) (*Run, error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.UserID != userID && role != "ADMIN" {
		return nil, ErrNotOwner
	}
	return run, nil
}

func (s *Service) ListRuns(ctx context.Context, userID string) ([]*Run, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Execute runs the comparison pipeline for one run: parse the want-list,
// query every enabled source (failures degrade to not-found), aggregate,
// allocate. No persistence; callers decide what to do with the result.
func (s *Service) Execute(ctx context.Context, run *Run) (*allocation.Result, error) {
	cards := decklist.ParseMoxfield(run.Decklist)
	if len(cards) == 0 {
		return nil, ErrEmptyDecklist
	}
	log.Printf("run %s: parsed %d cards", run.ID, len(cards))

	srcs, err := s.buildSources(run.Sources)
	if err != nil {
		return nil, err
	}

	observations := sources.QueryAll(ctx, srcs, cards)
	agg := pricing.Aggregate(cards, observations)

	result, err := allocation.Allocate(cards, agg, run.Filter)
	if err != nil {
		return nil, err
	}

	log.Printf("run %s: %d cards priced, %d not found across %d vendors",
		run.ID, len(result.BestPrices), len(result.NotFound), len(result.Summary))
	return result, nil
}

// ProcessOne claims ONE pending run and executes it. No pending runs is NOT
// an error, and a failing run never blocks the worker.
func (s *Service) ProcessOne(ctx context.Context) error {
	run, err := s.repo.ClaimPending(ctx)
	if err != nil || run == nil {
		return err
	}

	result, err := s.Execute(ctx, run)
	if err != nil {
		log.Printf("run %s failed: %v", run.ID, err)
		return s.repo.MarkFailed(ctx, run.ID, err.Error())
	}

	return s.repo.MarkCompleted(ctx, run.ID, result)
}

// RunWorker polls for pending runs until the context is cancelled.
func (s *Service) RunWorker(ctx context.Context, interval time.Duration) {
	log.Println("comparison worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("comparison worker stopped")
			return
		case <-time.After(interval):
			if err := s.ProcessOne(ctx); err != nil {
				log.Println("comparison worker error:", err)
			}
		}
	}
}

// Export renders a completed run's best prices to CSV, uploads it, and
// records the public URL on the run.
func (s *Service) Export(ctx context.Context, id, userID, role string) (string, error) {
	run, err := s.GetRun(ctx, id, userID, role)
	if err != nil {
		return "", err
	}
	if run.Status != StatusCompleted || run.Result == nil {
		return "", ErrNotCompleted
	}

	csvBytes, err := export.BestPricesCSV(run.Result)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/%s/best_prices.csv", run.ID)
	url, err := s.uploader.Upload(ctx, key, bytes.NewReader(csvBytes), "text/csv")
	if err != nil {
		return "", err
	}

	if err := s.repo.SetExportURL(ctx, run.ID, url); err != nil {
		return "", err
	}
	return url, nil
}
