package insights

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"cardscout/internal/allocation"
)

type Service struct {
	db   *pgxpool.Pool
	repo *Repository
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{
		db:   db,
		repo: NewRepository(db),
	}
}

// Recompute rebuilds every vendor snapshot from completed runs.
func (s *Service) Recompute(ctx context.Context) error {
	rows, err := s.db.Query(ctx, `
		SELECT result
		FROM comparison_runs
		WHERE status = 'COMPLETED'
		  AND result IS NOT NULL
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	type tally struct {
		runs  int
		cards int
		spend float64
	}
	perVendor := make(map[string]*tally)
	sampled := 0

	for rows.Next() {
		var encoded []byte
		if err := rows.Scan(&encoded); err != nil {
			continue
		}

		var result allocation.Result
		if err := json.Unmarshal(encoded, &result); err != nil {
			continue
		}
		sampled++

		for vendor, summary := range result.Summary {
			t, ok := perVendor[vendor]
			if !ok {
				t = &tally{}
				perVendor[vendor] = t
			}
			t.runs++
			t.cards += summary.TotalCards
			t.spend += summary.TotalPrice
		}
	}

	if sampled == 0 {
		log.Println("insights: no completed runs to sample, skipping")
		return nil
	}

	for vendor, t := range perVendor {
		snapshot := VendorSnapshot{
			Vendor:      vendor,
			RunsSampled: t.runs,
			CardsWon:    t.cards,
			TotalSpend:  t.spend,
		}
		if t.runs > 0 {
			snapshot.AvgOrderValue = t.spend / float64(t.runs)
		}

		if err := s.repo.UpsertSnapshot(ctx, snapshot); err != nil {
			return err
		}
	}

	log.Printf("insights: recomputed %d vendor snapshots from %d runs", len(perVendor), sampled)
	return nil
}

func (s *Service) List(ctx context.Context) ([]VendorSnapshot, error) {
	return s.repo.ListSnapshots(ctx)
}
