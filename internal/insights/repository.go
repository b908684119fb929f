package insights

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert or update the snapshot for one vendor
func (r *Repository) UpsertSnapshot(ctx context.Context, s VendorSnapshot) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO vendor_snapshots (
			vendor,
			runs_sampled,
			cards_won,
			total_spend,
			avg_order_value
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vendor)
		DO UPDATE SET
			runs_sampled = EXCLUDED.runs_sampled,
			cards_won = EXCLUDED.cards_won,
			total_spend = EXCLUDED.total_spend,
			avg_order_value = EXCLUDED.avg_order_value,
			updated_at = now()
	`,
		s.Vendor,
		s.RunsSampled,
		s.CardsWon,
		s.TotalSpend,
		s.AvgOrderValue,
	)

	return err
}

// Fetch every vendor snapshot for the API
func (r *Repository) ListSnapshots(ctx context.Context) ([]VendorSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			vendor,
			runs_sampled,
			cards_won,
			total_spend,
			avg_order_value,
			created_at,
			updated_at
		FROM vendor_snapshots
		ORDER BY cards_won DESC, vendor
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []VendorSnapshot
	for rows.Next() {
		var s VendorSnapshot
		if err := rows.Scan(
			&s.ID,
			&s.Vendor,
			&s.RunsSampled,
			&s.CardsWon,
			&s.TotalSpend,
			&s.AvgOrderValue,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}
