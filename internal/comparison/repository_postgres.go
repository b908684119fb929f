package comparison

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cardscout/internal/allocation"
)

type PostgresRunRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRunRepository(db *pgxpool.Pool) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

func (r *PostgresRunRepository) Create(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Status == "" {
		run.Status = StatusPending
	}

	return r.db.QueryRow(ctx, `
		INSERT INTO comparison_runs (
			id,
			user_id,
			decklist,
			sources,
			min_cards_per_vendor,
			price_override_threshold,
			enable_filtering,
			status
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at
	`,
		run.ID,
		run.UserID,
		run.Decklist,
		strings.Join(run.Sources, ","),
		run.Filter.MinCardsPerVendor,
		run.Filter.PriceOverrideThreshold,
		run.Filter.EnableFiltering,
		run.Status,
	).Scan(
		&run.CreatedAt,
		&run.UpdatedAt,
	)
}

const runColumns = `
	id,
	user_id,
	decklist,
	sources,
	min_cards_per_vendor,
	price_override_threshold,
	enable_filtering,
	status,
	result,
	error,
	export_url,
	created_at,
	updated_at
`

func (r *PostgresRunRepository) GetByID(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+runColumns+`
		FROM comparison_runs
		WHERE id = $1
	`, id)

	run, err := scanRun(row)
	if err == pgx.ErrNoRows {
		return nil, ErrRunNotFound
	}
	return run, err
}

func (r *PostgresRunRepository) ListByUser(ctx context.Context, userID string) ([]*Run, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+runColumns+`
		FROM comparison_runs
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// ClaimPending marks the oldest pending run RUNNING and returns it.
// SKIP LOCKED keeps concurrent workers off the same run.
func (r *PostgresRunRepository) ClaimPending(ctx context.Context) (*Run, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE comparison_runs
		SET status = $1, updated_at = now()
		WHERE id = (
			SELECT id
			FROM comparison_runs
			WHERE status = $2
			ORDER BY created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+runColumns+`
	`, StatusRunning, StatusPending)

	run, err := scanRun(row)
	if err == pgx.ErrNoRows {
		// No pending runs is NOT an error.
		return nil, nil
	}
	return run, err
}

func (r *PostgresRunRepository) MarkCompleted(ctx context.Context, id string, result *allocation.Result) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		UPDATE comparison_runs
		SET status = $1,
		    result = $2,
		    error = NULL,
		    updated_at = now()
		WHERE id = $3
	`, StatusCompleted, encoded, id)
	return err
}

func (r *PostgresRunRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE comparison_runs
		SET status = $1,
		    error = $2,
		    updated_at = now()
		WHERE id = $3
	`, StatusFailed, reason, id)
	return err
}

func (r *PostgresRunRepository) SetExportURL(ctx context.Context, id string, url string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE comparison_runs
		SET export_url = $1,
		    updated_at = now()
		WHERE id = $2
	`, url, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run        Run
		sources    string
		resultJSON []byte
	)

	err := row.Scan(
		&run.ID,
		&run.UserID,
		&run.Decklist,
		&sources,
		&run.Filter.MinCardsPerVendor,
		&run.Filter.PriceOverrideThreshold,
		&run.Filter.EnableFiltering,
		&run.Status,
		&resultJSON,
		&run.Error,
		&run.ExportURL,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sources != "" {
		run.Sources = strings.Split(sources, ",")
	}
	if len(resultJSON) > 0 {
		var result allocation.Result
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, err
		}
		run.Result = &result
	}

	return &run, nil
}
