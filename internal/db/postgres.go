package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'USER',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// COMPARISON RUNS
	// -------------------------------
	runsTableSQL := `
		CREATE TABLE IF NOT EXISTS comparison_runs (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			decklist TEXT NOT NULL,
			sources TEXT NOT NULL DEFAULT '',
			min_cards_per_vendor INT NOT NULL DEFAULT 3,
			price_override_threshold NUMERIC NOT NULL DEFAULT 5.0,
			enable_filtering BOOLEAN NOT NULL DEFAULT TRUE,
			status VARCHAR(50) NOT NULL DEFAULT 'PENDING',
			result JSONB NULL,
			error TEXT NULL,
			export_url VARCHAR(500) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)
	`
	if _, err := db.Exec(ctx, runsTableSQL); err != nil {
		return err
	}

	runsIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_comparison_runs_pending
		ON comparison_runs (created_at)
		WHERE status = 'PENDING'
	`
	if _, err := db.Exec(ctx, runsIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// VENDOR SNAPSHOTS
	// -------------------------------
	snapshotsTableSQL := `
		CREATE TABLE IF NOT EXISTS vendor_snapshots (
			id SERIAL PRIMARY KEY,
			vendor VARCHAR(255) UNIQUE NOT NULL,
			runs_sampled INT NOT NULL DEFAULT 0,
			cards_won INT NOT NULL DEFAULT 0,
			total_spend NUMERIC NOT NULL DEFAULT 0,
			avg_order_value NUMERIC NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, snapshotsTableSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
