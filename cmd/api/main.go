package main

import (
	"context"
	"log"
	"os"
	"time"

	"cardscout/internal/auth"
	"cardscout/internal/comparison"
	"cardscout/internal/db"
	"cardscout/internal/insights"
	"cardscout/internal/router"
	"cardscout/internal/storage"

	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── SERVICES ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	runRepo := comparison.NewPostgresRunRepository(pgDB)
	comparisonService := comparison.NewService(runRepo, r2Client)
	comparisonHandler := comparison.NewHandler(comparisonService)

	insightsService := insights.NewService(pgDB)
	insightsHandler := insights.NewHandler(insightsService)

	// ───────────────────────── WORKER ─────────────────────────
	go comparisonService.RunWorker(context.Background(), 5*time.Second)

	// ───────────────────────── ROUTES ─────────────────────────
	r := router.NewRouter(authHandler, comparisonHandler, insightsHandler)

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Println("🚀 API running at http://localhost:" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
