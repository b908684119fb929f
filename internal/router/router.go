package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cardscout/internal/auth"
	"cardscout/internal/comparison"
	"cardscout/internal/insights"
	"cardscout/internal/middleware"
)

// NewRouter wires every route group onto one gin engine.
func NewRouter(
	authHandler *auth.Handler,
	comparisonHandler *comparison.Handler,
	insightsHandler *insights.Handler,
) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── COMPARISONS ─────────────────────────
	comparisons := r.Group("/comparisons")
	comparisons.Use(middleware.AuthMiddleware())
	{
		comparisons.POST("", comparisonHandler.CreateRun())
		comparisons.GET("", comparisonHandler.ListRuns())
		comparisons.GET("/:id", comparisonHandler.GetRun())
		comparisons.POST("/:id/export", comparisonHandler.ExportRun())
	}

	// ───────────────────────── ADMIN ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("ADMIN"),
	)
	{
		admin.POST("/insights/recompute", insightsHandler.Recompute)
	}

	// ───────────────────────── PUBLIC ─────────────────────────
	r.GET("/insights/vendors", insightsHandler.Get)

	return r
}
