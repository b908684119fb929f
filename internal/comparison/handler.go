package comparison

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cardscout/internal/allocation"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRunRequest struct {
	Decklist string   `json:"decklist"`
	Sources  []string `json:"sources"`

	MinCardsPerVendor      *int     `json:"min_cards_per_vendor"`
	PriceOverrideThreshold *float64 `json:"price_override_threshold"`
	EnableFiltering        *bool    `json:"enable_filtering"`
}

func (req createRunRequest) filterConfig() *allocation.FilterConfig {
	cfg := allocation.DefaultFilterConfig()
	if req.MinCardsPerVendor != nil {
		cfg.MinCardsPerVendor = *req.MinCardsPerVendor
	}
	if req.PriceOverrideThreshold != nil {
		cfg.PriceOverrideThreshold = *req.PriceOverrideThreshold
	}
	if req.EnableFiltering != nil {
		cfg.EnableFiltering = *req.EnableFiltering
	}
	return &cfg
}

//
// --------------------------------------------------
// POST /comparisons
// --------------------------------------------------
//

func (h *Handler) CreateRun() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createRunRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Decklist == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "decklist is required"})
			return
		}

		run, err := h.service.Submit(
			c.Request.Context(),
			userID.(string),
			req.Decklist,
			req.Sources,
			req.filterConfig(),
		)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, run)
	}
}

//
// --------------------------------------------------
// GET /comparisons/:id  (status polling + result)
// --------------------------------------------------
//

func (h *Handler) GetRun() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		role, _ := c.Get("userRole")

		run, err := h.service.GetRun(
			c.Request.Context(),
			c.Param("id"),
			userID.(string),
			asString(role),
		)
		switch {
		case errors.Is(err, ErrRunNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, run)
	}
}

//
// --------------------------------------------------
// GET /comparisons  (caller's runs)
// --------------------------------------------------
//

func (h *Handler) ListRuns() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		runs, err := h.service.ListRuns(c.Request.Context(), userID.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"runs": runs})
	}
}

//
// --------------------------------------------------
// POST /comparisons/:id/export
// --------------------------------------------------
//

func (h *Handler) ExportRun() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		role, _ := c.Get("userRole")

		url, err := h.service.Export(
			c.Request.Context(),
			c.Param("id"),
			userID.(string),
			asString(role),
		)
		switch {
		case errors.Is(err, ErrRunNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		case errors.Is(err, ErrNotCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "run is not completed yet"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"export_url": url})
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
