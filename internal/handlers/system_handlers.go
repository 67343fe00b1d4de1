package handlers

import (
	"net/http"
	"time"

	"github.com/cropportal/backend/internal/config"
	"github.com/cropportal/backend/internal/database"
	"github.com/cropportal/backend/internal/utils"
)

// SystemHandler serves the service banner and health check.
type SystemHandler struct {
	db  *database.Pool
	cfg *config.AppConfig
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db *database.Pool, cfg *config.AppConfig) *SystemHandler {
	return &SystemHandler{
		db:  db,
		cfg: cfg,
	}
}

// Home handles GET / with the service banner.
func (h *SystemHandler) Home(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"status":    "running",
		"message":   "🌿 Crop Portal AI Backend v2.0 (JWT Auth Enabled)",
		"version":   h.cfg.App.Version,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Health handles GET /api/health. The database flag reports connectivity;
// the endpoint itself always answers 200 so probes can distinguish a dead
// process from a degraded one.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbHealthy := h.db != nil && h.db.HealthCheck(r.Context()) == nil

	status := "healthy"
	if !dbHealthy {
		status = "degraded"
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"database":  dbHealthy,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
