package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/tendant/simple-site/pkg/simplesite"
)

// StatsHandler handles HTTP requests for site statistics
type StatsHandler struct {
	service simplesite.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service simplesite.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetSiteStats returns aggregate post and subscriber counts
func (h *StatsHandler) GetSiteStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetSiteStats(r.Context())
	if err != nil {
		slog.Error("Failed to load site stats", "error", err)
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, stats)
}
