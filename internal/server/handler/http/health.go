package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/atinyakov/RecipeShare/internal/response"
	"go.uber.org/zap"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the service can reach its database.
type HealthHandler struct {
	DB     Pinger
	Logger *zap.Logger
}

// HealthResponse is the body of a successful health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		writeError(w, r, h.Logger, fmt.Errorf("ping database: %w", err))
		return
	}
	response.OK(w, HealthResponse{Status: "ok"})
}
