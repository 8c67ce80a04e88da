package handler

import (
	"context"
	"net/http"

	"github.com/teamfinder-app/teamfinder/internal/api/middleware"
	"github.com/teamfinder-app/teamfinder/internal/api/response"
)

// DBPinger verifies database connectivity for health checks.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      DBPinger
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

type databaseStatus struct {
	Connected bool `json:"connected"`
}

type healthData struct {
	Status   string         `json:"status"`
	Version  string         `json:"version"`
	Database databaseStatus `json:"database"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	status := "healthy"
	connected := true
	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
		connected = false
	}

	data := healthData{
		Status:   status,
		Version:  h.version,
		Database: databaseStatus{Connected: connected},
	}

	response.Success(w, http.StatusOK, data, requestID)
}
