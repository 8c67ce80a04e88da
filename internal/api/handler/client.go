package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamfinder-app/teamfinder/internal/api/middleware"
	"github.com/teamfinder-app/teamfinder/internal/api/response"
	"github.com/teamfinder-app/teamfinder/internal/api/validation"
	"github.com/teamfinder-app/teamfinder/internal/auth"
)

type createClientRequest struct {
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

type clientResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	IsAdmin   bool    `json:"isAdmin"`
	KeyPrefix string  `json:"keyPrefix"`
	CreatedAt string  `json:"createdAt"`
	RevokedAt *string `json:"revokedAt"`
}

type createClientResponse struct {
	clientResponse
	// APIKey is only returned at creation; it is never stored in the clear.
	APIKey string `json:"apiKey"`
}

func toClientResponse(c *auth.Client) clientResponse {
	resp := clientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		IsAdmin:   c.IsAdmin,
		KeyPrefix: c.KeyPrefix,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.RevokedAt != nil {
		s := c.RevokedAt.UTC().Format(time.RFC3339)
		resp.RevokedAt = &s
	}
	return resp
}

// ClientHandler handles API client management endpoints (admin only).
type ClientHandler struct {
	svc  *auth.Service
	repo auth.ClientRepository
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(svc *auth.Service, repo auth.ClientRepository) *ClientHandler {
	return &ClientHandler{svc: svc, repo: repo}
}

// Create handles POST /clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "name", Message: "name is required"}}, requestID)
		return
	}

	c, rawKey, err := h.svc.CreateClient(r.Context(), req.Name, req.IsAdmin)
	if err != nil {
		slog.Error("failed to create client", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create client", requestID)
		return
	}

	response.Success(w, http.StatusCreated, createClientResponse{
		clientResponse: toClientResponse(c),
		APIKey:         rawKey,
	}, requestID)
}

// List handles GET /clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	clients, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list clients", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list clients", requestID)
		return
	}

	items := make([]clientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, toClientResponse(&clients[i]))
	}

	response.SuccessList(w, http.StatusOK, items, len(items), false, requestID)
}

// Get handles GET /clients/{id}.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, auth.ErrClientNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Client not found", requestID)
			return
		}
		slog.Error("failed to get client", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get client", requestID)
		return
	}

	response.Success(w, http.StatusOK, toClientResponse(c), requestID)
}

// Revoke handles DELETE /clients/{id}.
func (h *ClientHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Revoke(r.Context(), id); err != nil {
		if errors.Is(err, auth.ErrClientNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Client not found", requestID)
			return
		}
		if errors.Is(err, auth.ErrClientRevoked) {
			response.Err(w, http.StatusConflict, "ALREADY_REVOKED", "Client is already revoked", requestID)
			return
		}
		slog.Error("failed to revoke client", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to revoke client", requestID)
		return
	}

	response.NoContent(w)
}
