package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamfinder-app/teamfinder/internal/api/middleware"
	"github.com/teamfinder-app/teamfinder/internal/api/response"
	"github.com/teamfinder-app/teamfinder/internal/api/validation"
	"github.com/teamfinder-app/teamfinder/internal/user"
)

type createUserRequest struct {
	ExternalID       int64   `json:"externalId"`
	Username         *string `json:"username"`
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	PrimarySkill     string  `json:"primarySkill"`
	AdditionalSkills string  `json:"additionalSkills"`
	IdeaWhat         string  `json:"ideaWhat"`
	IdeaWho          string  `json:"ideaWho"`
}

type userResponse struct {
	ID               string  `json:"id"`
	ExternalID       int64   `json:"externalId"`
	Username         *string `json:"username"`
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	PrimarySkill     string  `json:"primarySkill"`
	AdditionalSkills string  `json:"additionalSkills"`
	IdeaWhat         string  `json:"ideaWhat"`
	IdeaWho          string  `json:"ideaWho"`
	IsSearching      bool    `json:"isSearching"`
	LastActive       string  `json:"lastActive"`
	CreatedAt        string  `json:"createdAt"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:               u.ID.String(),
		ExternalID:       u.ExternalID,
		Username:         u.Username,
		Name:             u.Name,
		Role:             string(u.Role),
		PrimarySkill:     u.PrimarySkill,
		AdditionalSkills: u.AdditionalSkills,
		IdeaWhat:         u.IdeaWhat,
		IdeaWho:          u.IdeaWho,
		IsSearching:      u.IsSearching,
		LastActive:       u.LastActive.UTC().Format(time.RFC3339),
		CreatedAt:        u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// UserHandler handles user CRUD endpoints.
type UserHandler struct {
	repo user.Repository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(repo user.Repository) *UserHandler {
	return &UserHandler{repo: repo}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateUserRequest(validation.CreateUserRequest{
		ExternalID:       req.ExternalID,
		Name:             req.Name,
		Role:             req.Role,
		PrimarySkill:     req.PrimarySkill,
		AdditionalSkills: req.AdditionalSkills,
		IdeaWhat:         req.IdeaWhat,
		IdeaWho:          req.IdeaWho,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	u := &user.User{
		ExternalID:       req.ExternalID,
		Username:         req.Username,
		Name:             req.Name,
		Role:             user.Role(req.Role),
		PrimarySkill:     req.PrimarySkill,
		AdditionalSkills: req.AdditionalSkills,
		IdeaWhat:         req.IdeaWhat,
		IdeaWho:          req.IdeaWho,
		IsSearching:      true,
	}

	if err := h.repo.Create(r.Context(), u); err != nil {
		if errors.Is(err, user.ErrDuplicateExternalID) {
			response.Err(w, http.StatusConflict, "DUPLICATE_EXTERNAL_ID", "A user with this external id already exists", requestID)
			return
		}
		slog.Error("failed to create user", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toUserResponse(u), requestID)
}

// GetByID handles GET /users/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	u, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "User not found", requestID)
			return
		}
		slog.Error("failed to get user", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get user", requestID)
		return
	}

	response.Success(w, http.StatusOK, toUserResponse(u), requestID)
}

// GetByExternalID handles GET /users/external/{externalID}.
func (h *UserHandler) GetByExternalID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	externalID, err := strconv.ParseInt(chi.URLParam(r, "externalID"), 10, 64)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "externalID must be an integer", requestID)
		return
	}

	u, err := h.repo.GetByExternalID(r.Context(), externalID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "User not found", requestID)
			return
		}
		slog.Error("failed to get user by external id", "error", err, "externalId", externalID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get user", requestID)
		return
	}

	response.Success(w, http.StatusOK, toUserResponse(u), requestID)
}

type setSearchingRequest struct {
	IsSearching *bool `json:"isSearching"`
}

// SetSearching handles PUT /users/{id}/searching: the user leaving or
// rejoining the search pool.
func (h *UserHandler) SetSearching(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req setSearchingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}
	if req.IsSearching == nil {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "isSearching", Message: "isSearching is required"}}, requestID)
		return
	}

	if err := h.repo.SetSearching(r.Context(), id, *req.IsSearching); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "User not found", requestID)
			return
		}
		slog.Error("failed to update searching flag", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update searching flag", requestID)
		return
	}

	response.NoContent(w)
}

// TouchActivity handles POST /users/{id}/activity. The front-end calls it on
// every inbound message so recency-based ranking stays meaningful.
func (h *UserHandler) TouchActivity(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.TouchLastActive(r.Context(), id); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "User not found", requestID)
			return
		}
		slog.Error("failed to touch user activity", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update activity", requestID)
		return
	}

	response.NoContent(w)
}
