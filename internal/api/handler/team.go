package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamfinder-app/teamfinder/internal/api/middleware"
	"github.com/teamfinder-app/teamfinder/internal/api/response"
	"github.com/teamfinder-app/teamfinder/internal/api/validation"
	"github.com/teamfinder-app/teamfinder/internal/team"
)

type createTeamRequest struct {
	Name            string `json:"name"`
	LeaderID        string `json:"leaderId"`
	IdeaDescription string `json:"ideaDescription"`
	NeededSkills    string `json:"neededSkills"`
}

type updateTeamRequest struct {
	Status       *string `json:"status"`
	NeededSkills *string `json:"neededSkills"`
}

type teamResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IdeaDescription string `json:"ideaDescription"`
	NeededSkills    string `json:"neededSkills"`
	Status          string `json:"status"`
	LeaderID        string `json:"leaderId"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func toTeamResponse(t *team.Team) teamResponse {
	return teamResponse{
		ID:              t.ID.String(),
		Name:            t.Name,
		IdeaDescription: t.IdeaDescription,
		NeededSkills:    t.NeededSkills,
		Status:          string(t.Status),
		LeaderID:        t.LeaderID.String(),
		CreatedAt:       t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// TeamHandler handles team CRUD endpoints.
type TeamHandler struct {
	repo team.Repository
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(repo team.Repository) *TeamHandler {
	return &TeamHandler{repo: repo}
}

// Create handles POST /teams.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateTeamRequest(validation.CreateTeamRequest{
		Name:            req.Name,
		LeaderID:        req.LeaderID,
		IdeaDescription: req.IdeaDescription,
		NeededSkills:    req.NeededSkills,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	leaderID, _ := uuid.Parse(req.LeaderID)
	t := &team.Team{
		Name:            req.Name,
		LeaderID:        leaderID,
		IdeaDescription: req.IdeaDescription,
		NeededSkills:    req.NeededSkills,
		Status:          team.StatusActive,
	}

	if err := h.repo.Create(r.Context(), t); err != nil {
		slog.Error("failed to create team", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create team", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toTeamResponse(t), requestID)
}

// GetByID handles GET /teams/{id}.
func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
			return
		}
		slog.Error("failed to get team", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(t), requestID)
}

// ListByLeader handles GET /users/{id}/teams.
func (h *TeamHandler) ListByLeader(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	leaderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	teams, err := h.repo.ListByLeader(r.Context(), leaderID)
	if err != nil {
		slog.Error("failed to list teams by leader", "error", err, "leader", leaderID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list teams", requestID)
		return
	}

	items := make([]teamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, toTeamResponse(&teams[i]))
	}

	response.SuccessList(w, http.StatusOK, items, len(items), false, requestID)
}

// Update handles PATCH /teams/{id} for status and needed-skills changes.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateTeamRequest(validation.UpdateTeamRequest{
		Status:       req.Status,
		NeededSkills: req.NeededSkills,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	if req.Status != nil {
		if err := h.repo.UpdateStatus(r.Context(), id, team.Status(*req.Status)); err != nil {
			h.writeUpdateError(w, err, id, requestID)
			return
		}
	}
	if req.NeededSkills != nil {
		if err := h.repo.UpdateNeededSkills(r.Context(), id, *req.NeededSkills); err != nil {
			h.writeUpdateError(w, err, id, requestID)
			return
		}
	}

	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		slog.Error("failed to reload team after update", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update team", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTeamResponse(t), requestID)
}

func (h *TeamHandler) writeUpdateError(w http.ResponseWriter, err error, id uuid.UUID, requestID string) {
	if errors.Is(err, team.ErrTeamNotFound) {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
		return
	}
	slog.Error("failed to update team", "error", err, "id", id)
	response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update team", requestID)
}
