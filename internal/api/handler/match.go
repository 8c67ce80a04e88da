package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamfinder-app/teamfinder/internal/api/middleware"
	"github.com/teamfinder-app/teamfinder/internal/api/response"
	"github.com/teamfinder-app/teamfinder/internal/matching"
)

type matchResponse struct {
	User  userResponse `json:"user"`
	Stars int          `json:"stars"`
}

// MatchHandler exposes the three search modes. The finder computes the full
// ordered candidate list; the handler only truncates it to the configured cap
// and reports the full total, so the caller can keep its own result cursor.
type MatchHandler struct {
	finder     *matching.Finder
	maxResults int
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(finder *matching.Finder, maxResults int) *MatchHandler {
	return &MatchHandler{finder: finder, maxResults: maxResults}
}

// TeamCandidates handles GET /teams/{id}/candidates: participants matching
// the team's needed skills, most recently active first.
func (h *MatchHandler) TeamCandidates(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	candidates, err := h.finder.FindCandidatesForTeam(r.Context(), teamID)
	if err != nil {
		slog.Error("team candidate search failed", "error", err, "team", teamID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Search failed", requestID)
		return
	}

	total := len(candidates)
	truncated := total > h.maxResults
	if truncated {
		candidates = candidates[:h.maxResults]
	}

	items := make([]userResponse, 0, len(candidates))
	for i := range candidates {
		items = append(items, toUserResponse(&candidates[i]))
	}

	response.SuccessList(w, http.StatusOK, items, total, truncated, requestID)
}

// CofounderMatches handles GET /users/{id}/cofounder-matches: other
// cofounders with compatibility stars, best matches first.
func (h *MatchHandler) CofounderMatches(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	matches, err := h.finder.FindCofounderMatches(r.Context(), userID)
	if err != nil {
		slog.Error("cofounder search failed", "error", err, "user", userID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Search failed", requestID)
		return
	}

	total := len(matches)
	truncated := total > h.maxResults
	if truncated {
		matches = matches[:h.maxResults]
	}

	items := make([]matchResponse, 0, len(matches))
	for i := range matches {
		items = append(items, matchResponse{
			User:  toUserResponse(&matches[i].User),
			Stars: matches[i].Stars,
		})
	}

	response.SuccessList(w, http.StatusOK, items, total, truncated, requestID)
}

// TeamMatches handles GET /users/{id}/team-matches: active teams recruiting
// any of the participant's skills, most recently updated first.
func (h *MatchHandler) TeamMatches(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	teams, err := h.finder.FindTeamsForParticipant(r.Context(), userID)
	if err != nil {
		slog.Error("team search failed", "error", err, "user", userID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Search failed", requestID)
		return
	}

	total := len(teams)
	truncated := total > h.maxResults
	if truncated {
		teams = teams[:h.maxResults]
	}

	items := make([]teamResponse, 0, len(teams))
	for i := range teams {
		items = append(items, toTeamResponse(&teams[i]))
	}

	response.SuccessList(w, http.StatusOK, items, total, truncated, requestID)
}
