package handler

import (
	"log/slog"
	"net/http"

	"github.com/teamfinder-app/teamfinder/internal/api/middleware"
	"github.com/teamfinder-app/teamfinder/internal/api/response"
	"github.com/teamfinder-app/teamfinder/internal/invitation"
	"github.com/teamfinder-app/teamfinder/internal/team"
	"github.com/teamfinder-app/teamfinder/internal/user"
)

// StatsHandler serves aggregate platform counts for the admin surface.
type StatsHandler struct {
	users       user.Repository
	teams       team.Repository
	invitations invitation.Repository
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(users user.Repository, teams team.Repository, invitations invitation.Repository) *StatsHandler {
	return &StatsHandler{users: users, teams: teams, invitations: invitations}
}

type userStats struct {
	Total        int `json:"total"`
	Teams        int `json:"teams"`
	Cofounders   int `json:"cofounders"`
	Participants int `json:"participants"`
}

type teamStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type invitationStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
}

type statsData struct {
	Users       userStats       `json:"users"`
	Teams       teamStats       `json:"teams"`
	Invitations invitationStats `json:"invitations"`
}

// ServeHTTP handles GET /stats.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var data statsData
	var err error

	collect := func(dst *int, fn func() (int, error)) {
		if err != nil {
			return
		}
		*dst, err = fn()
	}

	collect(&data.Users.Total, func() (int, error) { return h.users.Count(ctx) })
	collect(&data.Users.Teams, func() (int, error) { return h.users.CountByRole(ctx, user.RoleTeam) })
	collect(&data.Users.Cofounders, func() (int, error) { return h.users.CountByRole(ctx, user.RoleCofounder) })
	collect(&data.Users.Participants, func() (int, error) { return h.users.CountByRole(ctx, user.RoleParticipant) })
	collect(&data.Teams.Total, func() (int, error) { return h.teams.Count(ctx, nil) })
	collect(&data.Teams.Active, func() (int, error) {
		active := team.StatusActive
		return h.teams.Count(ctx, &active)
	})
	collect(&data.Invitations.Total, func() (int, error) { return h.invitations.Count(ctx, nil) })
	collect(&data.Invitations.Pending, func() (int, error) {
		pending := invitation.StatusPending
		return h.invitations.Count(ctx, &pending)
	})
	collect(&data.Invitations.Accepted, func() (int, error) {
		accepted := invitation.StatusAccepted
		return h.invitations.Count(ctx, &accepted)
	})

	if err != nil {
		slog.Error("failed to collect stats", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to collect stats", requestID)
		return
	}

	response.Success(w, http.StatusOK, data, requestID)
}
