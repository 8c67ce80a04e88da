package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/teamfinder-app/teamfinder/internal/api/handler"
	"github.com/teamfinder-app/teamfinder/internal/api/middleware"
	"github.com/teamfinder-app/teamfinder/internal/auth"
	"github.com/teamfinder-app/teamfinder/internal/invitation"
	"github.com/teamfinder-app/teamfinder/internal/matching"
	"github.com/teamfinder-app/teamfinder/internal/team"
	"github.com/teamfinder-app/teamfinder/internal/user"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DBPinger        handler.DBPinger
	Version         string
	Users           user.Repository
	Teams           team.Repository
	Finder          *matching.Finder
	Invitations     *invitation.Service
	InvitationStore invitation.Repository
	Auth            *auth.Service
	Clients         auth.ClientRepository
	MaxResults      int
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	userHandler := handler.NewUserHandler(deps.Users)
	teamHandler := handler.NewTeamHandler(deps.Teams)
	matchHandler := handler.NewMatchHandler(deps.Finder, deps.MaxResults)
	invitationHandler := handler.NewInvitationHandler(deps.Invitations)
	clientHandler := handler.NewClientHandler(deps.Auth, deps.Clients)
	statsHandler := handler.NewStatsHandler(deps.Users, deps.Teams, deps.InvitationStore)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.Auth))

		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Create)
			r.Get("/external/{externalID}", userHandler.GetByExternalID)
			r.Get("/{id}", userHandler.GetByID)
			r.Post("/{id}/activity", userHandler.TouchActivity)
			r.Put("/{id}/searching", userHandler.SetSearching)
			r.Get("/{id}/teams", teamHandler.ListByLeader)
			r.Get("/{id}/cofounder-matches", matchHandler.CofounderMatches)
			r.Get("/{id}/team-matches", matchHandler.TeamMatches)
			r.Get("/{id}/invitations", invitationHandler.ListForUser)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", teamHandler.Create)
			r.Get("/{id}", teamHandler.GetByID)
			r.Patch("/{id}", teamHandler.Update)
			r.Get("/{id}/candidates", matchHandler.TeamCandidates)
		})

		r.Route("/invitations", func(r chi.Router) {
			r.Post("/", invitationHandler.Create)
			r.Get("/{id}", invitationHandler.GetByID)
			r.Post("/{id}/accept", invitationHandler.Accept)
			r.Post("/{id}/reject", invitationHandler.Reject)
			r.Post("/{id}/viewed", invitationHandler.MarkViewed)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			r.Get("/stats", statsHandler.ServeHTTP)

			r.Route("/clients", func(r chi.Router) {
				r.Post("/", clientHandler.Create)
				r.Get("/", clientHandler.List)
				r.Get("/{id}", clientHandler.Get)
				r.Delete("/{id}", clientHandler.Revoke)
			})
		})
	})

	return r
}
