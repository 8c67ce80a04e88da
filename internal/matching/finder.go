package matching

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/teamfinder-app/teamfinder/internal/team"
	"github.com/teamfinder-app/teamfinder/internal/user"
)

// Match pairs a cofounder candidate with its compatibility rating.
type Match struct {
	User  user.User
	Stars int
}

// Finder runs the three search modes over the entity store. Each search is a
// read-then-filter pass: a missing requester or absent search criteria yields
// an empty result, never an error, since the UI re-checks existence anyway.
// Store errors propagate unchanged.
type Finder struct {
	users user.Repository
	teams team.Repository
}

// NewFinder creates a new Finder over the given repositories.
func NewFinder(users user.Repository, teams team.Repository) *Finder {
	return &Finder{users: users, teams: teams}
}

// FindCandidatesForTeam returns participants whose declared skills overlap
// the team's needed skills, most recently active first. The repository
// pre-sorts by last_active descending and filtering preserves that order;
// equal timestamps keep store order.
func (f *Finder) FindCandidatesForTeam(ctx context.Context, teamID uuid.UUID) ([]user.User, error) {
	t, err := f.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, team.ErrTeamNotFound) {
			return []user.User{}, nil
		}
		return nil, err
	}

	if strings.TrimSpace(t.NeededSkills) == "" {
		return []user.User{}, nil
	}

	participants, err := f.users.ListParticipants(ctx, t.LeaderID)
	if err != nil {
		return nil, err
	}

	matched := make([]user.User, 0, len(participants))
	for i := range participants {
		if MatchesNeededSkills(t.NeededSkills, &participants[i]) {
			matched = append(matched, participants[i])
		}
	}

	slog.Debug("team candidate search", "team", t.ID, "candidates", len(matched))
	return matched, nil
}

// FindCofounderMatches scores every other searching cofounder against the
// requester and returns them best-first. The stable sort over the
// recency-ordered input means equal ratings keep most-recently-active first.
func (f *Finder) FindCofounderMatches(ctx context.Context, userID uuid.UUID) ([]Match, error) {
	requester, err := f.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return []Match{}, nil
		}
		return nil, err
	}

	cofounders, err := f.users.ListCofounders(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(cofounders))
	for i := range cofounders {
		matches = append(matches, Match{
			User:  cofounders[i],
			Stars: Score(requester, &cofounders[i]),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Stars > matches[j].Stars
	})

	slog.Debug("cofounder search", "user", requester.ID, "matches", len(matches))
	return matches, nil
}

// FindTeamsForParticipant returns active teams recruiting any of the
// participant's skills, most recently updated first. A participant with no
// recorded skills gets an empty result immediately.
func (f *Finder) FindTeamsForParticipant(ctx context.Context, userID uuid.UUID) ([]team.Team, error) {
	participant, err := f.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return []team.Team{}, nil
		}
		return nil, err
	}

	skills := ParticipantSkills(participant)
	if len(skills) == 0 {
		return []team.Team{}, nil
	}

	teams, err := f.teams.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]team.Team, 0, len(teams))
	for i := range teams {
		if TeamWantsAny(teams[i].NeededSkills, skills) {
			matched = append(matched, teams[i])
		}
	}

	slog.Debug("team search", "participant", participant.ID, "teams", len(matched))
	return matched, nil
}
