package matching_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamfinder-app/teamfinder/internal/matching"
	"github.com/teamfinder-app/teamfinder/internal/team"
	"github.com/teamfinder-app/teamfinder/internal/user"
)

// --- Mock User Repository ---

type mockUserRepo struct {
	getByIDFn          func(ctx context.Context, id uuid.UUID) (*user.User, error)
	listParticipantsFn func(ctx context.Context, excludeID uuid.UUID) ([]user.User, error)
	listCofoundersFn   func(ctx context.Context, excludeID uuid.UUID) ([]user.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) GetByExternalID(ctx context.Context, externalID int64) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) ListParticipants(ctx context.Context, excludeID uuid.UUID) ([]user.User, error) {
	if m.listParticipantsFn != nil {
		return m.listParticipantsFn(ctx, excludeID)
	}
	return []user.User{}, nil
}

func (m *mockUserRepo) ListCofounders(ctx context.Context, excludeID uuid.UUID) ([]user.User, error) {
	if m.listCofoundersFn != nil {
		return m.listCofoundersFn(ctx, excludeID)
	}
	return []user.User{}, nil
}

func (m *mockUserRepo) TouchLastActive(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockUserRepo) SetSearching(ctx context.Context, id uuid.UUID, searching bool) error {
	return nil
}

func (m *mockUserRepo) DeactivateIdle(ctx context.Context, threshold time.Time) (int64, error) {
	return 0, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) { return 0, nil }

func (m *mockUserRepo) CountByRole(ctx context.Context, role user.Role) (int, error) { return 0, nil }

// --- Mock Team Repository ---

type mockTeamRepo struct {
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*team.Team, error)
	listActiveFn func(ctx context.Context) ([]team.Team, error)
}

func (m *mockTeamRepo) Create(ctx context.Context, t *team.Team) error { return nil }

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) ListByLeader(ctx context.Context, leaderID uuid.UUID) ([]team.Team, error) {
	return []team.Team{}, nil
}

func (m *mockTeamRepo) ListActive(ctx context.Context) ([]team.Team, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return []team.Team{}, nil
}

func (m *mockTeamRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status team.Status) error {
	return nil
}

func (m *mockTeamRepo) Count(ctx context.Context, status *team.Status) (int, error) { return 0, nil }

func (m *mockTeamRepo) UpdateNeededSkills(ctx context.Context, id uuid.UUID, neededSkills string) error {
	return nil
}

// --- Helpers ---

func participant(name, primary, additional string, lastActive time.Time) user.User {
	return user.User{
		ID:               uuid.New(),
		Name:             name,
		Role:             user.RoleParticipant,
		PrimarySkill:     primary,
		AdditionalSkills: additional,
		IsSearching:      true,
		LastActive:       lastActive,
	}
}

// ===== FindCandidatesForTeam =====

func TestFindCandidatesForTeam_FiltersBySkills(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	leaderID := uuid.New()
	teamID := uuid.New()

	python := participant("python dev", "Backend (Python)", "", now)
	mobile := participant("flutter dev", "Mobile (Flutter)", "Python", now.Add(-time.Hour))
	designer := participant("designer", "Design (Figma)", "", now.Add(-2*time.Hour))

	users := &mockUserRepo{
		listParticipantsFn: func(ctx context.Context, excludeID uuid.UUID) ([]user.User, error) {
			assert.Equal(t, leaderID, excludeID)
			return []user.User{python, mobile, designer}, nil
		},
	}
	teams := &mockTeamRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*team.Team, error) {
			return &team.Team{ID: teamID, LeaderID: leaderID, NeededSkills: "Python, React", Status: team.StatusActive}, nil
		},
	}

	finder := matching.NewFinder(users, teams)
	got, err := finder.FindCandidatesForTeam(context.Background(), teamID)
	require.NoError(t, err)

	// Matching preserves the repository's recency order.
	require.Len(t, got, 2)
	assert.Equal(t, python.ID, got[0].ID)
	assert.Equal(t, mobile.ID, got[1].ID)
}

func TestFindCandidatesForTeam_MissingTeamIsEmpty(t *testing.T) {
	t.Parallel()

	finder := matching.NewFinder(&mockUserRepo{}, &mockTeamRepo{})
	got, err := finder.FindCandidatesForTeam(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindCandidatesForTeam_NoNeededSkillsIsEmpty(t *testing.T) {
	t.Parallel()

	listCalled := false
	users := &mockUserRepo{
		listParticipantsFn: func(ctx context.Context, excludeID uuid.UUID) ([]user.User, error) {
			listCalled = true
			return []user.User{}, nil
		},
	}
	teams := &mockTeamRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*team.Team, error) {
			return &team.Team{ID: id, LeaderID: uuid.New(), NeededSkills: "  "}, nil
		},
	}

	finder := matching.NewFinder(users, teams)
	got, err := finder.FindCandidatesForTeam(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, listCalled, "absence of criteria should short-circuit before the store scan")
}

func TestFindCandidatesForTeam_StoreErrorPropagates(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection reset")
	teams := &mockTeamRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*team.Team, error) {
			return nil, storeErr
		},
	}

	finder := matching.NewFinder(&mockUserRepo{}, teams)
	_, err := finder.FindCandidatesForTeam(context.Background(), uuid.New())
	assert.ErrorIs(t, err, storeErr)
}

// ===== FindCofounderMatches =====

func TestFindCofounderMatches_SortsByStarsKeepingRecency(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	requester := user.User{
		ID:           uuid.New(),
		Role:         user.RoleCofounder,
		PrimarySkill: "Backend (Python/Go)",
		IdeaWhat:     "edtech platform for schools",
	}

	// Input is recency-ordered, as the repository returns it.
	bestRecent := user.User{ID: uuid.New(), Role: user.RoleCofounder, PrimarySkill: "Frontend (React)", IdeaWhat: "edtech app", LastActive: now}
	sameSkill := user.User{ID: uuid.New(), Role: user.RoleCofounder, PrimarySkill: "Backend (Python/Go)", LastActive: now.Add(-time.Hour)}
	bestOlder := user.User{ID: uuid.New(), Role: user.RoleCofounder, PrimarySkill: "Design (Figma)", IdeaWhat: "edtech tools", LastActive: now.Add(-2 * time.Hour)}

	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			if id == requester.ID {
				return &requester, nil
			}
			return nil, user.ErrUserNotFound
		},
		listCofoundersFn: func(ctx context.Context, excludeID uuid.UUID) ([]user.User, error) {
			assert.Equal(t, requester.ID, excludeID)
			return []user.User{bestRecent, sameSkill, bestOlder}, nil
		},
	}

	finder := matching.NewFinder(users, &mockTeamRepo{})
	got, err := finder.FindCofounderMatches(context.Background(), requester.ID)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, bestRecent.ID, got[0].User.ID)
	assert.Equal(t, 5, got[0].Stars)
	assert.Equal(t, bestOlder.ID, got[1].User.ID)
	assert.Equal(t, 5, got[1].Stars)
	assert.Equal(t, sameSkill.ID, got[2].User.ID)
	assert.Equal(t, 2, got[2].Stars)
}

func TestFindCofounderMatches_MissingRequesterIsEmpty(t *testing.T) {
	t.Parallel()

	finder := matching.NewFinder(&mockUserRepo{}, &mockTeamRepo{})
	got, err := finder.FindCofounderMatches(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ===== FindTeamsForParticipant =====

func TestFindTeamsForParticipant_MatchesStrippedSkills(t *testing.T) {
	t.Parallel()

	requester := user.User{
		ID:           uuid.New(),
		Role:         user.RoleParticipant,
		PrimarySkill: "Design (Figma)",
	}

	wantsDesign := team.Team{ID: uuid.New(), Name: "alpha", NeededSkills: "We need python and design", Status: team.StatusActive}
	wantsBackend := team.Team{ID: uuid.New(), Name: "beta", NeededSkills: "backend only", Status: team.StatusActive}

	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return &requester, nil
		},
	}
	teams := &mockTeamRepo{
		listActiveFn: func(ctx context.Context) ([]team.Team, error) {
			return []team.Team{wantsDesign, wantsBackend}, nil
		},
	}

	finder := matching.NewFinder(users, teams)
	got, err := finder.FindTeamsForParticipant(context.Background(), requester.ID)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, wantsDesign.ID, got[0].ID)
}

// A participant whose only skill is "Backend (Python/Go)" does NOT match a
// team asking for "python": the qualifier is stripped, leaving "backend",
// which the team text never mentions.
func TestFindTeamsForParticipant_QualifierIsDropped(t *testing.T) {
	t.Parallel()

	requester := user.User{
		ID:           uuid.New(),
		Role:         user.RoleParticipant,
		PrimarySkill: "Backend (Python/Go)",
	}

	wantsPython := team.Team{ID: uuid.New(), NeededSkills: "We need python and design", Status: team.StatusActive}

	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return &requester, nil
		},
	}
	teams := &mockTeamRepo{
		listActiveFn: func(ctx context.Context) ([]team.Team, error) {
			return []team.Team{wantsPython}, nil
		},
	}

	finder := matching.NewFinder(users, teams)
	got, err := finder.FindTeamsForParticipant(context.Background(), requester.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindTeamsForParticipant_NoSkillsIsEmpty(t *testing.T) {
	t.Parallel()

	requester := user.User{ID: uuid.New(), Role: user.RoleParticipant}

	listCalled := false
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			return &requester, nil
		},
	}
	teams := &mockTeamRepo{
		listActiveFn: func(ctx context.Context) ([]team.Team, error) {
			listCalled = true
			return []team.Team{}, nil
		},
	}

	finder := matching.NewFinder(users, teams)
	got, err := finder.FindTeamsForParticipant(context.Background(), requester.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, listCalled)
}

func TestFindTeamsForParticipant_MissingRequesterIsEmpty(t *testing.T) {
	t.Parallel()

	finder := matching.NewFinder(&mockUserRepo{}, &mockTeamRepo{})
	got, err := finder.FindTeamsForParticipant(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}
