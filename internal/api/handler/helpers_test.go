package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/teamfinder-app/teamfinder/internal/invitation"
	"github.com/teamfinder-app/teamfinder/internal/team"
	"github.com/teamfinder-app/teamfinder/internal/user"
)

// --- Mock User Repository ---

type mockUserRepo struct {
	createFn           func(ctx context.Context, u *user.User) error
	getByIDFn          func(ctx context.Context, id uuid.UUID) (*user.User, error)
	getByExternalIDFn  func(ctx context.Context, externalID int64) (*user.User, error)
	listParticipantsFn func(ctx context.Context, excludeID uuid.UUID) ([]user.User, error)
	listCofoundersFn   func(ctx context.Context, excludeID uuid.UUID) ([]user.User, error)
	touchLastActiveFn  func(ctx context.Context, id uuid.UUID) error
	setSearchingFn     func(ctx context.Context, id uuid.UUID, searching bool) error
	countFn            func(ctx context.Context) (int, error)
	countByRoleFn      func(ctx context.Context, role user.Role) (int, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	u.LastActive = u.CreatedAt
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) GetByExternalID(ctx context.Context, externalID int64) (*user.User, error) {
	if m.getByExternalIDFn != nil {
		return m.getByExternalIDFn(ctx, externalID)
	}
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

func (m *mockUserRepo) TouchLastActive(ctx context.Context, id uuid.UUID) error {
	if m.touchLastActiveFn != nil {
		return m.touchLastActiveFn(ctx, id)
	}
	return nil
}

func (m *mockUserRepo) SetSearching(ctx context.Context, id uuid.UUID, searching bool) error {
	if m.setSearchingFn != nil {
		return m.setSearchingFn(ctx, id, searching)
	}
	return nil
}

func (m *mockUserRepo) DeactivateIdle(ctx context.Context, threshold time.Time) (int64, error) {
	return 0, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role user.Role) (int, error) {
	if m.countByRoleFn != nil {
		return m.countByRoleFn(ctx, role)
	}
	return 0, nil
}

// --- Mock Team Repository ---

type mockTeamRepo struct {
	createFn             func(ctx context.Context, t *team.Team) error
	getByIDFn            func(ctx context.Context, id uuid.UUID) (*team.Team, error)
	listActiveFn         func(ctx context.Context) ([]team.Team, error)
	listByLeaderFn       func(ctx context.Context, leaderID uuid.UUID) ([]team.Team, error)
	updateStatusFn       func(ctx context.Context, id uuid.UUID, status team.Status) error
	updateNeededSkillsFn func(ctx context.Context, id uuid.UUID, skills string) error
	countFn              func(ctx context.Context, status *team.Status) (int, error)
}

func (m *mockTeamRepo) Create(ctx context.Context, t *team.Team) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	t.ID = uuid.New()
	t.Status = team.StatusActive
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) ListActive(ctx context.Context) ([]team.Team, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return []team.Team{}, nil
}

func (m *mockTeamRepo) ListByLeader(ctx context.Context, leaderID uuid.UUID) ([]team.Team, error) {
	if m.listByLeaderFn != nil {
		return m.listByLeaderFn(ctx, leaderID)
	}
	return []team.Team{}, nil
}

func (m *mockTeamRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status team.Status) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockTeamRepo) UpdateNeededSkills(ctx context.Context, id uuid.UUID, skills string) error {
	if m.updateNeededSkillsFn != nil {
		return m.updateNeededSkillsFn(ctx, id, skills)
	}
	return nil
}

func (m *mockTeamRepo) Count(ctx context.Context, status *team.Status) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, status)
	}
	return 0, nil
}

// --- Mock Invitation Repository ---

type mockInvitationRepo struct {
	createFn         func(ctx context.Context, inv *invitation.Invitation) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*invitation.Invitation, error)
	listSentFn       func(ctx context.Context, fromUserID uuid.UUID, status *invitation.Status) ([]invitation.Invitation, error)
	listReceivedFn   func(ctx context.Context, toUserID uuid.UUID, status *invitation.Status) ([]invitation.Invitation, error)
	updateStatusFn   func(ctx context.Context, id uuid.UUID, status invitation.Status) error
	markViewedFn     func(ctx context.Context, id uuid.UUID) error
	countSentSinceFn func(ctx context.Context, fromUserID uuid.UUID, since time.Time) (int, error)
	countFn          func(ctx context.Context, status *invitation.Status) (int, error)
}

func (m *mockInvitationRepo) Create(ctx context.Context, inv *invitation.Invitation) error {
	if m.createFn != nil {
		return m.createFn(ctx, inv)
	}
	inv.ID = uuid.New()
	inv.CreatedAt = time.Now().UTC()
	return nil
}

func (m *mockInvitationRepo) GetByID(ctx context.Context, id uuid.UUID) (*invitation.Invitation, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, invitation.ErrInvitationNotFound
}

func (m *mockInvitationRepo) ListSent(ctx context.Context, fromUserID uuid.UUID, status *invitation.Status) ([]invitation.Invitation, error) {
	if m.listSentFn != nil {
		return m.listSentFn(ctx, fromUserID, status)
	}
	return []invitation.Invitation{}, nil
}

func (m *mockInvitationRepo) ListReceived(ctx context.Context, toUserID uuid.UUID, status *invitation.Status) ([]invitation.Invitation, error) {
	if m.listReceivedFn != nil {
		return m.listReceivedFn(ctx, toUserID, status)
	}
	return []invitation.Invitation{}, nil
}

func (m *mockInvitationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status invitation.Status) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *mockInvitationRepo) MarkViewed(ctx context.Context, id uuid.UUID) error {
	if m.markViewedFn != nil {
		return m.markViewedFn(ctx, id)
	}
	return nil
}

func (m *mockInvitationRepo) CountSentSince(ctx context.Context, fromUserID uuid.UUID, since time.Time) (int, error) {
	if m.countSentSinceFn != nil {
		return m.countSentSinceFn(ctx, fromUserID, since)
	}
	return 0, nil
}

func (m *mockInvitationRepo) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (m *mockInvitationRepo) Count(ctx context.Context, status *invitation.Status) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, status)
	}
	return 0, nil
}

// --- Helpers ---

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err, "failed to parse response body")
	return env
}

func sampleParticipant(id uuid.UUID, name, primary string) user.User {
	now := time.Now().UTC()
	return user.User{
		ID:           id,
		ExternalID:   123456,
		Name:         name,
		Role:         user.RoleParticipant,
		PrimarySkill: primary,
		IsSearching:  true,
		LastActive:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
