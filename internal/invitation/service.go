package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/teamfinder-app/teamfinder/internal/user"
)

// ErrSelfInvitation is returned when a user tries to invite themselves.
// It applies unconditionally, independent of the daily limit.
var ErrSelfInvitation = errors.New("cannot send an invitation to yourself")

// LimitError reports that the sender's daily invitation cap was reached.
type LimitError struct {
	Count int
	Max   int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("daily invitation limit reached: %d/%d", e.Count, e.Max)
}

// Service gates invitation creation behind the self-check and the daily
// limiter, and handles the rest of the invitation lifecycle.
//
// The limiter is best-effort: two concurrent sends can both pass the count
// check before either row lands. A hard cap needs a constraint at the store
// layer, which this service deliberately does not attempt.
type Service struct {
	repo      Repository
	users     user.Repository
	maxPerDay int
	ttl       time.Duration
	now       func() time.Time
}

// NewService creates a new invitation Service. ttl is how long a new
// invitation stays pending before the cleanup job expires it.
func NewService(repo Repository, users user.Repository, maxPerDay int, ttl time.Duration) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		maxPerDay: maxPerDay,
		ttl:       ttl,
		now:       time.Now,
	}
}

// startOfDayUTC returns midnight UTC of the instant's calendar day. The
// limiter window runs from there to now, not a rolling 24 hours: hitting the
// cap at 23:59 UTC allows sending again a minute later.
func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CanSend reports whether the user is still under today's invitation cap,
// along with the current count. True iff count < max.
func (s *Service) CanSend(ctx context.Context, fromUserID uuid.UUID) (bool, int, error) {
	count, err := s.repo.CountSentSince(ctx, fromUserID, startOfDayUTC(s.now()))
	if err != nil {
		return false, 0, err
	}
	return count < s.maxPerDay, count, nil
}

// CountSentToday returns how many invitations the user has created since
// midnight UTC.
func (s *Service) CountSentToday(ctx context.Context, fromUserID uuid.UUID) (int, error) {
	return s.repo.CountSentSince(ctx, fromUserID, startOfDayUTC(s.now()))
}

// Send creates a pending invitation after the self-check and the limiter
// pass. Unlike the search paths, a missing sender or recipient surfaces
// user.ErrUserNotFound instead of degrading silently.
func (s *Service) Send(ctx context.Context, fromUserID, toUserID uuid.UUID, fromTeamID *uuid.UUID, message string) (*Invitation, error) {
	if fromUserID == toUserID {
		return nil, ErrSelfInvitation
	}

	ok, count, err := s.CanSend(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &LimitError{Count: count, Max: s.maxPerDay}
	}

	if _, err := s.users.GetByID(ctx, fromUserID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, toUserID); err != nil {
		return nil, err
	}

	expiresAt := s.now().UTC().Add(s.ttl)
	inv := &Invitation{
		FromUserID: fromUserID,
		FromTeamID: fromTeamID,
		ToUserID:   toUserID,
		Message:    message,
		Status:     StatusPending,
		ExpiresAt:  &expiresAt,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	slog.Info("invitation created", "invitation", inv.ID, "from", fromUserID, "to", toUserID)
	return inv, nil
}

// Get retrieves an invitation by id. Missing invitations surface
// ErrInvitationNotFound.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invitation, error) {
	return s.repo.GetByID(ctx, id)
}

// Accept marks the invitation accepted and returns the updated record.
func (s *Service) Accept(ctx context.Context, id uuid.UUID) (*Invitation, error) {
	return s.respond(ctx, id, StatusAccepted)
}

// Reject marks the invitation rejected and returns the updated record.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*Invitation, error) {
	return s.respond(ctx, id, StatusRejected)
}

func (s *Service) respond(ctx context.Context, id uuid.UUID, status Status) (*Invitation, error) {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	slog.Info("invitation responded", "invitation", id, "status", status)
	return s.repo.GetByID(ctx, id)
}

// MarkViewed stamps the invitation as seen by its recipient.
func (s *Service) MarkViewed(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkViewed(ctx, id)
}

// ListSent returns invitations the user has sent, optionally filtered by status.
func (s *Service) ListSent(ctx context.Context, userID uuid.UUID, status *Status) ([]Invitation, error) {
	return s.repo.ListSent(ctx, userID, status)
}

// ListReceived returns invitations the user has received, optionally filtered
// by status.
func (s *Service) ListReceived(ctx context.Context, userID uuid.UUID, status *Status) ([]Invitation, error) {
	return s.repo.ListReceived(ctx, userID, status)
}
