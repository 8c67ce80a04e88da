package invitation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvitationNotFound is returned when an invitation record is not found.
var ErrInvitationNotFound = errors.New("invitation not found")

// Repository provides operations on the invitations table.
type Repository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invitation, error)
	ListSent(ctx context.Context, fromUserID uuid.UUID, status *Status) ([]Invitation, error)
	ListReceived(ctx context.Context, toUserID uuid.UUID, status *Status) ([]Invitation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	MarkViewed(ctx context.Context, id uuid.UUID) error
	CountSentSince(ctx context.Context, fromUserID uuid.UUID, since time.Time) (int, error)
	Count(ctx context.Context, status *Status) (int, error)
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}
