package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user record is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateExternalID is returned when the external id is already registered.
var ErrDuplicateExternalID = errors.New("external id already registered")

// Repository provides operations on the users table.
//
// ListParticipants and ListCofounders return only users still marked as
// searching, ordered by last_active descending. The candidate finder relies
// on that ordering for its recency tie-breaks.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByExternalID(ctx context.Context, externalID int64) (*User, error)
	ListParticipants(ctx context.Context, excludeID uuid.UUID) ([]User, error)
	ListCofounders(ctx context.Context, excludeID uuid.UUID) ([]User, error)
	TouchLastActive(ctx context.Context, id uuid.UUID) error
	SetSearching(ctx context.Context, id uuid.UUID, searching bool) error
	DeactivateIdle(ctx context.Context, threshold time.Time) (int64, error)
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}
