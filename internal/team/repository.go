package team

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// Repository provides operations on the teams table.
//
// ListActive returns active teams ordered by updated_at descending, the
// order the candidate finder presents them in.
type Repository interface {
	Create(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	ListByLeader(ctx context.Context, leaderID uuid.UUID) ([]Team, error)
	ListActive(ctx context.Context) ([]Team, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdateNeededSkills(ctx context.Context, id uuid.UUID, neededSkills string) error
	Count(ctx context.Context, status *Status) (int, error)
}
