package invitation

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks an invitation's lifecycle. Pending invitations move to
// accepted or rejected by explicit user action, or to expired by the
// background cleanup once expires_at passes.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// Invitation represents a row in the invitations table. A nil FromTeamID
// means a peer-to-peer collaboration request between cofounders; a non-nil
// one means a team recruiting request.
type Invitation struct {
	ID          uuid.UUID
	FromUserID  uuid.UUID
	FromTeamID  *uuid.UUID
	ToUserID    uuid.UUID
	Message     string
	Status      Status
	CreatedAt   time.Time
	ExpiresAt   *time.Time
	ViewedAt    *time.Time
	RespondedAt *time.Time
}
