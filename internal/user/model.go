package user

import (
	"time"

	"github.com/google/uuid"
)

// Role classifies how a registered user participates in matchmaking.
type Role string

const (
	// RoleTeam marks a user who leads a team and recruits participants.
	RoleTeam Role = "team"
	// RoleCofounder marks a solo founder looking for a peer to build with.
	RoleCofounder Role = "cofounder"
	// RoleParticipant marks a skilled user looking to join a team.
	RoleParticipant Role = "participant"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleTeam, RoleCofounder, RoleParticipant:
		return true
	}
	return false
}

// User represents a row in the users table. Skills are free text drawn from
// the registration picklist; AdditionalSkills is comma-joined.
type User struct {
	ID               uuid.UUID
	ExternalID       int64 // messenger-side id, unique
	Username         *string
	Name             string
	Role             Role
	PrimarySkill     string
	AdditionalSkills string
	IdeaWhat         string
	IdeaWho          string
	IsSearching      bool
	LastActive       time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
