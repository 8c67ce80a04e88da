package team

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks a team's recruiting lifecycle.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusComplete Status = "complete"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusComplete:
		return true
	}
	return false
}

// Team represents a row in the teams table. NeededSkills is comma-joined free
// text; it drives all participant-search matching.
type Team struct {
	ID              uuid.UUID
	Name            string
	IdeaDescription string
	NeededSkills    string
	Status          Status
	LeaderID        uuid.UUID // exactly one leader per team
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
