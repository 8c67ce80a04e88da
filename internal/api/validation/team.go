package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/teamfinder-app/teamfinder/internal/team"
)

const (
	minTeamNameLength = 3
	maxTeamNameLength = 50

	maxTeamSkills = 10
)

// CreateTeamRequest mirrors the fields needed for create team validation.
type CreateTeamRequest struct {
	Name            string
	LeaderID        string
	IdeaDescription string
	NeededSkills    string
}

// ValidateCreateTeamRequest validates the fields of a create team request.
func ValidateCreateTeamRequest(req CreateTeamRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if len(name) < minTeamNameLength {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("name must be at least %d characters", minTeamNameLength)})
	} else if len(name) > maxTeamNameLength {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", maxTeamNameLength)})
	}

	if req.LeaderID == "" {
		errs = append(errs, FieldError{Field: "leaderId", Message: "leaderId is required"})
	} else if _, err := uuid.Parse(req.LeaderID); err != nil {
		errs = append(errs, FieldError{Field: "leaderId", Message: "leaderId must be a valid UUID"})
	}

	errs = append(errs, validateDescription("ideaDescription", req.IdeaDescription)...)

	if n := countSkills("", req.NeededSkills); n > maxTeamSkills {
		errs = append(errs, FieldError{Field: "neededSkills", Message: fmt.Sprintf("a team may recruit for at most %d skills", maxTeamSkills)})
	}

	return errs
}

// UpdateTeamRequest mirrors the fields needed for team update validation.
// Nil fields are left unchanged.
type UpdateTeamRequest struct {
	Status       *string
	NeededSkills *string
}

// ValidateUpdateTeamRequest validates the fields of a team update request.
func ValidateUpdateTeamRequest(req UpdateTeamRequest) []FieldError {
	var errs []FieldError

	if req.Status == nil && req.NeededSkills == nil {
		errs = append(errs, FieldError{Field: "status", Message: "at least one of status or neededSkills is required"})
	}

	if req.Status != nil && !team.Status(*req.Status).Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "status must be active, inactive or complete"})
	}

	if req.NeededSkills != nil {
		if n := countSkills("", *req.NeededSkills); n > maxTeamSkills {
			errs = append(errs, FieldError{Field: "neededSkills", Message: fmt.Sprintf("a team may recruit for at most %d skills", maxTeamSkills)})
		}
	}

	return errs
}
