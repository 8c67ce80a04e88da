package validation

import (
	"fmt"
	"strings"

	"github.com/teamfinder-app/teamfinder/internal/user"
)

// Registration constraints. Skills counts mirror the front-end picklist:
// participants pick up to three skills, cofounders declare exactly one
// primary skill.
const (
	minNameLength        = 2
	maxNameLength        = 50
	maxDescriptionLength = 200

	maxParticipantSkills = 3
)

// CreateUserRequest mirrors the fields needed for create user validation.
type CreateUserRequest struct {
	ExternalID       int64
	Name             string
	Role             string
	PrimarySkill     string
	AdditionalSkills string
	IdeaWhat         string
	IdeaWho          string
}

// ValidateCreateUserRequest validates the fields of a create user request.
func ValidateCreateUserRequest(req CreateUserRequest) []FieldError {
	var errs []FieldError

	if req.ExternalID <= 0 {
		errs = append(errs, FieldError{Field: "externalId", Message: "externalId is required"})
	}

	name := strings.TrimSpace(req.Name)
	if len(name) < minNameLength {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("name must be at least %d characters", minNameLength)})
	} else if len(name) > maxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", maxNameLength)})
	}

	role := user.Role(req.Role)
	if req.Role == "" {
		errs = append(errs, FieldError{Field: "role", Message: "role is required"})
	} else if !role.Valid() {
		errs = append(errs, FieldError{Field: "role", Message: "role must be team, cofounder or participant"})
	}

	if role == user.RoleCofounder && strings.TrimSpace(req.PrimarySkill) == "" {
		errs = append(errs, FieldError{Field: "primarySkill", Message: "cofounders must declare a primary skill"})
	}

	if role == user.RoleParticipant {
		if n := countSkills(req.PrimarySkill, req.AdditionalSkills); n > maxParticipantSkills {
			errs = append(errs, FieldError{Field: "additionalSkills", Message: fmt.Sprintf("participants may declare at most %d skills", maxParticipantSkills)})
		}
	}

	errs = append(errs, validateDescription("ideaWhat", req.IdeaWhat)...)
	errs = append(errs, validateDescription("ideaWho", req.IdeaWho)...)

	return errs
}

func countSkills(primary, additional string) int {
	n := 0
	if strings.TrimSpace(primary) != "" {
		n++
	}
	for _, s := range strings.Split(additional, ",") {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

func validateDescription(field, value string) []FieldError {
	if len(strings.TrimSpace(value)) > maxDescriptionLength {
		return []FieldError{{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, maxDescriptionLength)}}
	}
	return nil
}
