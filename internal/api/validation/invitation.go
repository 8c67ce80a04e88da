package validation

import (
	"github.com/google/uuid"

	"github.com/teamfinder-app/teamfinder/internal/invitation"
)

// CreateInvitationRequest mirrors the fields needed for invitation validation.
type CreateInvitationRequest struct {
	FromUserID string
	ToUserID   string
	FromTeamID string
	Message    string
}

// ValidateCreateInvitationRequest validates the fields of a create invitation
// request. The self-invitation and limit checks live in the invitation
// service; this only covers field shape.
func ValidateCreateInvitationRequest(req CreateInvitationRequest) []FieldError {
	var errs []FieldError

	if req.FromUserID == "" {
		errs = append(errs, FieldError{Field: "fromUserId", Message: "fromUserId is required"})
	} else if _, err := uuid.Parse(req.FromUserID); err != nil {
		errs = append(errs, FieldError{Field: "fromUserId", Message: "fromUserId must be a valid UUID"})
	}

	if req.ToUserID == "" {
		errs = append(errs, FieldError{Field: "toUserId", Message: "toUserId is required"})
	} else if _, err := uuid.Parse(req.ToUserID); err != nil {
		errs = append(errs, FieldError{Field: "toUserId", Message: "toUserId must be a valid UUID"})
	}

	if req.FromTeamID != "" {
		if _, err := uuid.Parse(req.FromTeamID); err != nil {
			errs = append(errs, FieldError{Field: "fromTeamId", Message: "fromTeamId must be a valid UUID"})
		}
	}

	errs = append(errs, validateDescription("message", req.Message)...)

	return errs
}

// ValidateInvitationStatus checks an optional status filter value.
func ValidateInvitationStatus(status string) []FieldError {
	if status == "" {
		return nil
	}
	if !invitation.Status(status).Valid() {
		return []FieldError{{Field: "status", Message: "status must be pending, accepted, rejected or expired"}}
	}
	return nil
}
