package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamfinder-app/teamfinder/internal/api/middleware"
	"github.com/teamfinder-app/teamfinder/internal/api/response"
	"github.com/teamfinder-app/teamfinder/internal/api/validation"
	"github.com/teamfinder-app/teamfinder/internal/invitation"
	"github.com/teamfinder-app/teamfinder/internal/user"
)

type createInvitationRequest struct {
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	FromTeamID string `json:"fromTeamId"`
	Message    string `json:"message"`
}

type invitationResponse struct {
	ID          string  `json:"id"`
	FromUserID  string  `json:"fromUserId"`
	FromTeamID  *string `json:"fromTeamId"`
	ToUserID    string  `json:"toUserId"`
	Message     string  `json:"message"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	ExpiresAt   *string `json:"expiresAt"`
	ViewedAt    *string `json:"viewedAt"`
	RespondedAt *string `json:"respondedAt"`
}

type limitDetails struct {
	Count int `json:"count"`
	Max   int `json:"max"`
}

func toInvitationResponse(inv *invitation.Invitation) invitationResponse {
	resp := invitationResponse{
		ID:         inv.ID.String(),
		FromUserID: inv.FromUserID.String(),
		ToUserID:   inv.ToUserID.String(),
		Message:    inv.Message,
		Status:     string(inv.Status),
		CreatedAt:  inv.CreatedAt.UTC().Format(time.RFC3339),
	}
	if inv.FromTeamID != nil {
		s := inv.FromTeamID.String()
		resp.FromTeamID = &s
	}
	if inv.ExpiresAt != nil {
		s := inv.ExpiresAt.UTC().Format(time.RFC3339)
		resp.ExpiresAt = &s
	}
	if inv.ViewedAt != nil {
		s := inv.ViewedAt.UTC().Format(time.RFC3339)
		resp.ViewedAt = &s
	}
	if inv.RespondedAt != nil {
		s := inv.RespondedAt.UTC().Format(time.RFC3339)
		resp.RespondedAt = &s
	}
	return resp
}

// InvitationHandler handles invitation endpoints.
type InvitationHandler struct {
	svc *invitation.Service
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(svc *invitation.Service) *InvitationHandler {
	return &InvitationHandler{svc: svc}
}

// Create handles POST /invitations, gated by the self-check and the daily
// limiter inside the service.
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateInvitationRequest(validation.CreateInvitationRequest{
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		FromTeamID: req.FromTeamID,
		Message:    req.Message,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	fromUserID, _ := uuid.Parse(req.FromUserID)
	toUserID, _ := uuid.Parse(req.ToUserID)
	var fromTeamID *uuid.UUID
	if req.FromTeamID != "" {
		id, _ := uuid.Parse(req.FromTeamID)
		fromTeamID = &id
	}

	inv, err := h.svc.Send(r.Context(), fromUserID, toUserID, fromTeamID, req.Message)
	if err != nil {
		var limitErr *invitation.LimitError
		switch {
		case errors.Is(err, invitation.ErrSelfInvitation):
			response.Err(w, http.StatusUnprocessableEntity, "SELF_INVITATION", "Cannot send an invitation to yourself", requestID)
		case errors.As(err, &limitErr):
			response.ErrWithDetails(w, http.StatusTooManyRequests, "LIMIT_EXCEEDED", "Daily invitation limit reached",
				limitDetails{Count: limitErr.Count, Max: limitErr.Max}, requestID)
		case errors.Is(err, user.ErrUserNotFound):
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Sender or recipient not found", requestID)
		default:
			slog.Error("failed to create invitation", "error", err)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create invitation", requestID)
		}
		return
	}

	response.Success(w, http.StatusCreated, toInvitationResponse(inv), requestID)
}

// GetByID handles GET /invitations/{id}.
func (h *InvitationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, id, requestID, "Failed to get invitation")
		return
	}

	response.Success(w, http.StatusOK, toInvitationResponse(inv), requestID)
}

// Accept handles POST /invitations/{id}/accept.
func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.Accept)
}

// Reject handles POST /invitations/{id}/reject.
func (h *InvitationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.Reject)
}

func (h *InvitationHandler) respond(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id uuid.UUID) (*invitation.Invitation, error)) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	inv, err := fn(r.Context(), id)
	if err != nil {
		h.writeError(w, err, id, requestID, "Failed to update invitation")
		return
	}

	response.Success(w, http.StatusOK, toInvitationResponse(inv), requestID)
}

// MarkViewed handles POST /invitations/{id}/viewed.
func (h *InvitationHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.svc.MarkViewed(r.Context(), id); err != nil {
		h.writeError(w, err, id, requestID, "Failed to mark invitation viewed")
		return
	}

	response.NoContent(w)
}

// ListForUser handles GET /users/{id}/invitations?direction=sent|received&status=.
func (h *InvitationHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	direction := r.URL.Query().Get("direction")
	if direction == "" {
		direction = "received"
	}
	if direction != "sent" && direction != "received" {
		response.Err(w, http.StatusBadRequest, "INVALID_DIRECTION", "direction must be sent or received", requestID)
		return
	}

	statusParam := r.URL.Query().Get("status")
	if fieldErrors := validation.ValidateInvitationStatus(statusParam); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}
	var status *invitation.Status
	if statusParam != "" {
		s := invitation.Status(statusParam)
		status = &s
	}

	var invitations []invitation.Invitation
	if direction == "sent" {
		invitations, err = h.svc.ListSent(r.Context(), userID, status)
	} else {
		invitations, err = h.svc.ListReceived(r.Context(), userID, status)
	}
	if err != nil {
		slog.Error("failed to list invitations", "error", err, "user", userID, "direction", direction)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list invitations", requestID)
		return
	}

	items := make([]invitationResponse, 0, len(invitations))
	for i := range invitations {
		items = append(items, toInvitationResponse(&invitations[i]))
	}

	response.SuccessList(w, http.StatusOK, items, len(items), false, requestID)
}

func (h *InvitationHandler) writeError(w http.ResponseWriter, err error, id uuid.UUID, requestID, fallback string) {
	if errors.Is(err, invitation.ErrInvitationNotFound) {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Invitation not found", requestID)
		return
	}
	slog.Error(fallback, "error", err, "id", id)
	response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", fallback, requestID)
}
