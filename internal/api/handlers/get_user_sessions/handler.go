package get_user_sessions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/talentbridge/MentorBookingService/internal/api/handlers"
	"github.com/talentbridge/MentorBookingService/internal/api/middleware"
	"github.com/talentbridge/MentorBookingService/internal/service/sessions"
	"github.com/talentbridge/MentorBookingService/internal/service/sessions/models"
	"github.com/talentbridge/MentorBookingService/pkg/ptr"
)

const (
	msgInvalidUserID = "invalid user ID"
	msgMissingUserID = "missing user id"
	msgForbidden     = "access denied"
	msgInvalidFilter = "invalid status or scope filter"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/sessions
// Query params: status (optional), scope (optional, upcoming|past)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	menteeID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/sessions - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetUserSessionsRequest{
		MenteeID: menteeID,
		UserID:   userID,
		Scope:    r.URL.Query().Get("scope"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	result, err := h.service.GetUserSessions(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /users/{id}/sessions - Access denied: mentee_id=%d, user_id=%d", menteeID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/sessions - Invalid filter: mentee_id=%d, error=%v", menteeID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /users/{id}/sessions - Failed to list sessions: mentee_id=%d, error=%v", menteeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/sessions - Sessions retrieved: mentee_id=%d, count=%d",
		menteeID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
