package get_mentor_sessions

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
	msgInvalidMentorID = "invalid mentor ID"
	msgMissingUserID   = "missing user id"
	msgMentorNotFound  = "mentor not found"
	msgForbidden       = "access denied"
	msgInvalidFilter   = "invalid status or session type filter"
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

// Handle GET /api/v1/mentors/{mentorId}/sessions
// Query params: status (optional), session_type (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/sessions - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /mentors/{id}/sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetMentorSessionsRequest{
		MentorID: mentorID,
		UserID:   userID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}
	if sessionType := r.URL.Query().Get("session_type"); sessionType != "" {
		req.SessionType = ptr.Ptr(sessionType)
	}

	result, err := h.service.GetMentorSessions(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/sessions - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, sessions.ErrAccessDenied):
			h.logger.Warn("GET /mentors/{id}/sessions - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/sessions - Invalid filter: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /mentors/{id}/sessions - Failed to list sessions: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/{id}/sessions - Sessions retrieved: mentor_id=%d, count=%d",
		mentorID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
