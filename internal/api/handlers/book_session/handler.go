package book_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/talentbridge/MentorBookingService/internal/api/handlers"
	"github.com/talentbridge/MentorBookingService/internal/api/middleware"
	bookSession "github.com/talentbridge/MentorBookingService/internal/usecase/book_session"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidMentorID    = "invalid mentor ID"
	msgInvalidDateOrTime  = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgMissingUserID      = "missing user id"
	msgMentorNotFound     = "mentor not found"
	msgMentorUnavailable  = "mentor is not available for mentoring"
	msgSlotNotAvailable   = "the requested time slot is not available"
	msgTimeConflict       = "the requested time conflicts with an existing session"
	msgDateInPast         = "the requested time is in the past"
	msgInvalidInput       = "invalid booking data"
)

type Handler struct {
	useCase BookSessionUseCase
	logger  Logger
}

func NewHandler(useCase BookSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/mentors/{mentorId}/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/sessions - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /mentors/{id}/sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /mentors/{id}/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(mentorID, userID)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/sessions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSession.ErrMentorNotFound):
			h.logger.Warn("POST /mentors/{id}/sessions - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, bookSession.ErrMentorUnavailable):
			h.logger.Warn("POST /mentors/{id}/sessions - Mentor unavailable: mentor_id=%d", mentorID)
			handlers.RespondError(w, http.StatusConflict, msgMentorUnavailable)

		case errors.Is(err, bookSession.ErrSlotNotAvailable):
			h.logger.Warn("POST /mentors/{id}/sessions - Slot not available: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, bookSession.ErrTimeConflict):
			h.logger.Warn("POST /mentors/{id}/sessions - Time conflict: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondError(w, http.StatusConflict, msgTimeConflict)

		case errors.Is(err, bookSession.ErrDateInPast):
			h.logger.Warn("POST /mentors/{id}/sessions - Date in past: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, bookSession.ErrInvalidInput):
			h.logger.Warn("POST /mentors/{id}/sessions - Invalid input: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /mentors/{id}/sessions - Failed to book session: mentor_id=%d, user_id=%d, error=%v",
				mentorID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /mentors/{id}/sessions - Session booked: session_id=%d, mentor_id=%d, user_id=%d",
		result.ID, mentorID, userID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
