package create_weekly_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/talentbridge/MentorBookingService/internal/api/handlers"
	"github.com/talentbridge/MentorBookingService/internal/api/middleware"
	"github.com/talentbridge/MentorBookingService/internal/service/availability"
	"github.com/talentbridge/MentorBookingService/internal/service/availability/models"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

const (
	msgInvalidMentorID    = "invalid mentor ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid time format, expected HH:MM"
	msgMissingUserID      = "missing user id"
	msgMentorNotFound     = "mentor not found"
	msgForbidden          = "access denied"
	msgDuplicateRule      = "an identical weekly rule already exists"
	msgInvalidInput       = "invalid weekly rule data"
)

// CreateRuleRequest HTTP request model
type CreateRuleRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0=Monday .. 6=Sunday
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "18:00"
	Timezone  string `json:"timezone,omitempty"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/mentors/{mentorId}/availability/rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/availability/rules - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /mentors/{id}/availability/rules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /mentors/{id}/availability/rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/availability/rules - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/availability/rules - Invalid end time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.CreateWeeklyRule(r.Context(), &models.CreateWeeklyRuleRequest{
		MentorID:  mentorID,
		UserID:    userID,
		DayOfWeek: req.DayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
		Timezone:  req.Timezone,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrMentorNotFound):
			h.logger.Warn("POST /mentors/{id}/availability/rules - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /mentors/{id}/availability/rules - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrDuplicateRule):
			h.logger.Warn("POST /mentors/{id}/availability/rules - Duplicate rule: mentor_id=%d", mentorID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateRule)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /mentors/{id}/availability/rules - Invalid input: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /mentors/{id}/availability/rules - Failed to create rule: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /mentors/{id}/availability/rules - Rule created: rule_id=%d, mentor_id=%d", result.ID, mentorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
