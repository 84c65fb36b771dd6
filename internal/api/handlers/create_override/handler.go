package create_override

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/talentbridge/MentorBookingService/internal/api/handlers"
	"github.com/talentbridge/MentorBookingService/internal/api/middleware"
	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/internal/service/availability"
	"github.com/talentbridge/MentorBookingService/internal/service/availability/models"
	"github.com/talentbridge/MentorBookingService/pkg/types"
)

const (
	msgInvalidMentorID    = "invalid mentor ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid time format, expected HH:MM"
	msgMissingUserID      = "missing user id"
	msgMentorNotFound     = "mentor not found"
	msgForbidden          = "access denied"
	msgDuplicateOverride  = "an identical override already exists"
	msgInvalidInput       = "invalid override data"
)

// CreateOverrideRequest HTTP request model. Omitting the time range makes
// the override cover the whole day.
type CreateOverrideRequest struct {
	Date        string `json:"date"`                // "2026-01-15"
	StartTime   string `json:"startTime,omitempty"` // "10:00"
	EndTime     string `json:"endTime,omitempty"`   // "12:00"
	Timezone    string `json:"timezone,omitempty"`
	IsAvailable bool   `json:"isAvailable"`
	Reason      string `json:"reason,omitempty"`
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

// Handle POST /api/v1/mentors/{mentorId}/availability/overrides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/availability/overrides - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /mentors/{id}/availability/overrides - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /mentors/{id}/availability/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/availability/overrides - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var startTime, endTime types.TimeString
	if req.StartTime != "" {
		if startTime, err = types.NewTimeStringFromString(req.StartTime); err != nil {
			h.logger.Warn("POST /mentors/{id}/availability/overrides - Invalid start time: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
	}
	if req.EndTime != "" {
		if endTime, err = types.NewTimeStringFromString(req.EndTime); err != nil {
			h.logger.Warn("POST /mentors/{id}/availability/overrides - Invalid end time: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
	}

	result, err := h.service.CreateOverride(r.Context(), &models.CreateOverrideRequest{
		MentorID:    mentorID,
		UserID:      userID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Timezone:    req.Timezone,
		IsAvailable: req.IsAvailable,
		Reason:      req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrMentorNotFound):
			h.logger.Warn("POST /mentors/{id}/availability/overrides - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /mentors/{id}/availability/overrides - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrDuplicateOverride):
			h.logger.Warn("POST /mentors/{id}/availability/overrides - Duplicate override: mentor_id=%d", mentorID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateOverride)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /mentors/{id}/availability/overrides - Invalid input: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /mentors/{id}/availability/overrides - Failed to create override: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /mentors/{id}/availability/overrides - Override created: override_id=%d, mentor_id=%d", result.ID, mentorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
