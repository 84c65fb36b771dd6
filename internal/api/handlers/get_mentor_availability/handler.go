package get_mentor_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/talentbridge/MentorBookingService/internal/api/handlers"
	"github.com/talentbridge/MentorBookingService/internal/domain"
	"github.com/talentbridge/MentorBookingService/internal/service/availability"
	"github.com/talentbridge/MentorBookingService/internal/service/availability/models"
)

const (
	msgInvalidMentorID = "invalid mentor ID"
	msgInvalidDate     = "invalid date format, expected YYYY-MM-DD"
	msgInvalidRange    = "invalid date range"
	msgMentorNotFound  = "mentor not found"
)

// defaultWindowDays is how far ahead the calendar view reaches when the
// caller does not narrow it.
const defaultWindowDays = 30

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

// Handle GET /api/v1/mentors/{mentorId}/availability
// Query params: start_date, end_date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/availability - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	startDate := time.Now().Truncate(24 * time.Hour)
	if s := r.URL.Query().Get("start_date"); s != "" {
		startDate, err = time.Parse(domain.DateFormat, s)
		if err != nil {
			h.logger.Warn("GET /mentors/{id}/availability - Invalid start_date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}
	endDate := startDate.AddDate(0, 0, defaultWindowDays)
	if s := r.URL.Query().Get("end_date"); s != "" {
		endDate, err = time.Parse(domain.DateFormat, s)
		if err != nil {
			h.logger.Warn("GET /mentors/{id}/availability - Invalid end_date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.service.GetCalendar(r.Context(), &models.GetAvailabilityRequest{
		MentorID:  mentorID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/availability - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/availability - Invalid range: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /mentors/{id}/availability - Failed to get calendar: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/{id}/availability - Calendar retrieved: mentor_id=%d, rules=%d, overrides=%d",
		mentorID, len(result.WeeklyRules), len(result.Overrides))
	handlers.RespondJSON(w, http.StatusOK, result)
}
