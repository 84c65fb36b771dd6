package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/talentbridge/MentorBookingService/internal/api/handlers"
	resolveAvailability "github.com/talentbridge/MentorBookingService/internal/usecase/resolve_availability"
)

const (
	msgInvalidMentorID  = "invalid mentor ID"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgInvalidDateRange = "invalid date range"
	msgMentorNotFound   = "mentor not found"
)

type Handler struct {
	useCase ResolveAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ResolveAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/mentors/{mentorId}/available-slots
// Query params: start_date and end_date (YYYY-MM-DD, both optional;
// omitted they default to today through today+30d)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/available-slots - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	startDateStr := r.URL.Query().Get("start_date")
	endDateStr := r.URL.Query().Get("end_date")

	useCaseReq, err := ToUseCaseRequest(mentorID, startDateStr, endDateStr)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, resolveAvailability.ErrMentorNotFound):
			h.logger.Warn("GET /mentors/{id}/available-slots - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, resolveAvailability.ErrInvalidDateRange),
			errors.Is(err, resolveAvailability.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/available-slots - Invalid range: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /mentors/{id}/available-slots - Failed to resolve slots: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /mentors/{id}/available-slots - Slots resolved: mentor_id=%d, slots_count=%d",
		mentorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
