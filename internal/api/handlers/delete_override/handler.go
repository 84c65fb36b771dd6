package delete_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/talentbridge/MentorBookingService/internal/api/handlers"
	"github.com/talentbridge/MentorBookingService/internal/api/middleware"
	"github.com/talentbridge/MentorBookingService/internal/service/availability"
)

const (
	msgInvalidOverrideID = "invalid override ID"
	msgMissingUserID     = "missing user id"
	msgNotFound          = "date override not found"
	msgForbidden         = "access denied"
)

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

// Handle DELETE /api/v1/availability/overrides/{overrideId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	overrideID, err := strconv.ParseInt(vars["overrideId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /availability/overrides/{id} - Invalid override ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOverrideID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /availability/overrides/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteOverride(r.Context(), overrideID, userID); err != nil {
		switch {
		case errors.Is(err, availability.ErrOverrideNotFound):
			h.logger.Warn("DELETE /availability/overrides/{id} - Override not found: override_id=%d", overrideID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied), errors.Is(err, availability.ErrMentorNotFound):
			h.logger.Warn("DELETE /availability/overrides/{id} - Access denied: override_id=%d, user_id=%d", overrideID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /availability/overrides/{id} - Failed to delete override: override_id=%d, error=%v", overrideID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/overrides/{id} - Override deleted: override_id=%d, user_id=%d", overrideID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
