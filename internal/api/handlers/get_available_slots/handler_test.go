package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/MentorBookingService/internal/domain"
	resolveAvailability "github.com/talentbridge/MentorBookingService/internal/usecase/resolve_availability"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	req *resolveAvailability.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *resolveAvailability.Request) (*resolveAvailability.Response, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &resolveAvailability.Response{
		MentorID:  req.MentorID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}, nil
}

func serveSlots(t *testing.T, uc *stubUseCase, query string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, nopLogger{})
	r := httptest.NewRequest(http.MethodGet, "/api/v1/mentors/1/available-slots"+query, nil)
	r = mux.SetURLVars(r, map[string]string{"mentorId": "1"})
	w := httptest.NewRecorder()

	h.Handle(w, r)
	return w
}

func TestHandleDefaultsRangeToThirtyDays(t *testing.T) {
	uc := &stubUseCase{}

	w := serveSlots(t, uc, "")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, uc.req)
	today := time.Now().UTC().Format(domain.DateFormat)
	assert.Equal(t, today, uc.req.StartDate.Format(domain.DateFormat))
	assert.Equal(t, uc.req.StartDate.AddDate(0, 0, domain.DefaultResolveRangeDays), uc.req.EndDate)
}

func TestHandleOmittedEndDateDefaultsFromStart(t *testing.T) {
	uc := &stubUseCase{}

	w := serveSlots(t, uc, "?start_date=2026-03-09")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, uc.req)
	assert.Equal(t, "2026-03-09", uc.req.StartDate.Format(domain.DateFormat))
	assert.Equal(t, "2026-04-08", uc.req.EndDate.Format(domain.DateFormat))
}

func TestHandleExplicitRange(t *testing.T) {
	uc := &stubUseCase{}

	w := serveSlots(t, uc, "?start_date=2026-03-09&end_date=2026-03-15")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, uc.req)
	assert.Equal(t, "2026-03-15", uc.req.EndDate.Format(domain.DateFormat))
}

func TestHandleRejectsMalformedDate(t *testing.T) {
	uc := &stubUseCase{}

	w := serveSlots(t, uc, "?start_date=09.03.2026")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.req)
}

func TestHandleMentorNotFound(t *testing.T) {
	uc := &stubUseCase{err: resolveAvailability.ErrMentorNotFound}

	w := serveSlots(t, uc, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
