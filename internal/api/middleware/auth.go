package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/talentbridge/MentorBookingService/internal/api/handlers"
)

const userIDHeader = "X-User-ID"

type contextKey struct{ name string }

var userIDKey = contextKey{"userID"}

// Logger is the minimal logging surface middleware needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth requires the X-User-ID header on protected routes and stores the
// parsed user id in the request context. The service sits behind a gateway
// that authenticates users and forwards their id in this header.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(userIDHeader)
			if header == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, userIDHeader)
				handlers.RespondUnauthorized(w, "missing user id")
				return
			}

			userID, err := strconv.ParseInt(header, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - Invalid %s header: %q", r.Method, r.URL.Path, userIDHeader, header)
				handlers.RespondUnauthorized(w, "invalid user id")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user id stored by Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
