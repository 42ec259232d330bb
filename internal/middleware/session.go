package middleware

import (
	"errors"
	"net/http"
	"time"

	"lostark-hub/partyfinder/internal/auth"
	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/logging"
)

// SessionMiddleware attaches the session from the cookie when there is a valid one.
// Requests without a session pass through untouched.
func SessionMiddleware(sessions *common.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.FromRequest(r)
			switch {
			case err == nil:
				r = r.WithContext(auth.SetSession(r.Context(), sess))
			case errors.Is(err, common.ErrNoSession):
			default:
				logging.Debug("Discarding session cookie",
					"request_id", auth.GetRequestID(r.Context()),
					"error", err,
				)
				sessions.Clear(w)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession rejects anonymous requests with the common error payload.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.GetSession(r.Context()); !ok {
			logging.Info("Rejected anonymous request",
				"request_id", auth.GetRequestID(r.Context()),
				"path", r.URL.Path,
			)
			common.RespondCommonError(w, time.Now())
			return
		}
		next.ServeHTTP(w, r)
	})
}
