package middleware

import (
	"net/http"
	"time"

	"lostark-hub/partyfinder/internal/auth"
	"lostark-hub/partyfinder/internal/logging"
)

// Logging writes one structured line per request once the handler returns.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		var userID uint
		if sess, ok := auth.GetSession(r.Context()); ok {
			userID = sess.UserID
		}

		logging.WithRequest(auth.GetRequestID(r.Context()), userID, RoutePattern(r)).Infow("HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", wrapped.statusCode,
			"bytes", wrapped.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
