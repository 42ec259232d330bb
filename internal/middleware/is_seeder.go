package middleware

import (
	"net/http"
	"time"

	"lostark-hub/partyfinder/internal/auth"
	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/logging"
)

// IsSeederMiddleware lets through only sessions whose Discord id is on the allow-list.
func IsSeederMiddleware(allowList []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := auth.GetSession(r.Context())
			if auth.IsSeeder(allowList, sess.DiscordID) {
				next.ServeHTTP(w, r)
				return
			}

			logging.Warn("Seed request denied",
				"request_id", auth.GetRequestID(r.Context()),
				"discord_id", sess.DiscordID,
				"path", r.URL.Path,
			)
			common.RespondCommonError(w, time.Now())
		})
	}
}
