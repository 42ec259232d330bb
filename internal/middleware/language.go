package middleware

import (
	"net/http"

	"lostark-hub/partyfinder/internal/auth"
	"lostark-hub/partyfinder/internal/common"
)

// LanguageMiddleware stores the negotiated language in the request context.
// It must run after SessionMiddleware so the session preference is visible.
func LanguageMiddleware(langs *common.Languages) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := auth.GetSession(r.Context())
			lang := langs.Resolve(r, sess.Language)
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(auth.SetLanguage(r.Context(), lang)))
		})
	}
}
