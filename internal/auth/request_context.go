package auth

import (
	"context"
)

type contextKey string

var sessionKey contextKey = "session"
var requestIDKey contextKey = "request_id"

func SetSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// GetSession returns the request's session, if one was attached.
func GetSession(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	if !ok || s.IsZero() {
		return Session{}, false
	}
	return s, true
}

func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

var languageKey contextKey = "language"

func SetLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey, lang)
}

// GetLanguage returns the negotiated language, or "" outside LanguageMiddleware.
func GetLanguage(ctx context.Context) string {
	lang, _ := ctx.Value(languageKey).(string)
	return lang
}
