package common

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"lostark-hub/partyfinder/internal/constants"
)

// Languages negotiates the user-facing language among a fixed set of tags.
// The first supported tag is the fallback.
type Languages struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewLanguages parses the supported tags, skipping any that do not parse.
// defaultTag is moved to the front so it wins when nothing matches.
func NewLanguages(defaultTag string, tags []string) *Languages {
	var supported []language.Tag
	if t, err := language.Parse(strings.TrimSpace(defaultTag)); err == nil {
		supported = append(supported, t)
	}
	for _, raw := range tags {
		t, err := language.Parse(strings.TrimSpace(raw))
		if err != nil || containsTag(supported, t) {
			continue
		}
		supported = append(supported, t)
	}
	if len(supported) == 0 {
		supported = []language.Tag{language.English}
	}
	return &Languages{supported: supported, matcher: language.NewMatcher(supported)}
}

func containsTag(tags []language.Tag, t language.Tag) bool {
	for _, existing := range tags {
		if existing == t {
			return true
		}
	}
	return false
}

func (l *Languages) Default() string {
	return l.supported[0].String()
}

// Supported returns the tags in preference order.
func (l *Languages) Supported() []string {
	out := make([]string, len(l.supported))
	for i, t := range l.supported {
		out[i] = t.String()
	}
	return out
}

// Parse accepts a tag only when the matcher is confident it is one of ours.
func (l *Languages) Parse(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	_, idx, conf := l.matcher.Match(tag)
	if conf < language.High {
		return "", false
	}
	return l.supported[idx].String(), true
}

// Resolve picks the request language: session preference, then the language
// cookie, then Accept-Language, then the default.
func (l *Languages) Resolve(r *http.Request, sessionLanguage string) string {
	if lang, ok := l.Parse(sessionLanguage); ok {
		return lang
	}
	if cookie, err := r.Cookie(constants.LanguageCookieName); err == nil {
		if lang, ok := l.Parse(cookie.Value); ok {
			return lang
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, conf := l.matcher.Match(tags...)
			if conf != language.No {
				return l.supported[idx].String()
			}
		}
	}
	return l.Default()
}

// SetCookie persists the selected language on the response.
func (l *Languages) SetCookie(w http.ResponseWriter, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.LanguageCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
