package auth

import (
	"slices"
	"strings"
	"time"
)

// Session is the signed-in user as carried through a request. It is a value:
// changes produce a new Session that must be re-issued as a cookie.
type Session struct {
	ID        string
	UserID    uint
	DiscordID string
	Username  string
	Language  string
	ExpiresAt time.Time
}

func (s Session) IsZero() bool { return s.UserID == 0 }

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// WithLanguage returns a copy of s using lang.
func (s Session) WithLanguage(lang string) Session {
	s.Language = lang
	return s
}

// IsSeeder reports whether discordID is on the seed allow-list.
func IsSeeder(allowList []string, discordID string) bool {
	if discordID == "" {
		return false
	}
	return slices.ContainsFunc(allowList, func(id string) bool {
		return strings.TrimSpace(id) == discordID
	})
}
