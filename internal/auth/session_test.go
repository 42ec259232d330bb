package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionContextRoundTrip(t *testing.T) {
	_, ok := GetSession(context.Background())
	assert.False(t, ok)

	s := Session{ID: "abc", UserID: 7, DiscordID: "42", Language: "en"}
	got, ok := GetSession(SetSession(context.Background(), s))
	assert.True(t, ok)
	assert.Equal(t, s, got)
}

func TestSessionWithLanguageCopies(t *testing.T) {
	s := Session{UserID: 1, Language: "en"}
	ko := s.WithLanguage("ko")

	assert.Equal(t, "en", s.Language)
	assert.Equal(t, "ko", ko.Language)
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	s := Session{UserID: 1, ExpiresAt: now}
	assert.True(t, s.Expired(now))
	assert.False(t, s.Expired(now.Add(-time.Second)))
}

func TestIsSeeder(t *testing.T) {
	allow := []string{"111", " 222 "}
	assert.True(t, IsSeeder(allow, "111"))
	assert.True(t, IsSeeder(allow, "222"))
	assert.False(t, IsSeeder(allow, "333"))
	assert.False(t, IsSeeder(allow, ""))
	assert.False(t, IsSeeder(nil, "111"))
}
