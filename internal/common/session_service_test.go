package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lostark-hub/partyfinder/internal/constants"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

func newTestSessions(now time.Time) *SessionService {
	svc := NewSessionService([]byte("test-secret"), time.Hour, false, NewMemoryKeyStore())
	svc.now = func() time.Time { return now }
	return svc
}

func TestSessionCookieRoundTrip(t *testing.T) {
	now := time.Now()
	svc := newTestSessions(now)
	user := &gormModels.User{ID: 9, DiscordID: "4242", Username: "mokoko", Language: "ko"}
	sess := svc.NewSession(user)

	rec := httptest.NewRecorder()
	require.NoError(t, svc.Write(rec, sess))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	got, err := svc.FromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, uint(9), got.UserID)
	assert.Equal(t, "4242", got.DiscordID)
	assert.Equal(t, "ko", got.Language)
	assert.True(t, got.ExpiresAt.Equal(sess.ExpiresAt))
}

func TestSessionRejectsTamperedAndExpired(t *testing.T) {
	now := time.Now()
	svc := newTestSessions(now)
	sess := svc.NewSession(&gormModels.User{ID: 1, DiscordID: "1"})

	token, err := svc.Sign(sess)
	require.NoError(t, err)

	other := NewSessionService([]byte("other-secret"), time.Hour, false, NewMemoryKeyStore())
	_, err = other.Parse(context.Background(), token)
	assert.Error(t, err)

	later := newTestSessions(now.Add(2 * time.Hour))
	_, err = later.Parse(context.Background(), token)
	assert.Error(t, err)
}

func TestSessionRevoke(t *testing.T) {
	svc := newTestSessions(time.Now())
	sess := svc.NewSession(&gormModels.User{ID: 1, DiscordID: "1"})
	token, err := svc.Sign(sess)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), sess))
	_, err = svc.Parse(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestSessionMissingCookie(t *testing.T) {
	svc := newTestSessions(time.Now())
	_, err := svc.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionClear(t *testing.T) {
	svc := newTestSessions(time.Now())
	rec := httptest.NewRecorder()
	svc.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestMemoryKeyStoreTakeOnce(t *testing.T) {
	ks := NewMemoryKeyStore()
	ctx := context.Background()
	require.NoError(t, ks.Put(ctx, "state", time.Minute))

	has, err := ks.Has(ctx, "state")
	require.NoError(t, err)
	assert.True(t, has)

	took, err := ks.Take(ctx, "state")
	require.NoError(t, err)
	assert.True(t, took)

	took, err = ks.Take(ctx, "state")
	require.NoError(t, err)
	assert.False(t, took)
}

func TestSessionRevokeExpiredIsNoop(t *testing.T) {
	now := time.Now()
	ks := NewMemoryKeyStore()
	svc := NewSessionService([]byte("test-secret"), time.Hour, false, ks)
	svc.now = func() time.Time { return now }
	sess := svc.NewSession(&gormModels.User{ID: 1, DiscordID: "1"})

	svc.now = func() time.Time { return sess.ExpiresAt }
	require.NoError(t, svc.Revoke(context.Background(), sess))

	has, err := ks.Has(context.Background(), string(constants.CachePrefixRevoked)+sess.ID)
	require.NoError(t, err)
	assert.False(t, has)
}
