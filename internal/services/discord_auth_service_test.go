package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/config"
	"lostark-hub/partyfinder/internal/db/repositories"
	"lostark-hub/partyfinder/internal/db/testdb"
)

func newDiscordStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "80351110224678912",
			"username":      "Nelly",
			"discriminator": "1337",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestDiscordAuth(t *testing.T, stub *httptest.Server) *DiscordAuthService {
	t.Helper()
	gdb := testdb.New(t)
	svc := NewDiscordAuthService(config.DiscordConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/discord/redirect",
	}, common.NewMemoryKeyStore(), repositories.NewUserRepository(gdb), "en")
	svc.oauth.Endpoint.AuthURL = stub.URL + "/authorize"
	svc.oauth.Endpoint.TokenURL = stub.URL + "/token"
	svc.meURL = stub.URL + "/users/@me"
	return svc
}

func stateFrom(t *testing.T, loginURL string) string {
	t.Helper()
	u, err := url.Parse(loginURL)
	require.NoError(t, err)
	return u.Query().Get("state")
}

func TestDiscordLoginFlow(t *testing.T) {
	stub := newDiscordStub(t)
	svc := newTestDiscordAuth(t, stub)
	ctx := context.Background()

	loginURL, err := svc.BeginLogin(ctx)
	require.NoError(t, err)
	state := stateFrom(t, loginURL)
	require.NotEmpty(t, state)

	user, err := svc.CompleteLogin(ctx, state, "good-code")
	require.NoError(t, err)
	assert.Equal(t, "80351110224678912", user.DiscordID)
	assert.Equal(t, "Nelly", user.Username)
	assert.Equal(t, "en", user.Language)

	// The state is single use.
	_, err = svc.CompleteLogin(ctx, state, "good-code")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDiscordLoginRejects(t *testing.T) {
	stub := newDiscordStub(t)
	svc := newTestDiscordAuth(t, stub)
	ctx := context.Background()

	_, err := svc.CompleteLogin(ctx, "never-issued", "good-code")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CompleteLogin(ctx, "", "")
	assert.ErrorIs(t, err, ErrValidation)

	loginURL, err := svc.BeginLogin(ctx)
	require.NoError(t, err)
	_, err = svc.CompleteLogin(ctx, stateFrom(t, loginURL), "bad-code")
	assert.ErrorIs(t, err, ErrInternal)
}
