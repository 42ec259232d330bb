package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lostark-hub/partyfinder/internal/api"
	"lostark-hub/partyfinder/internal/config"
	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/db/repositories"
	"lostark-hub/partyfinder/internal/db/testdb"
	"lostark-hub/partyfinder/internal/metrics"
	"lostark-hub/partyfinder/internal/models/dtos"
	gormModels "lostark-hub/partyfinder/internal/models/gorm"
)

type testEnv struct {
	t       *testing.T
	db      *gorm.DB
	deps    *api.Dependencies
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testdb.New(t)

	cfg := &config.Config{
		SessionSecret:      "test-secret",
		SessionTTL:         time.Hour,
		DefaultLanguage:    "en",
		SupportedLanguages: []string{"en", "ko"},
		SeedAllowList:      []string{"seeder"},
		Limits:             config.DefaultLimits(),
	}
	reg := prometheus.NewRegistry()
	deps, err := api.InitDependencies(cfg, gdb, testdb.Sqlx(t, gdb), nil, metrics.NewMetricsRegistry(reg))
	require.NoError(t, err)

	return &testEnv{t: t, db: gdb, deps: deps, handler: RegisterRoutes(deps, time.Now(), reg)}
}

// login creates the user and returns its session cookie.
func (e *testEnv) login(discordID string) *http.Cookie {
	e.t.Helper()
	user, err := e.deps.Repo.Users.UpsertDiscordUser(context.Background(), repositories.DiscordProfile{ID: discordID, Username: "user-" + discordID}, "en")
	require.NoError(e.t, err)

	rec := httptest.NewRecorder()
	require.NoError(e.t, e.deps.Services.Sessions.Write(rec, e.deps.Services.Sessions.NewSession(user)))
	for _, c := range rec.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			return c
		}
	}
	e.t.Fatal("no session cookie written")
	return nil
}

func (e *testEnv) do(method, path string, cookie *http.Cookie, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "127.0.0.1:40000"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// call performs a request and decodes the envelope, unpacking data into out when given.
func (e *testEnv) call(method, path string, cookie *http.Cookie, body any, out any) dtos.APIResponse {
	e.t.Helper()
	rec := e.do(method, path, cookie, body)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		dtos.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if out != nil && len(envelope.Data) > 0 {
		require.NoError(e.t, json.Unmarshal(envelope.Data, out))
	}
	return envelope.APIResponse
}

func (e *testEnv) serverID(name string) uint {
	e.t.Helper()
	var s gormModels.Server
	require.NoError(e.t, e.db.Where("name = ?", name).First(&s).Error)
	return s.ID
}

func assertCommonError(t *testing.T, resp dtos.APIResponse) {
	t.Helper()
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, constants.MsgCommonError, resp.Message)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/healthCheck", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health dtos.HealthCheckResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.Services["database"].Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAnonymousActionsGetCommonError(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/character/add",
		"/api/character/1/delete",
		"/api/party-find-post/add",
		"/api/party-find-post/1/apply",
	} {
		assertCommonError(t, env.call(http.MethodPost, path, nil, map[string]any{}, nil))
	}
	assertCommonError(t, env.call(http.MethodGet, "/seed/all", nil, nil, nil))
}

func TestSeedIsGatedByAllowList(t *testing.T) {
	env := newTestEnv(t)

	assertCommonError(t, env.call(http.MethodGet, "/seed/regions", env.login("stranger"), nil, nil))

	var res dtos.SeedResult
	resp := env.call(http.MethodGet, "/seed/regions", env.login("seeder"), nil, &res)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "regions", res.Catalog)
	assert.Positive(t, res.Rows)

	var legion dtos.SeedResult
	env.call(http.MethodGet, "/seed/legion-raid", env.login("seeder"), nil, &legion)
	assert.Equal(t, "legion-raid", legion.Catalog)

	assertCommonError(t, env.call(http.MethodGet, "/seed/not-a-raid", env.login("seeder"), nil, nil))
}

func TestPartyFindFlow(t *testing.T) {
	env := newTestEnv(t)
	seeder := env.login("seeder")
	env.call(http.MethodGet, "/seed/all", seeder, nil, nil)

	var catalog []dtos.CatalogContentView
	env.call(http.MethodGet, "/api/catalog/legion-raid", nil, nil, &catalog)
	require.NotEmpty(t, catalog)
	assert.Equal(t, "Valtan", catalog[0].Name)
	stage := catalog[0].Tabs[0].Stages[0]
	assert.Equal(t, 8, stage.GroupSize)

	author := env.login("author")
	var leader dtos.CharacterView
	resp := env.call(http.MethodPost, "/api/character/add", author, dtos.CharacterReq{
		ServerID: env.serverID("Azena"), RosterLevel: 120, Name: "Leader", Job: "BERSERKER", Level: 60, ItemLevel: 1460,
	}, &leader)
	require.Equal(t, "ok", resp.Status, resp.Message)
	assert.Equal(t, "DPS", leader.Role)

	applicant := env.login("applicant")
	var bard dtos.CharacterView
	env.call(http.MethodPost, "/api/character/add", applicant, dtos.CharacterReq{
		ServerID: env.serverID("Una"), RosterLevel: 90, Name: "Singer", Job: "BARD", Level: 60, ItemLevel: 1445,
	}, &bard)
	require.NotZero(t, bard.ID)

	var post dtos.PostDetailView
	resp = env.call(http.MethodPost, "/api/party-find-post/add", author, dtos.PartyFindPostReq{
		CharacterID: leader.ID,
		ContentType: "LEGION_RAID",
		StageID:     stage.ID,
		Title:       "Valtan gate 1 weekly",
		StartTime:   time.Now().Add(48 * time.Hour),
	}, &post)
	require.Equal(t, "ok", resp.Status)
	require.Len(t, post.Slots, 8)
	assert.Equal(t, "RECRUITING", post.State)

	postPath := "/api/party-find-post/" + jsonID(post.ID)

	// Only the author may approve.
	assertCommonError(t, env.call(http.MethodPost, postPath+"/approve", applicant, dtos.MemberActionReq{CharacterID: bard.ID}, nil))

	var applied dtos.PostDetailView
	resp = env.call(http.MethodPost, postPath+"/apply", applicant, dtos.MemberActionReq{CharacterID: bard.ID}, &applied)
	require.Equal(t, "ok", resp.Status)
	require.Len(t, applied.Waitlist, 1)
	assert.Equal(t, "Singer", applied.Waitlist[0].Name)

	// Applying twice is a conflict.
	assertCommonError(t, env.call(http.MethodPost, postPath+"/apply", applicant, dtos.MemberActionReq{CharacterID: bard.ID}, nil))

	var approved dtos.PostDetailView
	resp = env.call(http.MethodPost, postPath+"/approve", author, dtos.MemberActionReq{CharacterID: bard.ID}, &approved)
	require.Equal(t, "ok", resp.Status)
	assert.Empty(t, approved.Waitlist)
	require.NotNil(t, approved.Slots[0].Character)
	assert.Equal(t, bard.ID, approved.Slots[0].Character.ID)

	var board []dtos.BoardPost
	env.call(http.MethodGet, "/api/party-find-post?contentType=legion-raid", nil, nil, &board)
	require.Len(t, board, 1)
	assert.Equal(t, 2, board[0].Filled)
	assert.Equal(t, 8, board[0].GroupSize)

	var left dtos.PostDetailView
	resp = env.call(http.MethodPost, postPath+"/leave", applicant, dtos.MemberActionReq{CharacterID: bard.ID}, &left)
	require.Equal(t, "ok", resp.Status)
	require.Len(t, left.Slots, 8)
	assert.Nil(t, left.Slots[0].Character)
	assert.Equal(t, "RECRUITING", left.State)
	for _, st := range left.ApplyStates {
		if st.CharacterID == bard.ID {
			assert.Equal(t, "WITHDRAWN", st.State)
			assert.Nil(t, st.SlotIndex)
		}
	}

	resp = env.call(http.MethodPost, postPath+"/delete", author, nil, nil)
	require.Equal(t, "ok", resp.Status)
	var deleted dtos.PostDetailView
	env.call(http.MethodGet, postPath, nil, nil, &deleted)
	assert.Equal(t, "DELETED", deleted.State)

	rec := env.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `partyfinder_post_actions_total{action="approve",outcome="forbidden"} 1`)
	assert.Contains(t, rec.Body.String(), `partyfinder_post_actions_total{action="apply",outcome="conflict"} 1`)
}

func jsonID(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}

func TestCharacterOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.call(http.MethodGet, "/seed/regions", env.login("seeder"), nil, nil)

	owner := env.login("owner")
	var c dtos.CharacterView
	env.call(http.MethodPost, "/api/character/add", owner, dtos.CharacterReq{
		ServerID: env.serverID("Azena"), RosterLevel: 50, Name: "Mine", Job: "SORCERESS", Level: 55, ItemLevel: 1340,
	}, &c)
	require.NotZero(t, c.ID)

	other := env.login("other")
	path := "/api/character/" + jsonID(c.ID)
	assertCommonError(t, env.call(http.MethodPost, path+"/delete", other, nil, nil))
	assertCommonError(t, env.call(http.MethodPost, path+"/edit", other, dtos.CharacterReq{
		ServerID: env.serverID("Azena"), RosterLevel: 50, Name: "Stolen", Job: "SORCERESS", Level: 55, ItemLevel: 1340,
	}, nil))

	var mine []dtos.CharacterView
	env.call(http.MethodGet, "/api/character", owner, nil, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)

	resp := env.call(http.MethodPost, path+"/delete", owner, nil, nil)
	assert.Equal(t, "ok", resp.Status)
	env.call(http.MethodGet, "/api/character", owner, nil, &mine)
	assert.Empty(t, mine)

	assertCommonError(t, env.call(http.MethodPost, "/api/character/abc/delete", owner, nil, nil))
}

func TestChangeLanguageAndLogout(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login("polyglot")

	assertCommonError(t, env.call(http.MethodPost, "/change-language", cookie, dtos.ChangeLanguageReq{Language: "xx"}, nil))

	rec := env.do(http.MethodPost, "/change-language", cookie, dtos.ChangeLanguageReq{Language: "ko"})
	require.Equal(t, http.StatusOK, rec.Code)
	var refreshed *http.Cookie
	var langCookie string
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case constants.SessionCookieName:
			refreshed = c
		case constants.LanguageCookieName:
			langCookie = c.Value
		}
	}
	require.NotNil(t, refreshed)
	assert.Equal(t, "ko", langCookie)

	user, err := env.deps.Repo.Users.GetByDiscordID(context.Background(), "polyglot")
	require.NoError(t, err)
	assert.Equal(t, "ko", user.Language)

	var view dtos.SessionView
	env.call(http.MethodGet, "/api/session", refreshed, nil, &view)
	assert.Equal(t, "ko", view.Language)

	rec = env.do(http.MethodPost, "/logout", refreshed, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Header().Get("Set-Cookie"), constants.SessionCookieName))

	assertCommonError(t, env.call(http.MethodGet, "/api/session", refreshed, nil, nil))
}

func TestLoginRedirectsToDiscord(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/login", nil, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "discord.com/api/oauth2/authorize")
	assert.Contains(t, rec.Header().Get("Location"), "state=")

	assertCommonError(t, env.call(http.MethodGet, "/discord/redirect?state=nope&code=x", nil, nil, nil))
}
