package api

import (
	"fmt"
	"net/http"
	"time"

	"lostark-hub/partyfinder/internal/auth"
	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/logging"
	"lostark-hub/partyfinder/internal/models/dtos"
)

// Login handles POST /login by redirecting to the Discord consent screen.
func (h *Handlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		url, err := h.deps.Services.DiscordAuth.BeginLogin(r.Context())
		if err != nil {
			h.fail(w, r, initTime, "auth.login", err)
			return
		}
		http.Redirect(w, r, url, http.StatusSeeOther)
	}
}

// DiscordRedirect handles GET /discord/redirect, the OAuth callback.
func (h *Handlers) DiscordRedirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		if oauthErr := q.Get("error"); oauthErr != "" {
			h.fail(w, r, initTime, "auth.redirect", fmt.Errorf("%w: discord returned %q", errBadRequest, oauthErr))
			return
		}

		user, err := h.deps.Services.DiscordAuth.CompleteLogin(r.Context(), q.Get("state"), q.Get("code"))
		if err != nil {
			h.fail(w, r, initTime, "auth.redirect", err)
			return
		}

		sessions := h.deps.Services.Sessions
		sess := sessions.NewSession(user)
		if err := sessions.Write(w, sess); err != nil {
			h.fail(w, r, initTime, "auth.redirect", err)
			return
		}
		h.deps.Services.Languages.SetCookie(w, user.Language)

		logging.Info("Session issued",
			"request_id", auth.GetRequestID(r.Context()),
			"user_id", user.ID,
			"session_id", sess.ID,
		)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// Logout handles POST /logout. Logging out without a session is a no-op.
func (h *Handlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		sessions := h.deps.Services.Sessions

		if sess, ok := auth.GetSession(r.Context()); ok {
			if err := sessions.Revoke(r.Context(), sess); err != nil {
				h.fail(w, r, initTime, "auth.logout", err)
				return
			}
		}
		sessions.Clear(w)
		common.RespondSuccess(w, initTime, "Logged out", nil)
	}
}

// ChangeLanguage handles POST /change-language. Signed-in users get the choice
// stored on their account and a re-issued session cookie.
func (h *Handlers) ChangeLanguage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		langs := h.deps.Services.Languages

		var req dtos.ChangeLanguageReq
		if err := decodeBody(w, r, &req); err != nil {
			h.fail(w, r, initTime, "auth.change_language", err)
			return
		}
		lang, ok := langs.Parse(req.Language)
		if !ok {
			h.fail(w, r, initTime, "auth.change_language", fmt.Errorf("%w: unsupported language %q", errBadRequest, req.Language))
			return
		}

		if sess, ok := auth.GetSession(r.Context()); ok {
			if err := h.deps.Repo.Users.UpdateLanguage(r.Context(), sess.UserID, lang); err != nil {
				h.fail(w, r, initTime, "auth.change_language", err)
				return
			}
			if err := h.deps.Services.Sessions.Write(w, sess.WithLanguage(lang)); err != nil {
				h.fail(w, r, initTime, "auth.change_language", err)
				return
			}
		}
		langs.SetCookie(w, lang)
		common.RespondSuccess(w, initTime, "Language changed", map[string]string{"language": lang})
	}
}

// CurrentSession handles GET /api/session
func (h *Handlers) CurrentSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session(r)
		lang := auth.GetLanguage(r.Context())
		if lang == "" {
			lang = sess.Language
		}
		common.RespondSuccess(w, time.Now(), "Session fetched", dtos.SessionView{
			UserID:    sess.UserID,
			DiscordID: sess.DiscordID,
			Username:  sess.Username,
			Language:  lang,
		})
	}
}
