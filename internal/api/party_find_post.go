package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/db/repositories"
	"lostark-hub/partyfinder/internal/models/dtos"
	"lostark-hub/partyfinder/internal/services"
)

func (h *Handlers) observePost(action string, err error) {
	if h.deps.Metrics != nil {
		h.deps.Metrics.PartyFindActionsTotal.WithLabelValues(action, outcome(err)).Inc()
	}
}

// ListPosts handles GET /api/party-find-post
//
// Query: contentType, regionId, serverId, state (repeatable), limit.
func (h *Handlers) ListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		filter, err := boardFilter(r)
		if err != nil {
			h.fail(w, r, initTime, "party_find.board", err)
			return
		}

		posts, err := h.deps.Repo.Board.List(r.Context(), filter)
		if err != nil {
			h.fail(w, r, initTime, "party_find.board", err)
			return
		}
		if posts == nil {
			posts = []dtos.BoardPost{}
		}
		common.RespondSuccess(w, initTime, "Party find posts fetched", posts)
	}
}

func boardFilter(r *http.Request) (repositories.BoardFilter, error) {
	q := r.URL.Query()
	var f repositories.BoardFilter

	if raw := q.Get("contentType"); raw != "" {
		ct, ok := constants.ParseContentType(raw)
		if !ok {
			return f, badQuery("contentType", raw)
		}
		f.ContentType = ct
	}
	for _, p := range []struct {
		name string
		dst  *uint
	}{{"regionId", &f.RegionID}, {"serverId", &f.ServerID}} {
		if raw := q.Get(p.name); raw != "" {
			v, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return f, badQuery(p.name, raw)
			}
			*p.dst = uint(v)
		}
	}
	for _, raw := range q["state"] {
		f.States = append(f.States, constants.PostState(raw))
	}
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return f, badQuery("limit", raw)
		}
		f.Limit = v
	}
	return f, nil
}

func badQuery(name, raw string) error {
	return fmt.Errorf("%w: invalid query %s=%q", errBadRequest, name, raw)
}

// GetPost handles GET /api/party-find-post/{id}
func (h *Handlers) GetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err != nil {
			h.fail(w, r, initTime, "party_find.get", err)
			return
		}
		detail, err := h.deps.Services.PartyFind.Get(r.Context(), id)
		if err != nil {
			h.fail(w, r, initTime, "party_find.get", err)
			return
		}
		common.RespondSuccess(w, initTime, "Party find post fetched", postDetailView(detail))
	}
}

// CreatePost handles POST /api/party-find-post/add
func (h *Handlers) CreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.PartyFindPostReq
		err := decodeBody(w, r, &req)
		var detail *services.PostDetail
		if err == nil {
			detail, err = h.deps.Services.PartyFind.Create(r.Context(), session(r).UserID, req)
		}
		h.observePost("create", err)
		if err != nil {
			h.fail(w, r, initTime, "party_find.create", err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgPostCreated, postDetailView(detail))
	}
}

// EditPost handles POST /api/party-find-post/{id}/edit
func (h *Handlers) EditPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		var req dtos.PartyFindPostEditReq
		if err == nil {
			err = decodeBody(w, r, &req)
		}
		var detail *services.PostDetail
		if err == nil {
			detail, err = h.deps.Services.PartyFind.Edit(r.Context(), session(r).UserID, id, req)
		}
		h.observePost("edit", err)
		if err != nil {
			h.fail(w, r, initTime, "party_find.edit", err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgPostUpdated, postDetailView(detail))
	}
}

// DeletePost handles POST /api/party-find-post/{id}/delete
func (h *Handlers) DeletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err == nil {
			err = h.deps.Services.PartyFind.Delete(r.Context(), session(r).UserID, id)
		}
		h.observePost("delete", err)
		if err != nil {
			h.fail(w, r, initTime, "party_find.delete", err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgPostDeleted, dtos.IDResponse{ID: id})
	}
}

type memberAction func(ctx context.Context, userID, postID, characterID uint) error

// memberHandler serves the apply/approve/deny/kick/leave endpoints, which all take
// {"characterId": N} and return the refreshed post on success.
func (h *Handlers) memberHandler(action, message string, run memberAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		var req dtos.MemberActionReq
		if err == nil {
			err = decodeBody(w, r, &req)
		}
		if err == nil {
			err = run(r.Context(), session(r).UserID, id, req.CharacterID)
		}
		h.observePost(action, err)
		if err != nil {
			h.fail(w, r, initTime, "party_find."+action, err)
			return
		}

		detail, err := h.deps.Services.PartyFind.Get(r.Context(), id)
		if err != nil {
			h.fail(w, r, initTime, "party_find."+action, err)
			return
		}
		common.RespondSuccess(w, initTime, message, postDetailView(detail))
	}
}

// ApplyPost handles POST /api/party-find-post/{id}/apply
func (h *Handlers) ApplyPost() http.HandlerFunc {
	return h.memberHandler("apply", constants.MsgApplied, h.deps.Services.PartyFind.Apply)
}

// ApprovePost handles POST /api/party-find-post/{id}/approve
func (h *Handlers) ApprovePost() http.HandlerFunc {
	return h.memberHandler("approve", constants.MsgApproved, h.deps.Services.PartyFind.Approve)
}

// DenyPost handles POST /api/party-find-post/{id}/deny
func (h *Handlers) DenyPost() http.HandlerFunc {
	return h.memberHandler("deny", constants.MsgDenied, h.deps.Services.PartyFind.Deny)
}

// KickPost handles POST /api/party-find-post/{id}/kick
func (h *Handlers) KickPost() http.HandlerFunc {
	return h.memberHandler("kick", constants.MsgKicked, h.deps.Services.PartyFind.Kick)
}

// LeavePost handles POST /api/party-find-post/{id}/leave
func (h *Handlers) LeavePost() http.HandlerFunc {
	return h.memberHandler("leave", constants.MsgLeft, h.deps.Services.PartyFind.Leave)
}
