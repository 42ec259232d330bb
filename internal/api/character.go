package api

import (
	"net/http"
	"time"

	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/models/dtos"
)

func (h *Handlers) observeCharacter(action string, err error) {
	if h.deps.Metrics != nil {
		h.deps.Metrics.CharacterWritesTotal.WithLabelValues(action, outcome(err)).Inc()
	}
}

// ListCharacters handles GET /api/character
func (h *Handlers) ListCharacters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		characters, err := h.deps.Services.Characters.ListByUser(r.Context(), session(r).UserID)
		if err != nil {
			h.fail(w, r, initTime, "character.list", err)
			return
		}
		common.RespondSuccess(w, initTime, "Characters fetched", characterViews(characters))
	}
}

// AddCharacter handles POST /api/character/add
//
// Adding a character that already exists on the roster updates it in place.
func (h *Handlers) AddCharacter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CharacterReq
		err := decodeBody(w, r, &req)
		if err == nil {
			var saved *dtos.CharacterView
			saved, err = h.saveCharacter(r, nil, req)
			if err == nil {
				h.observeCharacter("add", nil)
				common.RespondSuccess(w, initTime, constants.MsgCharacterSaved, saved)
				return
			}
		}
		h.observeCharacter("add", err)
		h.fail(w, r, initTime, "character.add", err)
	}
}

// EditCharacter handles POST /api/character/{id}/edit
func (h *Handlers) EditCharacter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		var req dtos.CharacterReq
		if err == nil {
			err = decodeBody(w, r, &req)
		}
		if err == nil {
			var saved *dtos.CharacterView
			saved, err = h.saveCharacter(r, &id, req)
			if err == nil {
				h.observeCharacter("edit", nil)
				common.RespondSuccess(w, initTime, constants.MsgCharacterSaved, saved)
				return
			}
		}
		h.observeCharacter("edit", err)
		h.fail(w, r, initTime, "character.edit", err)
	}
}

func (h *Handlers) saveCharacter(r *http.Request, id *uint, req dtos.CharacterReq) (*dtos.CharacterView, error) {
	svc := h.deps.Services.Characters
	c, err := svc.Save(r.Context(), session(r).UserID, id, req)
	if err != nil {
		return nil, err
	}
	full, err := svc.Get(r.Context(), c.ID)
	if err != nil {
		return nil, err
	}
	view := characterView(*full)
	return &view, nil
}

// DeleteCharacter handles POST /api/character/{id}/delete
func (h *Handlers) DeleteCharacter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := pathID(r, "id")
		if err == nil {
			err = h.deps.Services.Characters.Delete(r.Context(), session(r).UserID, id)
		}
		h.observeCharacter("delete", err)
		if err != nil {
			h.fail(w, r, initTime, "character.delete", err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgCharacterDeleted, dtos.IDResponse{ID: id})
	}
}
