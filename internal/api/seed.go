package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lostark-hub/partyfinder/internal/auth"
	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/logging"
	"lostark-hub/partyfinder/internal/models/dtos"
)

func (h *Handlers) seeded(r *http.Request, results ...dtos.SeedResult) {
	h.deps.Services.Catalog.Invalidate()
	for _, res := range results {
		if h.deps.Metrics != nil {
			h.deps.Metrics.CatalogSeedsTotal.WithLabelValues(res.Catalog).Inc()
		}
		logging.Info("Catalog seeded",
			"request_id", auth.GetRequestID(r.Context()),
			"discord_id", session(r).DiscordID,
			"catalog", res.Catalog,
			"rows", res.Rows,
		)
	}
}

// SeedRegions handles GET /seed/regions
func (h *Handlers) SeedRegions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		res, err := h.deps.Services.Seeder.SeedRegions(r.Context())
		if err != nil {
			h.fail(w, r, initTime, "seed.regions", err)
			return
		}
		h.seeded(r, res)
		common.RespondSuccess(w, initTime, constants.MsgSeeded, res)
	}
}

// SeedContent handles GET /seed/{contentType}
func (h *Handlers) SeedContent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		raw := chi.URLParam(r, "contentType")
		contentType, ok := constants.ParseContentType(raw)
		if !ok {
			h.fail(w, r, initTime, "seed.content", fmt.Errorf("%w: unknown content type %q", errBadRequest, raw))
			return
		}

		res, err := h.deps.Services.Seeder.SeedContent(r.Context(), contentType)
		if err != nil {
			h.fail(w, r, initTime, "seed.content", err)
			return
		}
		h.seeded(r, res)
		common.RespondSuccess(w, initTime, constants.MsgSeeded, res)
	}
}

// SeedAll handles GET /seed/all
func (h *Handlers) SeedAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		results, err := h.deps.Services.Seeder.SeedAll(r.Context())
		if err != nil {
			h.fail(w, r, initTime, "seed.all", err)
			return
		}
		h.seeded(r, results...)
		common.RespondSuccess(w, initTime, constants.MsgSeeded, results)
	}
}
