package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/constants"
)

// GetCatalog handles GET /api/catalog/{contentType}
func (h *Handlers) GetCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		raw := chi.URLParam(r, "contentType")
		contentType, ok := constants.ParseContentType(raw)
		if !ok {
			h.fail(w, r, initTime, "catalog.tree", fmt.Errorf("%w: unknown content type %q", errBadRequest, raw))
			return
		}

		tree, err := h.deps.Services.Catalog.Tree(r.Context(), contentType)
		if err != nil {
			h.fail(w, r, initTime, "catalog.tree", err)
			return
		}
		common.RespondSuccess(w, initTime, "Catalog fetched", catalogView(tree))
	}
}
