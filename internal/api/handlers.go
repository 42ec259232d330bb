package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"lostark-hub/partyfinder/internal/auth"
	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/logging"
	"lostark-hub/partyfinder/internal/services"
)

const maxBodyBytes = 64 << 10

var errBadRequest = errors.New("bad request")

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// fail logs the cause with the request id and writes the common error payload.
// Callers never leak the error kind to the client.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, initTime time.Time, action string, err error) {
	kind := services.KindOf(err)
	if errors.Is(err, errBadRequest) {
		kind = services.KindValidation
	}

	fields := []interface{}{
		"request_id", auth.GetRequestID(r.Context()),
		"action", action,
		"kind", kind,
		"error", err,
	}
	if sess, ok := auth.GetSession(r.Context()); ok {
		fields = append(fields, "user_id", sess.UserID)
	}

	if kind == services.KindInternal {
		logging.Error("Request failed", fields...)
	} else {
		logging.Info("Request rejected", fields...)
	}
	common.RespondCommonError(w, initTime)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", errBadRequest, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", errBadRequest, name, raw)
	}
	return uint(id), nil
}

// session is only called behind RequireSession.
func session(r *http.Request) auth.Session {
	sess, _ := auth.GetSession(r.Context())
	return sess
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, errBadRequest) {
		return string(services.KindValidation)
	}
	return string(services.KindOf(err))
}
