package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lostark-hub/partyfinder/internal/models/dtos"
)

func healthCheck(t *testing.T, pingErr error) (*httptest.ResponseRecorder, dtos.HealthCheckResponse) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	ping := mock.ExpectPing()
	if pingErr != nil {
		ping.WillReturnError(pingErr)
	}

	rec := httptest.NewRecorder()
	HealthCheckHandler(sqlx.NewDb(db, "sqlmock"), time.Now().Add(-time.Minute)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))

	var resp dtos.HealthCheckResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NoError(t, mock.ExpectationsWereMet())
	return rec, resp
}

func TestHealthCheckHandler_OK(t *testing.T) {
	rec, resp := healthCheck(t, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1m0s", resp.Uptime)
}

func TestHealthCheckHandler_DatabaseDown(t *testing.T) {
	rec, resp := healthCheck(t, errors.New("connection refused"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "down", resp.Status)
	assert.Equal(t, "connection refused", resp.Services["database"].Details)
}
