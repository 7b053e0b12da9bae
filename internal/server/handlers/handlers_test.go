package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/hub"
	"github.com/iudanet/coachsync/internal/server/jwt"
	"github.com/iudanet/coachsync/internal/server/storage/sqlite"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

func setupTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()
	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func setupTestHub(t *testing.T) *hub.Hub {
	t.Helper()
	h := hub.New(8, setupTestLogger())
	t.Cleanup(h.Close)
	return h
}

func setupTestJWT() *jwt.Service {
	return jwt.NewService("test-secret", time.Hour, 4*time.Hour)
}

func seedSession(t *testing.T, s *sqlite.Storage, id string, callID int64, active bool) *models.SessionRow {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	row := &models.SessionRow{
		ID:          id,
		CallID:      callID,
		ViewMode:    models.ViewModeWord,
		SessionMode: models.SessionModeLive,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, s.CreateSession(context.Background(), row))
	return row
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}

func newRequest(method, target string, body io.Reader, pathValues map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}
