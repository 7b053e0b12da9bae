package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		panicValue any
		name       string
	}{
		{name: "string", panicValue: "something went wrong"},
		{name: "error", panicValue: io.ErrUnexpectedEOF},
		{name: "struct", panicValue: struct{ msg string }{"critical error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panicValue)
			}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/abc", nil))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"error":"Internal Server Error","message":"internal server error"}`, w.Body.String())
		})
	}
}

func TestRecoveryMiddleware_PassThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/abc", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRecoveryMiddleware_ResponseAlreadyStarted(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":`))
		panic("encoder blew up")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/abc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"id":`, w.Body.String(), "no error body is appended to a started response")
	assert.Contains(t, logBuf.String(), "response_started=true")
}

func TestRecoveryMiddleware_RepanicsAbortHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/realtime", nil)
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	})
}

func TestRecoveryMiddleware_LogsPanicDetails(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic for logging")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	out := logBuf.String()
	assert.Contains(t, out, "Panic recovered")
	assert.Contains(t, out, "test panic for logging")
	assert.Contains(t, out, "method=POST")
	assert.Contains(t, out, "path=/api/v1/sessions")
	assert.Contains(t, out, "response_started=false")
	assert.Contains(t, out, "goroutine", "stack trace is logged")
	assert.NotContains(t, w.Body.String(), "test panic for logging")
}

func TestRecoveryWriter_Hijack(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		rw := &recoveryWriter{ResponseWriter: httptest.NewRecorder()}
		_, _, err := rw.Hijack()
		require.Error(t, err)
		assert.False(t, rw.started)
	})

	t.Run("through a real server", func(t *testing.T) {
		started := make(chan bool, 1)
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &recoveryWriter{ResponseWriter: w}
			conn, _, err := rw.Hijack()
			started <- rw.started
			if err == nil {
				_ = conn.Close()
			}
		}))
		defer ts.Close()

		resp, err := http.Get(ts.URL)
		if err == nil {
			_ = resp.Body.Close()
		}
		assert.True(t, <-started)
	})
}
