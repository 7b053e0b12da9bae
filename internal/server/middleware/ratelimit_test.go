package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock управляет временем лимитера в тестах
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(limit int, period time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	limiter := NewRateLimiter(limit, period, slog.New(slog.NewTextHandler(io.Discard, nil)))
	limiter.now = clock.Now
	return limiter, clock
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("limit per window", func(t *testing.T) {
		limiter, clock := newTestLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			ok, wait := limiter.Allow("10.0.0.1")
			assert.True(t, ok, "request %d should be allowed", i+1)
			assert.Zero(t, wait)
		}

		clock.Advance(20 * time.Second)
		ok, wait := limiter.Allow("10.0.0.1")
		assert.False(t, ok)
		assert.Equal(t, 40*time.Second, wait)
	})

	t.Run("new window resets the count", func(t *testing.T) {
		limiter, clock := newTestLimiter(1, time.Minute)

		ok, _ := limiter.Allow("10.0.0.1")
		require.True(t, ok)
		ok, _ = limiter.Allow("10.0.0.1")
		require.False(t, ok)

		clock.Advance(time.Minute)
		ok, _ = limiter.Allow("10.0.0.1")
		assert.True(t, ok)
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter, _ := newTestLimiter(1, time.Minute)

		ok, _ := limiter.Allow("shared_evaluation_a")
		assert.True(t, ok)
		ok, _ = limiter.Allow("shared_evaluation_a")
		assert.False(t, ok)
		ok, _ = limiter.Allow("shared_evaluation_b")
		assert.True(t, ok)
	})

	t.Run("zero limit rejects everything", func(t *testing.T) {
		limiter, _ := newTestLimiter(0, time.Minute)
		ok, wait := limiter.Allow("10.0.0.1")
		assert.False(t, ok)
		assert.Equal(t, time.Minute, wait)
	})
}

func TestRateLimiter_Prune(t *testing.T) {
	limiter, clock := newTestLimiter(10, time.Minute)

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")
	clock.Advance(30 * time.Second)
	limiter.Allow("10.0.0.3")
	require.Equal(t, 3, limiter.Len())

	// Первые два окна закончились, третье еще идет
	clock.Advance(30 * time.Second)
	assert.Equal(t, 2, limiter.Prune())
	assert.Equal(t, 1, limiter.Len())

	clock.Advance(time.Hour)
	assert.Equal(t, 1, limiter.Prune())
	assert.Zero(t, limiter.Len())
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter, clock := newTestLimiter(2, time.Minute)

	handler := RateLimitMiddleware(limiter, ClientIP, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("192.168.1.1:1000").Code)
	// Другой порт того же хоста считается тем же клиентом
	assert.Equal(t, http.StatusOK, send("192.168.1.1:2000").Code)

	clock.Advance(15500 * time.Millisecond)
	w := send("192.168.1.1:3000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
	assert.Equal(t, "45", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, send("192.168.1.2:1000").Code)
}

func TestRateLimitMiddleware_LogsExceededRequests(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	limiter, _ := newTestLimiter(1, time.Minute)

	handler := RateLimitMiddleware(limiter, nil, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/abc", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	out := logBuf.String()
	assert.Contains(t, out, "Rate limit exceeded")
	assert.Contains(t, out, "key=192.168.1.1 ")
	assert.Contains(t, out, "path=/api/v1/sessions/abc")
	assert.Contains(t, out, "method=PATCH")
}

func TestRateLimitMiddleware_CustomKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter, _ := newTestLimiter(1, time.Minute)

	byTopic := func(r *http.Request) string { return r.URL.Query().Get("topic") }
	handler := RateLimitMiddleware(limiter, byTopic, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(topic, addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/realtime?topic="+topic, nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("shared_evaluation_a", "10.0.0.1:1"))
	// Другой IP, но тот же топик
	assert.Equal(t, http.StatusTooManyRequests, send("shared_evaluation_a", "10.0.0.2:1"))
	assert.Equal(t, http.StatusOK, send("shared_evaluation_b", "10.0.0.1:1"))
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(300*time.Millisecond))
	assert.Equal(t, 2, retryAfterSeconds(1100*time.Millisecond))
	assert.Equal(t, 60, retryAfterSeconds(time.Minute))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xRealIP    string
		want       string
	}{
		{"forwarded single", "10.0.0.1:12345", "192.168.1.1", "", "192.168.1.1"},
		{"forwarded chain", "10.0.0.1:12345", "192.168.1.1, 10.0.0.2, 10.0.0.3", "", "192.168.1.1"},
		{"real ip", "10.0.0.1:12345", "", " 192.168.2.1 ", "192.168.2.1"},
		{"forwarded wins over real ip", "10.0.0.1:12345", "192.168.1.1", "192.168.2.1", "192.168.1.1"},
		{"remote addr host", "192.168.3.1:54321", "", "", "192.168.3.1"},
		{"remote addr ipv6", "[::1]:54321", "", "", "::1"},
		{"remote addr without port", "pipe", "", "", "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
