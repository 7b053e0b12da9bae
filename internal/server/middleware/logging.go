package middleware

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"
)

// statusRecorder запоминает статус и размер ответа для лога запроса.
type statusRecorder struct {
	http.ResponseWriter
	status   int
	bytes    int64
	hijacked bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// Hijack передает соединение websocket upgrader'у.
// После hijack статус фиксируется как 101 Switching Protocols.
func (rec *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rec.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	rec.status = http.StatusSwitchingProtocols
	rec.hijacked = true
	return hj.Hijack()
}

// levelFor выбирает уровень лога по статусу ответа.
func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// LoggingMiddleware логирует каждый запрос: метод, путь, статус, длительность.
// Токены доступа в query маскируются. Для ленты изменений запись появляется
// после закрытия websocket, duration_ms тогда равна времени подписки.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			msg := "HTTP request"
			if rec.hijacked {
				msg = "Feed connection closed"
			}
			logger.Log(r.Context(), levelFor(rec.status), msg,
				"method", r.Method,
				"path", r.URL.Path,
				"query", sanitizeQuery(r.URL.RawQuery),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
				"bytes_written", rec.bytes,
			)
		})
	}
}

// sensitiveParams query параметры, значения которых не попадают в лог
var sensitiveParams = []string{AccessTokenParam}

// sanitizeQuery маскирует токены в query строке.
// Например: topic=shared_evaluation_x&access_token=eyJ... -> access_token=***&topic=shared_evaluation_x
func sanitizeQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "***"
	}

	for _, param := range sensitiveParams {
		if values.Has(param) {
			values.Set(param, "***")
		}
	}

	// Encode экранирует '*', возвращаем маску в читаемом виде
	encoded := values.Encode()
	if out, err := url.QueryUnescape(encoded); err == nil {
		return out
	}
	return encoded
}

// LoggingWithSkip не логирует запросы к перечисленным путям (health checks).
func LoggingWithSkip(logger *slog.Logger, skipPaths []string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = struct{}{}
	}
	logged := LoggingMiddleware(logger)

	return func(next http.Handler) http.Handler {
		withLog := logged(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			withLog.ServeHTTP(w, r)
		})
	}
}
