package middleware

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
)

// recoveryWriter запоминает, начат ли уже ответ клиенту.
// После WriteHeader или Hijack отправить 500 уже нельзя.
type recoveryWriter struct {
	http.ResponseWriter
	started bool
}

func (w *recoveryWriter) WriteHeader(code int) {
	w.started = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *recoveryWriter) Write(b []byte) (int, error) {
	w.started = true
	return w.ResponseWriter.Write(b)
}

// Hijack нужен websocket upgrader'у ленты изменений.
func (w *recoveryWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.started = true
	return hj.Hijack()
}

// RecoveryMiddleware перехватывает panic в обработчике.
// Если ответ еще не начат, клиент получает 500 в формате api.ErrorResponse,
// детали паники остаются только в логе.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &recoveryWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// намеренный обрыв ответа пробрасываем в net/http
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.ErrorContext(r.Context(), "Panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"response_started", rw.started,
					"stack", string(debug.Stack()),
				)

				if !rw.started {
					writeError(rw, "internal server error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
