package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter считает запросы по ключу в фиксированных окнах.
// Фоновых горутин нет: устаревшие окна удаляет Prune, его вызывает владелец.
type RateLimiter struct {
	windows map[string]*window
	logger  *slog.Logger
	now     func() time.Time
	limit   int
	period  time.Duration
	mu      sync.Mutex
}

type window struct {
	start time.Time
	count int
}

// NewRateLimiter создает лимитер на limit запросов за period
func NewRateLimiter(limit int, period time.Duration, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		logger:  logger,
		now:     time.Now,
		limit:   limit,
		period:  period,
	}
}

// Allow учитывает запрос по key. Если лимит исчерпан, возвращает время до
// начала следующего окна.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.period {
		w = &window{start: now}
		rl.windows[key] = w
	}

	if w.count >= rl.limit {
		return false, w.start.Add(rl.period).Sub(now)
	}
	w.count++
	return true, 0
}

// Prune удаляет окна, которые уже закончились, и возвращает их количество
func (rl *RateLimiter) Prune() int {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.period {
			delete(rl.windows, key)
			removed++
		}
	}
	return removed
}

// Len возвращает число отслеживаемых ключей
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// KeyFunc выбирает ключ, по которому считается лимит запроса
type KeyFunc func(r *http.Request) string

// RateLimitMiddleware отвечает 429 с Retry-After, когда лимит ключа исчерпан
func RateLimitMiddleware(limiter *RateLimiter, key KeyFunc, logger *slog.Logger) func(http.Handler) http.Handler {
	if key == nil {
		key = ClientIP
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)

			ok, wait := limiter.Allow(k)
			if !ok {
				logger.WarnContext(r.Context(), "Rate limit exceeded",
					"key", k,
					"method", r.Method,
					"path", r.URL.Path,
					"retry_after", wait,
				)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
				writeError(w, "rate limit exceeded, please try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryAfterSeconds округляет вверх, Retry-After не бывает меньше секунды
func retryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}

// ClientIP возвращает адрес клиента: первый адрес X-Forwarded-For, затем
// X-Real-IP, затем хост из RemoteAddr
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
