package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// FeedStats отдает нагрузку на ленту изменений (реализуется hub.Hub)
type FeedStats interface {
	Stats() (topics, subscribers int)
}

// HealthHandler отвечает на GET /api/v1/health. Эндпоинт без авторизации,
// клиент использует его для проверки адреса сервера.
type HealthHandler struct {
	started time.Time
	feed    FeedStats
	logger  *slog.Logger
	version string
}

func NewHealthHandler(logger *slog.Logger, version string, feed FeedStats) *HealthHandler {
	if version == "" {
		version = "dev"
	}
	return &HealthHandler{
		started: time.Now(),
		feed:    feed,
		logger:  logger,
		version: version,
	}
}

// HealthResponse тело ответа health check
type HealthResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version,omitempty"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	FeedTopics      int    `json:"feed_topics"`      // FeedTopics сессий с хотя бы одним зрителем
	FeedSubscribers int    `json:"feed_subscribers"` // FeedSubscribers открытых подписок всего
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}
	if h.feed != nil {
		resp.FeedTopics, resp.FeedSubscribers = h.feed.Stats()
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}
