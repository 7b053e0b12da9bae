package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/coachsync/internal/server/hub"
	"github.com/iudanet/coachsync/internal/validation"
	"github.com/iudanet/coachsync/pkg/api"
)

const (
	// DefaultPingInterval период keepalive ping от сервера
	DefaultPingInterval = 20 * time.Second

	feedWriteTimeout = 5 * time.Second
	feedReadLimit    = 4096
)

// FeedHandler обслуживает websocket change feed.
// Клиент подписывается на один топик shared_evaluation_{sessionId} и получает
// новую версию строки сессии при каждом изменении коучем.
type FeedHandler struct {
	logger       *slog.Logger
	hub          *hub.Hub
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

// NewFeedHandler создает handler change feed
func NewFeedHandler(logger *slog.Logger, h *hub.Hub, pingInterval time.Duration) *FeedHandler {
	if pingInterval <= 0 {
		pingInterval = DefaultPingInterval
	}
	return &FeedHandler{
		logger: logger,
		hub:    h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		pingInterval: pingInterval,
	}
}

// Serve обрабатывает GET /api/v1/realtime?topic=shared_evaluation_{id}
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if _, err := validation.SessionIDFromTopic(topic); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.Warn("feed upgrade failed", "topic", topic, "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	sub := h.hub.Subscribe(topic)
	defer h.hub.Unsubscribe(sub)

	h.logger.Info("feed subscribed", "topic", topic, "subscriber_id", sub.ID, "remote_addr", r.RemoteAddr)

	if err := h.write(conn, api.FeedMessage{
		Type:   api.FeedTypeStatus,
		Topic:  topic,
		Status: api.FeedStatusSubscribed,
	}); err != nil {
		h.logger.Warn("failed to confirm feed subscription", "topic", topic, "error", err)
		return
	}

	done := make(chan struct{})
	go h.readLoop(conn, done)

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.C:
			if !ok {
				// Hub закрыт или подписчик не успевал читать
				h.logger.Info("feed subscription ended by server", "topic", topic, "subscriber_id", sub.ID)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "subscription ended"),
					time.Now().Add(feedWriteTimeout))
				return
			}
			if err := h.write(conn, msg); err != nil {
				h.logger.Warn("feed write failed", "topic", topic, "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(feedWriteTimeout)); err != nil {
				h.logger.Debug("feed ping failed", "topic", topic, "error", err)
				return
			}
		case <-done:
			h.logger.Info("feed unsubscribed", "topic", topic, "subscriber_id", sub.ID)
			return
		}
	}
}

func (h *FeedHandler) write(conn *websocket.Conn, msg api.FeedMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

// readLoop читает входящие кадры только ради control сообщений и закрытия.
// Клиент ничего не отправляет в feed, данные игнорируются.
func (h *FeedHandler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	pongWait := 2*h.pingInterval + feedWriteTimeout
	conn.SetReadLimit(feedReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
