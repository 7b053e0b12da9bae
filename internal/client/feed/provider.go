// Package feed implements livesync.ChannelProvider over the server's REST API
// (snapshot) and its websocket change feed (subscription).
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iudanet/coachsync/internal/client/api"
	"github.com/iudanet/coachsync/internal/client/livesync"
	pkgapi "github.com/iudanet/coachsync/pkg/api"
)

const (
	// DefaultReadTimeout is how long the feed may stay silent. The server pings
	// every 20s, so two missed pings mean the channel is gone.
	DefaultReadTimeout = 45 * time.Second

	writeWait = 2 * time.Second
)

// Source is the HTTP side of the server, satisfied by *api.Client
type Source interface {
	GetSession(ctx context.Context, sessionID string) (json.RawMessage, error)
	FeedURL(topic string) (string, error)
	Token() string
}

// Provider is the production livesync.ChannelProvider
type Provider struct {
	source      Source
	dialer      *websocket.Dialer
	logger      *slog.Logger
	readTimeout time.Duration
}

var _ livesync.ChannelProvider = (*Provider)(nil)

// NewProvider creates a provider. readTimeout <= 0 selects DefaultReadTimeout.
func NewProvider(source Source, readTimeout time.Duration, logger *slog.Logger) *Provider {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	return &Provider{
		source:      source,
		dialer:      &websocket.Dialer{HandshakeTimeout: 10 * time.Second, Proxy: http.ProxyFromEnvironment},
		logger:      logger,
		readTimeout: readTimeout,
	}
}

// FetchRow reads the session row. The server answers 404 for absent and
// inactive rows alike.
func (p *Provider) FetchRow(ctx context.Context, sessionID string) (json.RawMessage, error) {
	raw, err := p.source.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", livesync.ErrSessionNotFound, err)
		}
		return nil, err
	}
	return raw, nil
}

// Subscribe dials the change feed of topic and starts delivering frames to h.
func (p *Provider) Subscribe(ctx context.Context, topic string, h livesync.FeedHandler) (livesync.Subscription, error) {
	wsURL, err := p.source.FeedURL(topic)
	if err != nil {
		return nil, err
	}

	headers := make(http.Header)
	if token := p.source.Token(); token != "" {
		headers.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := p.dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("websocket dial failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}

	sub := &subscription{
		conn:        conn,
		topic:       topic,
		handler:     h,
		logger:      p.logger.With("topic", topic),
		readTimeout: p.readTimeout,
		done:        make(chan struct{}),
	}
	go sub.readLoop()
	return sub, nil
}

type subscription struct {
	conn        *websocket.Conn
	handler     livesync.FeedHandler
	logger      *slog.Logger
	done        chan struct{}
	topic       string
	readTimeout time.Duration
	closing     atomic.Bool
	closeOnce   sync.Once
}

// Unsubscribe closes the websocket. It does not wait for the read loop, so it
// is safe to call from inside a handler callback.
func (s *subscription) Unsubscribe() error {
	if s.closing.Swap(true) {
		return nil
	}
	s.close()
	return nil
}

func (s *subscription) close() {
	s.closeOnce.Do(func() {
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		_ = s.conn.Close()
	})
}

func (s *subscription) extendDeadline() {
	_ = s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
}

func (s *subscription) readLoop() {
	defer close(s.done)

	s.extendDeadline()
	s.conn.SetPingHandler(func(appData string) error {
		s.extendDeadline()
		err := s.conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeWait))
		if errors.Is(err, websocket.ErrCloseSent) {
			return nil
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil
		}
		return err
	})

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if s.closing.Load() {
				return
			}
			s.closing.Store(true)
			s.close()
			s.emitStatus(readErrorStatus(err), err)
			return
		}
		s.extendDeadline()

		if messageType != websocket.TextMessage {
			continue
		}

		var msg pkgapi.FeedMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("Skipping malformed feed frame", "error", err)
			continue
		}

		if !s.dispatch(msg) {
			return
		}
	}
}

// dispatch routes one frame; false stops the read loop.
func (s *subscription) dispatch(msg pkgapi.FeedMessage) bool {
	if s.closing.Load() {
		return false
	}

	switch msg.Type {
	case pkgapi.FeedTypeUpdate:
		if msg.Topic != "" && msg.Topic != s.topic {
			s.logger.Debug("Ignoring update for another topic", "frame_topic", msg.Topic)
			return true
		}
		if s.handler.OnUpdate != nil {
			s.handler.OnUpdate(msg.Record)
		}
		return true

	case pkgapi.FeedTypeStatus:
		status, ok := parseStatus(msg.Status)
		if !ok {
			s.logger.Debug("Ignoring unknown feed status", "status", msg.Status)
			return true
		}
		if status == livesync.StatusSubscribed {
			s.emitStatus(status, nil)
			return true
		}
		s.closing.Store(true)
		s.close()
		s.emitStatus(status, statusCause(msg))
		return false

	case pkgapi.FeedTypeError:
		s.closing.Store(true)
		s.close()
		s.emitStatus(livesync.StatusChannelError, statusCause(msg))
		return false
	}

	return true
}

func (s *subscription) emitStatus(status livesync.ChannelStatus, err error) {
	if s.handler.OnStatus != nil {
		s.handler.OnStatus(status, err)
	}
}

func parseStatus(v string) (livesync.ChannelStatus, bool) {
	switch v {
	case pkgapi.FeedStatusSubscribed:
		return livesync.StatusSubscribed, true
	case pkgapi.FeedStatusChannelError:
		return livesync.StatusChannelError, true
	case pkgapi.FeedStatusTimedOut:
		return livesync.StatusTimedOut, true
	case pkgapi.FeedStatusClosed:
		return livesync.StatusClosed, true
	}
	return 0, false
}

func statusCause(msg pkgapi.FeedMessage) error {
	if msg.Message == "" {
		return nil
	}
	return errors.New(msg.Message)
}

func readErrorStatus(err error) livesync.ChannelStatus {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return livesync.StatusTimedOut
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return livesync.StatusClosed
	}
	return livesync.StatusChannelError
}
