// Package server wires storage, the change feed hub, authentication and the
// HTTP handlers into the coachsync session server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/coachsync/internal/crypto"
	"github.com/iudanet/coachsync/internal/server/handlers"
	"github.com/iudanet/coachsync/internal/server/hub"
	"github.com/iudanet/coachsync/internal/server/jwt"
	"github.com/iudanet/coachsync/internal/server/middleware"
	"github.com/iudanet/coachsync/internal/server/storage"
)

// MinJWTSecretLen минимальная длина секрета подписи токенов
const MinJWTSecretLen = 16

// Config содержит параметры сервера
type Config struct {
	Addr         string
	JWTSecret    string
	CoachKeyHash string // bcrypt хеш ключа коуча
	Version      string

	TokenTTL        time.Duration
	MaxTokenTTL     time.Duration
	PingInterval    time.Duration
	ShutdownTimeout time.Duration
	CleanupInterval time.Duration // период удаления истекших токенов, 0 = выключено

	RateWindow         time.Duration
	CoachRateLimit     int // запросов коуча за RateWindow с одного IP
	SpectatorRateLimit int // запросов зрителя за RateWindow с одного IP
	FeedRateLimit      int // подключений к feed за RateWindow на один токен зрителя
	HubBuffer          int
}

// DefaultConfig returns production defaults
func DefaultConfig() Config {
	return Config{
		Addr:               ":8080",
		TokenTTL:           jwt.DefaultTTL,
		MaxTokenTTL:        24 * time.Hour,
		PingInterval:       handlers.DefaultPingInterval,
		ShutdownTimeout:    10 * time.Second,
		CleanupInterval:    time.Hour,
		RateWindow:         time.Minute,
		CoachRateLimit:     600,
		SpectatorRateLimit: 120,
		FeedRateLimit:      60,
		HubBuffer:          hub.DefaultBuffer,
	}
}

// Validate проверяет обязательные параметры
func (c Config) Validate() error {
	if len(c.JWTSecret) < MinJWTSecretLen {
		return fmt.Errorf("jwt secret must be at least %d characters long", MinJWTSecretLen)
	}
	if err := crypto.ValidateCoachKeyHash(c.CoachKeyHash); err != nil {
		return err
	}
	if c.RateWindow <= 0 {
		return errors.New("rate window must be positive")
	}
	return nil
}

// Server is the assembled session server
type Server struct {
	store      storage.Storage
	logger     *slog.Logger
	hub        *hub.Hub
	tokens     *jwt.Service
	handler    http.Handler
	httpServer *http.Server
	limiters   []*middleware.RateLimiter
	cfg        Config
}

// New assembles a server on top of store. The caller owns store.
func New(cfg Config, store storage.Storage, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		hub:    hub.New(cfg.HubBuffer, logger),
		tokens: jwt.NewService(cfg.JWTSecret, cfg.TokenTTL, cfg.MaxTokenTTL),
	}
	s.handler = s.routes()

	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub returns the change feed broadcaster
func (s *Server) Hub() *hub.Hub {
	return s.hub
}

func (s *Server) newLimiter(rate int) *middleware.RateLimiter {
	l := middleware.NewRateLimiter(rate, s.cfg.RateWindow, s.logger)
	s.limiters = append(s.limiters, l)
	return l
}

func (s *Server) routes() http.Handler {
	health := handlers.NewHealthHandler(s.logger, s.cfg.Version, s.hub)
	sessions := handlers.NewSessionHandler(s.logger, s.store, s.hub, s.tokens)
	transcripts := handlers.NewTranscriptHandler(s.logger, s.store, s.store)
	feed := handlers.NewFeedHandler(s.logger, s.hub, s.cfg.PingInterval)

	coachAuth := middleware.CoachAuthMiddleware(s.logger, []byte(s.cfg.CoachKeyHash))
	coachLimit := middleware.RateLimitMiddleware(s.newLimiter(s.cfg.CoachRateLimit), middleware.ClientIP, s.logger)
	spectatorLimit := middleware.RateLimitMiddleware(s.newLimiter(s.cfg.SpectatorRateLimit), middleware.ClientIP, s.logger)
	feedLimit := middleware.RateLimitMiddleware(s.newLimiter(s.cfg.FeedRateLimit), feedKey, s.logger)

	spectator := func(scope middleware.ScopeFunc, h http.HandlerFunc) http.Handler {
		return spectatorLimit(middleware.SpectatorAuthMiddleware(s.logger, s.tokens, s.store, scope)(h))
	}
	coach := func(h http.HandlerFunc) http.Handler {
		return coachLimit(coachAuth(h))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", health.Health)

	// Зритель: снимок, change feed, транскрипт
	mux.Handle("GET /api/v1/sessions/{id}", spectator(middleware.PathSessionScope("id"), sessions.Get))
	// Лимит подключений считается после авторизации: чужие запросы без
	// токена не расходуют бюджет зрителей сессии.
	mux.Handle("GET /api/v1/realtime", spectator(middleware.TopicSessionScope, feedLimit(http.HandlerFunc(feed.Serve)).ServeHTTP))
	mux.Handle("GET /api/v1/calls/{callID}/transcription", spectator(nil, transcripts.Get))

	// Коуч
	mux.Handle("POST /api/v1/sessions", coach(sessions.Create))
	mux.Handle("PATCH /api/v1/sessions/{id}", coach(sessions.Update))
	mux.Handle("POST /api/v1/sessions/{id}/end", coach(sessions.End))
	mux.Handle("POST /api/v1/sessions/{id}/tokens", coach(sessions.IssueToken))
	mux.Handle("PUT /api/v1/calls/{callID}/transcription", coach(transcripts.Save))

	logging := middleware.LoggingWithSkip(s.logger, []string{"/api/v1/health"})
	return middleware.RecoveryMiddleware(s.logger)(logging(mux))
}

// feedKey ограничивает переподключения одного зрителя (jti токена) к топику.
// Вызывается только после SpectatorAuthMiddleware.
func feedKey(r *http.Request) string {
	tokenID, _ := handlers.GetTokenID(r.Context())
	return r.URL.Query().Get("topic") + "/" + tokenID
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
// Feed connections are hijacked and not tracked by http.Server, so the hub is
// closed on shutdown to end them.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer.RegisterOnShutdown(s.hub.Close)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Server listening", "addr", s.cfg.Addr, "version", s.cfg.Version)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server", "timeout", s.cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.maintenance(gctx)
		return nil
	})

	err := g.Wait()
	s.hub.Close()
	if err != nil {
		return err
	}

	s.logger.Info("Server stopped")
	return nil
}

// CleanupExpiredTokens удаляет истекшие токены зрителей из реестра
func (s *Server) CleanupExpiredTokens(ctx context.Context) (int, error) {
	n, err := s.store.DeleteExpiredTokens(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	if n > 0 {
		s.logger.Info("Expired spectator tokens removed", "count", n)
	}
	return n, nil
}

// PruneLimiters удаляет закончившиеся окна rate limit
func (s *Server) PruneLimiters() int {
	removed := 0
	for _, l := range s.limiters {
		removed += l.Prune()
	}
	return removed
}

// maintenance чистит реестр токенов и окна rate limit до отмены ctx
func (s *Server) maintenance(ctx context.Context) {
	prune := time.NewTicker(s.cfg.RateWindow)
	defer prune.Stop()

	var cleanup <-chan time.Time
	if s.cfg.CleanupInterval > 0 {
		ticker := time.NewTicker(s.cfg.CleanupInterval)
		defer ticker.Stop()
		cleanup = ticker.C
	}

	for {
		select {
		case <-cleanup:
			if _, err := s.CleanupExpiredTokens(ctx); err != nil {
				s.logger.Warn("Token cleanup failed", "error", err)
			}
		case <-prune.C:
			if n := s.PruneLimiters(); n > 0 {
				s.logger.Debug("Rate limit windows pruned", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close ends open feeds of a server that was never Run
func (s *Server) Close() {
	s.hub.Close()
}
