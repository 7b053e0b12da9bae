package livesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/validation"
)

const updatesBuffer = 16

// Topic returns the change-feed channel key of a session.
func Topic(sessionID string) string {
	return validation.Topic(sessionID)
}

// FetchSnapshot performs a one-shot read of the session row and returns the
// validated state. Failures wrap ErrSessionNotFound or ErrSessionInaccessible.
// It is safe to call repeatedly.
func FetchSnapshot(ctx context.Context, provider ChannelProvider, sessionID string) (models.SyncState, error) {
	record, err := provider.FetchRow(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return models.SyncState{}, err
		}
		return models.SyncState{}, fmt.Errorf("%w: %v", ErrSessionInaccessible, err)
	}
	return DecodeSnapshot(record)
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock, used by tests to drive retry timers.
func WithClock(clock Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithRecorder persists every applied state.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// Session keeps a spectator's copy of one coaching session consistent with
// the coach's row: snapshot, change-feed subscription and reconnection with
// backoff. All mutable fields are guarded by mu. Every asynchronous callback
// carries the generation it was created under and is dropped once gen moved
// on (reconnect or Close).
type Session struct {
	lastSync time.Time
	ctx      context.Context
	provider ChannelProvider
	clock    Clock
	recorder Recorder
	err      error
	sub      Subscription
	retry    Timer
	watchdog Timer
	cancel   context.CancelFunc
	logger   *slog.Logger
	updates  chan View

	sessionID string
	topic     string
	state     models.SyncState
	cfg       Config
	gen       uint64
	phase     Phase
	attempts  int
	mu        sync.Mutex
}

// NewSession creates a sync client for one session id. Changing the session id
// means closing this Session and creating a new one.
func NewSession(provider ChannelProvider, sessionID string, cfg Config, logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		provider:  provider,
		sessionID: sessionID,
		topic:     Topic(sessionID),
		cfg:       cfg.withDefaults(),
		clock:     realClock{},
		logger:    logger.With("session_id", sessionID),
		updates:   make(chan View, updatesBuffer),
		state:     models.DefaultSyncState(),
		phase:     PhaseDisconnected,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionID returns the id this client is bound to.
func (s *Session) SessionID() string {
	return s.sessionID
}

// Snapshot returns the current consumer view.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Updates delivers views after every change. Delivery is best effort: when the
// consumer falls behind, the oldest pending view is dropped. The channel is
// never closed.
func (s *Session) Updates() <-chan View {
	return s.updates
}

// Start fetches the initial snapshot and, if it succeeds, opens the change
// feed. A retryable failure schedules a reconnect and is also returned.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.phase != PhaseDisconnected {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.gen++
	gen := s.gen
	s.attempts = 0
	s.err = nil
	s.setPhaseLocked(PhaseConnecting)
	s.mu.Unlock()

	s.logger.Info("Starting session sync", "topic", s.topic)
	return s.connect(gen)
}

// Retry is the manual recovery path after a terminal error. It is equivalent
// to a consumer re-mount: Close followed by Start.
func (s *Session) Retry(ctx context.Context) error {
	if err := s.Close(); err != nil {
		s.logger.Warn("Failed to close subscription before retry", "error", err)
	}
	return s.Start(ctx)
}

// Close tears the client down: pending timers are stopped, the channel is
// unsubscribed, counters are reset and every in-flight callback loses its
// ability to write state. Calling Close again is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.phase == PhaseDisconnected && s.sub == nil && s.retry == nil && s.watchdog == nil {
		s.mu.Unlock()
		return nil
	}

	s.gen++
	s.stopTimersLocked()
	sub := s.sub
	s.sub = nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.attempts = 0
	s.err = nil
	s.setPhaseLocked(PhaseDisconnected)
	s.mu.Unlock()

	s.logger.Info("Session sync closed")

	if sub != nil {
		if err := sub.Unsubscribe(); err != nil {
			return fmt.Errorf("failed to unsubscribe: %w", err)
		}
	}
	return nil
}

// connect runs snapshot + subscribe for generation gen.
func (s *Session) connect(gen uint64) error {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	state, err := FetchSnapshot(ctx, s.provider, s.sessionID)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		sub := s.failLocked(gen, err)
		s.mu.Unlock()
		s.unsubscribe(sub)
		return err
	}
	now := s.clock.Now()
	s.state = state
	s.lastSync = now
	s.err = nil
	s.notifyLocked()
	s.mu.Unlock()

	s.logger.Debug("Snapshot applied",
		"word_index", state.CurrentWordIndex,
		"paragraph_index", state.CurrentParagraphIndex,
		"view_mode", state.ViewMode,
		"session_mode", state.SessionMode)
	s.record(ctx, state, now)

	sub, err := s.provider.Subscribe(ctx, s.topic, FeedHandler{
		OnUpdate: func(record json.RawMessage) { s.handleUpdate(gen, record) },
		OnStatus: func(status ChannelStatus, err error) { s.handleStatus(gen, status, err) },
	})

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		// Закрыли или переподключились, пока открывался канал
		s.unsubscribe(sub)
		return ErrClosed
	}
	if err != nil {
		stale := s.failLocked(gen, fmt.Errorf("%w: subscribe: %v", ErrConnection, err))
		s.mu.Unlock()
		s.unsubscribe(stale)
		return err
	}
	s.sub = sub
	if s.phase == PhaseConnecting && s.cfg.ConnectTimeout > 0 {
		s.watchdog = s.clock.AfterFunc(s.cfg.ConnectTimeout, func() {
			s.handleStatus(gen, StatusTimedOut, fmt.Errorf("not subscribed after %s", s.cfg.ConnectTimeout))
		})
	}
	s.mu.Unlock()
	return nil
}

func (s *Session) handleStatus(gen uint64, status ChannelStatus, cause error) {
	s.mu.Lock()
	if gen != s.gen || s.phase == PhaseDisconnected {
		s.mu.Unlock()
		return
	}

	var stale Subscription
	switch status {
	case StatusSubscribed:
		// опоздавший SUBSCRIBED отменяет и запланированный reconnect
		s.stopTimersLocked()
		s.attempts = 0
		s.err = nil
		s.setPhaseLocked(PhaseSubscribed)
		s.mu.Unlock()
		s.logger.Info("Subscribed to change feed", "topic", s.topic)
		return
	case StatusTimedOut:
		stale = s.failLocked(gen, wrapCause(ErrTimeout, cause))
	case StatusClosed:
		stale = s.failLocked(gen, wrapCause(ErrConnection, errors.Join(errors.New("channel closed"), cause)))
	default:
		stale = s.failLocked(gen, wrapCause(ErrConnection, cause))
	}
	s.mu.Unlock()
	s.unsubscribe(stale)
}

func (s *Session) handleUpdate(gen uint64, record json.RawMessage) {
	s.mu.Lock()
	if gen != s.gen || s.phase == PhaseDisconnected {
		s.mu.Unlock()
		return
	}
	next, rejected := ApplyUpdate(s.state, record)
	if len(rejected) == 1 && rejected[0] == RejectedRecord {
		s.mu.Unlock()
		s.logger.Warn("Dropped update that is not a JSON object")
		return
	}
	now := s.clock.Now()
	s.state = next
	s.lastSync = now
	s.err = nil
	s.attempts = 0
	s.notifyLocked()
	ctx := s.ctx
	s.mu.Unlock()

	if len(rejected) > 0 {
		s.logger.Warn("Skipped malformed fields in update", "fields", rejected)
	}
	s.record(ctx, next, now)
}

// failLocked moves to Error and either schedules exactly one retry timer or
// stops for good. For terminal errors the current subscription is detached and
// returned so the caller can unsubscribe outside the lock.
func (s *Session) failLocked(gen uint64, err error) Subscription {
	if s.watchdog != nil {
		s.watchdog.Stop()
		s.watchdog = nil
	}
	if s.retry != nil {
		s.retry.Stop()
		s.retry = nil
	}

	if !retryable(err, s.cfg.RetryNotFound) {
		s.logger.Error("Session sync failed, not retrying", "error", err)
		return s.terminateLocked(err)
	}

	if s.attempts >= s.cfg.MaxAttempts {
		s.logger.Error("Reconnect attempts exhausted",
			"attempts", s.attempts,
			"last_error", err)
		return s.terminateLocked(fmt.Errorf("%w: %w", ErrMaxReconnectExceeded, err))
	}

	delay := s.cfg.Delay(s.attempts)
	// Error без публикации: потребители видят PhaseError только для
	// терминальных ошибок, здесь сразу идет Reconnecting.
	s.err = err
	s.phase = PhaseError
	s.retry = s.clock.AfterFunc(delay, func() { s.reconnect(gen) })
	s.setPhaseLocked(PhaseReconnecting)

	s.logger.Warn("Session sync error, scheduling reconnect",
		"error", err,
		"attempt", s.attempts,
		"delay_ms", delay.Milliseconds())
	return nil
}

func (s *Session) terminateLocked(err error) Subscription {
	s.gen++
	s.err = err
	sub := s.sub
	s.sub = nil
	s.setPhaseLocked(PhaseError)
	return sub
}

// reconnect fires from the retry timer: tear down, re-snapshot, resubscribe.
func (s *Session) reconnect(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.phase == PhaseDisconnected {
		s.mu.Unlock()
		return
	}
	s.retry = nil
	s.attempts++
	s.gen++
	next := s.gen
	old := s.sub
	s.sub = nil
	attempt := s.attempts
	s.setPhaseLocked(PhaseConnecting)
	s.mu.Unlock()

	s.logger.Info("Reconnecting to change feed", "attempt", attempt)
	s.unsubscribe(old)

	if err := s.connect(next); err != nil && !errors.Is(err, ErrClosed) {
		s.logger.Debug("Reconnect attempt failed", "attempt", attempt, "error", err)
	}
}

func (s *Session) unsubscribe(sub Subscription) {
	if sub == nil {
		return
	}
	if err := sub.Unsubscribe(); err != nil {
		s.logger.Warn("Failed to unsubscribe", "error", err)
	}
}

func (s *Session) record(ctx context.Context, state models.SyncState, at time.Time) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordSyncState(ctx, s.sessionID, SyncRecord{State: state, SyncedAt: at}); err != nil {
		s.logger.Warn("Failed to record sync state", "error", err)
	}
}

func (s *Session) stopTimersLocked() {
	if s.retry != nil {
		s.retry.Stop()
		s.retry = nil
	}
	if s.watchdog != nil {
		s.watchdog.Stop()
		s.watchdog = nil
	}
}

func (s *Session) setPhaseLocked(p Phase) {
	s.phase = p
	s.notifyLocked()
}

func (s *Session) viewLocked() View {
	return View{
		SyncState:         s.state,
		Phase:             s.phase,
		IsConnected:       s.phase == PhaseSubscribed,
		Err:               s.err,
		ConnectionError:   connectionMessage(s.err),
		LastSyncTime:      s.lastSync,
		ReconnectAttempts: s.attempts,
	}
}

// notifyLocked publishes the current view without blocking. Under mu, so
// views are queued in the order the state changed.
func (s *Session) notifyLocked() {
	v := s.viewLocked()
	select {
	case s.updates <- v:
		return
	default:
	}
	// Буфер полон: выбрасываем самый старый view, последний важнее
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- v:
	default:
	}
}

func wrapCause(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %v", kind, cause)
}
