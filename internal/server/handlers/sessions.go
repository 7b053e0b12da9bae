package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/hub"
	"github.com/iudanet/coachsync/internal/server/jwt"
	"github.com/iudanet/coachsync/internal/server/storage"
	"github.com/iudanet/coachsync/internal/validation"
	"github.com/iudanet/coachsync/pkg/api"
)

// SessionStore объединяет хранилища, нужные обработчику сессий
type SessionStore interface {
	storage.SessionStorage
	storage.TokenStorage
}

// SessionHandler обрабатывает запросы к shared evaluation сессиям.
// Get доступен зрителю, остальные методы только коучу.
type SessionHandler struct {
	logger *slog.Logger
	store  SessionStore
	hub    *hub.Hub
	tokens *jwt.Service
}

// NewSessionHandler создает новый handler для сессий
func NewSessionHandler(logger *slog.Logger, store SessionStore, h *hub.Hub, tokens *jwt.Service) *SessionHandler {
	return &SessionHandler{
		logger: logger,
		store:  store,
		hub:    h,
		tokens: tokens,
	}
}

// Get обрабатывает GET /api/v1/sessions/{id}
// Возвращает строку активной сессии, 404 если сессии нет или она неактивна
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if err := validation.ValidateSessionID(id); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	row, err := h.store.GetActiveSession(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			h.logger.InfoContext(ctx, "session not found or inactive", slog.String("session_id", id))
			sendError(h.logger, w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get session", slog.String("session_id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.FromSessionRow(row), http.StatusOK)
}

// Create обрабатывает POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create session request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateCallID(req.CallID); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	viewMode := models.ViewModeWord
	if req.ViewMode != "" {
		viewMode = models.ViewMode(req.ViewMode)
		if !viewMode.Valid() {
			sendError(h.logger, w, fmt.Sprintf("unknown view_mode %q", req.ViewMode), http.StatusBadRequest)
			return
		}
	}

	sessionMode := models.SessionModeLive
	if req.SessionMode != "" {
		sessionMode = models.SessionMode(req.SessionMode)
		if !sessionMode.Valid() || sessionMode == models.SessionModeEnded {
			sendError(h.logger, w, fmt.Sprintf("invalid session_mode %q", req.SessionMode), http.StatusBadRequest)
			return
		}
	}

	now := time.Now().UTC().Truncate(time.Second)
	row := &models.SessionRow{
		ID:          uuid.New().String(),
		CallID:      req.CallID,
		ViewMode:    viewMode,
		SessionMode: sessionMode,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateSession(ctx, row); err != nil {
		if errors.Is(err, storage.ErrSessionAlreadyExists) {
			sendError(h.logger, w, "session already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create session", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "session created",
		slog.String("session_id", row.ID),
		slog.Int64("call_id", row.CallID))

	sendJSON(h.logger, w, api.FromSessionRow(row), http.StatusCreated)
}

// Update обрабатывает PATCH /api/v1/sessions/{id}
// Применяет частичное обновление и публикует новую версию строки в change feed
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if err := validation.ValidateSessionID(id); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	var req api.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode update session request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	row, ok := h.loadSession(w, r, id)
	if !ok {
		return
	}

	if !row.IsActive {
		sendError(h.logger, w, "session has ended", http.StatusConflict)
		return
	}

	if err := applyUpdate(row, &req); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	row.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	if !h.saveSession(w, r, row) {
		return
	}

	h.publish(r, row)
	sendJSON(h.logger, w, api.FromSessionRow(row), http.StatusOK)
}

// End обрабатывает POST /api/v1/sessions/{id}/end
// Переводит сессию в ended/inactive, отзывает токены зрителей и публикует изменение
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if err := validation.ValidateSessionID(id); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	row, ok := h.loadSession(w, r, id)
	if !ok {
		return
	}

	// Повторное завершение ничего не меняет
	if !row.IsActive {
		sendJSON(h.logger, w, api.FromSessionRow(row), http.StatusOK)
		return
	}

	row.SessionMode = models.SessionModeEnded
	row.IsActive = false
	row.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	if !h.saveSession(w, r, row) {
		return
	}

	revoked, err := h.store.DeleteSessionTokens(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to revoke session tokens", slog.String("session_id", id), slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "session ended",
		slog.String("session_id", id),
		slog.Int("tokens_revoked", revoked))

	h.publish(r, row)
	sendJSON(h.logger, w, api.FromSessionRow(row), http.StatusOK)
}

// IssueToken обрабатывает POST /api/v1/sessions/{id}/tokens
// Выпускает JWT зрителя, ограниченный этой сессией
func (h *SessionHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if err := validation.ValidateSessionID(id); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	// Тело запроса необязательно
	var req api.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(ctx, "failed to decode token request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.TTLSeconds < 0 {
		sendError(h.logger, w, "ttl_seconds must not be negative", http.StatusBadRequest)
		return
	}

	if _, err := h.store.GetActiveSession(ctx, id); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			sendError(h.logger, w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get session", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	ttl := h.tokens.TTL(time.Duration(req.TTLSeconds) * time.Second)
	token, claims, err := h.tokens.Generate(id, req.Subject, ttl)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate spectator token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	record := &models.SpectatorToken{
		ID:        claims.ID,
		SessionID: id,
		Subject:   req.Subject,
		ExpiresAt: claims.ExpiresAt.UTC(),
		CreatedAt: claims.IssuedAt.UTC(),
	}
	if err := h.store.SaveToken(ctx, record); err != nil {
		h.logger.ErrorContext(ctx, "failed to save spectator token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "spectator token issued",
		slog.String("session_id", id),
		slog.String("subject", req.Subject),
		slog.String("token_id", claims.ID))

	resp := api.TokenResponse{
		Token:     token,
		SessionID: id,
		ExpiresIn: int64(ttl.Seconds()),
	}
	sendJSON(h.logger, w, resp, http.StatusCreated)
}

func (h *SessionHandler) loadSession(w http.ResponseWriter, r *http.Request, id string) (*models.SessionRow, bool) {
	row, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			sendError(h.logger, w, "session not found", http.StatusNotFound)
			return nil, false
		}
		h.logger.ErrorContext(r.Context(), "failed to get session", slog.String("session_id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return nil, false
	}
	return row, true
}

func (h *SessionHandler) saveSession(w http.ResponseWriter, r *http.Request, row *models.SessionRow) bool {
	if err := h.store.UpdateSession(r.Context(), row); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			sendError(h.logger, w, "session not found", http.StatusNotFound)
			return false
		}
		h.logger.ErrorContext(r.Context(), "failed to update session", slog.String("session_id", row.ID), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return false
	}
	return true
}

// publish рассылает новую версию строки подписчикам топика сессии
func (h *SessionHandler) publish(r *http.Request, row *models.SessionRow) {
	record, err := json.Marshal(api.FromSessionRow(row))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to marshal feed record", slog.Any("error", err))
		return
	}

	topic := validation.Topic(row.ID)
	delivered := h.hub.Publish(topic, api.FeedMessage{
		Type:   api.FeedTypeUpdate,
		Topic:  topic,
		Record: record,
	})

	h.logger.DebugContext(r.Context(), "session update published",
		slog.String("topic", topic),
		slog.Int("subscribers", delivered))
}

// applyUpdate применяет непустые поля запроса к строке
func applyUpdate(row *models.SessionRow, req *api.UpdateSessionRequest) error {
	if req.CurrentWordIndex != nil {
		if *req.CurrentWordIndex < 0 {
			return fmt.Errorf("current_word_index must not be negative")
		}
		row.CurrentWordIndex = *req.CurrentWordIndex
	}
	if req.CurrentParagraphIndex != nil {
		if *req.CurrentParagraphIndex < 0 {
			return fmt.Errorf("current_paragraph_index must not be negative")
		}
		row.CurrentParagraphIndex = *req.CurrentParagraphIndex
	}
	if req.ViewMode != nil {
		mode := models.ViewMode(*req.ViewMode)
		if !mode.Valid() {
			return fmt.Errorf("unknown view_mode %q", *req.ViewMode)
		}
		row.ViewMode = mode
	}
	if req.SessionMode != nil {
		mode := models.SessionMode(*req.SessionMode)
		if !mode.Valid() {
			return fmt.Errorf("unknown session_mode %q", *req.SessionMode)
		}
		row.SessionMode = mode
	}
	if req.HighlightTurnOne != nil {
		row.HighlightTurnOne = *req.HighlightTurnOne
	}
	if req.HighlightSpeakers != nil {
		row.HighlightSpeakers = *req.HighlightSpeakers
	}
	return nil
}
