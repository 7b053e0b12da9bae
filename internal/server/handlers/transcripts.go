package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/storage"
	"github.com/iudanet/coachsync/internal/validation"
	"github.com/iudanet/coachsync/pkg/api"
)

// TranscriptHandler обрабатывает запросы транскриптов звонков
type TranscriptHandler struct {
	logger      *slog.Logger
	transcripts storage.TranscriptStorage
	sessions    storage.SessionStorage
}

// NewTranscriptHandler создает новый handler для транскриптов
func NewTranscriptHandler(logger *slog.Logger, transcripts storage.TranscriptStorage, sessions storage.SessionStorage) *TranscriptHandler {
	return &TranscriptHandler{
		logger:      logger,
		transcripts: transcripts,
		sessions:    sessions,
	}
}

// Get обрабатывает GET /api/v1/calls/{callID}/transcription
// Зритель может читать только транскрипт звонка своей сессии
func (h *TranscriptHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callID, err := parseCallID(r)
	if err != nil {
		h.sendFailure(w, err.Error(), http.StatusBadRequest)
		return
	}

	if sessionID, ok := GetSessionID(ctx); ok {
		row, err := h.sessions.GetSession(ctx, sessionID)
		if err != nil {
			if errors.Is(err, storage.ErrSessionNotFound) {
				h.sendFailure(w, "session not found", http.StatusForbidden)
				return
			}
			h.logger.ErrorContext(ctx, "failed to get session", slog.Any("error", err))
			h.sendFailure(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if row.CallID != callID {
			h.logger.WarnContext(ctx, "transcript of foreign call requested",
				slog.String("session_id", sessionID),
				slog.Int64("call_id", callID))
			h.sendFailure(w, "call does not belong to the session", http.StatusForbidden)
			return
		}
	}

	t, err := h.transcripts.GetTranscript(ctx, callID)
	if err != nil {
		if errors.Is(err, storage.ErrTranscriptNotFound) {
			h.sendFailure(w, "transcription not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get transcript", slog.Int64("call_id", callID), slog.Any("error", err))
		h.sendFailure(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.TranscriptResponse{
		Success: true,
		Transcription: &api.Transcription{
			CallID: t.CallID,
			Words:  t.Words,
		},
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Save обрабатывает PUT /api/v1/calls/{callID}/transcription
func (h *TranscriptHandler) Save(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callID, err := parseCallID(r)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	var req api.SaveTranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode transcript request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Words) == 0 {
		sendError(h.logger, w, "words must not be empty", http.StatusBadRequest)
		return
	}

	t := &models.Transcript{CallID: callID, Words: req.Words}
	if err := h.transcripts.SaveTranscript(ctx, t); err != nil {
		h.logger.ErrorContext(ctx, "failed to save transcript", slog.Int64("call_id", callID), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "transcript saved",
		slog.Int64("call_id", callID),
		slog.Int("words", len(req.Words)))

	w.WriteHeader(http.StatusNoContent)
}

func (h *TranscriptHandler) sendFailure(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(h.logger, w, api.TranscriptResponse{Success: false, Error: message}, statusCode)
}

func parseCallID(r *http.Request) (int64, error) {
	raw := r.PathValue("callID")
	callID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid call id %q", raw)
	}
	if err := validation.ValidateCallID(callID); err != nil {
		return 0, err
	}
	return callID, nil
}
