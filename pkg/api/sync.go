package api

import (
	"encoding/json"
	"time"

	"github.com/iudanet/coachsync/internal/models"
)

// Feed frame types
const (
	FeedTypeStatus = "status"
	FeedTypeUpdate = "update"
	FeedTypeError  = "error"
)

// Feed channel statuses
const (
	FeedStatusSubscribed   = "SUBSCRIBED"
	FeedStatusChannelError = "CHANNEL_ERROR"
	FeedStatusTimedOut     = "TIMED_OUT"
	FeedStatusClosed       = "CLOSED"
)

// FeedMessage представляет один кадр change feed (websocket, сервер -> клиент)
type FeedMessage struct {
	Type    string          `json:"type"`              // status | update | error
	Topic   string          `json:"topic,omitempty"`   // shared_evaluation_{sessionId}
	Status  string          `json:"status,omitempty"`  // для type=status
	Message string          `json:"message,omitempty"` // для type=error
	Record  json.RawMessage `json:"record,omitempty"`  // новая версия строки сессии (type=update)
}

// SessionRow представляет строку сессии на проводе
type SessionRow struct {
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	ID                    string    `json:"id"`
	ViewMode              string    `json:"view_mode"`
	SessionMode           string    `json:"session_mode"`
	CallID                int64     `json:"call_id"`
	CurrentWordIndex      int       `json:"current_word_index"`
	CurrentParagraphIndex int       `json:"current_paragraph_index"`
	HighlightTurnOne      bool      `json:"highlight_turn_one"`
	HighlightSpeakers     bool      `json:"highlight_speakers"`
	IsActive              bool      `json:"is_active"`
}

// CreateSessionRequest представляет запрос коуча на создание сессии
type CreateSessionRequest struct {
	ViewMode    string `json:"view_mode,omitempty"`
	SessionMode string `json:"session_mode,omitempty"`
	CallID      int64  `json:"call_id"`
}

// UpdateSessionRequest представляет частичное обновление сессии коучем.
// nil поля не изменяются.
type UpdateSessionRequest struct {
	CurrentWordIndex      *int    `json:"current_word_index,omitempty"`
	CurrentParagraphIndex *int    `json:"current_paragraph_index,omitempty"`
	ViewMode              *string `json:"view_mode,omitempty"`
	SessionMode           *string `json:"session_mode,omitempty"`
	HighlightTurnOne      *bool   `json:"highlight_turn_one,omitempty"`
	HighlightSpeakers     *bool   `json:"highlight_speakers,omitempty"`
}

// Transcription представляет содержимое транскрипта на проводе
type Transcription struct {
	Words  []models.Word `json:"words"`
	CallID int64         `json:"call_id"`
}

// TranscriptResponse представляет ответ endpoint'а транскрипта
type TranscriptResponse struct {
	Transcription *Transcription `json:"transcription,omitempty"`
	Error         string         `json:"error,omitempty"`
	Success       bool           `json:"success"`
}

// SaveTranscriptRequest представляет запрос на сохранение транскрипта звонка
type SaveTranscriptRequest struct {
	Words []models.Word `json:"words"`
}

// FromSessionRow конвертирует модель в wire формат
func FromSessionRow(row *models.SessionRow) SessionRow {
	return SessionRow{
		ID:                    row.ID,
		CallID:                row.CallID,
		CurrentWordIndex:      row.CurrentWordIndex,
		CurrentParagraphIndex: row.CurrentParagraphIndex,
		ViewMode:              string(row.ViewMode),
		SessionMode:           string(row.SessionMode),
		HighlightTurnOne:      row.HighlightTurnOne,
		HighlightSpeakers:     row.HighlightSpeakers,
		IsActive:              row.IsActive,
		CreatedAt:             row.CreatedAt,
		UpdatedAt:             row.UpdatedAt,
	}
}
