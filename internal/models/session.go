package models

import "time"

// ViewMode режим отображения транскрипта у зрителя
type ViewMode string

// SessionMode режим воспроизведения live-сессии
type SessionMode string

const (
	ViewModeWord      ViewMode = "word"
	ViewModeParagraph ViewMode = "paragraph"

	SessionModeLive   SessionMode = "live"
	SessionModePaused SessionMode = "paused"
	SessionModeEnded  SessionMode = "ended"
)

// Valid reports whether m is one of the known view modes.
func (m ViewMode) Valid() bool {
	return m == ViewModeWord || m == ViewModeParagraph
}

// Valid reports whether m is one of the known session modes.
func (m SessionMode) Valid() bool {
	switch m {
	case SessionModeLive, SessionModePaused, SessionModeEnded:
		return true
	}
	return false
}

// SessionRow представляет строку shared evaluation сессии в хранилище сервера.
// Коуч является единственным писателем, зрители только читают и подписываются.
type SessionRow struct {
	CreatedAt             time.Time   `json:"created_at"`              // CreatedAt время создания сессии
	UpdatedAt             time.Time   `json:"updated_at"`              // UpdatedAt время последнего изменения строки
	ID                    string      `json:"id"`                      // ID уникальный идентификатор сессии (UUID)
	CallID                int64       `json:"call_id"`                 // CallID звонок, транскрипт которого разбирается
	ViewMode              ViewMode    `json:"view_mode"`               // ViewMode "word" | "paragraph"
	SessionMode           SessionMode `json:"session_mode"`            // SessionMode "live" | "paused" | "ended"
	CurrentWordIndex      int         `json:"current_word_index"`      // CurrentWordIndex позиция в пословном режиме
	CurrentParagraphIndex int         `json:"current_paragraph_index"` // CurrentParagraphIndex позиция в режиме абзацев
	HighlightTurnOne      bool        `json:"highlight_turn_one"`      // HighlightTurnOne подсветка реплик первого спикера
	HighlightSpeakers     bool        `json:"highlight_speakers"`      // HighlightSpeakers подсветка спикеров
	IsActive              bool        `json:"is_active"`               // IsActive false = сессия завершена или скрыта
}

// SyncState is the spectator's copy of the coach's synchronization state.
// It is replaced wholesale on every applied update.
type SyncState struct {
	ViewMode              ViewMode    `json:"view_mode"`
	SessionMode           SessionMode `json:"session_mode"`
	CurrentWordIndex      int         `json:"current_word_index"`
	CurrentParagraphIndex int         `json:"current_paragraph_index"`
	HighlightTurnOne      bool        `json:"highlight_turn_one"`
	HighlightSpeakers     bool        `json:"highlight_speakers"`
}

// DefaultSyncState returns the state used before any snapshot is applied and
// as the per-field fallback of a snapshot.
func DefaultSyncState() SyncState {
	return SyncState{
		ViewMode:    ViewModeWord,
		SessionMode: SessionModeLive,
	}
}

// SyncState extracts the synchronization fields of the row.
func (r *SessionRow) SyncState() SyncState {
	return SyncState{
		ViewMode:              r.ViewMode,
		SessionMode:           r.SessionMode,
		CurrentWordIndex:      r.CurrentWordIndex,
		CurrentParagraphIndex: r.CurrentParagraphIndex,
		HighlightTurnOne:      r.HighlightTurnOne,
		HighlightSpeakers:     r.HighlightSpeakers,
	}
}

// Clone создает копию строки сессии
func (r *SessionRow) Clone() *SessionRow {
	c := *r
	return &c
}
