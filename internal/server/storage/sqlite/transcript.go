package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/storage"
)

// SaveTranscript stores or replaces the transcript of a call.
// Words are kept as a JSON array, the transcript is read and written whole.
func (s *Storage) SaveTranscript(ctx context.Context, t *models.Transcript) error {
	words, err := json.Marshal(t.Words)
	if err != nil {
		return fmt.Errorf("failed to marshal words: %w", err)
	}

	query := `
		INSERT INTO call_transcriptions (call_id, words, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(call_id) DO UPDATE SET words = excluded.words, updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, t.CallID, string(words), time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	return nil
}

// GetTranscript retrieves the transcript of a call
func (s *Storage) GetTranscript(ctx context.Context, callID int64) (*models.Transcript, error) {
	var words string

	err := s.db.QueryRowContext(ctx, `SELECT words FROM call_transcriptions WHERE call_id = ?`, callID).Scan(&words)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}

	t := &models.Transcript{CallID: callID}
	if err := json.Unmarshal([]byte(words), &t.Words); err != nil {
		return nil, fmt.Errorf("failed to unmarshal words: %w", err)
	}

	return t, nil
}
