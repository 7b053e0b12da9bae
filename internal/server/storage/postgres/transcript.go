package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/storage"
)

// SaveTranscript stores or replaces the transcript of a call
func (s *Storage) SaveTranscript(ctx context.Context, t *models.Transcript) error {
	words, err := json.Marshal(t.Words)
	if err != nil {
		return fmt.Errorf("failed to marshal words: %w", err)
	}

	query := `
		INSERT INTO call_transcriptions (call_id, words, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (call_id) DO UPDATE SET words = EXCLUDED.words, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.pool.Exec(ctx, query, t.CallID, string(words), time.Now()); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	return nil
}

// GetTranscript retrieves the transcript of a call
func (s *Storage) GetTranscript(ctx context.Context, callID int64) (*models.Transcript, error) {
	var words []byte

	err := s.pool.QueryRow(ctx, `SELECT words FROM call_transcriptions WHERE call_id = $1`, callID).Scan(&words)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}

	t := &models.Transcript{CallID: callID}
	if err := json.Unmarshal(words, &t.Words); err != nil {
		return nil, fmt.Errorf("failed to unmarshal words: %w", err)
	}

	return t, nil
}
