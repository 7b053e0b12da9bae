package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/storage"
)

const sessionColumns = `
	id, call_id, current_word_index, current_paragraph_index,
	view_mode, highlight_turn_one, highlight_speakers, session_mode,
	is_active, created_at, updated_at`

// CreateSession inserts a new session row
func (s *Storage) CreateSession(ctx context.Context, row *models.SessionRow) error {
	query := `
		INSERT INTO shared_evaluation_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := s.pool.Exec(ctx, query,
		row.ID,
		row.CallID,
		row.CurrentWordIndex,
		row.CurrentParagraphIndex,
		string(row.ViewMode),
		row.HighlightTurnOne,
		row.HighlightSpeakers,
		string(row.SessionMode),
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrSessionAlreadyExists
	}

	return nil
}

// GetSession retrieves a session row regardless of is_active
func (s *Storage) GetSession(ctx context.Context, id string) (*models.SessionRow, error) {
	query := `SELECT ` + sessionColumns + ` FROM shared_evaluation_sessions WHERE id = $1`
	return scanSession(s.pool.QueryRow(ctx, query, id))
}

// GetActiveSession retrieves a row filtered by id AND is_active
func (s *Storage) GetActiveSession(ctx context.Context, id string) (*models.SessionRow, error) {
	query := `SELECT ` + sessionColumns + ` FROM shared_evaluation_sessions WHERE id = $1 AND is_active`
	return scanSession(s.pool.QueryRow(ctx, query, id))
}

// UpdateSession overwrites the mutable fields of an existing row
func (s *Storage) UpdateSession(ctx context.Context, row *models.SessionRow) error {
	query := `
		UPDATE shared_evaluation_sessions
		SET current_word_index = $1, current_paragraph_index = $2,
		    view_mode = $3, highlight_turn_one = $4, highlight_speakers = $5,
		    session_mode = $6, is_active = $7, updated_at = $8
		WHERE id = $9
	`

	tag, err := s.pool.Exec(ctx, query,
		row.CurrentWordIndex,
		row.CurrentParagraphIndex,
		string(row.ViewMode),
		row.HighlightTurnOne,
		row.HighlightSpeakers,
		string(row.SessionMode),
		row.IsActive,
		row.UpdatedAt,
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrSessionNotFound
	}

	return nil
}

func scanSession(r pgx.Row) (*models.SessionRow, error) {
	row := &models.SessionRow{}
	var viewMode, sessionMode string

	err := r.Scan(
		&row.ID,
		&row.CallID,
		&row.CurrentWordIndex,
		&row.CurrentParagraphIndex,
		&viewMode,
		&row.HighlightTurnOne,
		&row.HighlightSpeakers,
		&sessionMode,
		&row.IsActive,
		&row.CreatedAt,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	row.ViewMode = models.ViewMode(viewMode)
	row.SessionMode = models.SessionMode(sessionMode)
	row.CreatedAt = row.CreatedAt.UTC()
	row.UpdatedAt = row.UpdatedAt.UTC()

	return row, nil
}
