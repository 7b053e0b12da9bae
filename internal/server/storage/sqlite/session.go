package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query,
		row.ID,
		row.CallID,
		row.CurrentWordIndex,
		row.CurrentParagraphIndex,
		string(row.ViewMode),
		boolToInt(row.HighlightTurnOne),
		boolToInt(row.HighlightSpeakers),
		string(row.SessionMode),
		boolToInt(row.IsActive),
		row.CreatedAt.Unix(),
		row.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrSessionAlreadyExists
	}

	return nil
}

// GetSession retrieves a session row regardless of is_active
func (s *Storage) GetSession(ctx context.Context, id string) (*models.SessionRow, error) {
	query := `SELECT ` + sessionColumns + ` FROM shared_evaluation_sessions WHERE id = ?`
	return s.scanSession(s.db.QueryRowContext(ctx, query, id))
}

// GetActiveSession retrieves a row filtered by id AND is_active
func (s *Storage) GetActiveSession(ctx context.Context, id string) (*models.SessionRow, error) {
	query := `SELECT ` + sessionColumns + ` FROM shared_evaluation_sessions WHERE id = ? AND is_active = 1`
	return s.scanSession(s.db.QueryRowContext(ctx, query, id))
}

// UpdateSession overwrites the mutable fields of an existing row
func (s *Storage) UpdateSession(ctx context.Context, row *models.SessionRow) error {
	query := `
		UPDATE shared_evaluation_sessions
		SET current_word_index = ?, current_paragraph_index = ?,
		    view_mode = ?, highlight_turn_one = ?, highlight_speakers = ?,
		    session_mode = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		row.CurrentWordIndex,
		row.CurrentParagraphIndex,
		string(row.ViewMode),
		boolToInt(row.HighlightTurnOne),
		boolToInt(row.HighlightSpeakers),
		string(row.SessionMode),
		boolToInt(row.IsActive),
		row.UpdatedAt.Unix(),
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrSessionNotFound
	}

	return nil
}

func (s *Storage) scanSession(r *sql.Row) (*models.SessionRow, error) {
	row := &models.SessionRow{}
	var viewMode, sessionMode string
	var turnOne, speakers, active int
	var createdAt, updatedAt int64

	err := r.Scan(
		&row.ID,
		&row.CallID,
		&row.CurrentWordIndex,
		&row.CurrentParagraphIndex,
		&viewMode,
		&turnOne,
		&speakers,
		&sessionMode,
		&active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	row.ViewMode = models.ViewMode(viewMode)
	row.SessionMode = models.SessionMode(sessionMode)
	row.HighlightTurnOne = turnOne != 0
	row.HighlightSpeakers = speakers != 0
	row.IsActive = active != 0
	row.CreatedAt = time.Unix(createdAt, 0).UTC()
	row.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return row, nil
}
