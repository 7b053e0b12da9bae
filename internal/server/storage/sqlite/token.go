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

// SaveToken records an issued spectator token
func (s *Storage) SaveToken(ctx context.Context, token *models.SpectatorToken) error {
	query := `
		INSERT OR REPLACE INTO spectator_tokens (id, session_id, subject, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		token.ID,
		token.SessionID,
		token.Subject,
		token.ExpiresAt.Unix(),
		token.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// GetToken retrieves a token by id
func (s *Storage) GetToken(ctx context.Context, id string) (*models.SpectatorToken, error) {
	query := `
		SELECT id, session_id, subject, expires_at, created_at
		FROM spectator_tokens
		WHERE id = ?
	`

	token := &models.SpectatorToken{}
	var expiresAt, createdAt int64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&token.ID,
		&token.SessionID,
		&token.Subject,
		&expiresAt,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	token.ExpiresAt = time.Unix(expiresAt, 0).UTC()
	token.CreatedAt = time.Unix(createdAt, 0).UTC()

	return token, nil
}

// DeleteSessionTokens revokes every token of a session
func (s *Storage) DeleteSessionTokens(ctx context.Context, sessionID string) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM spectator_tokens WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete session tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}

// DeleteExpiredTokens removes all expired tokens
func (s *Storage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM spectator_tokens WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
