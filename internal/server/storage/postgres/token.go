package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/storage"
)

// SaveToken records an issued spectator token
func (s *Storage) SaveToken(ctx context.Context, token *models.SpectatorToken) error {
	query := `
		INSERT INTO spectator_tokens (id, session_id, subject, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET session_id = EXCLUDED.session_id, subject = EXCLUDED.subject,
		    expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at
	`

	_, err := s.pool.Exec(ctx, query,
		token.ID,
		token.SessionID,
		token.Subject,
		token.ExpiresAt,
		token.CreatedAt,
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
		WHERE id = $1
	`

	token := &models.SpectatorToken{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&token.ID,
		&token.SessionID,
		&token.Subject,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	token.ExpiresAt = token.ExpiresAt.UTC()
	token.CreatedAt = token.CreatedAt.UTC()

	return token, nil
}

// DeleteSessionTokens revokes every token of a session
func (s *Storage) DeleteSessionTokens(ctx context.Context, sessionID string) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM spectator_tokens WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete session tokens: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteExpiredTokens removes all expired tokens
func (s *Storage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM spectator_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
