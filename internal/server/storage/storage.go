package storage

import (
	"context"

	"github.com/iudanet/coachsync/internal/models"
)

//go:generate moq -out storage_mock.go . Storage

// SessionStorage defines interface for shared evaluation session persistence
type SessionStorage interface {
	// CreateSession inserts a new session row
	// Returns ErrSessionAlreadyExists if the id is taken
	CreateSession(ctx context.Context, row *models.SessionRow) error

	// GetSession retrieves a session row regardless of is_active
	// Returns ErrSessionNotFound if it doesn't exist
	GetSession(ctx context.Context, id string) (*models.SessionRow, error)

	// GetActiveSession retrieves a row filtered by id AND is_active
	// Returns ErrSessionNotFound if it doesn't exist or is inactive
	GetActiveSession(ctx context.Context, id string) (*models.SessionRow, error)

	// UpdateSession overwrites the mutable fields of an existing row
	// Returns ErrSessionNotFound if it doesn't exist
	UpdateSession(ctx context.Context, row *models.SessionRow) error
}

// TranscriptStorage defines interface for call transcript persistence
type TranscriptStorage interface {
	// SaveTranscript stores or replaces the transcript of a call
	SaveTranscript(ctx context.Context, t *models.Transcript) error

	// GetTranscript retrieves the transcript of a call
	// Returns ErrTranscriptNotFound if none is stored
	GetTranscript(ctx context.Context, callID int64) (*models.Transcript, error)
}

// TokenStorage defines interface for the ledger of issued spectator tokens
type TokenStorage interface {
	// SaveToken records an issued token
	SaveToken(ctx context.Context, token *models.SpectatorToken) error

	// GetToken retrieves a token by id (jti)
	// Returns ErrTokenNotFound if it was never issued or was revoked
	GetToken(ctx context.Context, id string) (*models.SpectatorToken, error)

	// DeleteSessionTokens revokes every token of a session
	// Returns number of revoked tokens
	DeleteSessionTokens(ctx context.Context, sessionID string) (int, error)

	// DeleteExpiredTokens removes all tokens expired before now
	// Returns number of deleted tokens
	DeleteExpiredTokens(ctx context.Context) (int, error)
}

// Storage is the full server persistence layer
type Storage interface {
	SessionStorage
	TranscriptStorage
	TokenStorage
	Close() error
}
