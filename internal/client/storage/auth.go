package storage

import (
	"context"
	"time"
)

// AuthStorage defines interface for storing spectator credentials on client.
// One set of credentials is kept at a time; login replaces it.
type AuthStorage interface {
	// SaveAuth stores credentials, replacing the previous ones
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored credentials
	// Returns ErrAuthNotFound if nothing was saved
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored credentials (logout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated checks if a token exists and has not expired
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents the credentials used to reach a coaching session.
// AccessToken is a spectator JWT scoped to SessionID. CoachKey is only set on
// the coach's machine.
type AuthData struct {
	ServerURL   string `json:"server_url"`
	SessionID   string `json:"session_id"`
	AccessToken string `json:"access_token"`
	CoachKey    string `json:"coach_key,omitempty"`
	ExpiresAt   int64  `json:"expires_at"` // unix seconds, 0 = no expiry
}

// Expired reports whether the token lifetime is over. ExpiresAt == 0 never expires.
func (a *AuthData) Expired() bool {
	return a.ExpiresAt != 0 && time.Now().Unix() >= a.ExpiresAt
}
