package storage

import "errors"

// Common storage errors
var (
	// ErrSessionNotFound indicates that the session row does not exist,
	// or is inactive when an active row was requested
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionAlreadyExists indicates a duplicate session id
	ErrSessionAlreadyExists = errors.New("session already exists")

	// ErrTranscriptNotFound indicates that the call has no stored transcript
	ErrTranscriptNotFound = errors.New("transcript not found")

	// ErrTokenNotFound indicates that the spectator token was never issued or was revoked
	ErrTokenNotFound = errors.New("token not found")
)
