package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no saved credentials exist
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrTranscriptNotFound indicates that the transcript is not cached
	ErrTranscriptNotFound = errors.New("transcript not found")

	// ErrSyncStateNotFound indicates that no state was recorded for the session
	ErrSyncStateNotFound = errors.New("sync state not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
