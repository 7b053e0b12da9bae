package storage

import (
	"context"

	"github.com/iudanet/coachsync/internal/client/livesync"
)

// SyncStateStorage keeps the last applied state of every watched session so
// that the position can be shown offline. It satisfies livesync.Recorder.
type SyncStateStorage interface {
	livesync.Recorder

	// GetSyncState returns the last recorded state of a session
	// Returns ErrSyncStateNotFound if the session was never recorded
	GetSyncState(ctx context.Context, sessionID string) (*livesync.SyncRecord, error)

	// GetLastSessionID returns the session recorded most recently
	// Returns ErrSyncStateNotFound if nothing was recorded yet
	GetLastSessionID(ctx context.Context) (string, error)
}
