package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/coachsync/internal/client/livesync"
	"github.com/iudanet/coachsync/internal/client/storage"
)

var keyLastSessionID = []byte("last_session_id")

// RecordSyncState saves the last applied state of a session and marks the
// session as the most recently watched one.
func (s *Storage) RecordSyncState(ctx context.Context, sessionID string, rec livesync.SyncRecord) error {
	return s.update(func(tx *bbolt.Tx) error {
		if err := putJSON(tx, bucketSyncState, []byte(sessionID), "sync state", rec); err != nil {
			return err
		}
		meta, err := bucketOf(tx, bucketMetadata)
		if err != nil {
			return err
		}
		if err := meta.Put(keyLastSessionID, []byte(sessionID)); err != nil {
			return fmt.Errorf("failed to save last session id: %w", err)
		}
		return nil
	})
}

func (s *Storage) GetSyncState(ctx context.Context, sessionID string) (*livesync.SyncRecord, error) {
	rec := &livesync.SyncRecord{}
	err := s.view(func(tx *bbolt.Tx) error {
		return getJSON(tx, bucketSyncState, []byte(sessionID), "sync state", storage.ErrSyncStateNotFound, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetLastSessionID returns the session recorded most recently
func (s *Storage) GetLastSessionID(ctx context.Context) (string, error) {
	var id string
	err := s.view(func(tx *bbolt.Tx) error {
		meta, err := bucketOf(tx, bucketMetadata)
		if err != nil {
			return err
		}
		v := meta.Get(keyLastSessionID)
		if v == nil {
			return storage.ErrSyncStateNotFound
		}
		id = string(v)
		return nil
	})
	return id, err
}
