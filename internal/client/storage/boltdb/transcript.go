package boltdb

import (
	"context"
	"encoding/binary"

	"go.etcd.io/bbolt"

	"github.com/iudanet/coachsync/internal/client/storage"
	"github.com/iudanet/coachsync/internal/models"
)

// callKey: big-endian, чтобы курсор обходил звонки по возрастанию id.
func callKey(callID int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(callID))
	return key
}

// SaveTranscript stores or replaces the transcript of its call
func (s *Storage) SaveTranscript(ctx context.Context, t *models.Transcript) error {
	return s.update(func(tx *bbolt.Tx) error {
		return putJSON(tx, bucketTranscripts, callKey(t.CallID), "transcript", t)
	})
}

func (s *Storage) GetTranscript(ctx context.Context, callID int64) (*models.Transcript, error) {
	t := &models.Transcript{}
	err := s.view(func(tx *bbolt.Tx) error {
		return getJSON(tx, bucketTranscripts, callKey(callID), "transcript", storage.ErrTranscriptNotFound, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
