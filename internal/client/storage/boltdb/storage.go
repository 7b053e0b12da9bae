package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/coachsync/internal/client/storage"
)

var (
	bucketAuth        = []byte("auth")
	bucketTranscripts = []byte("transcripts")
	bucketSyncState   = []byte("sync_state")
	bucketMetadata    = []byte("metadata")

	allBuckets = [][]byte{bucketAuth, bucketTranscripts, bucketSyncState, bucketMetadata}
)

var (
	_ storage.AuthStorage      = (*Storage)(nil)
	_ storage.TranscriptCache  = (*Storage)(nil)
	_ storage.SyncStateStorage = (*Storage)(nil)
)

// Storage хранит на клиенте доступ зрителя, кеш транскриптов и последнее
// примененное состояние синхронизации. Методы принимают ctx ради
// интерфейсов storage, bbolt его не использует.
type Storage struct {
	db *bbolt.DB
}

// New открывает (или создает) файл базы и все buckets.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}
	if err := s.update(createBuckets); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}
	return s, nil
}

// Close закрывает базу. Повторный вызов безопасен.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func createBuckets(tx *bbolt.Tx) error {
	for _, name := range allBuckets {
		if _, err := tx.CreateBucketIfNotExists(name); err != nil {
			return fmt.Errorf("failed to create %s bucket: %w", name, err)
		}
	}
	return nil
}

func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(fn)
}

func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.View(fn)
}

func bucketOf(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	b := tx.Bucket(name)
	if b == nil {
		return nil, fmt.Errorf("%s bucket not found", name)
	}
	return b, nil
}

// putJSON сериализует v и кладет под key. what попадает в текст ошибки.
func putJSON(tx *bbolt.Tx, bucket, key []byte, what string, v any) error {
	b, err := bucketOf(tx, bucket)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	if err := b.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", what, err)
	}
	return nil
}

// getJSON читает значение под key в v или возвращает notFound.
// Байты bbolt валидны только внутри транзакции, Unmarshal их копирует.
func getJSON(tx *bbolt.Tx, bucket, key []byte, what string, notFound error, v any) error {
	b, err := bucketOf(tx, bucket)
	if err != nil {
		return err
	}
	data := b.Get(key)
	if data == nil {
		return notFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", what, err)
	}
	return nil
}
