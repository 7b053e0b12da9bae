package boltdb

import (
	"context"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/coachsync/internal/client/storage"
)

// Доступ хранится в единственном экземпляре, login его заменяет.
var authKey = []byte("current")

func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	return s.update(func(tx *bbolt.Tx) error {
		return putJSON(tx, bucketAuth, authKey, "auth data", auth)
	})
}

func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	auth := &storage.AuthData{}
	err := s.view(func(tx *bbolt.Tx) error {
		return getJSON(tx, bucketAuth, authKey, "auth data", storage.ErrAuthNotFound, auth)
	})
	if err != nil {
		return nil, err
	}
	return auth, nil
}

// DeleteAuth возвращает ErrAuthNotFound, если удалять нечего.
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucketOf(tx, bucketAuth)
		if err != nil {
			return err
		}
		if b.Get(authKey) == nil {
			return storage.ErrAuthNotFound
		}
		if err := b.Delete(authKey); err != nil {
			return fmt.Errorf("failed to delete auth data: %w", err)
		}
		return nil
	})
}

// IsAuthenticated: токен сохранен и срок его действия не истек.
func (s *Storage) IsAuthenticated(ctx context.Context) (bool, error) {
	auth, err := s.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return auth.AccessToken != "" && !auth.Expired(), nil
}
