package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinCoachKeyLen минимальная длина ключа коуча
const MinCoachKeyLen = 8

// ErrInvalidCoachKey ключ не соответствует хешу
var ErrInvalidCoachKey = errors.New("invalid coach key")

// HashCoachKey хеширует ключ коуча через bcrypt.
// Сервер хранит только хеш, сам ключ знает коуч.
func HashCoachKey(key string, cost int) (string, error) {
	if len(key) < MinCoachKeyLen {
		return "", fmt.Errorf("coach key must be at least %d characters long", MinCoachKeyLen)
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash coach key: %w", err)
	}
	return string(hash), nil
}

// VerifyCoachKey проверяет ключ против сохраненного хеша
func VerifyCoachKey(key string, hash []byte) error {
	if key == "" {
		return fmt.Errorf("coach key cannot be empty")
	}
	if len(hash) == 0 {
		return fmt.Errorf("coach key hash cannot be empty")
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(key)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCoachKey
		}
		return fmt.Errorf("failed to verify coach key: %w", err)
	}
	return nil
}

// ValidateCoachKeyHash проверяет, что строка является bcrypt хешем
func ValidateCoachKeyHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("coach key hash is required")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("coach key hash is not a bcrypt hash: %w", err)
	}
	return nil
}
