package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// SessionIDPattern определяет допустимый формат идентификатора сессии
// Латинские буквы, цифры, дефис и нижнее подчеркивание. UUID подходит.
// Длина: 3-64 символа
var SessionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

const (
	// MinSessionIDLen минимальная длина идентификатора сессии
	MinSessionIDLen = 3
	// MaxSessionIDLen максимальная длина идентификатора сессии
	MaxSessionIDLen = 64

	// TopicPrefix префикс ключа канала change feed
	TopicPrefix = "shared_evaluation_"
)

// ValidateSessionID проверяет, что идентификатор сессии соответствует требованиям.
// Идентификатор попадает в ключ канала и в URL, поэтому набор символов ограничен.
func ValidateSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("session id cannot be empty")
	}

	if len(id) < MinSessionIDLen {
		return fmt.Errorf("session id must be at least %d characters long", MinSessionIDLen)
	}

	if len(id) > MaxSessionIDLen {
		return fmt.Errorf("session id must not exceed %d characters", MaxSessionIDLen)
	}

	if !SessionIDPattern.MatchString(id) {
		return fmt.Errorf("session id can only contain letters, numbers, hyphens and underscores")
	}

	return nil
}

// ValidateCallID проверяет идентификатор звонка
func ValidateCallID(callID int64) error {
	if callID <= 0 {
		return fmt.Errorf("call id must be positive, got %d", callID)
	}
	return nil
}

// Topic возвращает ключ канала change feed для сессии
func Topic(sessionID string) string {
	return TopicPrefix + sessionID
}

// SessionIDFromTopic извлекает идентификатор сессии из ключа канала
func SessionIDFromTopic(topic string) (string, error) {
	id, ok := strings.CutPrefix(topic, TopicPrefix)
	if !ok {
		return "", fmt.Errorf("topic must start with %q", TopicPrefix)
	}
	if err := ValidateSessionID(id); err != nil {
		return "", err
	}
	return id, nil
}
