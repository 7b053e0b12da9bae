package livesync

import "time"

const (
	// DefaultBaseDelay задержка перед первой попыткой переподключения
	DefaultBaseDelay = 1000 * time.Millisecond
	// DefaultMaxDelay верхняя граница задержки
	DefaultMaxDelay = 30000 * time.Millisecond
	// DefaultMaxAttempts потолок попыток, после которого ошибка становится терминальной
	DefaultMaxAttempts = 8
	// DefaultConnectTimeout watchdog для подписки, застрявшей в Connecting
	DefaultConnectTimeout = 10 * time.Second
)

// Backoff returns min(1000ms * 2^attempt, 30000ms) for a 0-indexed attempt.
func Backoff(attempt int) time.Duration {
	return backoff(DefaultBaseDelay, DefaultMaxDelay, attempt)
}

func backoff(base, limit time.Duration, attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := base
	for i := 0; i < attempt; i++ {
		if d >= limit {
			return limit
		}
		d *= 2
	}
	return min(d, limit)
}

// Config управляет политикой переподключения
type Config struct {
	BaseDelay      time.Duration // BaseDelay задержка для attempt=0
	MaxDelay       time.Duration // MaxDelay ограничение сверху для задержки
	MaxAttempts    int           // MaxAttempts потолок неудачных переподключений
	ConnectTimeout time.Duration // ConnectTimeout 0 = без watchdog
	// RetryNotFound включает повтор для ErrSessionNotFound.
	// По умолчанию удаленная или завершенная сессия не тратит попытки.
	RetryNotFound bool
}

// DefaultConfig returns the production reconnect policy.
func DefaultConfig() Config {
	return Config{
		BaseDelay:      DefaultBaseDelay,
		MaxDelay:       DefaultMaxDelay,
		MaxAttempts:    DefaultMaxAttempts,
		ConnectTimeout: DefaultConnectTimeout,
	}
}

// Delay returns the backoff delay for the 0-indexed attempt.
func (c Config) Delay(attempt int) time.Duration {
	return backoff(c.BaseDelay, c.MaxDelay, attempt)
}

func (c Config) withDefaults() Config {
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = DefaultMaxDelay
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.ConnectTimeout < 0 {
		c.ConnectTimeout = 0
	}
	return c
}
