package livesync

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: -1, want: 1 * time.Second},
		{attempt: 0, want: 1 * time.Second},
		{attempt: 1, want: 2 * time.Second},
		{attempt: 2, want: 4 * time.Second},
		{attempt: 3, want: 8 * time.Second},
		{attempt: 4, want: 16 * time.Second},
		{attempt: 5, want: 30 * time.Second},
		{attempt: 6, want: 30 * time.Second},
		{attempt: 7, want: 30 * time.Second},
		{attempt: 1000, want: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			assert.Equal(t, tt.want, Backoff(tt.attempt))
		})
	}
}

func TestBackoff_Monotonic(t *testing.T) {
	prev := time.Duration(0)
	for k := 0; k < 64; k++ {
		d := Backoff(k)
		assert.GreaterOrEqual(t, d, prev, "attempt %d", k)
		assert.LessOrEqual(t, d, DefaultMaxDelay, "attempt %d", k)
		prev = d
	}
}

func TestConfig_Delay(t *testing.T) {
	cfg := Config{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}

	assert.Equal(t, 100*time.Millisecond, cfg.Delay(0))
	assert.Equal(t, 800*time.Millisecond, cfg.Delay(3))
	assert.Equal(t, time.Second, cfg.Delay(4))
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{ConnectTimeout: -time.Second}.withDefaults()

	assert.Equal(t, DefaultBaseDelay, cfg.BaseDelay)
	assert.Equal(t, DefaultMaxDelay, cfg.MaxDelay)
	assert.Equal(t, DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, time.Duration(0), cfg.ConnectTimeout)
	assert.False(t, cfg.RetryNotFound)

	def := DefaultConfig()
	assert.Equal(t, def, def.withDefaults())
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want error
		name string
	}{
		{name: "nil", err: nil, want: nil},
		{name: "plain", err: errors.New("boom"), want: nil},
		{name: "not found", err: fmt.Errorf("%w: gone", ErrSessionNotFound), want: ErrSessionNotFound},
		{name: "timeout", err: ErrTimeout, want: ErrTimeout},
		{
			name: "max reconnect wins over cause",
			err:  fmt.Errorf("%w: %w", ErrMaxReconnectExceeded, ErrConnection),
			want: ErrMaxReconnectExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(ErrConnection, false))
	assert.True(t, retryable(ErrTimeout, false))
	assert.True(t, retryable(ErrSessionInaccessible, false))
	assert.False(t, retryable(ErrSessionNotFound, false))
	assert.True(t, retryable(ErrSessionNotFound, true))
	assert.False(t, retryable(ErrMaxReconnectExceeded, true))
	assert.False(t, retryable(errors.New("unknown"), true))
}

func TestConnectionMessage(t *testing.T) {
	assert.Equal(t, "", connectionMessage(nil))
	assert.Equal(t, "connection timed out", connectionMessage(fmt.Errorf("%w: ws", ErrTimeout)))
	assert.Equal(t, "connection error", connectionMessage(errors.New("raw")))
}
