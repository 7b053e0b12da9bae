package livesync

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate moq -out provider_mock.go . ChannelProvider Subscription

// ChannelStatus is a lifecycle signal of a change-feed channel.
type ChannelStatus int

const (
	StatusSubscribed ChannelStatus = iota
	StatusChannelError
	StatusTimedOut
	StatusClosed
)

func (s ChannelStatus) String() string {
	switch s {
	case StatusSubscribed:
		return "SUBSCRIBED"
	case StatusChannelError:
		return "CHANNEL_ERROR"
	case StatusTimedOut:
		return "TIMED_OUT"
	case StatusClosed:
		return "CLOSED"
	}
	return "UNKNOWN"
}

// FeedHandler receives the callbacks of one subscription. Both functions may
// be called from a goroutine owned by the provider.
type FeedHandler struct {
	// OnUpdate receives the new record of the session row, as sent on the wire
	OnUpdate func(record json.RawMessage)
	// OnStatus receives channel lifecycle changes; err may be nil
	OnStatus func(status ChannelStatus, err error)
}

// ChannelProvider is the transport capability the sync client depends on.
// It is constructed once per process and injected.
type ChannelProvider interface {
	// FetchRow reads the session row filtered by id AND is_active.
	// Returns an error wrapping ErrSessionNotFound if the row is absent or inactive.
	FetchRow(ctx context.Context, sessionID string) (json.RawMessage, error)

	// Subscribe opens a channel on topic and delivers update events for the row.
	// Status changes, including StatusSubscribed, arrive through h.OnStatus.
	Subscribe(ctx context.Context, topic string, h FeedHandler) (Subscription, error)
}

// Subscription is an open change-feed channel.
type Subscription interface {
	// Unsubscribe closes the channel. Calling it more than once is a no-op.
	Unsubscribe() error
}

// Timer is a pending scheduled call.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so that retry timers can be driven in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Recorder persists every applied state, e.g. for offline status display.
type Recorder interface {
	RecordSyncState(ctx context.Context, sessionID string, state SyncRecord) error
}
