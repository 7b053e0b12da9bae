package livesync

import "errors"

// Connection-domain errors. ConnectionError in View is always the message of
// one of these sentinels; the wrapped cause is only logged.
var (
	// ErrSessionNotFound indicates that the session row is absent or inactive
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionInaccessible indicates a transport or permission failure on the snapshot read
	ErrSessionInaccessible = errors.New("session inaccessible")

	// ErrConnection indicates a channel-level error while subscribed
	ErrConnection = errors.New("connection error")

	// ErrTimeout indicates that the channel failed to establish or maintain itself in time
	ErrTimeout = errors.New("connection timed out")

	// ErrMaxReconnectExceeded is terminal: retries are exhausted
	ErrMaxReconnectExceeded = errors.New("max reconnect attempts exceeded")

	// ErrAlreadyStarted is returned by Start on a running session
	ErrAlreadyStarted = errors.New("session sync already started")

	// ErrClosed is returned when the session was closed while an operation was in flight
	ErrClosed = errors.New("session sync closed")
)

var taxonomy = []error{
	ErrMaxReconnectExceeded,
	ErrSessionNotFound,
	ErrSessionInaccessible,
	ErrTimeout,
	ErrConnection,
}

// Kind returns the taxonomy sentinel err wraps, or nil.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range taxonomy {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// retryable reports whether the Reconnection Controller should back off and retry.
func retryable(err error, retryNotFound bool) bool {
	switch Kind(err) {
	case ErrConnection, ErrTimeout, ErrSessionInaccessible:
		return true
	case ErrSessionNotFound:
		return retryNotFound
	}
	return false
}
