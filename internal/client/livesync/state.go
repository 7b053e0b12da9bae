package livesync

import (
	"time"

	"github.com/iudanet/coachsync/internal/models"
)

// Phase is the lifecycle of the sync client. It replaces separate
// connected/error/cleanup flags with a single value owned by Session.
type Phase int

const (
	PhaseDisconnected Phase = iota
	PhaseConnecting
	PhaseSubscribed
	// PhaseError is published only for terminal errors; a retryable error goes
	// straight to PhaseReconnecting.
	PhaseError
	PhaseReconnecting
)

func (p Phase) String() string {
	switch p {
	case PhaseDisconnected:
		return "disconnected"
	case PhaseConnecting:
		return "connecting"
	case PhaseSubscribed:
		return "subscribed"
	case PhaseError:
		return "error"
	case PhaseReconnecting:
		return "reconnecting"
	}
	return "unknown"
}

// View is what a consumer sees: the synchronized state plus connection status.
type View struct {
	LastSyncTime time.Time // zero until the first valid snapshot or update
	// Err is the last connection-domain error with its cause, nil when healthy
	Err error
	// ConnectionError is the taxonomy message of Err, "" when healthy
	ConnectionError string
	models.SyncState
	Phase             Phase
	ReconnectAttempts int
	IsConnected       bool
}

// SyncRecord is a persisted state applied at a point in time.
type SyncRecord struct {
	SyncedAt time.Time        `json:"synced_at"`
	State    models.SyncState `json:"state"`
}

func connectionMessage(err error) string {
	if err == nil {
		return ""
	}
	if kind := Kind(err); kind != nil {
		return kind.Error()
	}
	return ErrConnection.Error()
}
