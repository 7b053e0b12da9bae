package livesync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/iudanet/coachsync/internal/models"
)

// Wire names of the session row columns.
const (
	fieldWordIndex        = "current_word_index"
	fieldParagraphIndex   = "current_paragraph_index"
	fieldViewMode         = "view_mode"
	fieldHighlightTurnOne = "highlight_turn_one"
	fieldHighlightSpeaker = "highlight_speakers"
	fieldSessionMode      = "session_mode"
	fieldIsActive         = "is_active"

	// RejectedRecord is reported alone when the update is not a JSON object.
	RejectedRecord = "record"
)

// ApplyUpdate merges an untrusted record into prev. Every field is validated
// on its own: a field that is present but malformed keeps its previous value
// and is reported in rejected. Absent fields are left unchanged silently.
// A record that is not a JSON object changes nothing.
func ApplyUpdate(prev models.SyncState, record []byte) (next models.SyncState, rejected []string) {
	next = prev

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(record, &fields); err != nil {
		return prev, []string{RejectedRecord}
	}

	if raw, ok := fields[fieldWordIndex]; ok {
		if v, ok := decodeIndex(raw); ok {
			next.CurrentWordIndex = v
		} else {
			rejected = append(rejected, fieldWordIndex)
		}
	}

	if raw, ok := fields[fieldParagraphIndex]; ok {
		if v, ok := decodeIndex(raw); ok {
			next.CurrentParagraphIndex = v
		} else {
			rejected = append(rejected, fieldParagraphIndex)
		}
	}

	if raw, ok := fields[fieldViewMode]; ok {
		if v, ok := decodeString(raw); ok && models.ViewMode(v).Valid() {
			next.ViewMode = models.ViewMode(v)
		} else {
			rejected = append(rejected, fieldViewMode)
		}
	}

	if raw, ok := fields[fieldSessionMode]; ok {
		if v, ok := decodeString(raw); ok && models.SessionMode(v).Valid() {
			next.SessionMode = models.SessionMode(v)
		} else {
			rejected = append(rejected, fieldSessionMode)
		}
	}

	if raw, ok := fields[fieldHighlightTurnOne]; ok {
		if v, ok := decodeBool(raw); ok {
			next.HighlightTurnOne = v
		} else {
			rejected = append(rejected, fieldHighlightTurnOne)
		}
	}

	if raw, ok := fields[fieldHighlightSpeaker]; ok {
		if v, ok := decodeBool(raw); ok {
			next.HighlightSpeakers = v
		} else {
			rejected = append(rejected, fieldHighlightSpeaker)
		}
	}

	return next, rejected
}

// DecodeSnapshot builds a state from a snapshot row, defaulting per field.
// A row explicitly marked inactive is reported as ErrSessionNotFound.
func DecodeSnapshot(record []byte) (models.SyncState, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(record, &fields); err != nil || fields == nil {
		return models.SyncState{}, fmt.Errorf("%w: malformed snapshot row", ErrSessionInaccessible)
	}

	if raw, ok := fields[fieldIsActive]; ok {
		if active, ok := decodeBool(raw); ok && !active {
			return models.SyncState{}, fmt.Errorf("%w: session is inactive", ErrSessionNotFound)
		}
	}

	state, _ := ApplyUpdate(models.DefaultSyncState(), record)
	return state, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeIndex accepts a JSON number that is integral, non-negative and fits int32.
func decodeIndex(raw json.RawMessage) (int, bool) {
	if isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f < 0 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func decodeString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodeBool(raw json.RawMessage) (bool, bool) {
	if isNull(raw) {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}
