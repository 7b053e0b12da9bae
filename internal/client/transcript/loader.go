// Package transcript loads the immutable transcript of a call. It is fully
// independent of the live session feed: neither reads nor writes its state.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/coachsync/internal/client/storage"
	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/validation"
	"github.com/iudanet/coachsync/pkg/api"
)

//go:generate moq -out source_mock.go . Source

// Source fetches transcript content from the server
type Source interface {
	GetTranscript(ctx context.Context, callID int64) (*api.TranscriptResponse, error)
}

// State is the consumer view of the loader
type State struct {
	Transcript *models.Transcript // nil until the first successful load
	Err        error
	CallID     int64
	IsLoading  bool
}

// Loader fetches transcript content by call id. Content is replaced wholesale
// on success and left untouched on failure. Responses of superseded requests
// are discarded.
type Loader struct {
	source     Source
	cache      storage.TranscriptCache
	logger     *slog.Logger
	transcript *models.Transcript
	err        error
	seq        uint64
	callID     int64
	loading    bool
	mu         sync.Mutex
}

// NewLoader creates a loader. cache may be nil.
func NewLoader(source Source, cache storage.TranscriptCache, logger *slog.Logger) *Loader {
	return &Loader{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// State returns a copy of the current state
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return State{
		Transcript: l.transcript,
		Err:        l.err,
		CallID:     l.callID,
		IsLoading:  l.loading,
	}
}

// ClearError resets the transcription error, content is kept
func (l *Loader) ClearError() {
	l.mu.Lock()
	l.err = nil
	l.mu.Unlock()
}

// SetCallID fetches the transcript when callID differs from the current one.
func (l *Loader) SetCallID(ctx context.Context, callID int64) error {
	l.mu.Lock()
	same := callID == l.callID && (l.transcript != nil || l.loading)
	l.mu.Unlock()
	if same {
		return nil
	}
	return l.Fetch(ctx, callID)
}

// Fetch loads the transcript of callID. The returned error is also stored in
// State().Err unless a newer Fetch started meanwhile.
func (l *Loader) Fetch(ctx context.Context, callID int64) error {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.callID = callID
	l.loading = true
	l.mu.Unlock()

	t, err := l.load(ctx, callID)

	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		l.logger.Debug("Discarding stale transcript response", "call_id", callID)
		return err
	}
	l.loading = false
	if err != nil {
		l.err = err
		l.mu.Unlock()
		l.logger.Warn("Failed to load transcript", "call_id", callID, "error", err)
		return err
	}
	l.transcript = t
	l.err = nil
	l.mu.Unlock()

	l.logger.Info("Transcript loaded", "call_id", callID, "words", len(t.Words))

	if l.cache != nil {
		if err := l.cache.SaveTranscript(ctx, t); err != nil {
			l.logger.Warn("Failed to cache transcript", "call_id", callID, "error", err)
		}
	}
	return nil
}

// LoadCached fills an empty loader from the cache. It reports whether a
// cached transcript was applied.
func (l *Loader) LoadCached(ctx context.Context, callID int64) (bool, error) {
	if l.cache == nil {
		return false, nil
	}
	t, err := l.cache.GetTranscript(ctx, callID)
	if err != nil {
		if errors.Is(err, storage.ErrTranscriptNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read transcript cache: %w", err)
	}
	if len(t.Words) == 0 {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.transcript != nil {
		return false, nil
	}
	l.transcript = t
	l.callID = callID
	return true, nil
}

func (l *Loader) load(ctx context.Context, callID int64) (*models.Transcript, error) {
	if err := validation.ValidateCallID(callID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	resp, err := l.source.GetTranscript(ctx, callID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch transcript for call %d: %v", ErrTranscription, callID, err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "server reported failure"
		}
		return nil, fmt.Errorf("%w: %s", ErrTranscription, msg)
	}
	if resp.Transcription == nil || len(resp.Transcription.Words) == 0 {
		return nil, ErrEmptyTranscript
	}

	words := make([]models.Word, len(resp.Transcription.Words))
	copy(words, resp.Transcription.Words)
	return &models.Transcript{CallID: callID, Words: words}, nil
}
