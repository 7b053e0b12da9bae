package storage

import (
	"context"

	"github.com/iudanet/coachsync/internal/models"
)

//go:generate moq -out transcriptcache_mock.go . TranscriptCache

// TranscriptCache defines interface for caching loaded transcripts on client
type TranscriptCache interface {
	// SaveTranscript stores or replaces the transcript of its call
	SaveTranscript(ctx context.Context, t *models.Transcript) error

	// GetTranscript retrieves a cached transcript
	// Returns ErrTranscriptNotFound if the call is not cached
	GetTranscript(ctx context.Context, callID int64) (*models.Transcript, error)
}
