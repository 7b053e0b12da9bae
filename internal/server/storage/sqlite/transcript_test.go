package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/storage"
)

func TestTranscriptStorage(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetTranscript(ctx, 99)
	assert.ErrorIs(t, err, storage.ErrTranscriptNotFound)

	tr := &models.Transcript{
		CallID: 99,
		Words: []models.Word{
			{Text: "good", StartTime: 0.1, EndTime: 0.4, Turn: 1},
			{Text: "morning", StartTime: 0.45, EndTime: 0.9, Turn: 1},
			{Text: "hi", StartTime: 1.2, EndTime: 1.4, Turn: 2},
		},
	}
	require.NoError(t, s.SaveTranscript(ctx, tr))

	got, err := s.GetTranscript(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, tr, got)

	// Сохранение заменяет транскрипт целиком
	replacement := &models.Transcript{CallID: 99, Words: []models.Word{{Text: "only", Turn: 1}}}
	require.NoError(t, s.SaveTranscript(ctx, replacement))

	got, err = s.GetTranscript(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestTranscriptStorage_EmptyWords(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.SaveTranscript(ctx, &models.Transcript{CallID: 5, Words: []models.Word{}}))

	got, err := s.GetTranscript(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, got.Words)
}
