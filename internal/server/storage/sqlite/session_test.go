package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/storage"
)

func TestSessionStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	row := createTestSession(t, ctx, s)

	got, err := s.GetSession(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, row, got)

	active, err := s.GetActiveSession(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, row, active)

	// Повторное создание с тем же id
	err = s.CreateSession(ctx, row)
	assert.ErrorIs(t, err, storage.ErrSessionAlreadyExists)
}

func TestSessionStorage_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	_, err = s.GetActiveSession(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	err = s.UpdateSession(ctx, &models.SessionRow{ID: "missing", ViewMode: models.ViewModeWord, SessionMode: models.SessionModeLive})
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestSessionStorage_Update(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	row := createTestSession(t, ctx, s)

	updated := row.Clone()
	updated.CurrentWordIndex = 42
	updated.CurrentParagraphIndex = 3
	updated.ViewMode = models.ViewModeParagraph
	updated.SessionMode = models.SessionModePaused
	updated.HighlightTurnOne = true
	updated.HighlightSpeakers = true
	updated.CallID = 12345 // call_id не изменяется
	updated.UpdatedAt = row.UpdatedAt.Add(time.Minute)
	require.NoError(t, s.UpdateSession(ctx, updated))

	got, err := s.GetActiveSession(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, got.CurrentWordIndex)
	assert.Equal(t, 3, got.CurrentParagraphIndex)
	assert.Equal(t, models.ViewModeParagraph, got.ViewMode)
	assert.Equal(t, models.SessionModePaused, got.SessionMode)
	assert.True(t, got.HighlightTurnOne)
	assert.True(t, got.HighlightSpeakers)
	assert.Equal(t, row.CallID, got.CallID)
	assert.Equal(t, row.CreatedAt, got.CreatedAt)
	assert.Equal(t, updated.UpdatedAt, got.UpdatedAt)
}

func TestSessionStorage_InactiveIsHiddenFromActiveRead(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	row := createTestSession(t, ctx, s)
	row.IsActive = false
	row.SessionMode = models.SessionModeEnded
	require.NoError(t, s.UpdateSession(ctx, row))

	_, err := s.GetActiveSession(ctx, row.ID)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	got, err := s.GetSession(ctx, row.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, models.SessionModeEnded, got.SessionMode)
}

func TestSessionStorage_CheckConstraints(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	row := createTestSession(t, ctx, s)

	tests := []struct {
		mutate func(r *models.SessionRow)
		name   string
	}{
		{name: "negative word index", mutate: func(r *models.SessionRow) { r.CurrentWordIndex = -1 }},
		{name: "unknown view mode", mutate: func(r *models.SessionRow) { r.ViewMode = "sentence" }},
		{name: "unknown session mode", mutate: func(r *models.SessionRow) { r.SessionMode = "rewind" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := row.Clone()
			tt.mutate(bad)
			assert.Error(t, s.UpdateSession(ctx, bad))
		})
	}
}
