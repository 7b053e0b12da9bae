package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coachsync/internal/client/api"
	"github.com/iudanet/coachsync/internal/client/livesync"
	"github.com/iudanet/coachsync/internal/client/storage"
	"github.com/iudanet/coachsync/internal/models"
	pkgapi "github.com/iudanet/coachsync/pkg/api"
)

// setupSession создает сессию с транскриптом и выпускает токен зрителя
func setupSession(t *testing.T, serverURL string) (sessionID, token string) {
	t.Helper()
	ctx := context.Background()
	coach := api.NewClient(serverURL, api.WithCoachKey(testCoachKey))

	row, err := coach.CreateSession(ctx, pkgapi.CreateSessionRequest{CallID: 42})
	require.NoError(t, err)

	require.NoError(t, coach.SaveTranscript(ctx, 42, pkgapi.SaveTranscriptRequest{
		Words: []models.Word{
			{Text: "good", StartTime: 0, EndTime: 0.3, Turn: 1},
			{Text: "morning", StartTime: 0.3, EndTime: 0.8, Turn: 1},
			{Text: "hello", StartTime: 1.0, EndTime: 1.4, Turn: 2},
		},
	}))

	issued, err := coach.IssueToken(ctx, row.ID, pkgapi.TokenRequest{TTLSeconds: 3600})
	require.NoError(t, err)
	return row.ID, issued.Token
}

func TestCli_Login(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	sessionID, token := setupSession(t, ts.URL)
	c, out := newTestCli(t, ts.URL)

	require.NoError(t, c.Run(ctx, "login", []string{sessionID, token}))
	assert.Contains(t, out.String(), "✓ Login successful!")
	assert.Contains(t, out.String(), "Access expires: ")

	authData, err := c.store.GetAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, ts.URL, authData.ServerURL)
	assert.Equal(t, sessionID, authData.SessionID)
	assert.Equal(t, token, authData.AccessToken)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), authData.ExpiresAt, 60)
}

func TestCli_LoginInteractive(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	sessionID, token := setupSession(t, ts.URL)
	c, out := newTestCli(t, ts.URL, sessionID, token)

	require.NoError(t, c.Run(ctx, "login", nil))
	assert.Contains(t, out.String(), "Session ID: ")
	assert.Contains(t, out.String(), "Access token: ")

	ok, err := c.store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCli_LoginErrors(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	sessionID, token := setupSession(t, ts.URL)
	otherID, _ := setupSession(t, ts.URL)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid session id", []string{"bad id!", token}, "invalid session id"},
		{"malformed token", []string{sessionID, "not-a-jwt"}, "malformed access token"},
		{"token of another session", []string{otherID, token}, "rejected"},
		{"unknown session", []string{"7b1e2c4a-0d8f-4c56-9a43-1f0e8d7c6b5a", token}, "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCli(t, ts.URL)
			err := c.Run(ctx, "login", tt.args)
			assert.ErrorContains(t, err, tt.want)

			_, err = c.store.GetAuth(ctx)
			assert.ErrorIs(t, err, storage.ErrAuthNotFound)
		})
	}
}

func TestCli_LoginEndedSession(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	sessionID, _ := setupSession(t, ts.URL)

	coach := api.NewClient(ts.URL, api.WithCoachKey(testCoachKey))
	// End отзывает токены, выданные до завершения
	issued, err := coach.IssueToken(ctx, sessionID, pkgapi.TokenRequest{})
	require.NoError(t, err)
	_, err = coach.EndSession(ctx, sessionID)
	require.NoError(t, err)

	c, _ := newTestCli(t, ts.URL)
	err = c.Run(ctx, "login", []string{sessionID, issued.Token})
	assert.Error(t, err)
}

func TestCli_LogoutAndStatus(t *testing.T) {
	ctx := context.Background()
	c, out := newTestCli(t, "http://127.0.0.1:0")

	require.NoError(t, c.Run(ctx, "status", nil))
	assert.Contains(t, out.String(), "Access: Not authenticated")
	assert.Contains(t, out.String(), "No synchronized state recorded yet.")

	sessionID := "7b1e2c4a-0d8f-4c56-9a43-1f0e8d7c6b5a"
	require.NoError(t, c.store.SaveAuth(ctx, &storage.AuthData{
		ServerURL:   "http://example.test",
		SessionID:   sessionID,
		AccessToken: "token",
		ExpiresAt:   time.Now().Add(-time.Minute).Unix(),
	}))
	state := models.DefaultSyncState()
	state.CurrentWordIndex = 5
	require.NoError(t, c.store.RecordSyncState(ctx, sessionID, livesync.SyncRecord{
		SyncedAt: time.Now(),
		State:    state,
	}))

	require.NoError(t, c.Run(ctx, "status", nil))
	assert.Contains(t, out.String(), "Access: Authenticated")
	assert.Contains(t, out.String(), "Token has expired")
	assert.Contains(t, out.String(), "Last synchronized session: "+sessionID)
	assert.Contains(t, out.String(), "mode=live view=word word=5 paragraph=0")

	// Просроченный доступ не пускает в watch
	assert.ErrorContains(t, c.Run(ctx, "watch", nil), "expired")

	require.NoError(t, c.Run(ctx, "logout", nil))
	_, err := c.store.GetAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
	assert.ErrorContains(t, c.Run(ctx, "watch", nil), "not authenticated")
}
