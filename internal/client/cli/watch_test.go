package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/coachsync/internal/client/api"
	"github.com/iudanet/coachsync/internal/models"
	pkgapi "github.com/iudanet/coachsync/pkg/api"
)

func TestCli_WatchFollowsCoach(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ts := startServer(t)
	sessionID, token := setupSession(t, ts.URL)
	c, out := newTestCli(t, ts.URL)
	require.NoError(t, c.Run(ctx, "login", []string{sessionID, token}))

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, "watch", nil) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[subscribed] mode=live view=word word=0")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), `"good"`)

	coach := api.NewClient(ts.URL, api.WithCoachKey(testCoachKey))
	word := 1
	_, err := coach.UpdateSession(ctx, sessionID, pkgapi.UpdateSessionRequest{CurrentWordIndex: &word})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `word=1 paragraph=0 turn-one=off speakers=off "morning"`)
	}, 5*time.Second, 20*time.Millisecond)

	_, err = coach.EndSession(ctx, sessionID)
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after the session ended")
	}
	assert.Contains(t, out.String(), "Session ended by coach.")

	// Каждое примененное состояние записывается локально, запись идет после уведомления
	require.Eventually(t, func() bool {
		rec, err := c.store.GetSyncState(ctx, sessionID)
		return err == nil && rec.State.SessionMode == models.SessionModeEnded && rec.State.CurrentWordIndex == 1
	}, 5*time.Second, 20*time.Millisecond)

	// Транскрипт остался в кеше и доступен без сети
	require.NoError(t, c.Run(ctx, "transcript", []string{"-cached", "42"}))
	assert.Contains(t, out.String(), "=== Call 42: 3 words, 1.4s ===")
}

func TestCli_WatchStopsOnCancel(t *testing.T) {
	ts := startServer(t)
	sessionID, token := setupSession(t, ts.URL)
	c, out := newTestCli(t, ts.URL)
	require.NoError(t, c.Run(context.Background(), "login", []string{sessionID, token}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, "watch", nil) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[subscribed]")
	}, 5*time.Second, 20*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestCli_WatchSurvivesFeedDrop(t *testing.T) {
	ts, srv := startTestServer(t)
	sessionID, token := setupSession(t, ts.URL)
	c, out := newTestCli(t, ts.URL)
	require.NoError(t, c.Run(context.Background(), "login", []string{sessionID, token}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, "watch", nil) }()

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "[subscribed]") == 1
	}, 5*time.Second, 20*time.Millisecond)

	// Все подписки сервера закрываются с GoingAway, как при остановке
	srv.Hub().Close()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "[reconnecting]")
	}, 5*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "[subscribed]") >= 2
	}, 10*time.Second, 20*time.Millisecond, "watch resubscribes after the backoff delay")

	select {
	case err := <-done:
		t.Fatalf("watch exited on a transient feed error: %v", err)
	default:
	}
	assert.NotContains(t, out.String(), "[error]")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestCli_Transcript(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	sessionID, token := setupSession(t, ts.URL)
	c, out := newTestCli(t, ts.URL)

	// Без доступа читается только кеш, и там пусто
	assert.ErrorContains(t, c.Run(ctx, "transcript", []string{"-cached", "42"}), "not cached")
	assert.ErrorContains(t, c.Run(ctx, "transcript", []string{"42"}), "not authenticated")

	require.NoError(t, c.Run(ctx, "login", []string{sessionID, token}))

	// Без аргумента используется звонок сессии
	require.NoError(t, c.Run(ctx, "transcript", nil))
	assert.Contains(t, out.String(), "=== Call 42: 3 words, 1.4s ===")
	assert.Contains(t, out.String(), "[2] hello")

	// Чужой звонок закрыт для зрителя
	assert.Error(t, c.Run(ctx, "transcript", []string{"77"}))
	assert.ErrorContains(t, c.Run(ctx, "transcript", []string{"abc"}), "invalid call id")
}
