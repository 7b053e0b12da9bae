package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/coachsync/internal/client/iocli"
	"github.com/iudanet/coachsync/internal/client/storage/boltdb"
	"github.com/iudanet/coachsync/internal/server"
	"github.com/iudanet/coachsync/internal/server/storage/sqlite"
)

const testCoachKey = "coach-key"

// syncBuffer собирает вывод команд, watch пишет из другой горутины
type syncBuffer struct {
	b  strings.Builder
	mu sync.Mutex
}

func (s *syncBuffer) write(str string) {
	s.mu.Lock()
	s.b.WriteString(str)
	s.mu.Unlock()
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

// newTestIO возвращает IO, отвечающий на запросы ввода по очереди значениями inputs
func newTestIO(inputs ...string) (*iocli.IOMock, *syncBuffer) {
	out := &syncBuffer{}
	var mu sync.Mutex
	next := func(prompt string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		out.write(prompt)
		if len(inputs) == 0 {
			return "", io.EOF
		}
		v := inputs[0]
		inputs = inputs[1:]
		return v, nil
	}
	return &iocli.IOMock{
		PrintlnFunc:      func(a ...any) { out.write(fmt.Sprintln(a...)) },
		PrintfFunc:       func(format string, a ...any) { out.write(fmt.Sprintf(format, a...)) },
		ReadInputFunc:    next,
		ReadPasswordFunc: next,
		WriteFunc: func(p []byte) (int, error) {
			out.write(string(p))
			return len(p), nil
		},
		IsTerminalFunc: func() bool { return false },
	}, out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *boltdb.Storage {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// startServer поднимает настоящий сервер на sqlite в памяти
func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts, _ := startTestServer(t)
	return ts
}

// startTestServer отдает и сам сервер, чтобы тест мог управлять лентой изменений
func startTestServer(t *testing.T) (*httptest.Server, *server.Server) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testCoachKey), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := server.DefaultConfig()
	cfg.JWTSecret = "cli-test-secret-value"
	cfg.CoachKeyHash = string(hash)

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)

	srv, err := server.New(cfg, store, testLogger())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
		_ = store.Close()
	})
	return ts, srv
}

func newTestCli(t *testing.T, serverURL string, inputs ...string) (*Cli, *syncBuffer) {
	t.Helper()
	mockIO, out := newTestIO(inputs...)
	return New(mockIO, newTestStore(t), serverURL, CoachKeys{FromArgs: testCoachKey}, testLogger()), out
}

// TestGetCoachKey_FromEnvVar проверяет чтение ключа из переменной окружения
func TestGetCoachKey_FromEnvVar(t *testing.T) {
	t.Setenv(CoachKeyEnv, "env-key")
	c := &Cli{keys: CoachKeys{FromArgs: "args-key"}}

	key, err := c.getCoachKey()

	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
}

// TestGetCoachKey_FromFile проверяет чтение ключа из файла, файл важнее аргумента
func TestGetCoachKey_FromFile(t *testing.T) {
	t.Setenv(CoachKeyEnv, "")
	path := filepath.Join(t.TempDir(), "coach.key")
	require.NoError(t, os.WriteFile(path, []byte("file-key\n"), 0600))
	c := &Cli{keys: CoachKeys{FromFile: path, FromArgs: "args-key"}}

	key, err := c.getCoachKey()

	require.NoError(t, err)
	assert.Equal(t, "file-key", key)
}

func TestGetCoachKey_Errors(t *testing.T) {
	t.Setenv(CoachKeyEnv, "")

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "coach.key")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0600))
		c := &Cli{keys: CoachKeys{FromFile: path}}
		_, err := c.getCoachKey()
		assert.ErrorContains(t, err, "empty")
	})

	t.Run("missing file", func(t *testing.T) {
		c := &Cli{keys: CoachKeys{FromFile: filepath.Join(t.TempDir(), "absent")}}
		_, err := c.getCoachKey()
		assert.Error(t, err)
	})

	t.Run("empty prompt", func(t *testing.T) {
		mockIO, _ := newTestIO("")
		c := &Cli{io: mockIO}
		_, err := c.getCoachKey()
		assert.ErrorContains(t, err, "cannot be empty")
	})
}

// TestGetCoachKey_Prompt проверяет интерактивный ввод как последний источник
func TestGetCoachKey_Prompt(t *testing.T) {
	t.Setenv(CoachKeyEnv, "")
	mockIO, out := newTestIO("typed-key")
	c := &Cli{io: mockIO}

	key, err := c.getCoachKey()

	require.NoError(t, err)
	assert.Equal(t, "typed-key", key)
	assert.Contains(t, out.String(), "Coach key: ")
	assert.Len(t, mockIO.ReadPasswordCalls(), 1)
}

func TestCli_RunUnknownCommand(t *testing.T) {
	c, _ := newTestCli(t, "http://localhost:0")

	assert.ErrorContains(t, c.Run(context.Background(), "register", nil), "unknown command")
	assert.ErrorContains(t, c.Run(context.Background(), "coach", nil), "subcommand is required")
	assert.ErrorContains(t, c.Run(context.Background(), "coach", []string{"delete"}), "unknown coach subcommand")
}
