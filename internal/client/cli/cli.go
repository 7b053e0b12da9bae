package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/iudanet/coachsync/internal/client/api"
	"github.com/iudanet/coachsync/internal/client/iocli"
	"github.com/iudanet/coachsync/internal/client/storage"
)

// CoachKeyEnv задает ключ коуча через окружение
const CoachKeyEnv = "COACHSYNC_COACH_KEY"

// Store объединяет все локальные хранилища клиента, его реализует boltdb.Storage
type Store interface {
	storage.AuthStorage
	storage.SyncStateStorage
	storage.TranscriptCache
}

// CoachKeys источники ключа коуча
type CoachKeys struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io        iocli.IO
	store     Store
	logger    *slog.Logger
	serverURL string
	keys      CoachKeys
}

func New(io iocli.IO, store Store, serverURL string, keys CoachKeys, logger *slog.Logger) *Cli {
	return &Cli{
		io:        io,
		store:     store,
		logger:    logger,
		serverURL: serverURL,
		keys:      keys,
	}
}

// requireAuth возвращает сохраненный доступ зрителя
func (c *Cli) requireAuth(ctx context.Context) (*storage.AuthData, error) {
	authData, err := c.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, fmt.Errorf("not authenticated. Please run 'coachsync login' first")
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}
	if authData.Expired() {
		return nil, fmt.Errorf("access token has expired. Please login again")
	}
	return authData, nil
}

// spectatorClient создает API клиент с токеном зрителя
func (c *Cli) spectatorClient(authData *storage.AuthData) *api.Client {
	serverURL := authData.ServerURL
	if serverURL == "" {
		serverURL = c.serverURL
	}
	return api.NewClient(serverURL, api.WithToken(authData.AccessToken))
}

// coachClient создает API клиент с ключом коуча
func (c *Cli) coachClient() (*api.Client, error) {
	key, err := c.getCoachKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get coach key: %w", err)
	}
	return api.NewClient(c.serverURL, api.WithCoachKey(key)), nil
}

// getCoachKey retrieves the coach key from various sources with priority:
// 1. Environment variable COACHSYNC_COACH_KEY
// 2. File specified in keys.FromFile
// 3. Command-line parameter keys.FromArgs
// 4. Interactive prompt (fallback)
func (c *Cli) getCoachKey() (string, error) {
	// Priority 1: Environment variable
	if envKey := os.Getenv(CoachKeyEnv); envKey != "" {
		return envKey, nil
	}

	// Priority 2: File
	if c.keys.FromFile != "" {
		content, err := os.ReadFile(c.keys.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read coach key file: %w", err)
		}
		// Убираем trailing newline/whitespace
		key := strings.TrimSpace(string(content))
		if key == "" {
			return "", fmt.Errorf("coach key file is empty")
		}
		return key, nil
	}

	// Priority 3: CLI parameter
	if c.keys.FromArgs != "" {
		return c.keys.FromArgs, nil
	}

	// Priority 4: Interactive prompt (fallback)
	key, err := c.io.ReadPassword("Coach key: ")
	if err != nil {
		return "", fmt.Errorf("failed to read coach key from stdin: %w", err)
	}
	if key == "" {
		return "", fmt.Errorf("coach key cannot be empty")
	}

	return key, nil
}

func PrintUsage() {
	fmt.Println("CoachSync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  coachsync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version               Show version information")
	fmt.Println("  --server URL            Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH               Path to local database (default: coachsync-client.db)")
	fmt.Println("  --coach-key KEY         Coach key (not recommended, use env var or file)")
	fmt.Println("  --coach-key-file PATH   Path to file containing the coach key")
	fmt.Println("  --log-level LEVEL       Log level: debug, info, warn, error (default: warn)")
	fmt.Println()
	fmt.Println("Coach Key Priority (highest to lowest):")
	fmt.Println("  1. COACHSYNC_COACH_KEY environment variable")
	fmt.Println("  2. --coach-key-file (file path)")
	fmt.Println("  3. --coach-key (command line)")
	fmt.Println("  4. Interactive prompt (fallback)")
	fmt.Println()
	fmt.Println("Spectator commands:")
	fmt.Println("  login [session-id] [token]    Save spectator access to a session")
	fmt.Println("  logout                        Delete saved access")
	fmt.Println("  status                        Show access and last synchronized state")
	fmt.Println("  watch                         Follow the coach live")
	fmt.Println("  transcript [-cached] [call]   Print a call transcript")
	fmt.Println()
	fmt.Println("Coach commands:")
	fmt.Println("  coach create [-view MODE] [-mode MODE] <call-id>")
	fmt.Println("  coach set [-word N] [-paragraph N] [-view MODE] [-mode MODE]")
	fmt.Println("            [-turn-one BOOL] [-speakers BOOL] <session-id>")
	fmt.Println("  coach end <session-id>")
	fmt.Println("  coach token [-ttl DURATION] [-subject NAME] <session-id>")
	fmt.Println("  coach upload <call-id> <words.json>")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  export COACHSYNC_COACH_KEY='coach-secret'")
	fmt.Println("  coachsync coach create 1042")
	fmt.Println("  coachsync coach token -ttl 2h 7b1e2c4a-0d8f-4c56-9a43-1f0e8d7c6b5a")
	fmt.Println()
	fmt.Println("  coachsync login 7b1e2c4a-0d8f-4c56-9a43-1f0e8d7c6b5a eyJhbGciOi...")
	fmt.Println("  coachsync watch")
}
