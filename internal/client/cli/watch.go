package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/coachsync/internal/client/api"
	"github.com/iudanet/coachsync/internal/client/feed"
	"github.com/iudanet/coachsync/internal/client/livesync"
	"github.com/iudanet/coachsync/internal/client/transcript"
	"github.com/iudanet/coachsync/internal/models"
	pkgapi "github.com/iudanet/coachsync/pkg/api"
)

// clearLine возвращает каретку и стирает строку терминала
const clearLine = "\r\033[K"

func (c *Cli) runWatch(ctx context.Context) error {
	authData, err := c.requireAuth(ctx)
	if err != nil {
		return err
	}

	client := c.spectatorClient(authData)
	loader := transcript.NewLoader(client, c.store, c.logger)

	// Загрузка транскрипта независима от синхронизации: ошибка здесь не
	// мешает следить за коучем
	if callID, err := sessionCallID(ctx, client, authData.SessionID); err != nil {
		c.io.Printf("Warning: failed to read session: %v\n", err)
	} else {
		c.loadTranscript(ctx, loader, callID)
	}

	provider := feed.NewProvider(client, 0, c.logger)
	sess := livesync.NewSession(provider, authData.SessionID, livesync.DefaultConfig(), c.logger,
		livesync.WithRecorder(c.store))
	defer func() {
		if err := sess.Close(); err != nil {
			c.logger.Warn("Failed to close session sync", "error", err)
		}
	}()

	c.io.Printf("Watching session %s (Ctrl+C to stop)\n", authData.SessionID)

	if err := sess.Start(ctx); err != nil {
		// Повторяемая ошибка уже запланировала переподключение
		if sess.Snapshot().Phase == livesync.PhaseError {
			return fmt.Errorf("failed to start sync: %w", err)
		}
		c.logger.Warn("Initial connect failed, reconnecting", "error", err)
	}

	tty := c.io.IsTerminal()
	for {
		select {
		case <-ctx.Done():
			if tty {
				c.io.Println()
			}
			return nil
		case view := <-sess.Updates():
			line := formatView(view, loader.State().Transcript)
			if tty {
				c.io.Printf("%s%s", clearLine, line)
			} else {
				c.io.Println(line)
			}

			if view.Phase == livesync.PhaseError {
				if tty {
					c.io.Println()
				}
				return fmt.Errorf("sync stopped: %w", view.Err)
			}
			if view.SessionMode == models.SessionModeEnded {
				if tty {
					c.io.Println()
				}
				c.io.Println("Session ended by coach.")
				return nil
			}
		}
	}
}

// loadTranscript показывает кешированный транскрипт, пока идет загрузка свежего
func (c *Cli) loadTranscript(ctx context.Context, loader *transcript.Loader, callID int64) {
	if ok, err := loader.LoadCached(ctx, callID); err != nil {
		c.logger.Warn("Failed to read transcript cache", "error", err)
	} else if ok {
		c.logger.Debug("Using cached transcript", "call_id", callID)
	}
	if err := loader.Fetch(ctx, callID); err != nil {
		c.io.Printf("Warning: %v\n", err)
	}
}

// sessionCallID читает звонок сессии
func sessionCallID(ctx context.Context, client *api.Client, sessionID string) (int64, error) {
	raw, err := client.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return 0, fmt.Errorf("%w: %v", livesync.ErrSessionNotFound, err)
		}
		return 0, err
	}
	var row pkgapi.SessionRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return 0, fmt.Errorf("failed to decode session: %w", err)
	}
	return row.CallID, nil
}
