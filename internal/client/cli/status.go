package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/coachsync/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	authData, err := c.store.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		c.io.Println("Access: Not authenticated")
		c.io.Println("Run 'coachsync login' to authenticate.")
	case err != nil:
		return fmt.Errorf("failed to get auth data: %w", err)
	default:
		c.printAccess(authData)
	}

	// Последнее примененное состояние доступно и без сети
	sessionID, err := c.store.GetLastSessionID(ctx)
	if errors.Is(err, storage.ErrSyncStateNotFound) {
		c.io.Println()
		c.io.Println("No synchronized state recorded yet.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last session: %w", err)
	}

	rec, err := c.store.GetSyncState(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get sync state: %w", err)
	}

	c.io.Println()
	c.io.Printf("Last synchronized session: %s\n", sessionID)
	c.io.Printf("Synced at: %s\n", rec.SyncedAt.Format(time.RFC3339))
	c.io.Printf("State: %s\n", formatState(rec.State))

	return nil
}

func (c *Cli) printAccess(authData *storage.AuthData) {
	c.io.Println("Access: Authenticated")
	c.io.Printf("Server: %s\n", authData.ServerURL)
	c.io.Printf("Session: %s\n", authData.SessionID)

	if authData.ExpiresAt == 0 {
		return
	}
	expiresAt := time.Unix(authData.ExpiresAt, 0)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
	if remaining := time.Until(expiresAt); remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("⚠️  Token has expired. Please login again.")
	}
}
