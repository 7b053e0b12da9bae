package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/coachsync/internal/client/api"
	"github.com/iudanet/coachsync/internal/client/storage"
	"github.com/iudanet/coachsync/internal/validation"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	var sessionID, token string
	if len(args) > 0 {
		sessionID = args[0]
	}
	if len(args) > 1 {
		token = args[1]
	}

	var err error
	if sessionID == "" {
		sessionID, err = c.io.ReadInput("Session ID: ")
		if err != nil {
			return fmt.Errorf("failed to read session id: %w", err)
		}
	}
	if err := validation.ValidateSessionID(sessionID); err != nil {
		return fmt.Errorf("invalid session id: %w", err)
	}

	if token == "" {
		token, err = c.io.ReadPassword("Access token: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
	}
	if token == "" {
		return fmt.Errorf("access token cannot be empty")
	}

	expiresAt, err := tokenExpiry(token)
	if err != nil {
		return err
	}

	c.io.Println("Checking access...")

	// Проверяем токен чтением сессии: сервер отвечает 404 и для завершенных сессий
	client := api.NewClient(c.serverURL, api.WithToken(token))
	if _, err := client.GetSession(ctx, sessionID); err != nil {
		switch {
		case errors.Is(err, api.ErrNotFound):
			return fmt.Errorf("session %s not found or already ended", sessionID)
		case errors.Is(err, api.ErrUnauthorized), errors.Is(err, api.ErrForbidden):
			return fmt.Errorf("access token rejected by server: %w", err)
		}
		return err
	}

	authData := &storage.AuthData{
		ServerURL:   c.serverURL,
		SessionID:   sessionID,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}
	if err := c.store.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Session: %s\n", sessionID)
	if expiresAt != 0 {
		c.io.Printf("Access expires: %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	}
	c.io.Println()
	c.io.Println("Run 'coachsync watch' to follow the coach.")

	return nil
}

// tokenExpiry извлекает exp из токена без проверки подписи: секрет есть
// только у сервера, подпись он проверит сам
func tokenExpiry(token string) (int64, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return 0, fmt.Errorf("malformed access token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return 0, nil
	}
	return claims.ExpiresAt.Unix(), nil
}
