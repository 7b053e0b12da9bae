package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/coachsync/internal/crypto"
	"github.com/iudanet/coachsync/internal/models"
	"github.com/iudanet/coachsync/internal/server/handlers"
	"github.com/iudanet/coachsync/internal/server/jwt"
	"github.com/iudanet/coachsync/internal/server/storage"
	"github.com/iudanet/coachsync/internal/validation"
)

// CoachKeyHeader заголовок с ключом коуча
const CoachKeyHeader = "X-Coach-Key"

// AccessTokenParam query параметр с токеном для websocket клиентов,
// которые не умеют выставлять заголовки
const AccessTokenParam = "access_token"

// TokenLedger проверяет, что токен был выпущен и не отозван
type TokenLedger interface {
	GetToken(ctx context.Context, id string) (*models.SpectatorToken, error)
}

// ScopeFunc возвращает идентификатор сессии, к которой обращается запрос.
// Пустая строка означает, что запрос не привязан к конкретной сессии.
type ScopeFunc func(r *http.Request) (string, error)

// PathSessionScope берет сессию из path параметра
func PathSessionScope(param string) ScopeFunc {
	return func(r *http.Request) (string, error) {
		id := r.PathValue(param)
		if err := validation.ValidateSessionID(id); err != nil {
			return "", err
		}
		return id, nil
	}
}

// TopicSessionScope берет сессию из query параметра topic change feed
func TopicSessionScope(r *http.Request) (string, error) {
	return validation.SessionIDFromTopic(r.URL.Query().Get("topic"))
}

// SpectatorAuthMiddleware создает middleware для проверки JWT токена зрителя.
// Токен должен быть подписан сервером, присутствовать в реестре выданных токенов
// и относиться к той сессии, к которой обращается запрос.
func SpectatorAuthMiddleware(logger *slog.Logger, tokens *jwt.Service, ledger TokenLedger, scope ScopeFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, ok := extractToken(r)
			if !ok {
				logger.WarnContext(ctx, "missing or malformed spectator token", "path", r.URL.Path)
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				logger.WarnContext(ctx, "invalid spectator token", "error", err)
				writeError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			record, err := ledger.GetToken(ctx, claims.ID)
			if err != nil {
				if errors.Is(err, storage.ErrTokenNotFound) {
					logger.WarnContext(ctx, "revoked spectator token", "token_id", claims.ID, "session_id", claims.SessionID)
					writeError(w, "token revoked", http.StatusUnauthorized)
					return
				}
				logger.ErrorContext(ctx, "failed to look up spectator token", "error", err)
				writeError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			if record.SessionID != claims.SessionID || record.Expired(time.Now()) {
				logger.WarnContext(ctx, "spectator token does not match ledger", "token_id", claims.ID)
				writeError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if scope != nil {
				sessionID, err := scope(r)
				if err != nil {
					writeError(w, err.Error(), http.StatusBadRequest)
					return
				}
				if sessionID != "" && sessionID != claims.SessionID {
					logger.WarnContext(ctx, "spectator token used for another session",
						"token_session_id", claims.SessionID,
						"requested_session_id", sessionID)
					writeError(w, "token does not grant access to this session", http.StatusForbidden)
					return
				}
			}

			logger.DebugContext(ctx, "spectator authenticated", "session_id", claims.SessionID, "token_id", claims.ID)

			ctx = handlers.WithSpectator(ctx, claims.SessionID, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CoachAuthMiddleware проверяет ключ коуча против bcrypt хеша
func CoachAuthMiddleware(logger *slog.Logger, keyHash []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(CoachKeyHeader)
			if key == "" {
				logger.WarnContext(r.Context(), "missing coach key", "path", r.URL.Path)
				writeError(w, "missing coach key", http.StatusUnauthorized)
				return
			}

			if err := crypto.VerifyCoachKey(key, keyHash); err != nil {
				logger.WarnContext(r.Context(), "invalid coach key", "path", r.URL.Path, "remote_addr", r.RemoteAddr, "error", err)
				writeError(w, "invalid coach key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken извлекает токен из заголовка Authorization: Bearer <token>
// или из query параметра access_token
func extractToken(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if token := r.URL.Query().Get(AccessTokenParam); token != "" {
		return token, true
	}

	return "", false
}
