package handlers

import "context"

// contextKey тип для ключей контекста
type contextKey string

const (
	// SessionIDKey ключ для хранения session_id из токена зрителя
	SessionIDKey contextKey = "session_id"
	// TokenIDKey ключ для хранения jti токена зрителя
	TokenIDKey contextKey = "token_id"
)

// WithSpectator кладет в контекст данные проверенного токена зрителя
func WithSpectator(ctx context.Context, sessionID, tokenID string) context.Context {
	ctx = context.WithValue(ctx, SessionIDKey, sessionID)
	return context.WithValue(ctx, TokenIDKey, tokenID)
}

// GetSessionID извлекает session_id зрителя из контекста
func GetSessionID(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok
}

// GetTokenID извлекает jti токена зрителя из контекста
func GetTokenID(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
