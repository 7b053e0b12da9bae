// Package jwt issues and validates spectator access tokens.
// A token grants read access to exactly one shared evaluation session.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is written into the iss claim of every token
const Issuer = "coachsync"

// DefaultTTL is used when the coach does not request a specific lifetime
const DefaultTTL = 8 * time.Hour

// ErrInvalidToken is returned for malformed, expired or foreign tokens
var ErrInvalidToken = errors.New("invalid token")

// Claims represents spectator token claims.
// RegisteredClaims.ID carries the jti recorded in the token ledger.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Service provides JWT token generation and validation
type Service struct {
	secret []byte
	ttl    time.Duration
	maxTTL time.Duration
}

// NewService creates a new JWT service.
// ttl is the default lifetime, maxTTL caps lifetimes requested by the coach.
func NewService(secret string, ttl, maxTTL time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxTTL < ttl {
		maxTTL = ttl
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		maxTTL: maxTTL,
	}
}

// TTL clamps a requested lifetime to the service limits. Zero means default.
func (s *Service) TTL(requested time.Duration) time.Duration {
	if requested <= 0 {
		return s.ttl
	}
	if requested > s.maxTTL {
		return s.maxTTL
	}
	return requested
}

// Generate creates a token scoped to sessionID
func (s *Service) Generate(sessionID, subject string, ttl time.Duration) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   subject,
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL(ttl))),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, claims, nil
}

// Validate parses tokenString and checks signature, expiry and issuer
func (s *Service) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.SessionID == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
