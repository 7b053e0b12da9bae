package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_GenerateAndValidate(t *testing.T) {
	s := NewService("test-secret", time.Hour, 24*time.Hour)

	token, claims, err := s.Generate("session-1", "trainee", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, claims.ID)

	got, err := s.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", got.SessionID)
	assert.Equal(t, "trainee", got.Subject)
	assert.Equal(t, claims.ID, got.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt.Time, 5*time.Second)
}

func TestService_TTL(t *testing.T) {
	s := NewService("secret", time.Hour, 4*time.Hour)

	tests := []struct {
		name      string
		requested time.Duration
		want      time.Duration
	}{
		{"zero uses default", 0, time.Hour},
		{"negative uses default", -time.Minute, time.Hour},
		{"within limit", 2 * time.Hour, 2 * time.Hour},
		{"clamped to max", 48 * time.Hour, 4 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.TTL(tt.requested))
		})
	}
}

func TestNewService_Defaults(t *testing.T) {
	s := NewService("secret", 0, 0)
	assert.Equal(t, DefaultTTL, s.TTL(0))
	assert.Equal(t, DefaultTTL, s.TTL(100*time.Hour))
}

func TestService_ValidateRejects(t *testing.T) {
	s := NewService("secret", time.Hour, time.Hour)
	other := NewService("other-secret", time.Hour, time.Hour)

	foreign, _, err := other.Generate("session-1", "", 0)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		SessionID: "session-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	noSession := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	noSessionToken, err := noSession.SignedString([]byte("secret"))
	require.NoError(t, err)

	wrongIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		SessionID: "session-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	wrongIssuerToken, err := wrongIssuer.SignedString([]byte("secret"))
	require.NoError(t, err)

	valid, _, err := s.Generate("session-1", "", 0)
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"foreign secret", foreign},
		{"expired", expiredToken},
		{"missing session", noSessionToken},
		{"wrong issuer", wrongIssuerToken},
		{"tampered signature", tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
