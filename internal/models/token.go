package models

import "time"

// SpectatorToken представляет выданный зрителю токен доступа к одной сессии.
// ID совпадает с claim jti в JWT; удаление записи отзывает токен.
type SpectatorToken struct {
	ExpiresAt time.Time `json:"expires_at"` // ExpiresAt время истечения
	CreatedAt time.Time `json:"created_at"` // CreatedAt время выдачи
	ID        string    `json:"id"`         // ID UUID токена (jti)
	SessionID string    `json:"session_id"` // SessionID сессия, к которой выдан доступ
	Subject   string    `json:"subject"`    // Subject имя зрителя, только для логов
}

// Expired reports whether the token is past its expiry at now.
func (t *SpectatorToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
