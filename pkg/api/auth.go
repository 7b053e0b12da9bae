package api

// TokenRequest представляет запрос коуча на выпуск токена зрителя
type TokenRequest struct {
	Subject    string `json:"subject,omitempty"` // имя или идентификатор зрителя (для логов)
	TTLSeconds int64  `json:"ttl_seconds"`       // время жизни токена в секундах, 0 = значение сервера
}

// TokenResponse представляет ответ с токеном зрителя
type TokenResponse struct {
	Token     string `json:"token"`      // JWT токен, ограниченный одной сессией
	SessionID string `json:"session_id"` // сессия, к которой выдан доступ
	ExpiresIn int64  `json:"expires_in"` // время жизни токена в секундах
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
