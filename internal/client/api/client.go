package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/coachsync/pkg/api"
)

// Errors matched by HTTPError through errors.Is
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// CoachKeyHeader carries the coach key on mutating requests
const CoachKeyHeader = "X-Coach-Key"

// HTTPError is a non-2xx response of the server
type HTTPError struct {
	Message    string
	StatusCode int
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Is maps status codes onto the package sentinels
func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	}
	return false
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	coachKey   string
}

// Option настраивает Client
type Option func(*Client)

// WithToken задает spectator JWT для запросов чтения и подписки
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithCoachKey задает ключ коуча для изменяющих запросов
func WithCoachKey(key string) Option {
	return func(c *Client) { c.coachKey = key }
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки авторизации при редиректе
				if len(via) > 0 {
					for _, h := range []string{"Authorization", CoachKeyHeader} {
						if v := via[0].Header.Get(h); v != "" {
							req.Header.Set(h, v)
						}
					}
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the spectator token used by the client
func (c *Client) Token() string {
	return c.token
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, nil); err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	return nil
}

// GetSession читает строку активной сессии как есть, без декодирования:
// валидация полей выполняется на стороне livesync
func (c *Client) GetSession(ctx context.Context, sessionID string) (json.RawMessage, error) {
	var raw json.RawMessage
	path := "/api/v1/sessions/" + url.PathEscape(sessionID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("get session request failed: %w", err)
	}
	return raw, nil
}

// GetTranscript получает транскрипт звонка. Ответ с телом
// {success:false,error} возвращается без ошибки даже при не-2xx статусе.
func (c *Client) GetTranscript(ctx context.Context, callID int64) (*api.TranscriptResponse, error) {
	var resp api.TranscriptResponse
	path := fmt.Sprintf("/api/v1/calls/%d/transcription", callID)
	err := c.doRequest(ctx, http.MethodGet, path, nil, &resp)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && resp.Error != "" {
			return &resp, nil
		}
		return nil, fmt.Errorf("get transcript request failed: %w", err)
	}
	return &resp, nil
}

// CreateSession создает новую сессию (коуч)
func (c *Client) CreateSession(ctx context.Context, req api.CreateSessionRequest) (*api.SessionRow, error) {
	var resp api.SessionRow
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/sessions", req, &resp); err != nil {
		return nil, fmt.Errorf("create session request failed: %w", err)
	}
	return &resp, nil
}

// UpdateSession частично обновляет сессию (коуч)
func (c *Client) UpdateSession(ctx context.Context, sessionID string, req api.UpdateSessionRequest) (*api.SessionRow, error) {
	var resp api.SessionRow
	path := "/api/v1/sessions/" + url.PathEscape(sessionID)
	if err := c.doRequest(ctx, http.MethodPatch, path, req, &resp); err != nil {
		return nil, fmt.Errorf("update session request failed: %w", err)
	}
	return &resp, nil
}

// EndSession завершает сессию (коуч)
func (c *Client) EndSession(ctx context.Context, sessionID string) (*api.SessionRow, error) {
	var resp api.SessionRow
	path := "/api/v1/sessions/" + url.PathEscape(sessionID) + "/end"
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("end session request failed: %w", err)
	}
	return &resp, nil
}

// IssueToken выпускает spectator токен для сессии (коуч)
func (c *Client) IssueToken(ctx context.Context, sessionID string, req api.TokenRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	path := "/api/v1/sessions/" + url.PathEscape(sessionID) + "/tokens"
	if err := c.doRequest(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("issue token request failed: %w", err)
	}
	return &resp, nil
}

// SaveTranscript сохраняет слова транскрипта звонка (коуч)
func (c *Client) SaveTranscript(ctx context.Context, callID int64, req api.SaveTranscriptRequest) error {
	path := fmt.Sprintf("/api/v1/calls/%d/transcription", callID)
	if err := c.doRequest(ctx, http.MethodPut, path, req, nil); err != nil {
		return fmt.Errorf("save transcript request failed: %w", err)
	}
	return nil
}

// FeedURL returns the websocket URL of the change feed for topic
func (c *Client) FeedURL(topic string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/realtime"
	u.RawQuery = url.Values{"topic": {topic}}.Encode()
	return u.String(), nil
}

// doRequest выполняет HTTP запрос. При не-2xx статусе result все равно
// заполняется, если тело удалось декодировать, и возвращается *HTTPError.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.coachKey != "" {
		req.Header.Set(CoachKeyHeader, c.coachKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			httpErr.Message = errResp.Message
			if httpErr.Message == "" {
				httpErr.Message = errResp.Error
			}
		}
		if result != nil {
			_ = json.Unmarshal(respBody, result)
		}
		return httpErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
