package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/votekeeper/pkg/api"
)

//go:generate moq -out doer_mock.go . Doer

// DefaultBaseURL адрес сервера по умолчанию
const DefaultBaseURL = "http://localhost:8080/api"

// DefaultTimeout таймаут HTTP запроса по умолчанию
const DefaultTimeout = 30 * time.Second

// IdempotencyHeader заголовок, по которому сервер распознает повтор записи
const IdempotencyHeader = "Idempotency-Key"

// Request описывает один вызов REST API
type Request struct {
	Body           any               // тело запроса (nil - без тела)
	Params         map[string]string // query параметры
	Method         string
	Path           string // путь относительно baseURL, например /districts
	IdempotencyKey string
}

// Doer выполняет запросы к API. Реализуется Client, в тестах подменяется моком.
type Doer interface {
	Do(ctx context.Context, req Request) (json.RawMessage, error)
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option настраивает Client
type Option func(*Client)

// WithToken задает bearer токен для записывающих запросов
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient подменяет http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout задает таймаут запросов
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
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

// BaseURL возвращает адрес API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping проверяет доступность сервера через /health
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/health"})
	return err
}

// Do выполняет HTTP запрос и возвращает сырое JSON тело ответа.
// Любой сбой транспорта или статус вне 2xx возвращается как ошибка,
// для которой errors.Is(err, ErrNetwork) == true.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	target, err := c.buildURL(r.Path, r.Params)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body, ok := encodeBody(r.Body); ok {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if r.IdempotencyKey != "" {
		req.Header.Set(IdempotencyHeader, r.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &HTTPError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && (errResp.Message != "" || errResp.Error != "") {
			httpErr.Message = errResp.Message
			if httpErr.Message == "" {
				httpErr.Message = errResp.Error
			}
		} else {
			httpErr.Message = strings.TrimSpace(string(respBody))
		}
		return nil, httpErr
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("failed to decode response: invalid JSON")
	}
	return json.RawMessage(respBody), nil
}

func (c *Client) buildURL(path string, params map[string]string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid request path %q: %w", path, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// encodeBody отбрасывает пустые тела, в том числе пустой json.RawMessage
func encodeBody(body any) (any, bool) {
	switch b := body.(type) {
	case nil:
		return nil, false
	case json.RawMessage:
		if len(b) == 0 {
			return nil, false
		}
	case []byte:
		if len(b) == 0 {
			return nil, false
		}
		return json.RawMessage(b), true
	}
	return body, true
}
