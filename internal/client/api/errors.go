package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetwork помечает любые сетевые сбои: ошибки транспорта, таймауты
// и ответы сервера со статусом вне 2xx
var ErrNetwork = errors.New("network failure")

// HTTPError ответ сервера со статусом вне 2xx
type HTTPError struct {
	Message    string
	StatusCode int
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Is позволяет проверять HTTPError через errors.Is(err, ErrNetwork)
func (e *HTTPError) Is(target error) bool {
	return target == ErrNetwork
}

// IsPermanent сообщает, что повтор запроса не поможет:
// сервер отклонил его с 4xx, кроме 408 и 429
func IsPermanent(err error) bool {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	switch httpErr.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return httpErr.StatusCode >= 400 && httpErr.StatusCode < 500
}
