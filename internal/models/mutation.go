package models

import (
	"encoding/json"
	"net/http"
	"time"
)

// MutationMethod тип отложенной операции записи
type MutationMethod string

// Допустимые операции очереди
const (
	MethodCreate MutationMethod = "CREATE" // POST
	MethodUpdate MutationMethod = "UPDATE" // PUT
	MethodDelete MutationMethod = "DELETE" // DELETE
)

// HTTPMethod возвращает HTTP метод, которым операция воспроизводится на сервере
func (m MutationMethod) HTTPMethod() string {
	switch m {
	case MethodCreate:
		return http.MethodPost
	case MethodUpdate:
		return http.MethodPut
	case MethodDelete:
		return http.MethodDelete
	default:
		return ""
	}
}

// Valid проверяет, что метод входит в допустимый набор
func (m MutationMethod) Valid() bool {
	return m.HTTPMethod() != ""
}

// QueuedMutation представляет операцию записи, отложенную до восстановления сети.
// ID назначается хранилищем и монотонно растет: порядок ID и есть порядок воспроизведения.
type QueuedMutation struct {
	Timestamp      time.Time       `json:"timestamp"`            // Timestamp момент постановки в очередь
	Method         MutationMethod  `json:"method"`               // Method CREATE, UPDATE или DELETE
	Target         string          `json:"target"`               // Target путь ресурса, к которому применяется операция
	IdempotencyKey string          `json:"idempotency_key"`      // IdempotencyKey ключ для безопасного повтора на сервере
	LastError      string          `json:"last_error,omitempty"` // LastError текст последней ошибки воспроизведения
	Payload        json.RawMessage `json:"payload,omitempty"`    // Payload тело запроса (отсутствует для DELETE)
	ID             uint64          `json:"id"`                   // ID идентификатор, назначенный хранилищем
	Attempts       int             `json:"attempts"`             // Attempts число неудачных попыток воспроизведения
}
