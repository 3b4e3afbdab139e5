package models

import (
	"encoding/json"
	"time"
)

// DefaultCacheTTL время жизни записи кеша по умолчанию (1 час)
const DefaultCacheTTL = time.Hour

// CacheEntry представляет закешированный ответ сервера.
// Ключ однозначно определяется путем ресурса и параметрами запроса,
// на один ключ хранится не более одной записи.
type CacheEntry struct {
	Timestamp time.Time       `json:"timestamp"` // Timestamp момент записи в кеш
	Key       string          `json:"key"`       // Key fingerprint запроса (path + params)
	Value     json.RawMessage `json:"value"`     // Value тело ответа сервера как есть
	TTL       time.Duration   `json:"ttl"`       // TTL через сколько запись считается устаревшей
}

// IsFresh возвращает true, если с момента записи прошло меньше TTL
func (e *CacheEntry) IsFresh(now time.Time) bool {
	return now.Sub(e.Timestamp) < e.TTL
}

// Age возвращает возраст записи относительно now
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.Timestamp)
}

// Clone создает глубокую копию записи
func (e *CacheEntry) Clone() *CacheEntry {
	value := make(json.RawMessage, len(e.Value))
	copy(value, e.Value)

	return &CacheEntry{
		Key:       e.Key,
		Value:     value,
		Timestamp: e.Timestamp,
		TTL:       e.TTL,
	}
}
