// Package dispatcher решает для каждого запроса, идти ли в сеть, в кэш или отказать.
package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iudanet/votekeeper/internal/client/api"
)

// Cache кэш ответов, используемый на пути чтения
type Cache interface {
	GetStale(ctx context.Context, key string) (json.RawMessage, bool)
	Set(ctx context.Context, key string, value json.RawMessage, ttl time.Duration)
}

// Connectivity источник состояния сети
type Connectivity interface {
	IsOnline() bool
}

// Dispatcher оборачивает все чтения и записи к API
type Dispatcher struct {
	client api.Doer
	cache  Cache
	conn   Connectivity
	logger *slog.Logger
	group  singleflight.Group
}

// New creates a new dispatcher
func New(client api.Doer, cache Cache, conn Connectivity, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client: client,
		cache:  cache,
		conn:   conn,
		logger: logger,
	}
}

// CacheKey строит ключ кэша: путь, двоеточие и канонический JSON параметров.
// Пустые или nil параметры дают {}.
func CacheKey(path string, params map[string]string) string {
	if len(params) == 0 {
		return path + ":{}"
	}
	// json.Marshal сортирует ключи map
	data, err := json.Marshal(params)
	if err != nil {
		return path + ":{}"
	}
	return path + ":" + string(data)
}

// Get читает ресурс. Онлайн: сеть, при успехе ответ кэшируется, при ошибке
// возвращается устаревший кэш, если он есть. Офлайн: только кэш.
func (d *Dispatcher) Get(ctx context.Context, path string, params map[string]string) (json.RawMessage, error) {
	online := d.conn.IsOnline()
	key := CacheKey(path, params)

	if !online {
		if value, ok := d.cache.GetStale(ctx, key); ok {
			d.logger.Debug("Offline, serving cached response", "key", key)
			return value, nil
		}
		return nil, fmt.Errorf("GET %s: %w", path, ErrOfflineNoCache)
	}

	// Одинаковые параллельные чтения объединяются в один запрос. Общий запрос
	// не зависит от отмены контекста первого вызывающего, каждый ждет по своему ctx.
	shared := context.WithoutCancel(ctx)
	ch := d.group.DoChan(key, func() (any, error) {
		value, err := d.client.Do(shared, api.Request{Method: http.MethodGet, Path: path, Params: params})
		if err != nil {
			return nil, err
		}
		d.cache.Set(shared, key, value, 0)
		return value, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, fmt.Errorf("GET %s: %w", path, ctx.Err())
	}
	if res.Err != nil {
		if value, ok := d.cache.GetStale(ctx, key); ok {
			d.logger.Warn("Network read failed, serving cached response", "key", key, "error", res.Err)
			return value, nil
		}
		return nil, res.Err
	}
	return cloneRaw(res.Val.(json.RawMessage)), nil
}

// cloneRaw отдает каждому вызывающему собственную копию общего ответа
func cloneRaw(v json.RawMessage) json.RawMessage {
	if v == nil {
		return nil
	}
	return append(json.RawMessage(nil), v...)
}

// Post создает ресурс
func (d *Dispatcher) Post(ctx context.Context, path string, payload json.RawMessage) (json.RawMessage, error) {
	return d.write(ctx, http.MethodPost, path, payload)
}

// Put изменяет ресурс
func (d *Dispatcher) Put(ctx context.Context, path string, payload json.RawMessage) (json.RawMessage, error) {
	return d.write(ctx, http.MethodPut, path, payload)
}

// Delete удаляет ресурс
func (d *Dispatcher) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return d.write(ctx, http.MethodDelete, path, nil)
}

// write без сети сразу отказывает, не трогая ни сеть, ни кэш
func (d *Dispatcher) write(ctx context.Context, method, path string, payload json.RawMessage) (json.RawMessage, error) {
	if !d.conn.IsOnline() {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrOfflineWrite)
	}

	req := api.Request{Method: method, Path: path}
	if len(payload) > 0 {
		req.Body = payload
	}
	return d.client.Do(ctx, req)
}
