// Package realtime слушает push-канал сервера и инвалидирует затронутые записи кэша.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"nhooyr.io/websocket"

	"github.com/iudanet/votekeeper/pkg/api"
)

// Invalidator удаляет записи кэша по префиксу пути
type Invalidator interface {
	Invalidate(ctx context.Context, prefix string) int
}

// Hinter получает подсказки о доступности сети
type Hinter interface {
	SetOnline(online bool)
}

// Listener подключается к /ws и переподключается с экспоненциальной задержкой
type Listener struct {
	cache     Invalidator
	hint      Hinter
	onEvent   func(api.Event)
	logger    *slog.Logger
	url       string
	baseDelay time.Duration
	maxDelay  time.Duration
}

// Option настраивает Listener
type Option func(*Listener)

// WithHinter передает результат подключения монитору сети
func WithHinter(h Hinter) Option {
	return func(l *Listener) { l.hint = h }
}

// WithOnEvent вызывается после инвалидации для каждого события
func WithOnEvent(fn func(api.Event)) Option {
	return func(l *Listener) { l.onEvent = fn }
}

// WithBackoff задает начальную и максимальную задержку переподключения
func WithBackoff(base, max time.Duration) Option {
	return func(l *Listener) {
		if base > 0 {
			l.baseDelay = base
		}
		if max >= l.baseDelay {
			l.maxDelay = max
		}
	}
}

// NewListener creates a new listener for wsURL
func NewListener(wsURL string, cache Invalidator, logger *slog.Logger, opts ...Option) *Listener {
	l := &Listener{
		cache:     cache,
		logger:    logger,
		url:       wsURL,
		baseDelay: 500 * time.Millisecond,
		maxDelay:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WSURL строит адрес push-канала из базового адреса REST API
func WSURL(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}
	u.Path += "/ws"
	return u.String(), nil
}

// Prefixes возвращает префиксы путей кэша, затронутые событием
func Prefixes(t api.EventType) []string {
	switch t {
	case api.EventCandidateCreated, api.EventCandidateUpdated, api.EventCandidateDeleted:
		return []string{"/candidates", "/results"}
	case api.EventPartyCreated, api.EventPartyUpdated, api.EventPartyDeleted:
		return []string{"/parties"}
	case api.EventResultUpdated:
		return []string{"/results", "/candidates"}
	}
	return nil
}

// Run держит подключение до отмены контекста
func (l *Listener) Run(ctx context.Context) error {
	for {
		conn, err := l.connect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		l.logger.Info("Realtime channel connected", "url", l.url)
		err = l.readLoop(ctx, conn)
		_ = conn.Close(websocket.StatusNormalClosure, "")

		if ctx.Err() != nil {
			return nil
		}
		l.logger.Warn("Realtime channel disconnected", "error", err)
	}
}

// connect повторяет подключение, пока оно не удастся.
// Задержка начинается заново после каждого успешного подключения.
func (l *Listener) connect(ctx context.Context) (*websocket.Conn, error) {
	backoff := retry.WithCappedDuration(l.maxDelay, retry.NewExponential(l.baseDelay))

	var conn *websocket.Conn
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, resp, err := websocket.Dial(ctx, l.url, nil)
		if err != nil {
			// Нет HTTP ответа - сервер недоступен по сети
			if resp == nil && l.hint != nil && ctx.Err() == nil {
				l.hint.SetOnline(false)
			}
			l.logger.Debug("Realtime dial failed", "error", err)
			return retry.RetryableError(err)
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if l.hint != nil {
		l.hint.SetOnline(true)
	}
	return conn, nil
}

func (l *Listener) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var ev api.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			l.logger.Debug("Skipping malformed realtime message", "error", err)
			continue
		}
		l.Handle(ctx, ev)
	}
}

// Handle инвалидирует кэш для события и передает его обработчику
func (l *Listener) Handle(ctx context.Context, ev api.Event) {
	prefixes := Prefixes(ev.Type)
	if prefixes == nil {
		l.logger.Debug("Ignoring unknown realtime event", "type", ev.Type)
		return
	}

	removed := 0
	for _, prefix := range prefixes {
		removed += l.cache.Invalidate(ctx, prefix)
	}
	l.logger.Debug("Realtime event applied", "type", ev.Type, "invalidated", removed)

	if l.onEvent != nil {
		l.onEvent(ev)
	}
}
