// Package hub рассылает события изменения данных подключенным WebSocket клиентам.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"github.com/iudanet/votekeeper/pkg/api"
)

const (
	// DefaultBufferSize число событий, ожидающих отправки одному клиенту
	DefaultBufferSize = 16
	// writeTimeout ограничивает запись одного сообщения
	writeTimeout = 5 * time.Second
)

// ErrClosed возвращается при подключении к закрытому hub
var ErrClosed = errors.New("hub is closed")

type client struct {
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) stop() {
	c.once.Do(func() { close(c.done) })
}

// Hub реестр подключений и рассылка событий
type Hub struct {
	clients    map[*client]struct{}
	logger     *slog.Logger
	origins    []string
	bufferSize int
	mu         sync.Mutex
	closed     bool
}

// Option настраивает Hub
type Option func(*Hub)

// WithBufferSize задает размер очереди отправки на клиента
func WithBufferSize(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.bufferSize = n
		}
	}
}

// WithOriginPatterns разрешает cross-origin подключения (например браузерного дашборда)
func WithOriginPatterns(patterns ...string) Option {
	return func(h *Hub) {
		h.origins = append(h.origins, patterns...)
	}
}

// New creates a new hub
func New(logger *slog.Logger, opts ...Option) *Hub {
	h := &Hub{
		clients:    make(map[*client]struct{}),
		logger:     logger,
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish отправляет событие всем клиентам. Не блокируется: клиент,
// чья очередь переполнена, отключается.
func (h *Hub) Publish(ev api.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("failed to encode event", "type", ev.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("Dropping slow websocket client", "type", ev.Type)
			delete(h.clients, c)
			c.stop()
		}
	}
}

// Clients возвращает число подключенных клиентов
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close отключает всех клиентов, последующие подключения отклоняются
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.stop()
	}
	return nil
}

func (h *Hub) register() (*client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	c := &client{
		send: make(chan []byte, h.bufferSize),
		done: make(chan struct{}),
	}
	h.clients[c] = struct{}{}
	return c, nil
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	c.stop()
}

// ServeHTTP обрабатывает GET /api/ws
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := h.register()
	if err != nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	defer h.unregister(c)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		h.logger.Warn("websocket accept failed", "remote_addr", r.RemoteAddr, "error", err)
		return
	}
	defer conn.CloseNow()

	h.logger.Debug("websocket client connected", "remote_addr", r.RemoteAddr)

	// Клиенты только слушают, входящие сообщения игнорируются
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case data := <-c.send:
			if err := write(ctx, conn, data); err != nil {
				h.logger.Debug("websocket write failed", "remote_addr", r.RemoteAddr, "error", err)
				return
			}
		case <-c.done:
			_ = conn.Close(websocket.StatusGoingAway, "server closing connection")
			return
		case <-ctx.Done():
			h.logger.Debug("websocket client disconnected", "remote_addr", r.RemoteAddr)
			return
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}
