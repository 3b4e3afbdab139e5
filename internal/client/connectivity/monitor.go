// Package connectivity отслеживает доступность сервера и запускает
// воспроизведение очереди при восстановлении связи.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	clientsync "github.com/iudanet/votekeeper/internal/client/sync"
)

// NetworkInfo справочные сведения о качестве сети. На поведение не влияют.
type NetworkInfo struct {
	Type         string        // тип соединения (wifi, cellular, ...), если известен
	DownlinkMbps float64       // оценка пропускной способности
	RTT          time.Duration // время ответа последней проверки
}

// Replayer выполняет один проход воспроизведения очереди
type Replayer interface {
	Sync(ctx context.Context) (*clientsync.SyncResult, error)
}

// Monitor хранит состояние Online/Offline. Каждый переход Offline -> Online
// планирует ровно один проход воспроизведения; проходы выполняет один
// рабочий goroutine в Run, поэтому они никогда не пересекаются.
type Monitor struct {
	replayer  Replayer
	logger    *slog.Logger
	listeners map[int]func(online bool)
	wake      chan struct{}
	info      NetworkInfo
	nextID    int
	pending   int
	mu        sync.RWMutex
	online    bool
}

// NewMonitor создает монитор с начальным состоянием, полученным от источника сигнала
func NewMonitor(initialOnline bool, replayer Replayer, logger *slog.Logger) *Monitor {
	return &Monitor{
		replayer:  replayer,
		logger:    logger,
		listeners: make(map[int]func(bool)),
		wake:      make(chan struct{}, 1),
		online:    initialOnline,
	}
}

// IsOnline возвращает текущее состояние
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// NetworkInfo возвращает последние сведения о сети
func (m *Monitor) NetworkInfo() NetworkInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.info
}

// SetNetworkInfo обновляет справочные сведения о сети
func (m *Monitor) SetNetworkInfo(info NetworkInfo) {
	m.mu.Lock()
	m.info = info
	m.mu.Unlock()
}

// PendingReplays число запланированных, но еще не выполненных проходов
func (m *Monitor) PendingReplays() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pending
}

// SetOnline обновляет состояние. Повторный сигнал с тем же значением ничего не делает.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	if online {
		m.pending++
	}
	listeners := make([]func(bool), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	if online {
		m.logger.Info("Connection restored")
		select {
		case m.wake <- struct{}{}:
		default:
		}
	} else {
		m.logger.Info("Connection lost")
	}

	for _, fn := range listeners {
		fn(online)
	}
}

// Subscribe регистрирует обработчик смены состояния и возвращает функцию отписки
func (m *Monitor) Subscribe(fn func(online bool)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Run выполняет запланированные проходы до отмены контекста
func (m *Monitor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.wake:
		}

		for m.takePending() {
			m.replay(ctx)
			if ctx.Err() != nil {
				return
			}
		}
	}
}

func (m *Monitor) takePending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == 0 {
		return false
	}
	m.pending--
	return true
}

func (m *Monitor) replay(ctx context.Context) {
	if m.replayer == nil {
		return
	}
	result, err := m.replayer.Sync(ctx)
	if err != nil {
		m.logger.Error("Queue replay failed", "error", err)
		return
	}
	if result != nil && result.Attempted > 0 {
		m.logger.Info("Queue replayed",
			"applied", result.Applied,
			"failed", result.Failed,
			"dead_lettered", result.DeadLettered)
	}
}
