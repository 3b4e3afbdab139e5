package connectivity

import (
	"context"
	"log/slog"
	"time"
)

// DefaultProbeInterval период проверки доступности сервера
const DefaultProbeInterval = 15 * time.Second

// Pinger проверяет доступность сервера
type Pinger interface {
	Ping(ctx context.Context) error
}

// StateSetter получатель результатов проверки
type StateSetter interface {
	SetOnline(online bool)
	SetNetworkInfo(info NetworkInfo)
}

// Prober периодически опрашивает health endpoint и сообщает результат монитору
type Prober struct {
	pinger   Pinger
	target   StateSetter
	logger   *slog.Logger
	interval time.Duration
	timeout  time.Duration
}

// NewProber creates a new prober
func NewProber(pinger Pinger, target StateSetter, interval time.Duration, logger *slog.Logger) *Prober {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	timeout := interval / 2
	if timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &Prober{
		pinger:   pinger,
		target:   target,
		logger:   logger,
		interval: interval,
		timeout:  timeout,
	}
}

// Probe выполняет одну проверку без изменения состояния монитора.
// Используется для начального состояния.
func (p *Prober) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.pinger.Ping(ctx); err != nil {
		p.logger.Debug("Server unreachable", "error", err)
		return false
	}
	return true
}

// Start begins the probe loop
// Stops immediately when the ctx is cancelled
func (p *Prober) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check выполняет одну проверку и передает результат монитору
func (p *Prober) Check(ctx context.Context) bool {
	started := time.Now()
	online := p.Probe(ctx)
	if ctx.Err() != nil {
		return online
	}
	if online {
		p.target.SetNetworkInfo(NetworkInfo{Type: "http", RTT: time.Since(started)})
	}
	p.target.SetOnline(online)
	return online
}
