// Package server собирает справочный REST/WebSocket сервер результатов выборов:
// хранилище, push hub, middleware и маршруты.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/votekeeper/internal/server/handlers"
	"github.com/iudanet/votekeeper/internal/server/hub"
	"github.com/iudanet/votekeeper/internal/server/middleware"
	"github.com/iudanet/votekeeper/internal/server/storage/sqlite"
)

// Значения по умолчанию
const (
	DefaultAddr            = ":8080"
	DefaultRateLimit       = 20
	DefaultRateBurst       = 40
	DefaultIdempotencyTTL  = 24 * time.Hour
	DefaultShutdownTimeout = 10 * time.Second
)

// Config конфигурация сервера
type Config struct {
	Addr            string
	DBPath          string
	Version         string
	WSOrigins       []string // разрешенные Origin для /api/ws (браузерный дашборд)
	JWT             handlers.JWTConfig
	RateLimit       float64 // запросов в секунду на IP
	RateBurst       int
	IdempotencyTTL  time.Duration // сколько хранить ответы по Idempotency-Key
	ShutdownTimeout time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.RateLimit <= 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.RateBurst <= 0 {
		c.RateBurst = DefaultRateBurst
	}
	if c.IdempotencyTTL <= 0 {
		c.IdempotencyTTL = DefaultIdempotencyTTL
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Version == "" {
		c.Version = "dev"
	}
}

// Server HTTP сервер с хранилищем и push hub
type Server struct {
	store   *sqlite.Storage
	hub     *hub.Hub
	limiter *middleware.RateLimiter
	logger  *slog.Logger
	handler http.Handler
	cfg     Config
}

// New открывает хранилище и собирает маршруты
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	cfg.setDefaults()
	if len(cfg.JWT.Secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.DBPath == "" {
		return nil, errors.New("database path is required")
	}

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		hub:     hub.New(logger, hub.WithOriginPatterns(cfg.WSOrigins...)),
		limiter: middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, logger),
	}
	s.handler = s.routes()
	return s, nil
}

// Handler возвращает корневой http.Handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Hub возвращает push hub сервера
func (s *Server) Hub() *hub.Hub {
	return s.hub
}

func (s *Server) routes() http.Handler {
	health := handlers.NewHealthHandler(s.logger, s.cfg.Version, s.store)
	election := handlers.NewElectionHandler(s.logger, s.store, s.hub)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggingWithSkip(s.logger, []string{"/api/health"}))
	r.Use(middleware.RecoveryMiddleware(s.logger))
	r.Use(middleware.RateLimitMiddleware(s.limiter, s.logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "route not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Health)
		r.Get("/ws", s.hub.ServeHTTP)

		// чтение публичное
		r.Get("/districts", election.ListDistricts)
		r.Get("/districts/{id}", election.GetDistrict)
		r.Get("/parties", election.ListParties)
		r.Get("/parties/{id}", election.GetParty)
		r.Get("/candidates", election.ListCandidates)
		r.Get("/candidates/{id}", election.GetCandidate)
		r.Get("/results/live", election.LiveResults)

		// запись только для администратора, повторы по Idempotency-Key безопасны
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(s.logger, s.cfg.JWT))
			r.Use(middleware.IdempotencyMiddleware(s.store, s.logger))

			r.Post("/parties", election.CreateParty)
			r.Put("/parties/{id}", election.UpdateParty)
			r.Delete("/parties/{id}", election.DeleteParty)
			r.Post("/candidates", election.CreateCandidate)
			r.Put("/candidates/{id}", election.UpdateCandidate)
			r.Delete("/candidates/{id}", election.DeleteCandidate)
		})
	})

	return r
}

// Run слушает cfg.Addr до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на ln до отмены ctx, затем корректно завершает
// соединения. Параллельно периодически удаляет устаревшие записи идемпотентности.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Server listening", "addr", ln.Addr().String(), "version", s.cfg.Version)
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server")

		// WebSocket соединения захвачены и Shutdown их не ждет
		_ = s.hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.purgeLoop(gctx)
		return nil
	})

	return g.Wait()
}

// purgeLoop удаляет записи идемпотентности старше IdempotencyTTL
func (s *Server) purgeLoop(ctx context.Context) {
	interval := s.cfg.IdempotencyTTL / 24
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purgeIdempotency(ctx)
		}
	}
}

func (s *Server) purgeIdempotency(ctx context.Context) {
	n, err := s.store.PurgeIdempotencyRecords(ctx, time.Now().Add(-s.cfg.IdempotencyTTL))
	if err != nil {
		s.logger.Error("failed to purge idempotency records", "error", err)
		return
	}
	if n > 0 {
		s.logger.Debug("Purged idempotency records", "count", n)
	}
}

// Close освобождает ресурсы сервера
func (s *Server) Close() error {
	s.limiter.Stop()
	return multierr.Combine(
		s.hub.Close(),
		s.store.Close(),
	)
}
