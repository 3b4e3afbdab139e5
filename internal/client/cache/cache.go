// Package cache реализует двухуровневый кэш ответов API:
// память процесса для горячих чтений и bbolt для переживания перезапуска.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/votekeeper/internal/client/storage"
	"github.com/iudanet/votekeeper/internal/clock"
	"github.com/iudanet/votekeeper/internal/models"
)

// Opener лениво открывает постоянный слой
type Opener func(ctx context.Context) (storage.CacheStorage, error)

// Stats сводка по содержимому кэша
type Stats struct {
	MemoryEntries  int
	DurableEntries int
	Durable        bool // постоянный слой доступен
}

// Service кэш ответов. Ошибки постоянного слоя никогда не возвращаются
// вызывающему коду на пути чтения и записи: они логируются, а кэш
// продолжает работать только в памяти.
type Service struct {
	clock      clock.Clock
	store      storage.CacheStorage
	opener     Opener
	logger     *slog.Logger
	entries    map[string]*models.CacheEntry
	defaultTTL time.Duration
	mu         sync.RWMutex
	storeMu    sync.Mutex
}

// Option настраивает Service
type Option func(*Service)

// WithStorage подключает уже открытый постоянный слой
func WithStorage(store storage.CacheStorage) Option {
	return func(s *Service) { s.store = store }
}

// WithOpener подключает постоянный слой, который открывается при первом
// обращении. Неудачное открытие повторяется при следующем обращении.
func WithOpener(open Opener) Option {
	return func(s *Service) { s.opener = open }
}

// WithClock подменяет источник времени
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithDefaultTTL задает TTL для Set с нулевым ttl
func WithDefaultTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.defaultTTL = ttl
		}
	}
}

// NewService creates a new cache
func NewService(logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		clock:      clock.System{},
		logger:     logger,
		entries:    make(map[string]*models.CacheEntry),
		defaultTTL: models.DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultTTL возвращает TTL по умолчанию
func (s *Service) DefaultTTL() time.Duration {
	return s.defaultTTL
}

// Get возвращает только свежее значение. Просроченная запись удаляется из обоих уровней.
func (s *Service) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	now := s.clock.Now()

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if ok {
		if entry.IsFresh(now) {
			return entry.Clone().Value, true
		}
		s.evict(ctx, key, entry)
		return nil, false
	}

	entry = s.loadDurable(ctx, key)
	if entry == nil {
		return nil, false
	}
	if !entry.IsFresh(now) {
		s.evict(ctx, key, nil)
		return nil, false
	}

	// Продвигаем свежую запись в память, если ее не перезаписали параллельно
	s.mu.Lock()
	if _, exists := s.entries[key]; !exists {
		s.entries[key] = entry
	}
	s.mu.Unlock()

	return entry.Clone().Value, true
}

// GetStale возвращает значение без учета TTL и ничего не удаляет.
// Вызывающий получает копию, изменение ее не затрагивает кэш.
func (s *Service) GetStale(ctx context.Context, key string) (json.RawMessage, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		entry = s.loadDurable(ctx, key)
		if entry == nil {
			return nil, false
		}
	}

	if now := s.clock.Now(); !entry.IsFresh(now) {
		s.logger.Debug("Serving expired cache entry", "key", key, "age", entry.Age(now).Round(time.Second))
	}
	return entry.Clone().Value, true
}

// Set записывает значение в оба уровня с текущим временем. ttl <= 0 означает TTL по умолчанию.
func (s *Service) Set(ctx context.Context, key string, value json.RawMessage, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	entry := &models.CacheEntry{
		Key:       key,
		Value:     append(json.RawMessage(nil), value...),
		Timestamp: s.clock.Now(),
		TTL:       ttl,
	}

	// Запись в память и на диск под одной блокировкой, чтобы параллельные Set
	// одного ключа не разошлись между уровнями
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry

	store := s.durable(ctx)
	if store == nil {
		return
	}
	if err := store.SaveCacheEntry(ctx, entry); err != nil {
		s.logger.Warn("Failed to persist cache entry", "key", key, "error", err)
	}
}

// Clear очищает оба уровня. Ошибка постоянного слоя возвращается,
// память очищается в любом случае.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*models.CacheEntry)

	store := s.durable(ctx)
	if store == nil {
		return nil
	}
	if err := store.ClearCache(ctx); err != nil {
		s.logger.Warn("Failed to clear durable cache", "error", err)
		return err
	}
	return nil
}

// Invalidate удаляет записи, путь которых начинается с prefix.
// Совпадение засчитывается только на границе сегмента:
// /candidates затрагивает /candidates/42 и /candidates:{}, но не /candidatesX.
func (s *Service) Invalidate(ctx context.Context, prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make(map[string]struct{})
	for key := range s.entries {
		if MatchesPrefix(key, prefix) {
			delete(s.entries, key)
			removed[key] = struct{}{}
		}
	}

	store := s.durable(ctx)
	if store == nil {
		return len(removed)
	}

	keys, err := store.ListCacheKeys(ctx)
	if err != nil {
		s.logger.Warn("Failed to list durable cache keys", "prefix", prefix, "error", err)
		return len(removed)
	}
	var durableKeys []string
	for _, key := range keys {
		if MatchesPrefix(key, prefix) {
			durableKeys = append(durableKeys, key)
			removed[key] = struct{}{}
		}
	}
	if err := store.DeleteCacheEntries(ctx, durableKeys); err != nil {
		s.logger.Warn("Failed to invalidate durable cache", "prefix", prefix, "error", err)
	}

	s.logger.Debug("Cache invalidated", "prefix", prefix, "entries", len(removed))
	return len(removed)
}

// Stats возвращает число записей в каждом уровне
func (s *Service) Stats(ctx context.Context) Stats {
	s.mu.RLock()
	st := Stats{MemoryEntries: len(s.entries)}
	s.mu.RUnlock()

	store := s.durable(ctx)
	if store == nil {
		return st
	}
	n, err := store.CountCacheEntries(ctx)
	if err != nil {
		s.logger.Warn("Failed to count durable cache entries", "error", err)
		return st
	}
	st.Durable = true
	st.DurableEntries = n
	return st
}

// MatchesPrefix сообщает, относится ли ключ кэша к ресурсу prefix
func MatchesPrefix(key, prefix string) bool {
	if !strings.HasPrefix(key, prefix) {
		return false
	}
	if len(key) == len(prefix) || strings.HasSuffix(prefix, "/") {
		return true
	}
	switch key[len(prefix)] {
	case '/', ':', '?':
		return true
	}
	return false
}

// evict удаляет просроченную запись. expected защищает от удаления значения,
// записанного параллельным Set после нашего чтения.
func (s *Service) evict(ctx context.Context, key string, expected *models.CacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.entries[key]; ok {
		if expected != nil && current != expected {
			return
		}
		if current.IsFresh(s.clock.Now()) {
			return
		}
		delete(s.entries, key)
	}

	store := s.durable(ctx)
	if store == nil {
		return
	}
	if err := store.DeleteCacheEntries(ctx, []string{key}); err != nil {
		s.logger.Warn("Failed to evict expired cache entry", "key", key, "error", err)
	}
}

func (s *Service) loadDurable(ctx context.Context, key string) *models.CacheEntry {
	store := s.durable(ctx)
	if store == nil {
		return nil
	}
	entry, err := store.GetCacheEntry(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrCacheEntryNotFound) {
			s.logger.Warn("Failed to read durable cache", "key", key, "error", err)
		}
		return nil
	}
	return entry
}

// durable возвращает постоянный слой, открывая его при необходимости
func (s *Service) durable(ctx context.Context) storage.CacheStorage {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	if s.store != nil || s.opener == nil {
		return s.store
	}
	store, err := s.opener(ctx)
	if err != nil {
		s.logger.Warn("Durable cache unavailable, using memory only", "error", err)
		return nil
	}
	s.store = store
	return store
}
