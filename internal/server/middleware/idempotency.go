package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/iudanet/votekeeper/internal/server/handlers"
	"github.com/iudanet/votekeeper/internal/server/storage"
)

const (
	// IdempotencyHeader заголовок с ключом идемпотентности записи
	IdempotencyHeader = "Idempotency-Key"
	// ReplayedHeader выставляется в ответах, повторенных из хранилища
	ReplayedHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 255
	maxIdempotentBody    = 1 << 20
)

// keyLocks сериализует одновременные запросы с одним ключом
type keyLocks struct {
	locks map[string]*keyLock
	mu    sync.Mutex
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// recorder пишет ответ клиенту и одновременно запоминает его
type recorder struct {
	http.ResponseWriter
	body       bytes.Buffer
	statusCode int
}

func (rec *recorder) WriteHeader(code int) {
	if rec.statusCode == 0 {
		rec.statusCode = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	if rec.statusCode == 0 {
		rec.statusCode = http.StatusOK
	}
	rec.body.Write(b)
	return rec.ResponseWriter.Write(b)
}

// IdempotencyMiddleware обеспечивает безопасный повтор записей: ответ на первый
// запрос с заголовком Idempotency-Key сохраняется, повторы получают его без
// повторного применения записи. Повтор ключа с другим методом, путем или телом
// отклоняется с 409. Сохраняются только ответы 2xx: отклоненная запись не
// применена, и после исправления причины ее можно повторить с тем же ключом.
func IdempotencyMiddleware(store storage.IdempotencyStorage, logger *slog.Logger) func(http.Handler) http.Handler {
	locks := &keyLocks{locks: make(map[string]*keyLock)}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" || !isWrite(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLen {
				handlers.WriteError(w, "idempotency key is too long", http.StatusBadRequest)
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIdempotentBody))
			if err != nil {
				handlers.WriteError(w, "request body is too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			sum := sha256.Sum256(body)
			bodyHash := hex.EncodeToString(sum[:])

			unlock := locks.lock(key)
			defer unlock()

			ctx := r.Context()
			rec, err := store.GetIdempotencyRecord(ctx, key)
			switch {
			case err == nil:
				if !rec.Matches(r.Method, r.URL.Path, bodyHash) {
					logger.Warn("Idempotency key reused with different payload",
						"method", r.Method, "path", r.URL.Path, "stored_path", rec.Path)
					handlers.WriteError(w, "idempotency key reuse with different payload", http.StatusConflict)
					return
				}
				logger.Debug("Replaying stored response", "method", r.Method, "path", r.URL.Path, "status", rec.StatusCode)
				replay(w, rec)
				return
			case !errors.Is(err, storage.ErrIdempotencyRecordNotFound):
				logger.Error("failed to load idempotency record", "error", err)
				handlers.WriteError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			recorded := &recorder{ResponseWriter: w}
			next.ServeHTTP(recorded, r)

			status := recorded.statusCode
			if status == 0 {
				status = http.StatusOK
			}
			if status < http.StatusOK || status >= http.StatusMultipleChoices {
				return
			}

			err = store.SaveIdempotencyRecord(ctx, &storage.IdempotencyRecord{
				Key:         key,
				Method:      r.Method,
				Path:        r.URL.Path,
				BodyHash:    bodyHash,
				StatusCode:  status,
				ContentType: recorded.Header().Get("Content-Type"),
				Body:        recorded.body.Bytes(),
			})
			if err != nil {
				// запись уже применена, ответ отправлен; повтор выполнит ее снова
				logger.Error("failed to save idempotency record", "error", err, "path", r.URL.Path)
			}
		})
	}
}

func replay(w http.ResponseWriter, rec *storage.IdempotencyRecord) {
	if rec.ContentType != "" {
		w.Header().Set("Content-Type", rec.ContentType)
	}
	w.Header().Set(ReplayedHeader, strconv.FormatBool(true))
	w.WriteHeader(rec.StatusCode)
	_, _ = w.Write(rec.Body)
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
