package boltdb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/votekeeper/internal/client/storage"
	"github.com/iudanet/votekeeper/internal/crypto"
)

var (
	// BoltDB bucket names
	bucketCache      = []byte("api-cache")
	bucketQueue      = []byte("sync-queue")
	bucketDeadLetter = []byte("dead-letter")
	bucketMetadata   = []byte("metadata")
)

const (
	keySealSalt  = "seal_salt"
	keySealCheck = "seal_check"
	sealCheck    = "votekeeper"

	// DefaultLockTimeout время ожидания блокировки файла БД
	DefaultLockTimeout = time.Second
)

// Storage represents BoltDB storage implementation for client.
// Implements storage.CacheStorage, storage.QueueStorage and storage.MetadataStorage.
type Storage struct {
	db     *bbolt.DB
	sealer *crypto.Sealer
	mu     sync.RWMutex
}

type options struct {
	passphrase  string
	lockTimeout time.Duration
}

// Option настраивает открытие хранилища
type Option func(*options)

// WithPassphrase включает шифрование значений на диске
func WithPassphrase(passphrase string) Option {
	return func(o *options) { o.passphrase = passphrase }
}

// WithLockTimeout задает время ожидания файловой блокировки
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) { o.lockTimeout = d }
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string, opts ...Option) (*Storage, error) {
	o := options{lockTimeout: DefaultLockTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	// Файловая блокировка bbolt не дает второму процессу открыть ту же базу
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: o.lockTimeout})
	if err != nil {
		if errors.Is(err, bbolt.ErrTimeout) {
			return nil, fmt.Errorf("failed to open boltdb: %w", storage.ErrStorageLocked)
		}
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	if err := s.initSealer(o.passphrase); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Sealed сообщает, шифруются ли значения
func (s *Storage) Sealed() bool {
	return s.sealer != nil
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketCache, bucketQueue, bucketDeadLetter, bucketMetadata} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

// initSealer настраивает шифрование. Соль и контрольное значение хранятся в metadata.
// Хранилище, однажды открытое с парольной фразой, без нее больше не открывается,
// а непустое открытое хранилище нельзя зашифровать задним числом.
func (s *Storage) initSealer(passphrase string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMetadata)
		salt := meta.Get([]byte(keySealSalt))
		check := meta.Get([]byte(keySealCheck))

		if passphrase == "" {
			if check != nil {
				return storage.ErrPassphraseRequired
			}
			return nil
		}

		if salt == nil {
			if hasKeys(tx.Bucket(bucketCache)) || hasKeys(tx.Bucket(bucketQueue)) || hasKeys(tx.Bucket(bucketDeadLetter)) {
				return fmt.Errorf("cannot seal a non-empty store, clear it first")
			}
			newSalt, err := crypto.GenerateSalt()
			if err != nil {
				return err
			}
			sealer, err := crypto.NewSealerFromPassphrase(passphrase, newSalt)
			if err != nil {
				return err
			}
			sealed, err := sealer.Seal([]byte(sealCheck), []byte(keySealCheck))
			if err != nil {
				return err
			}
			if err := meta.Put([]byte(keySealSalt), newSalt); err != nil {
				return fmt.Errorf("failed to save salt: %w", err)
			}
			if err := meta.Put([]byte(keySealCheck), sealed); err != nil {
				return fmt.Errorf("failed to save seal check: %w", err)
			}
			s.sealer = sealer
			return nil
		}

		sealer, err := crypto.NewSealerFromPassphrase(passphrase, salt)
		if err != nil {
			return err
		}
		if _, err := sealer.Open(check, []byte(keySealCheck)); err != nil {
			return storage.ErrWrongPassphrase
		}
		s.sealer = sealer
		return nil
	})
}

// handle возвращает открытую БД или ErrStorageClosed
func (s *Storage) handle() (*bbolt.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}
	return s.db, nil
}

// seal шифрует значение, если хранилище зашифровано
func (s *Storage) seal(data, key []byte) ([]byte, error) {
	if s.sealer == nil {
		return data, nil
	}
	return s.sealer.Seal(data, key)
}

// open расшифровывает значение, если хранилище зашифровано
func (s *Storage) open(data, key []byte) ([]byte, error) {
	if s.sealer == nil {
		return data, nil
	}
	return s.sealer.Open(data, key)
}

func hasKeys(b *bbolt.Bucket) bool {
	k, _ := b.Cursor().First()
	return k != nil
}
