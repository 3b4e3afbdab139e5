package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/votekeeper/internal/client/storage"
	"github.com/iudanet/votekeeper/internal/models"
)

// AppendMutation stores mutation under the next bucket sequence number.
// Big-endian ключи сохраняют порядок вставки при обходе курсором.
func (s *Storage) AppendMutation(ctx context.Context, m *models.QueuedMutation) (uint64, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	var id uint64
	err = db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate id: %w", err)
		}

		stored := *m
		stored.ID = seq
		if err := s.putMutation(bucket, &stored); err != nil {
			return err
		}
		id = seq
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to append mutation: %w", err)
	}

	m.ID = id
	return id, nil
}

// ListMutations returns pending mutations in id order
func (s *Storage) ListMutations(ctx context.Context) ([]*models.QueuedMutation, error) {
	return s.listBucket(bucketQueue)
}

// SaveMutation replaces an existing pending mutation
func (s *Storage) SaveMutation(ctx context.Context, m *models.QueuedMutation) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		if bucket.Get(itob(m.ID)) == nil {
			return storage.ErrMutationNotFound
		}
		return s.putMutation(bucket, m)
	})
	if err != nil {
		if errors.Is(err, storage.ErrMutationNotFound) {
			return err
		}
		return fmt.Errorf("failed to save mutation: %w", err)
	}
	return nil
}

// RemoveMutations deletes mutations by id in a single transaction
func (s *Storage) RemoveMutations(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue)
		for _, id := range ids {
			if err := bucket.Delete(itob(id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove mutations: %w", err)
	}
	return nil
}

// MoveToDeadLetter moves mutation from the queue into the dead-letter bucket
func (s *Storage) MoveToDeadLetter(ctx context.Context, m *models.QueuedMutation) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketQueue).Delete(itob(m.ID)); err != nil {
			return err
		}
		return s.putMutation(tx.Bucket(bucketDeadLetter), m)
	})
	if err != nil {
		return fmt.Errorf("failed to move mutation %d to dead letter: %w", m.ID, err)
	}
	return nil
}

// ListDeadLetters returns dead letters in id order
func (s *Storage) ListDeadLetters(ctx context.Context) ([]*models.QueuedMutation, error) {
	return s.listBucket(bucketDeadLetter)
}

// RequeueDeadLetters moves every dead letter back into the queue
func (s *Storage) RequeueDeadLetters(ctx context.Context) (int, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	var moved int
	err = db.Update(func(tx *bbolt.Tx) error {
		dead := tx.Bucket(bucketDeadLetter)
		queue := tx.Bucket(bucketQueue)

		var keys [][]byte
		err := dead.ForEach(func(k, v []byte) error {
			m, err := s.decodeMutation(k, v)
			if err != nil {
				return err
			}
			m.Attempts = 0
			m.LastError = ""
			if err := s.putMutation(queue, m); err != nil {
				return err
			}
			keys = append(keys, append([]byte(nil), k...))
			return nil
		})
		if err != nil {
			return err
		}

		// удаляем после обхода, ForEach не допускает изменения bucket
		for _, k := range keys {
			if err := dead.Delete(k); err != nil {
				return err
			}
		}
		moved = len(keys)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to requeue dead letters: %w", err)
	}
	return moved, nil
}

func (s *Storage) listBucket(name []byte) ([]*models.QueuedMutation, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	var result []*models.QueuedMutation
	err = db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(name).ForEach(func(k, v []byte) error {
			m, err := s.decodeMutation(k, v)
			if err != nil {
				return err
			}
			result = append(result, m)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", name, err)
	}
	return result, nil
}

func (s *Storage) putMutation(bucket *bbolt.Bucket, m *models.QueuedMutation) error {
	key := itob(m.ID)
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal mutation: %w", err)
	}
	data, err = s.seal(data, key)
	if err != nil {
		return err
	}
	return bucket.Put(key, data)
}

func (s *Storage) decodeMutation(k, v []byte) (*models.QueuedMutation, error) {
	plain, err := s.open(v, k)
	if err != nil {
		return nil, fmt.Errorf("mutation %d: %w", btoi(k), err)
	}
	m := &models.QueuedMutation{}
	if err := json.Unmarshal(plain, m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mutation %d: %w", btoi(k), err)
	}
	m.ID = btoi(k)
	return m, nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
