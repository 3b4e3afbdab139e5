package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
)

// NonceSize - размер nonce для AES-GCM
const NonceSize = 12

// ErrSealedData возвращается, когда запись не удалось расшифровать
// (неверная парольная фраза или поврежденные данные)
var ErrSealedData = errors.New("sealed record authentication failed")

// Sealer шифрует записи локального хранилища AES-256-GCM.
// Ключ записи передается как associated data, поэтому значение,
// перенесенное под другой ключ, не пройдет проверку.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer создает Sealer из 32-байтного ключа
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeyLen {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeyLen, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// NewSealerFromPassphrase выводит ключ из парольной фразы и соли
func NewSealerFromPassphrase(passphrase string, salt []byte) (*Sealer, error) {
	key, err := DeriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	return NewSealer(key)
}

// Seal возвращает nonce || ciphertext || tag
func (s *Sealer) Seal(plaintext, recordKey []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, NonceSize+len(plaintext)+s.aead.Overhead())
	out = append(out, nonce...)
	return s.aead.Seal(out, nonce, plaintext, recordKey), nil
}

// Open расшифровывает данные, полученные из Seal
func (s *Sealer) Open(sealed, recordKey []byte) ([]byte, error) {
	if len(sealed) < NonceSize+s.aead.Overhead() {
		return nil, fmt.Errorf("%w: data too short", ErrSealedData)
	}
	plaintext, err := s.aead.Open(nil, sealed[:NonceSize], sealed[NonceSize:], recordKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSealedData, err)
	}
	return plaintext, nil
}
