package storage

import "errors"

// Common client storage errors
var (
	// ErrCacheEntryNotFound indicates that no cache entry exists for the key
	ErrCacheEntryNotFound = errors.New("cache entry not found")

	// ErrMutationNotFound indicates that queued mutation was not found
	ErrMutationNotFound = errors.New("queued mutation not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrStorageLocked indicates that another process holds the database file
	ErrStorageLocked = errors.New("storage is locked by another process")

	// ErrWrongPassphrase indicates that the passphrase does not open the sealed store
	ErrWrongPassphrase = errors.New("wrong storage passphrase")

	// ErrPassphraseRequired indicates that the store is sealed and no passphrase was given
	ErrPassphraseRequired = errors.New("storage is sealed: passphrase required")
)
