package storage

import "errors"

// Common storage errors
var (
	// ErrDistrictNotFound indicates that district was not found in storage
	ErrDistrictNotFound = errors.New("district not found")

	// ErrPartyNotFound indicates that party was not found in storage
	ErrPartyNotFound = errors.New("party not found")

	// ErrPartyAlreadyExists indicates that party with this name already exists
	ErrPartyAlreadyExists = errors.New("party already exists")

	// ErrCandidateNotFound indicates that candidate was not found in storage
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrCandidateAlreadyExists indicates that candidate with this ID already exists
	ErrCandidateAlreadyExists = errors.New("candidate already exists")

	// ErrUnknownReference indicates that candidate refers to a missing district or party
	ErrUnknownReference = errors.New("unknown district or party")

	// ErrIdempotencyRecordNotFound indicates that no response was stored for the key
	ErrIdempotencyRecordNotFound = errors.New("idempotency record not found")
)
