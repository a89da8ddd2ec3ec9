package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage indicates a metadata store I/O failure. Storage failures
	// are fatal for the run; they are never converted into record statuses.
	ErrStorage = errors.New("storage failure")

	// ErrConfigIncomplete indicates required credentials or IDs are absent.
	ErrConfigIncomplete = errors.New("configuration incomplete")

	// ErrRateLimited indicates an upstream API rate limit was exceeded
	// and retries were exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrNoEmbedding indicates the embedding service produced no vector
	// for the given input. Callers treat this as "no embedding produced",
	// not as a processing failure.
	ErrNoEmbedding = errors.New("no embedding produced")
)
