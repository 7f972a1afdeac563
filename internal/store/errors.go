package store

import "errors"

// Sentinel errors returned by the item store. Use errors.Is() to check these.
var (
	// ErrNotInitialized indicates an operation ran before Initialize or after Close.
	ErrNotInitialized = errors.New("store not initialized")

	// ErrValidation indicates caller-supplied data was rejected. Nothing is persisted.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the referenced item does not exist.
	ErrNotFound = errors.New("item not found")

	// ErrStorage indicates the storage backend itself failed.
	ErrStorage = errors.New("storage failure")
)
