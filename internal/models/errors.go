package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that the referenced entity id does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference indicates that a foreign key does not resolve to an existing row
	ErrInvalidReference = errors.New("invalid reference")

	// ErrValidation indicates that the input was rejected before reaching the store
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate indicates that a unique name is already taken
	ErrDuplicate = errors.New("already exists")

	// ErrOperationFailed indicates that the store failed and the transaction was rolled back
	ErrOperationFailed = errors.New("operation failed")

	// ErrCacheMiss indicates that the key is absent or expired
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable indicates that the cache backend cannot be used
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrRateLimitExceeded indicates that rate limit has been exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// EntityError represents an error for an operation on a specific entity
type EntityError struct {
	Entity  string
	ID      int64
	Message string
	Err     error
}

func (e *EntityError) Error() string {
	target := e.Entity
	if e.ID != 0 {
		target = fmt.Sprintf("%s %d", e.Entity, e.ID)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", target, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", target, e.Message)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

// NewEntityError creates a new entity-specific error
func NewEntityError(entity string, id int64, message string, err error) *EntityError {
	return &EntityError{
		Entity:  entity,
		ID:      id,
		Message: message,
		Err:     err,
	}
}

// NotFound is shorthand for an EntityError wrapping ErrNotFound
func NotFound(entity string, id int64) error {
	return NewEntityError(entity, id, "does not exist", ErrNotFound)
}

// ValidationError is shorthand for an EntityError wrapping ErrValidation
func ValidationError(entity, message string) error {
	return NewEntityError(entity, 0, message, ErrValidation)
}
