package common

import (
	"errors"
	"fmt"
	"time"
)

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Content errors
	ErrContentTypeNotFound = errors.New("content type not found")
	ErrDuplicateKey        = errors.New("content key already exists")

	// Lock errors
	ErrLockConflict = errors.New("content is locked by another admin")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// LockConflictError carries the holder details so the UI can tell the
// acquiring admin who is editing and until when.
type LockConflictError struct {
	LockedBy     string
	LockedByName string
	ExpiresAt    time.Time
}

func (e *LockConflictError) Error() string {
	return fmt.Sprintf("content is locked by %s until %s", e.LockedBy, e.ExpiresAt.Format(time.RFC3339))
}

// Unwrap makes errors.Is(err, ErrLockConflict) work for callers
func (e *LockConflictError) Unwrap() error {
	return ErrLockConflict
}
