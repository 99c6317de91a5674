// Package apperrors holds the error kinds shared by every module.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreFailure marks any failure coming from the persistence layer.
	// It is never retried here.
	ErrStoreFailure = errors.New("store failure")

	// ErrLimitOutOfRange is returned when a pagination limit does not fit the
	// store's count type.
	ErrLimitOutOfRange = errors.New("limit out of range")
)

// Store wraps a repository error so callers can match both ErrStoreFailure
// and the original cause.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreFailure, err)
}
