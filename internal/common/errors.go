// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound = errors.New("not found")

	// Catalog errors.
	ErrEmptyCatalog = errors.New("catalog is empty")
	ErrCatalogFetch = errors.New("catalog fetch failed")
	ErrUnknownItem  = errors.New("canonical item does not exist")

	// Disambiguation errors.
	ErrDisambiguationFailed = errors.New("disambiguation failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
)

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
