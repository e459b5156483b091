// Package kv provides the durable key-value slot stores the cart snapshot
// is written to.
package kv

import (
	"errors"
	"regexp"
	"time"

	"github.com/niksmo/storefront/pkg/retry"
)

var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrInvalidKey    = errors.New("invalid key")
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

func validKey(key string) bool {
	return keyPattern.MatchString(key)
}

var pingRetry = retry.RetryConfig{
	MaxAttempts: 5,
	Backoff:     retry.ExponentialBackoff(100 * time.Millisecond),
}
