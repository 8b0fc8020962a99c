package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for caching operations.
var (
	// ErrNetwork marks a cache backend that could not be reached in time.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrCacheMiss is returned by backends internally for absent keys;
	// Cache.Get reports it as a plain miss.
	ErrCacheMiss = errors.New("cache miss")
)

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff controls how often and how patiently a call is retried.
type Backoff struct {
	Attempts int           // Total calls, including the first
	Delay    time.Duration // Wait before the second call; doubles after each retry
	Max      time.Duration // Upper bound for a single wait; 0 means none
}

// DefaultBackoff is tuned for single Redis round trips.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 50 * time.Millisecond, Max: time.Second}

// RetryWithBackoff runs fn under DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}

// Retry calls fn until it succeeds, returns an error that is not
// Retryable, or the attempts run out. The last error is returned.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
	return err
}
