package cache

import (
	"context"
	"errors"
	"time"

	dserrors "github.com/matzehuels/depscan/pkg/errors"
)

var (
	// ErrNetwork marks backend connection failures and timeouts.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is used inside backends to signal an absent key; it never
	// escapes Get, which reports a miss through its boolean.
	ErrCacheMiss = errors.New("cache miss")
)

// backendError wraps a storage failure with the CACHE_ERROR code. Callers
// such as the scanner log these and carry on without the cache.
func backendError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return dserrors.Wrap(dserrors.ErrCodeCache, err, format, args...)
}

// RetryableError marks a failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Redis calls are retried three times, starting at 200ms and doubling.
const (
	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond
)

// RetryWithBackoff calls fn until it succeeds, returns an error that is not
// retryable, or the attempts run out. ctx cancellation ends the wait early.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return retry(ctx, retryAttempts, retryDelay, fn)
}

func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return err
}
