package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a transient backend failure, such as a refused
// connection while Redis is still starting.
type RetryableError struct{ Err error }

// Retryable wraps err so RetryWithBackoff tries again. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err or anything it wraps is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const retryAttempts = 3

// retryDelay is the wait before the second attempt; it doubles after that.
var retryDelay = time.Second

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable error,
// or has been tried three times. The last error is returned unwrapped from
// its RetryableError.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == retryAttempts {
			return errors.Unwrap(err)
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
}
