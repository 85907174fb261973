package retry

import (
	"time"

	"github.com/rohmanhakim/cloudmeta/pkg/failure"
)

// Retry executes the provided function with retry logic.
// It calls the function up to MaxAttempts times in total, sleeping the fixed
// Interval between attempts. Only retryable errors trigger a retry; a
// non-retryable error (e.g. metadata that does not exist) is returned after
// a single attempt.
//
// When every attempt fails, the last error is returned unchanged so that
// callers see the backend's own classification, not a wrapper.
//
// Type parameter T represents the return type of the function being retried.
func Retry[T any](retryParam RetryParam, fn func() (T, failure.ClassifiedError)) (T, failure.ClassifiedError) {
	var lastErr failure.ClassifiedError
	var zero T

	if retryParam.MaxAttempts < 1 {
		return zero, &RetryError{
			Message:   "max attempt cannot be 0",
			Cause:     ErrZeroAttempt,
			Retryable: false,
		}
	}

	for attempt := 1; attempt <= retryParam.MaxAttempts; attempt++ {
		result, err := fn()

		// Success case: no error
		if err == nil {
			return result, nil
		}

		lastErr = err

		// If not retryable, return immediately
		if !isErrorRetryable(err) {
			return zero, err
		}

		// If this was the last attempt, stop sleeping and surface the error
		if attempt == retryParam.MaxAttempts {
			break
		}

		time.Sleep(retryParam.Interval)
	}

	return zero, lastErr
}

// isErrorRetryable checks if an error should be retried.
// It uses type assertion to check for the Retryable property.
func isErrorRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}

	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}

	// Fall back to the severity classification when the concrete type does
	// not expose a retryable flag.
	return err.Severity() == failure.SeverityRecoverable
}
