package retry

import "time"

// RetryParam holds the parameters for retry logic.
// These parameters are passed from outside (e.g., config) and should not
// be known by the retry handler internally.
type RetryParam struct {
	// MaxAttempts is the total number of times the function may be called,
	// including the first attempt. 1 means no retries.
	MaxAttempts int
	// Interval is the fixed delay between consecutive attempts.
	Interval time.Duration
}

// NewRetryParam creates a new RetryParam with the given settings.
func NewRetryParam(maxAttempts int, interval time.Duration) RetryParam {
	return RetryParam{
		MaxAttempts: maxAttempts,
		Interval:    interval,
	}
}

// NoRetry returns a RetryParam that allows a single attempt only.
// Backends reading purely local data run with this.
func NoRetry() RetryParam {
	return RetryParam{MaxAttempts: 1}
}
