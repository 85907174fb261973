package gateway

import (
	"fmt"

	"github.com/rohmanhakim/cloudmeta/pkg/failure"
)

// ResolveError reports a failed default-gateway discovery. It is never
// retried: callers substitute an empty gateway and continue.
type ResolveError struct {
	Message string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("gateway error: %s", e.Message)
}

func (e *ResolveError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func (e *ResolveError) IsRetryable() bool {
	return false
}
