package httpsvc

import (
	"fmt"

	"github.com/rohmanhakim/cloudmeta/internal/telemetry"
	"github.com/rohmanhakim/cloudmeta/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseRequest5xx            FetchErrorCause = "5xx"
	ErrCauseRequestTooMany        FetchErrorCause = "too many requests"
	ErrCauseRequestForbidden      FetchErrorCause = "forbidden"
	ErrCauseRequestClientError    FetchErrorCause = "client error"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("httpsvc error: %s", e.Cause)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToTelemetryCause maps backend-local error semantics
// to the canonical telemetry.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToTelemetryCause(err *FetchError) telemetry.ErrorCause {
	switch err.Cause {
	case ErrCauseNetworkFailure, ErrCauseRequest5xx, ErrCauseRequestTooMany:
		return telemetry.CauseNetworkFailure
	case ErrCauseReadResponseBodyError:
		return telemetry.CauseNetworkFailure
	default:
		return telemetry.CauseUnknown
	}
}
