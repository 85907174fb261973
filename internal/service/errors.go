package service

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/cloudmeta/pkg/failure"
)

type ServiceErrorCause string

const (
	// ErrCauseNotExisting: the path does not exist on the provider, or the
	// backend does not support the requested operation. Terminal, never
	// retried.
	ErrCauseNotExisting ServiceErrorCause = "not existing metadata"
	// ErrCauseMetadataParse: the meta_data.json payload could not be decoded.
	ErrCauseMetadataParse ServiceErrorCause = "metadata parse failure"
)

type ServiceError struct {
	Message   string
	Retryable bool
	Cause     ServiceErrorCause
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error: %s, %s", e.Cause, e.Message)
}

func (e *ServiceError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *ServiceError) IsRetryable() bool {
	return e.Retryable
}

// NewNotExistingError builds the terminal "resource genuinely absent" error
// every backend returns for a path the provider does not expose.
func NewNotExistingError(path string) *ServiceError {
	return &ServiceError{
		Message:   fmt.Sprintf("no metadata at %q", path),
		Retryable: false,
		Cause:     ErrCauseNotExisting,
	}
}

// IsNotExisting reports whether err signals absent metadata (or an
// unsupported operation), regardless of which backend produced it.
func IsNotExisting(err error) bool {
	var serviceErr *ServiceError
	return errors.As(err, &serviceErr) && serviceErr.Cause == ErrCauseNotExisting
}
