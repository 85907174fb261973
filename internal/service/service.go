package service

import (
	"github.com/rohmanhakim/cloudmeta/pkg/failure"
)

/*
Responsibilities

- Retrieve the raw value of one normalized path from the provider
- Classify failures: absent metadata vs. transient faults
- Declare capabilities (retry eligibility, password write support)

Fetch Semantics

- FetchData is uncached and unretried; the accessor owns both concerns
- Absent paths fail with a not-existing error, never an empty payload
- Any other error type marks a transient fault

A backend never builds paths; it only resolves the ones it is handed.
*/

// Service is the contract a concrete metadata backend implements.
type Service interface {
	// Name returns a stable identifier for the backend, used for logging
	// and selection by callers.
	Name() string

	// EnableRetry reports whether transient failures from this backend
	// should be retried. Backends talking to networked sources enable it;
	// backends reading purely local data leave it off.
	EnableRetry() bool

	// CanPostPassword reports whether the backend supports writing an
	// encrypted password back to the provider.
	CanPostPassword() bool

	// FetchData retrieves the value at the given normalized path.
	FetchData(path string) (Payload, failure.ClassifiedError)

	// PostData writes data to the given normalized path. Backends without
	// write support fail with a not-existing error.
	PostData(path string, data []byte) failure.ClassifiedError

	// Cleanup releases any resources the backend holds (connections, temp
	// files). It must be safe to call unconditionally.
	Cleanup() failure.ClassifiedError
}
