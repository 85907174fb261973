package failure

// Severity classifies how callers must treat a failure.
//
// SeverityFatal: the operation cannot succeed by trying again (the resource
// does not exist, the payload is malformed, the backend does not support
// the operation).
// SeverityRecoverable: the failure is transient and retrying the same
// operation may succeed.
type Severity int

// accessor control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

// ClassifiedError is the error contract shared by every package in this
// module. Each package defines its own error type with a package-local
// cause table; severity is the only cross-package signal.
type ClassifiedError interface {
	error
	Severity() Severity
}
