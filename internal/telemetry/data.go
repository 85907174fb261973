package telemetry

import (
	"time"
)

type FetchEvent struct {
	path       string
	cacheHit   bool
	retryCount int
	duration   time.Duration
	sizeByte   int
}

func (f FetchEvent) Path() string            { return f.path }
func (f FetchEvent) CacheHit() bool          { return f.cacheHit }
func (f FetchEvent) RetryCount() int         { return f.retryCount }
func (f FetchEvent) Duration() time.Duration { return f.duration }
func (f FetchEvent) SizeByte() int           { return f.sizeByte }

type ErrorEvent struct {
	observedAt  time.Time
	packageName string
	action      string
	cause       ErrorCause
	details     string
	attrs       []Attribute
}

func (e ErrorEvent) ObservedAt() time.Time { return e.observedAt }
func (e ErrorEvent) PackageName() string   { return e.packageName }
func (e ErrorEvent) Action() string        { return e.action }
func (e ErrorEvent) Cause() ErrorCause     { return e.cause }
func (e ErrorEvent) Details() string       { return e.details }
func (e ErrorEvent) Attrs() []Attribute    { return e.attrs }

type ArtifactEvent struct {
	kind  ArtifactKind
	path  string
	attrs []Attribute
}

func (a ArtifactEvent) Kind() ArtifactKind { return a.kind }
func (a ArtifactEvent) Path() string       { return a.path }
func (a ArtifactEvent) Attrs() []Attribute { return a.attrs }

// ArtifactKind names the payload categories a fetch can produce.
type ArtifactKind string

const (
	ArtifactMetaData ArtifactKind = "meta_data"
	ArtifactUserData ArtifactKind = "user_data"
	ArtifactContent  ArtifactKind = "content"
)

type AttrKey string

const (
	AttrPath        AttrKey = "path"
	AttrURL         AttrKey = "url"
	AttrService     AttrKey = "service"
	AttrWritePath   AttrKey = "write_path"
	AttrFingerprint AttrKey = "fingerprint"
	AttrMessage     AttrKey = "message"
)

type Attribute struct {
	key   AttrKey
	value string
}

func NewAttr(key AttrKey, value string) Attribute {
	return Attribute{key: key, value: value}
}

func (a Attribute) Key() AttrKey  { return a.key }
func (a Attribute) Value() string { return a.value }

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause is for observability only.
	 - It must never be used to derive retry, continuation, or abort decisions;
	   retryability lives in failure.ClassifiedError.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Backend packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

const (
	// CauseUnknown: the failure does not map cleanly to any known category.
	CauseUnknown ErrorCause = iota
	// CauseNetworkFailure: transport or remote-availability failure
	// (timeouts, DNS, connection resets, 5xx).
	CauseNetworkFailure
	// CauseNotExisting: the requested metadata path does not exist on the
	// provider, or the backend does not support the operation.
	CauseNotExisting
	// CauseRetryFailure: the retry ceiling was exhausted.
	CauseRetryFailure
	// CauseStorageFailure: a local read or write failed.
	CauseStorageFailure
	// CauseParseFailure: a payload could not be decoded.
	CauseParseFailure
	// CauseGatewayLookup: the default-gateway discovery failed.
	CauseGatewayLookup
)
