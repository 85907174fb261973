package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rohmanhakim/cloudmeta/internal/pathcache"
	"github.com/rohmanhakim/cloudmeta/internal/telemetry"
	"github.com/rohmanhakim/cloudmeta/pkg/failure"
	"github.com/rohmanhakim/cloudmeta/pkg/hashutil"
	"github.com/rohmanhakim/cloudmeta/pkg/retry"
)

/*
Responsibilities

- Build normalized paths following the provider convention
- Memoize successful fetches for the lifetime of one load cycle
- Wrap backend fetches in the fixed-interval retry policy
- Expose typed accessors over the generic path-based fetch

Control flow: typed accessor → path builder → cache lookup → (on miss)
retrying raw fetch → cache store → return. Nothing is cached on failure.

The accessor is single-threaded by design: one instance per boot-time
execution context, retries serialize via blocking sleep, and the cache is
not synchronized.
*/

// Accessor wraps a backend Service with caching, retries and telemetry.
type Accessor struct {
	svc        Service
	cache      pathcache.Cache[Payload]
	sink       telemetry.Sink
	retryParam retry.RetryParam
}

// NewAccessor builds an accessor around svc. retryCount is the number of
// retries after the first attempt; it only applies when the backend opts
// into retrying.
func NewAccessor(
	svc Service,
	cache pathcache.Cache[Payload],
	sink telemetry.Sink,
	retryCount int,
	retryInterval time.Duration,
) *Accessor {
	return &Accessor{
		svc:        svc,
		cache:      cache,
		sink:       sink,
		retryParam: retry.NewRetryParam(retryCount+1, retryInterval),
	}
}

// Name returns the backend's stable identifier.
func (a *Accessor) Name() string {
	return a.svc.Name()
}

// CanPostPassword reports whether the backend supports password writes.
func (a *Accessor) CanPostPassword() bool {
	return a.svc.CanPostPassword()
}

// Load resets the cache to empty. Called when the backend needs to
// re-establish a session before cached-path semantics can be reused.
// Side effect only; never fails.
func (a *Accessor) Load() {
	a.cache.Reset()
}

// Cleanup delegates to the backend's resource-release hook. Safe to call
// unconditionally, including when Load was never called.
func (a *Accessor) Cleanup() failure.ClassifiedError {
	return a.svc.Cleanup()
}

// GetContent returns the content blob registered under name.
func (a *Accessor) GetContent(category string, name string) ([]byte, failure.ClassifiedError) {
	payload, err := a.cachedFetch(contentPath(category, name))
	if err != nil {
		return nil, err
	}
	a.recordArtifact(telemetry.ArtifactContent, contentPath(category, name), payload)
	return payload.Raw(), nil
}

// GetUserData returns the instance user-data blob. An empty version means
// "latest".
func (a *Accessor) GetUserData(category string, version string) ([]byte, failure.ClassifiedError) {
	path := userDataPath(category, orDefaultVersion(version))
	payload, err := a.cachedFetch(path)
	if err != nil {
		return nil, err
	}
	a.recordArtifact(telemetry.ArtifactUserData, path, payload)
	return payload.Raw(), nil
}

// GetMetaData returns the instance metadata document. A raw payload is
// parsed as JSON; a payload the backend already structured is passed
// through unchanged. An empty version means "latest".
func (a *Accessor) GetMetaData(category string, version string) (map[string]any, failure.ClassifiedError) {
	path := metaDataPath(category, orDefaultVersion(version))
	payload, err := a.cachedFetch(path)
	if err != nil {
		return nil, err
	}
	a.recordArtifact(telemetry.ArtifactMetaData, path, payload)

	if payload.Structured() {
		return payload.Document(), nil
	}

	var doc map[string]any
	if jsonErr := json.Unmarshal(payload.Raw(), &doc); jsonErr != nil {
		parseErr := &ServiceError{
			Message:   fmt.Sprintf("decoding %s: %v", path, jsonErr),
			Retryable: false,
			Cause:     ErrCauseMetadataParse,
		}
		a.recordError("Accessor.GetMetaData", telemetry.CauseParseFailure, parseErr, path)
		return nil, parseErr
	}
	return doc, nil
}

// PasswordSet reports whether the provider holds a non-empty password blob.
// It calls the backend directly, bypassing both the cache and the retry
// wrapper. Documented original behavior, kept as-is.
func (a *Accessor) PasswordSet(version string) (bool, failure.ClassifiedError) {
	payload, err := a.svc.FetchData(passwordPath(orDefaultVersion(version)))
	if err != nil {
		return false, err
	}
	return !payload.Empty(), nil
}

// PostPassword writes the base64-encoded encrypted password to the
// provider through the retrying wrapper. A backend without write support
// fails with a not-existing error.
func (a *Accessor) PostPassword(encPasswordB64 string, version string) failure.ClassifiedError {
	path := passwordPath(orDefaultVersion(version))
	_, err := retry.Retry(a.retryParamFor(), func() (struct{}, failure.ClassifiedError) {
		return struct{}{}, a.svc.PostData(path, []byte(encPasswordB64))
	})
	if err != nil {
		a.recordError("Accessor.PostPassword", causeFor(err), err, path)
		return err
	}
	return nil
}

// cachedFetch implements the shared read path: cache lookup, then a
// retrying raw fetch whose result is memoized under the normalized path.
func (a *Accessor) cachedFetch(path string) (Payload, failure.ClassifiedError) {
	start := time.Now()

	if cached, ok := a.cache.Get(path); ok {
		a.sink.RecordFetch(path, true, 0, time.Since(start), len(cached.Raw()))
		return cached, nil
	}

	payload, err := retry.Retry(a.retryParamFor(), func() (Payload, failure.ClassifiedError) {
		return a.svc.FetchData(path)
	})
	if err != nil {
		a.recordError("Accessor.cachedFetch", causeFor(err), err, path)
		return Payload{}, err
	}

	a.cache.Put(path, payload)
	a.sink.RecordFetch(path, false, a.retryParam.MaxAttempts-1, time.Since(start), len(payload.Raw()))
	return payload, nil
}

// retryParamFor narrows the configured policy to a single attempt for
// backends that read purely local data.
func (a *Accessor) retryParamFor() retry.RetryParam {
	if a.svc.EnableRetry() {
		return a.retryParam
	}
	return retry.NoRetry()
}

func (a *Accessor) recordArtifact(kind telemetry.ArtifactKind, path string, payload Payload) {
	attrs := []telemetry.Attribute{
		telemetry.NewAttr(telemetry.AttrService, a.svc.Name()),
		telemetry.NewAttr(telemetry.AttrPath, path),
	}
	// Fingerprint instead of payload: telemetry must never carry user data.
	if !payload.Structured() {
		if fp, err := hashutil.Fingerprint(payload.Raw(), hashutil.HashAlgoBLAKE3); err == nil {
			attrs = append(attrs, telemetry.NewAttr(telemetry.AttrFingerprint, fp))
		}
	}
	a.sink.RecordArtifact(kind, path, attrs)
}

func (a *Accessor) recordError(action string, cause telemetry.ErrorCause, err error, path string) {
	a.sink.RecordError(
		time.Now(),
		"service",
		action,
		cause,
		err.Error(),
		[]telemetry.Attribute{
			telemetry.NewAttr(telemetry.AttrService, a.svc.Name()),
			telemetry.NewAttr(telemetry.AttrPath, path),
		},
	)
}

// causeFor maps accessor-level error semantics to the canonical telemetry
// cause table. Observational only; control flow never reads it.
func causeFor(err failure.ClassifiedError) telemetry.ErrorCause {
	switch {
	case IsNotExisting(err):
		return telemetry.CauseNotExisting
	case err.Severity() == failure.SeverityRecoverable:
		return telemetry.CauseRetryFailure
	default:
		return telemetry.CauseUnknown
	}
}
