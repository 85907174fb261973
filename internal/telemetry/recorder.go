package telemetry

import (
	"time"
)

/*
Telemetry Collected
- Fetch timestamps and durations
- Cache hits vs. raw fetches
- Retry counts
- Payload fingerprints (never payloads themselves)

Determinism guarantees:
 - Telemetry does not affect control flow
 - Output is stable given identical inputs

Telemetry is write-only.
No component may read telemetry to influence fetch decisions.
*/

// Sink is the write-only observability contract handed to the accessor and
// the backends. Implementations must not perform I/O decisions or affect
// control flow.
type Sink interface {
	RecordFetch(
		path string,
		cacheHit bool,
		retryCount int,
		duration time.Duration,
		sizeByte int,
	)

	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

/*
Recorder captures structured fetch events in memory.
Ordering guarantees:
- Events are recorded synchronously in the order they are received.
- Ordering is provided for debuggability, not causality.
*/
type Recorder struct {
	fetches   []FetchEvent
	errors    []ErrorEvent
	artifacts []ArtifactEvent
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordFetch(
	path string,
	cacheHit bool,
	retryCount int,
	duration time.Duration,
	sizeByte int,
) {
	r.fetches = append(r.fetches, FetchEvent{
		path:       path,
		cacheHit:   cacheHit,
		retryCount: retryCount,
		duration:   duration,
		sizeByte:   sizeByte,
	})
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	r.errors = append(r.errors, ErrorEvent{
		observedAt:  observedAt,
		packageName: packageName,
		action:      action,
		cause:       cause,
		details:     details,
		attrs:       attrs,
	})
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	r.artifacts = append(r.artifacts, ArtifactEvent{
		kind:  kind,
		path:  path,
		attrs: attrs,
	})
}

// Snapshot is a point-in-time copy of everything recorded so far, used by
// the CLI to print a post-run summary and by tests to assert on events.
type Snapshot struct {
	Fetches   []FetchEvent
	Errors    []ErrorEvent
	Artifacts []ArtifactEvent
}

// Snapshot returns copies of the recorded events; mutating the returned
// slices does not affect the recorder.
func (r *Recorder) Snapshot() Snapshot {
	s := Snapshot{
		Fetches:   make([]FetchEvent, len(r.fetches)),
		Errors:    make([]ErrorEvent, len(r.errors)),
		Artifacts: make([]ArtifactEvent, len(r.artifacts)),
	}
	copy(s.Fetches, r.fetches)
	copy(s.Errors, r.errors)
	copy(s.Artifacts, r.artifacts)
	return s
}
