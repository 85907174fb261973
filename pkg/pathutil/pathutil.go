package pathutil

import "path"

// Join builds the slash-joined, normalized form of the given path segments.
// The result is the canonical spelling used both as a cache key and as the
// path handed to a metadata backend.
//
// The normalization follows these rules:
//   - Segments are joined with "/" (POSIX style, regardless of host OS)
//   - Redundant separators are collapsed
//   - "." segments are removed and ".." segments are resolved
//   - The empty join yields "."
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
//   - Idempotent: Join(Join(segments...)) == Join(segments...)
func Join(segments ...string) string {
	return path.Join(segments...)
}

// Normalize collapses redundant separators and "."/".." segments of an
// already-joined slash path. Equivalent to Join with a single segment.
func Normalize(p string) string {
	return path.Clean(p)
}
