package pathcache

// Cache defines the port interface for memoizing fetched metadata values
// under their normalized path. This interface follows the port-adapter
// pattern, allowing different cache implementations to be swapped without
// changing the accessor logic.
//
// The contract is deliberately small: entries are added once per path and
// never invalidated except by Reset, which the accessor calls at the start
// of each load cycle. There is no expiration and no persistence.
type Cache[V any] interface {
	// Get retrieves a value from the cache by its normalized path.
	// Returns the cached value and true if found, or the zero value and
	// false if not found. This method is read-only.
	Get(path string) (V, bool)

	// Put stores a value under its normalized path.
	// If the path already exists, the value is overwritten.
	Put(path string, value V)

	// Reset removes all entries. Called when a backend re-establishes its
	// session and previously cached paths must be fetched again.
	Reset()

	// Len returns the number of entries, for diagnostics and tests.
	Len() int
}
