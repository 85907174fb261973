package pathcache

// Memory is an in-memory implementation of the Cache interface backed by a
// plain map.
//
// It is intentionally not safe for concurrent use: the accessor that owns it
// runs single-threaded within one boot-time execution context, and callers
// sharing an accessor across goroutines must synchronize externally.
type Memory[V any] struct {
	data map[string]V
}

// NewMemory creates a new in-memory cache instance.
// The cache is initialized empty and ready for use.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{
		data: make(map[string]V),
	}
}

// Get retrieves a value from the cache by its normalized path.
// Returns the cached value and true if the path exists, or the zero value
// and false if it does not.
func (c *Memory[V]) Get(path string) (V, bool) {
	value, exists := c.data[path]
	return value, exists
}

// Put stores a value under its normalized path.
// If the path already exists, the value is overwritten.
func (c *Memory[V]) Put(path string, value V) {
	c.data[path] = value
}

// Reset removes all entries from the cache.
func (c *Memory[V]) Reset() {
	c.data = make(map[string]V)
}

// Len returns the number of entries in the cache.
func (c *Memory[V]) Len() int {
	return len(c.data)
}
