package cache

// Store defines the key-value API of a TTL cache keyed by string.
// Implementations are expected to be goroutine-safe.
type Store[V any] interface {
	// Put stores value under key. ttl is a string such as "5 minutes";
	// an empty ttl means the entry never expires on its own.
	Put(key string, value V, ttl string) error

	// Get returns the value and whether a live entry was found.
	// Every call counts as exactly one hit or one miss.
	Get(key string) (V, bool)

	// Del removes a key if present.
	Del(key string)

	// GetAll returns a copy of every live entry.
	GetAll() map[string]V

	// ClearAll cancels every pending expiry and removes all entries.
	ClearAll()

	// GetStats returns the hit/miss counters and the current entry count.
	GetStats() Stats
}

// Ensure Cache implements Store at compile time.
var _ Store[any] = (*Cache[any])(nil)
