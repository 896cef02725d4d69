package cache

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// entry stores a cached value and the timer that will expire it.
type entry[V any] struct {
	value V
	timer Timer // nil means no expiration
}

// Cache is an in-memory string-keyed cache with optional per-entry TTL and
// hit/miss accounting. Expired entries are removed by a scheduled callback,
// so a key present in the map is always live.
//
// All methods are safe for concurrent use. Each Cache is independent; there
// is no shared or package-level state.
type Cache[V any] struct {
	mu sync.Mutex

	items  map[string]*entry[V]
	hits   uint64
	misses uint64

	scheduler Scheduler
	logger    *zap.Logger
	onEvent   func(Event)
}

// Options controls construction of a Cache. The zero value is ready to use.
type Options struct {
	// Scheduler runs expiry callbacks. Defaults to RealScheduler.
	Scheduler Scheduler

	// Logger receives debug logs about expiry. Defaults to a no-op logger.
	Logger *zap.Logger

	// OnEvent, if set, is called after every put, delete, expiry and clear.
	// It runs outside the cache lock and may call back into the cache.
	OnEvent func(Event)
}

var nopLogger = zap.NewNop()

// New constructs an empty Cache.
func New[V any](opts Options) *Cache[V] {
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler{}
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger
	}
	return &Cache[V]{
		items:     make(map[string]*entry[V]),
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
		onEvent:   opts.OnEvent,
	}
}

// Put stores value under key, replacing any previous entry. A non-empty ttl
// ("30 seconds", "1 day", ...) schedules the entry for removal; an empty ttl
// stores it without expiry. Any expiry pending for the previous entry is
// cancelled either way.
//
// An invalid ttl is reported before anything is changed.
func (c *Cache[V]) Put(key string, value V, ttl string) error {
	var (
		d       time.Duration
		expires = ttl != ""
	)
	if expires {
		var err error
		if d, err = ParseTTL(ttl); err != nil {
			return err
		}
	}

	e := &entry[V]{value: value}

	c.mu.Lock()
	if expires {
		e.timer = c.scheduler.AfterFunc(d, func() { c.expire(key, e) })
	}
	if old, ok := c.items[key]; ok {
		stopTimer(old)
	}
	c.items[key] = e
	c.mu.Unlock()

	c.emit(Event{Type: EventPut, Key: key})
	return nil
}

// Get returns the value stored under key. The boolean is false when there is
// no live entry, which distinguishes a miss from a stored zero value.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Del removes key and cancels its pending expiry. Deleting a missing key is a no-op.
func (c *Cache[V]) Del(key string) {
	c.mu.Lock()
	e, ok := c.items[key]
	if ok {
		stopTimer(e)
		delete(c.items, key)
	}
	c.mu.Unlock()

	if ok {
		c.emit(Event{Type: EventDelete, Key: key})
	}
}

// GetAll returns a snapshot of every live entry. The map is a copy owned by the caller.
func (c *Cache[V]) GetAll() map[string]V {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]V, len(c.items))
	for k, e := range c.items {
		out[k] = e.value
	}
	return out
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// ClearAll cancels every pending expiry and removes all entries.
// Hit and miss counters are left as they are; see ResetStats.
func (c *Cache[V]) ClearAll() {
	c.mu.Lock()
	n := len(c.items)
	for _, e := range c.items {
		stopTimer(e)
	}
	c.items = make(map[string]*entry[V])
	c.mu.Unlock()

	c.logger.Debug("cache cleared", zap.Int("entries", n))
	c.emit(Event{Type: EventClear, Count: n})
}

// expire runs when the timer of e fires. The entry is only removed if it is
// still the one stored under key: a Put may have replaced it after the timer
// fired but before this callback got the lock.
func (c *Cache[V]) expire(key string, e *entry[V]) {
	c.mu.Lock()
	cur, ok := c.items[key]
	if !ok || cur != e {
		c.mu.Unlock()
		return
	}
	delete(c.items, key)
	c.mu.Unlock()

	c.logger.Debug("cache entry expired", zap.String("key", key))
	c.emit(Event{Type: EventExpire, Key: key})
}

func (c *Cache[V]) emit(evt Event) {
	if c.onEvent != nil {
		c.onEvent(evt)
	}
}

func stopTimer[V any](e *entry[V]) {
	if e.timer != nil {
		e.timer.Stop()
	}
}
