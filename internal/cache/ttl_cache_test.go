package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newManualCache[V any]() (*Cache[V], *ManualScheduler) {
	s := NewManualScheduler()
	return New[V](Options{Scheduler: s}), s
}

func TestCache_PutGet_NoTTL(t *testing.T) {
	c := New[string](Options{})
	require.NoError(t, c.Put("key", "value", ""))

	v, ok := c.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", v)
}

func TestCache_StoresStructs(t *testing.T) {
	type named struct{ Name string }
	c := New[named](Options{})
	require.NoError(t, c.Put("key", named{Name: "value"}, ""))

	v, ok := c.Get("key")
	require.True(t, ok)
	require.Equal(t, named{Name: "value"}, v)
}

func TestCache_ZeroValueIsNotAMiss(t *testing.T) {
	c := New[*int](Options{})
	require.NoError(t, c.Put("nil", nil, ""))

	v, ok := c.Get("nil")
	require.True(t, ok)
	require.Nil(t, v)

	_, ok = c.Get("missing")
	require.False(t, ok)
}

func TestCache_ExpiryBoundaries(t *testing.T) {
	cases := []struct {
		ttl string
		d   time.Duration
	}{
		{"1 second", time.Second},
		{"1 seconds", time.Second},
		{"1 minute", time.Minute},
		{"1 minutes", time.Minute},
		{"1 hour", time.Hour},
		{"1 hours", time.Hour},
		{"1 day", 24 * time.Hour},
		{"1 days", 24 * time.Hour},
	}
	for _, tc := range cases {
		t.Run(tc.ttl, func(t *testing.T) {
			c, s := newManualCache[string]()
			require.NoError(t, c.Put("key", "value", tc.ttl))

			s.Advance(tc.d - time.Millisecond)
			v, ok := c.Get("key")
			require.True(t, ok)
			require.Equal(t, "value", v)

			s.Advance(time.Millisecond)
			_, ok = c.Get("key")
			require.False(t, ok)
		})
	}
}

func TestCache_NotExpiredBeforeTTL(t *testing.T) {
	c, s := newManualCache[string]()
	require.NoError(t, c.Put("key", "value", "5 minutes"))
	s.Advance(time.Second)

	v, ok := c.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", v)
}

func TestCache_MultipleTTLs(t *testing.T) {
	c, s := newManualCache[string]()
	require.NoError(t, c.Put("key1", "value1", "1 minutes"))
	require.NoError(t, c.Put("key2", "value2", "30 seconds"))

	require.Equal(t, map[string]string{"key1": "value1", "key2": "value2"}, c.GetAll())

	s.Advance(30 * time.Second)
	require.Equal(t, map[string]string{"key1": "value1"}, c.GetAll())

	s.Advance(30 * time.Second)
	require.Empty(t, c.GetAll())
}

func TestCache_ReplaceCancelsPendingExpiry(t *testing.T) {
	c, s := newManualCache[string]()
	require.NoError(t, c.Put("key", "old", "1 seconds"))
	require.NoError(t, c.Put("key", "new", ""))
	require.Equal(t, 0, s.Pending())

	s.Advance(time.Hour)
	v, ok := c.Get("key")
	require.True(t, ok)
	require.Equal(t, "new", v)
}

func TestCache_ReplaceReschedulesExpiry(t *testing.T) {
	c, s := newManualCache[string]()
	require.NoError(t, c.Put("key", "old", "1 seconds"))
	s.Advance(500 * time.Millisecond)
	require.NoError(t, c.Put("key", "new", "1 seconds"))
	require.Equal(t, 1, s.Pending())

	s.Advance(500 * time.Millisecond)
	v, ok := c.Get("key")
	require.True(t, ok)
	require.Equal(t, "new", v)

	s.Advance(500 * time.Millisecond)
	_, ok = c.Get("key")
	require.False(t, ok)
}

func TestCache_StaleExpiryIsIgnored(t *testing.T) {
	c, _ := newManualCache[string]()
	require.NoError(t, c.Put("key", "old", ""))
	stale := c.items["key"]
	require.NoError(t, c.Put("key", "new", ""))

	// A callback for a replaced entry must not remove the new one.
	c.expire("key", stale)
	v, ok := c.Get("key")
	require.True(t, ok)
	require.Equal(t, "new", v)
}

func TestCache_InvalidTTLLeavesCacheUnchanged(t *testing.T) {
	c, s := newManualCache[string]()

	err := c.Put("k", "v", "5 fortnights")
	require.True(t, errors.Is(err, ErrInvalidUnit))
	require.Empty(t, c.GetAll())
	require.Equal(t, 0, s.Pending())

	require.NoError(t, c.Put("k", "prior", "1 minute"))
	err = c.Put("k", "v", "5 fortnights")
	require.True(t, errors.Is(err, ErrInvalidUnit))
	require.Equal(t, map[string]string{"k": "prior"}, c.GetAll())
	require.Equal(t, 1, s.Pending())

	err = c.Put("k", "v", "soon minutes")
	require.True(t, errors.Is(err, ErrInvalidAmount))
	require.Equal(t, map[string]string{"k": "prior"}, c.GetAll())
}

func TestCache_Del(t *testing.T) {
	c, s := newManualCache[string]()
	require.NoError(t, c.Put("key", "value", "1 minute"))
	c.Del("key")
	require.Equal(t, 0, s.Pending())

	_, ok := c.Get("key")
	require.False(t, ok)

	// Deleting an absent key is a no-op.
	c.Del("key")
	c.Del("never-set")
	_, ok = c.Get("never-set")
	require.False(t, ok)
}

func TestCache_GetAllIsACopy(t *testing.T) {
	c := New[string](Options{})
	require.NoError(t, c.Put("k1", "v1", ""))
	require.NoError(t, c.Put("k2", "v2", ""))

	all := c.GetAll()
	require.Equal(t, map[string]string{"k1": "v1", "k2": "v2"}, all)

	all["k3"] = "v3"
	delete(all, "k1")
	require.Equal(t, map[string]string{"k1": "v1", "k2": "v2"}, c.GetAll())
}

func TestCache_ClearAll(t *testing.T) {
	c, s := newManualCache[string]()
	require.NoError(t, c.Put("k1", "v1", "1 second"))
	require.NoError(t, c.Put("k2", "v2", "1 day"))
	require.NoError(t, c.Put("k3", "v3", ""))
	c.Get("k1")
	c.Get("nope")

	c.ClearAll()
	require.Empty(t, c.GetAll())
	require.Equal(t, 0, s.Pending())

	// Entries written after the clear are not removed by the old timers.
	require.NoError(t, c.Put("k1", "fresh", ""))
	s.Advance(48 * time.Hour)
	require.Equal(t, map[string]string{"k1": "fresh"}, c.GetAll())

	stats := c.GetStats()
	require.Equal(t, uint64(1), stats.Hits)
	require.Equal(t, uint64(1), stats.Misses)
}

func TestCache_InstancesAreIndependent(t *testing.T) {
	a := New[string](Options{})
	b := New[string](Options{})
	require.NoError(t, a.Put("key", "a", ""))

	_, ok := b.Get("key")
	require.False(t, ok)
	require.Equal(t, uint64(0), a.GetStats().Misses)
	require.Equal(t, uint64(1), b.GetStats().Misses)
}

func TestCache_Events(t *testing.T) {
	s := NewManualScheduler()
	var events []Event
	c := New[int](Options{Scheduler: s, OnEvent: func(e Event) { events = append(events, e) }})

	require.NoError(t, c.Put("a", 1, "1 second"))
	require.NoError(t, c.Put("b", 2, ""))
	c.Del("b")
	c.Del("b")
	s.Advance(time.Second)
	require.NoError(t, c.Put("c", 3, ""))
	c.ClearAll()

	require.Equal(t, []Event{
		{Type: EventPut, Key: "a"},
		{Type: EventPut, Key: "b"},
		{Type: EventDelete, Key: "b"},
		{Type: EventExpire, Key: "a"},
		{Type: EventPut, Key: "c"},
		{Type: EventClear, Count: 1},
	}, events)
}

func TestCache_RealSchedulerExpires(t *testing.T) {
	c := New[string](Options{})
	require.NoError(t, c.Put("k", "v", "0 seconds"))

	require.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int](Options{})
	keys := 50
	rounds := 100

	var wg sync.WaitGroup
	for i := 0; i < keys; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			for r := 0; r < rounds; r++ {
				_ = c.Put(key, r, "1 hour")
				_, _ = c.Get(key)
			}
		}()
	}
	wg.Wait()
	defer c.ClearAll()

	stats := c.GetStats()
	require.Equal(t, keys, stats.Size)
	require.Equal(t, uint64(keys*rounds), stats.Hits)
	require.Equal(t, uint64(0), stats.Misses)
}
