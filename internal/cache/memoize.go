package cache

import (
	"encoding/json"

	"github.com/jmgilman/go/errors"
)

// CompositeKey derives the cache key used for a memoized call: key followed by
// the JSON encoding of params. The encoding is order-sensitive and stable, so
// the same argument list always maps to the same key.
func CompositeKey(key string, params []any) (string, error) {
	if params == nil {
		params = []any{}
	}
	b, err := json.Marshal(params)
	if err != nil {
		return "", errors.WrapWithContext(ErrUnserializableParams, errors.CodeInvalidInput,
			"encode parameters: "+err.Error(),
			map[string]interface{}{"key": key})
	}
	return key + string(b), nil
}

// CacheFunction returns the cached result of fn(params...) if one is stored
// under the composite key for key and params. Otherwise it calls fn, stores
// the result with the given ttl and returns it.
//
// fn runs synchronously and outside the cache lock. Concurrent misses for the
// same key each call fn; the last result stored wins.
func (c *Cache[V]) CacheFunction(key string, fn func(params ...any) V, params []any, ttl string) (V, error) {
	return c.CacheFunctionE(key, func(params ...any) (V, error) {
		return fn(params...), nil
	}, params, ttl)
}

// CacheFunctionE is CacheFunction for functions that can fail. An error from
// fn is returned as is and nothing is cached.
func (c *Cache[V]) CacheFunctionE(key string, fn func(params ...any) (V, error), params []any, ttl string) (V, error) {
	var zero V

	if ttl != "" {
		if _, err := ParseTTL(ttl); err != nil {
			return zero, err
		}
	}
	ck, err := CompositeKey(key, params)
	if err != nil {
		return zero, err
	}

	if v, ok := c.Get(ck); ok {
		return v, nil
	}

	v, err := fn(params...)
	if err != nil {
		return zero, err
	}
	if err := c.Put(ck, v, ttl); err != nil {
		return zero, err
	}
	return v, nil
}

// Memoize binds fn to c so that every call goes through CacheFunctionE
// under key with the given ttl.
func Memoize[V any](c *Cache[V], key string, fn func(params ...any) (V, error), ttl string) func(params ...any) (V, error) {
	return func(params ...any) (V, error) {
		return c.CacheFunctionE(key, fn, params, ttl)
	}
}
