// Package cache implements a single-process, in-memory key-value cache with
// optional per-entry expiry and hit/miss statistics.
//
// TTLs are written as "<amount> <unit>" strings ("30 seconds", "1 day").
// Each entry with a TTL owns exactly one scheduled expiry callback, which is
// cancelled when the entry is replaced, deleted or cleared. Time is supplied
// by a Scheduler so tests can drive expiry with ManualScheduler.
package cache
