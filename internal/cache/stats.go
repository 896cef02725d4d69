package cache

// Stats is a snapshot of the lookup counters and the live entry count.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

// Lookups returns the number of Get calls the counters cover.
func (s Stats) Lookups() uint64 {
	return s.Hits + s.Misses
}

// HitRate returns hits as a percentage of lookups, or 0 when there were none.
func (s Stats) HitRate() float64 {
	return percentage(s.Hits, s.Lookups())
}

// MissRate returns misses as a percentage of lookups, or 0 when there were none.
func (s Stats) MissRate() float64 {
	return percentage(s.Misses, s.Lookups())
}

func percentage(n, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// GetStats returns the current counters and entry count.
func (c *Cache[V]) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:   c.hits,
		Misses: c.misses,
		Size:   len(c.items),
	}
}

// HitRate returns the percentage of lookups that found a live entry.
func (c *Cache[V]) HitRate() float64 {
	return c.GetStats().HitRate()
}

// MissRate returns the percentage of lookups that found nothing.
func (c *Cache[V]) MissRate() float64 {
	return c.GetStats().MissRate()
}

// ResetStats sets both counters back to zero. Entries are not touched.
func (c *Cache[V]) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits, c.misses = 0, 0
}
