// Package metrics exports cache statistics to Prometheus.
package metrics

import (
	"mmry/internal/cache"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// StatsSource is anything that can report cache statistics.
type StatsSource interface {
	GetStats() cache.Stats
}

// Collector reads cache statistics at scrape time. Counters come straight
// from the cache, so a ResetStats shows up as a counter reset.
type Collector struct {
	sources map[string]StatsSource

	hits    *prometheus.Desc
	misses  *prometheus.Desc
	entries *prometheus.Desc
	hitRate *prometheus.Desc
}

// NewCollector creates a collector for the given caches, keyed by the value
// of the "cache" label.
func NewCollector(namespace string, sources map[string]StatsSource) *Collector {
	labels := []string{"cache"}
	return &Collector{
		sources: sources,
		hits: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hits_total"),
			"Total number of lookups that found a live entry", labels, nil),
		misses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "misses_total"),
			"Total number of lookups that found no entry", labels, nil),
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "entries"),
			"Number of live entries", labels, nil),
		hitRate: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", "hit_rate_percent"),
			"Hits as a percentage of lookups", labels, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.entries
	ch <- c.hitRate
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for name, src := range c.sources {
		s := src.GetStats()
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits), name)
		ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses), name)
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Size), name)
		ch <- prometheus.MustNewConstMetric(c.hitRate, prometheus.GaugeValue, s.HitRate(), name)
	}
}

// NewRegistry returns a registry holding the collector plus the Go runtime
// and process collectors.
func NewRegistry(c *Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(c)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}
