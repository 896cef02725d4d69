package handlers

import (
	"encoding/json"
	"net/http"

	"mmry/internal/cache"

	"github.com/gin-gonic/gin"
	platformerrors "github.com/jmgilman/go/errors"
	"go.uber.org/zap"
)

// PutEntryRequest represents the request payload for storing a cache entry
type PutEntryRequest struct {
	Value json.RawMessage `json:"value"`
	TTL   string          `json:"ttl"`
}

// CacheHandler exposes a JSON-valued cache over HTTP.
type CacheHandler struct {
	Cache  *cache.Cache[json.RawMessage]
	Logger *zap.Logger
}

// GetEntries returns a snapshot of all live entries
// GET /api/cache
func (h *CacheHandler) GetEntries(c *gin.Context) {
	entries := h.Cache.GetAll()
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetEntry returns one entry; counts as a cache hit or miss
// GET /api/cache/:key
func (h *CacheHandler) GetEntry(c *gin.Context) {
	key := c.Param("key")
	value, ok := h.Cache.Get(key)
	if !ok {
		respondError(c, platformerrors.WithContext(
			platformerrors.New(platformerrors.CodeNotFound, "cache entry not found"), "key", key))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key":   key,
		"value": value,
	})
}

// PutEntry stores or replaces an entry, optionally with a TTL such as "5 minutes"
// PUT /api/cache/:key
func (h *CacheHandler) PutEntry(c *gin.Context) {
	var req PutEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Value) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. A JSON value is required.",
		})
		return
	}

	key := c.Param("key")
	if err := h.Cache.Put(key, req.Value, req.TTL); err != nil {
		respondError(c, err)
		return
	}
	h.Logger.Info("cache entry stored",
		zap.String("key", key),
		zap.String("ttl", req.TTL),
		zap.String("user_id", c.GetString("user_id")))

	c.JSON(http.StatusOK, gin.H{
		"key": key,
		"ttl": req.TTL,
	})
}

// DeleteEntry removes an entry; deleting a missing key succeeds
// DELETE /api/cache/:key
func (h *CacheHandler) DeleteEntry(c *gin.Context) {
	h.Cache.Del(c.Param("key"))
	c.Status(http.StatusNoContent)
}

// ClearEntries removes every entry and cancels their expiry
// DELETE /api/cache
func (h *CacheHandler) ClearEntries(c *gin.Context) {
	h.Cache.ClearAll()
	h.Logger.Info("cache cleared", zap.String("user_id", c.GetString("user_id")))
	c.Status(http.StatusNoContent)
}

// StatsSource is a cache whose counters can be read and reset.
type StatsSource interface {
	GetStats() cache.Stats
	ResetStats()
}

// StatsResponse is the per-cache body of GET /api/stats
type StatsResponse struct {
	cache.Stats
	HitRate  float64 `json:"hitRate"`
	MissRate float64 `json:"missRate"`
}

// StatsHandler reports statistics for a set of named caches.
type StatsHandler struct {
	Caches map[string]StatsSource
}

// GetStats returns hits, misses, size and rates for every cache
// GET /api/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	resp := make(map[string]StatsResponse, len(h.Caches))
	for name, src := range h.Caches {
		s := src.GetStats()
		resp[name] = StatsResponse{Stats: s, HitRate: s.HitRate(), MissRate: s.MissRate()}
	}
	c.JSON(http.StatusOK, resp)
}

// ResetStats zeroes the counters of every cache; entries are kept
// POST /api/stats/reset
func (h *StatsHandler) ResetStats(c *gin.Context) {
	for _, src := range h.Caches {
		src.ResetStats()
	}
	c.Status(http.StatusNoContent)
}
