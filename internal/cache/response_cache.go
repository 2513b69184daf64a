// Package cache holds the response cache used by the HTTP API to avoid re-slicing and
// re-encoding device data for repeated queries.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ResponseCacheEntry is an encoded response with its cache metadata.
type ResponseCacheEntry struct {
	// Payload is the encoded response body.
	Payload json.RawMessage `json:"payload"`
	// CachedAt is when the entry was stored.
	CachedAt time.Time `json:"cached_at"`
	// ExpiresAt is when the entry stops being served.
	ExpiresAt time.Time `json:"expires_at"`
}

// ResponseCacheStats tracks cache performance.
type ResponseCacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Sets    int64 `json:"sets"`
	Errors  int64 `json:"errors"`
	Entries int64 `json:"entries"`
}

// HitRate returns hits as a percentage of lookups.
func (s ResponseCacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// ResponseCache stores encoded API responses by key.
type ResponseCache interface {
	// Get returns the payload stored under key.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores payload under key for the cache TTL.
	Set(ctx context.Context, key string, payload []byte)
	// Keys lists the keys currently cached, without the cache prefix.
	Keys(ctx context.Context) ([]string, error)
	// Clear removes every cached response.
	Clear(ctx context.Context) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	// Backend names the implementation.
	Backend() string
	// GetStats returns the current cache statistics.
	GetStats() ResponseCacheStats
	// LogStats logs the current cache statistics.
	LogStats()
	// Close releases the backing store.
	Close() error
}

// Key builds the cache key of a device data query.
func Key(device, metric, start, end string) string {
	return strings.Join([]string{device, metric, start, end}, ":")
}

// RedisResponseCache implements ResponseCache on Redis.
type RedisResponseCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
	logger *logrus.Logger

	mu    sync.Mutex
	stats ResponseCacheStats
}

// NewRedisResponseCache creates a Redis backed response cache.
func NewRedisResponseCache(client redis.UniversalClient, ttl time.Duration, logger *logrus.Logger) *RedisResponseCache {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RedisResponseCache{
		client: client,
		ttl:    ttl,
		prefix: "response_cache:",
		logger: logger,
	}
}

// Get retrieves a cached response from Redis.
func (c *RedisResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		c.record(func(s *ResponseCacheStats) { s.Misses++ })
		return nil, false
	}
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Redis error reading cached response")
		c.record(func(s *ResponseCacheStats) { s.Misses++; s.Errors++ })
		return nil, false
	}

	var entry ResponseCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Discarding undecodable cached response")
		c.record(func(s *ResponseCacheStats) { s.Misses++; s.Errors++ })
		return nil, false
	}

	c.record(func(s *ResponseCacheStats) { s.Hits++ })
	return entry.Payload, true
}

// Set stores a response in Redis with the cache TTL.
func (c *RedisResponseCache) Set(ctx context.Context, key string, payload []byte) {
	now := time.Now()
	data, err := json.Marshal(ResponseCacheEntry{
		Payload:   payload,
		CachedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	})
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Error encoding response for cache")
		c.record(func(s *ResponseCacheStats) { s.Errors++ })
		return
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Redis error caching response")
		c.record(func(s *ResponseCacheStats) { s.Errors++ })
		return
	}

	c.record(func(s *ResponseCacheStats) { s.Sets++ })
	c.logger.WithFields(logrus.Fields{"key": key, "bytes": len(payload), "ttl": c.ttl.String()}).Debug("Cached response")
}

// Keys lists cached keys using SCAN.
func (c *RedisResponseCache) Keys(ctx context.Context) ([]string, error) {
	raw, err := c.scan(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		if len(k) > len(c.prefix) {
			keys = append(keys, k[len(c.prefix):])
		}
	}
	return keys, nil
}

// Clear removes all cached responses.
func (c *RedisResponseCache) Clear(ctx context.Context) error {
	keys, err := c.scan(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("error clearing cache: %w", err)
	}
	c.logger.WithField("entries", len(keys)).Info("Cleared response cache")
	return nil
}

func (c *RedisResponseCache) scan(ctx context.Context) ([]string, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning cache keys: %w", err)
	}
	return keys, nil
}

// Ping checks the Redis connection.
func (c *RedisResponseCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Backend returns "redis".
func (c *RedisResponseCache) Backend() string {
	return "redis"
}

// GetStats returns current cache statistics. Entries is filled from a key scan.
func (c *RedisResponseCache) GetStats() ResponseCacheStats {
	c.mu.Lock()
	stats := c.stats
	c.mu.Unlock()

	if keys, err := c.scan(context.Background()); err == nil {
		stats.Entries = int64(len(keys))
	}
	return stats
}

// LogStats logs current cache statistics.
func (c *RedisResponseCache) LogStats() {
	logStats(c.logger, c.Backend(), c.GetStats())
}

// Close closes the Redis client.
func (c *RedisResponseCache) Close() error {
	return c.client.Close()
}

func (c *RedisResponseCache) record(update func(*ResponseCacheStats)) {
	c.mu.Lock()
	update(&c.stats)
	c.mu.Unlock()
}

// InMemoryResponseCache is the process-local ResponseCache used when Redis is not configured.
type InMemoryResponseCache struct {
	ttl    time.Duration
	now    func() time.Time
	logger *logrus.Logger

	mu      sync.RWMutex
	entries map[string]ResponseCacheEntry
	stats   ResponseCacheStats
}

// NewInMemoryResponseCache creates an in-memory response cache.
func NewInMemoryResponseCache(ttl time.Duration, logger *logrus.Logger) *InMemoryResponseCache {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &InMemoryResponseCache{
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		entries: make(map[string]ResponseCacheEntry),
	}
}

// Get returns a cached response; expired entries are dropped and count as misses.
func (c *InMemoryResponseCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		delete(c.entries, key)
		c.stats.Misses++
		return nil, false
	}

	c.stats.Hits++
	return entry.Payload, true
}

// Set stores a response until the TTL elapses.
func (c *InMemoryResponseCache) Set(_ context.Context, key string, payload []byte) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ResponseCacheEntry{
		Payload:   payload,
		CachedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.stats.Sets++
}

// Keys lists the unexpired keys.
func (c *InMemoryResponseCache) Keys(_ context.Context) ([]string, error) {
	now := c.now()

	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k, entry := range c.entries {
		if !now.After(entry.ExpiresAt) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Clear removes all entries.
func (c *InMemoryResponseCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]ResponseCacheEntry)
	return nil
}

// Ping always succeeds.
func (c *InMemoryResponseCache) Ping(context.Context) error {
	return nil
}

// Backend returns "memory".
func (c *InMemoryResponseCache) Backend() string {
	return "memory"
}

// GetStats returns current cache statistics.
func (c *InMemoryResponseCache) GetStats() ResponseCacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stats := c.stats
	stats.Entries = int64(len(c.entries))
	return stats
}

// LogStats logs current cache statistics.
func (c *InMemoryResponseCache) LogStats() {
	logStats(c.logger, c.Backend(), c.GetStats())
}

// Close is a no-op.
func (c *InMemoryResponseCache) Close() error {
	return nil
}

func logStats(logger *logrus.Logger, backend string, stats ResponseCacheStats) {
	logger.WithFields(logrus.Fields{
		"backend":  backend,
		"hits":     stats.Hits,
		"misses":   stats.Misses,
		"sets":     stats.Sets,
		"errors":   stats.Errors,
		"entries":  stats.Entries,
		"hit_rate": fmt.Sprintf("%.2f%%", stats.HitRate()),
	}).Info("Response cache stats")
}
