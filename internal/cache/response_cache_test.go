package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a test Redis instance using miniredis
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	s, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		s.Close()
	})
	return s, client
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestKey(t *testing.T) {
	assert.Equal(t, "fitbit_charge_4:steps:2022-04-24:2022-04-28", Key("fitbit_charge_4", "steps", "2022-04-24", "2022-04-28"))
}

func TestRedisResponseCache_SetGet(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewRedisResponseCache(client, 5*time.Minute, quietLogger())
	ctx := context.Background()

	payload := []byte(`{"success":true,"data":[{"dateTime":"2022-04-24","value":1200}]}`)
	c.Set(ctx, "k1", payload)

	got, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.JSONEq(t, string(payload), string(got))

	stats := c.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(0), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, int64(1), stats.Entries)
	assert.Equal(t, "redis", c.Backend())
	assert.NoError(t, c.Ping(ctx))
}

func TestRedisResponseCache_Miss(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewRedisResponseCache(client, 5*time.Minute, quietLogger())

	got, ok := c.Get(context.Background(), "missing")
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, int64(1), c.GetStats().Misses)
}

func TestRedisResponseCache_TTL(t *testing.T) {
	s, client := setupTestRedis(t)
	c := NewRedisResponseCache(client, time.Minute, quietLogger())
	ctx := context.Background()

	c.Set(ctx, "k", []byte(`1`))
	assert.Equal(t, time.Minute, s.TTL("response_cache:k"))

	s.FastForward(2 * time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisResponseCache_CorruptEntry(t *testing.T) {
	s, client := setupTestRedis(t)
	c := NewRedisResponseCache(client, time.Minute, quietLogger())

	require.NoError(t, s.Set("response_cache:bad", "not json"))
	_, ok := c.Get(context.Background(), "bad")
	assert.False(t, ok)

	stats := c.GetStats()
	assert.Equal(t, int64(1), stats.Errors)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestRedisResponseCache_KeysAndClear(t *testing.T) {
	s, client := setupTestRedis(t)
	c := NewRedisResponseCache(client, time.Minute, quietLogger())
	ctx := context.Background()

	c.Set(ctx, "a", []byte(`1`))
	c.Set(ctx, "b", []byte(`2`))
	require.NoError(t, s.Set("unrelated", "x"))

	keys, err := c.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)

	require.NoError(t, c.Clear(ctx))
	keys, err = c.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.True(t, s.Exists("unrelated"))

	assert.NoError(t, c.Clear(ctx))
}

func TestRedisResponseCache_Unavailable(t *testing.T) {
	s, client := setupTestRedis(t)
	c := NewRedisResponseCache(client, time.Minute, quietLogger())
	ctx := context.Background()

	s.Close()
	c.Set(ctx, "k", []byte(`1`))
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Error(t, c.Ping(ctx))
	assert.GreaterOrEqual(t, c.GetStats().Errors, int64(2))
}

func TestInMemoryResponseCache(t *testing.T) {
	c := NewInMemoryResponseCache(time.Minute, quietLogger())
	now := time.Date(2022, 4, 24, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	c.Set(ctx, "k", []byte(`{"a":1}`))
	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(got))

	keys, err := c.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)

	stats := c.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, int64(0), stats.Entries)
	assert.InDelta(t, 33.33, stats.HitRate(), 0.01)

	c.Set(ctx, "x", []byte(`1`))
	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, int64(0), c.GetStats().Entries)
	assert.NoError(t, c.Ping(ctx))
	assert.Equal(t, "memory", c.Backend())
	assert.NoError(t, c.Close())
}

func TestResponseCache_InterfaceCompliance(t *testing.T) {
	_, client := setupTestRedis(t)
	var _ ResponseCache = NewRedisResponseCache(client, time.Minute, nil)
	var _ ResponseCache = NewInMemoryResponseCache(time.Minute, nil)

	c := NewInMemoryResponseCache(time.Minute, quietLogger())
	c.LogStats()
	assert.Equal(t, float64(0), ResponseCacheStats{}.HitRate())
}
