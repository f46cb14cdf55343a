package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_AceptaURLyHostPort(t *testing.T) {
	c := NewClient("redis://cache:6380/2")
	defer c.Close()
	assert.Equal(t, "cache:6380", c.Options().Addr)
	assert.Equal(t, 2, c.Options().DB)

	c2 := NewClient("localhost:6379")
	defer c2.Close()
	assert.Equal(t, "localhost:6379", c2.Options().Addr)
	assert.Equal(t, 0, c2.Options().DB)
}

func TestPing_SinServidor(t *testing.T) {
	c := NewClient("127.0.0.1:1")
	defer c.Close()
	s := NewCartStorage(c, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, s.Ping(ctx, 2))
}

// Requiere un Redis real: REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/redisstore/
func TestCartStorage_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	ctx := context.Background()
	c := NewClient(addr)
	defer c.Close()
	s := NewCartStorage(c, time.Minute)
	require.NoError(t, s.Ping(ctx, 3))

	key := "@RocketShoes:cart:test-" + uuid.NewString()
	defer s.Delete(ctx, key)

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, key, `[{"id":1,"amount":2}]`))
	v, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1,"amount":2}]`, v)

	ttl, err := c.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Delete(ctx, key))
	_, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
