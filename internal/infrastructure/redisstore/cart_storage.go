package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/storefront-cart/internal/domain/repository"
)

var _ repository.CartStorage = (*CartStorage)(nil)

// CartStorage guarda el snapshot del carrito como un string de Redis por clave.
// ttl > 0 expira carritos abandonados; cada Set renueva el plazo.
type CartStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient crea el cliente a partir de "redis://..." o de un "host:port" simple.
func NewClient(addr string) *redis.Client {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}
	}
	return redis.NewClient(opts)
}

// NewCartStorage construye el adaptador sobre un cliente existente.
func NewCartStorage(client *redis.Client, ttl time.Duration) *CartStorage {
	return &CartStorage{client: client, ttl: ttl}
}

// Ping verifica la conexión con reintentos y backoff exponencial acotado.
func (s *CartStorage) Ping(ctx context.Context, attempts int) error {
	var err error
	backoff := 200 * time.Millisecond
	for i := 0; i < attempts; i++ {
		if err = s.client.Ping(ctx).Err(); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 5*time.Second {
			backoff *= 2
		}
	}
	return fmt.Errorf("redis sin respuesta tras %d intentos: %w", attempts, err)
}

// Get lee el snapshot de key.
func (s *CartStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis GET %q: %w", key, err)
	}
	return val, true, nil
}

// Set escribe el snapshot de key.
func (s *CartStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %q: %w", key, err)
	}
	return nil
}

// Delete borra key.
func (s *CartStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis DEL %q: %w", key, err)
	}
	return nil
}
