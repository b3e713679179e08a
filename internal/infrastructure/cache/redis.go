// Package cache caché de consultas externas sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/eproc-api/internal/application/ports"
)

var _ ports.LookupCache = (*RedisCache)(nil)

// RedisCache guarda valores JSON con expiración.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache construye la caché sobre un cliente existente.
func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

// Connect abre el cliente a partir de una URL redis:// y verifica la conexión con PING.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL inválida: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// GetJSON lee key y la decodifica en dst. Una clave inexistente devuelve found=false.
func (c *RedisCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Entrada corrupta: se descarta y se trata como miss.
		_ = c.rdb.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// SetJSON serializa value y lo guarda con ttl (0 = sin expiración).
func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}
