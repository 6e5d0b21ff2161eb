package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/presales-crm/internal/application/usecase"
	"github.com/jhoicas/presales-crm/pkg/config"
)

var (
	_ usecase.Cache = (*RedisCache)(nil)
	_ usecase.Cache = NopCache{}
)

// RedisCache caché de catálogos sobre Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedis crea el cliente. No abre conexión hasta el primer comando; usar Ping al arrancar.
func NewRedis(cfg config.RedisConfig) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisCache{client: client}
}

// Ping verifica la conexión.
func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Close libera las conexiones del cliente.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// NopCache caché deshabilitado: nunca encuentra nada.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NopCache) Delete(context.Context, ...string) error                  { return nil }
