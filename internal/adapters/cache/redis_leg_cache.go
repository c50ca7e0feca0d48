package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"petcare-route-service/internal/domain"
	"petcare-route-service/internal/ports"
)

// NewRedisClient builds and verifies a Redis connection for the leg cache.
func NewRedisClient(addr, username, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Username:     username,
		Password:     password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

// Redis-backed leg cache for deployments where route instances share a
// cache. Entries expire so stale traffic conditions age out.
type RedisLegCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLegCache(rdb *redis.Client, ttl time.Duration) *RedisLegCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisLegCache{rdb: rdb, ttl: ttl}
}

func legKey(from, to domain.Coordinate) string {
	return "leg:" + coordKey(from) + "|" + coordKey(to)
}

func (r *RedisLegCache) Get(ctx context.Context, from, to domain.Coordinate) (*ports.Leg, error) {
	if r.rdb == nil {
		return nil, errors.New("leg cache: redis client is nil")
	}

	raw, err := r.rdb.Get(ctx, legKey(from, to)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get leg cache: redis get: %w", err)
	}

	var leg ports.Leg
	if err := json.Unmarshal(raw, &leg); err != nil {
		return nil, fmt.Errorf("get leg cache: decode entry: %w", err)
	}

	return &leg, nil
}

func (r *RedisLegCache) Put(ctx context.Context, from, to domain.Coordinate, leg ports.Leg) error {
	if r.rdb == nil {
		return errors.New("leg cache: redis client is nil")
	}

	raw, err := json.Marshal(leg)
	if err != nil {
		return fmt.Errorf("insert leg cache: encode entry: %w", err)
	}

	if err := r.rdb.Set(ctx, legKey(from, to), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert leg cache: redis set: %w", err)
	}

	return nil
}
