package api

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/limbo/healthlog/pkg/cleanup"
	"github.com/limbo/healthlog/pkg/config"
	"github.com/redis/go-redis/v9"
)

const statsKeyPrefix = "healthlog:stats:"

// RedisStatsCache keeps all views of one owner in a single hash, so
// invalidation is one DEL and never touches other owners.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache returns nil when no address is configured.
func NewRedisStatsCache(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*RedisStatsCache, error) {
	if cfg.Address == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing redis client",
		F:    client.Close,
	})
	return NewRedisStatsCacheWithClient(client, ttl), nil
}

func NewRedisStatsCacheWithClient(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl}
}

func ownerStatsKey(ownerID string) string {
	return statsKeyPrefix + ownerID
}

func (c *RedisStatsCache) Get(ctx context.Context, ownerID, view string, dst any) (bool, error) {
	data, err := c.client.HGet(ctx, ownerStatsKey(ownerID), view).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := sonic.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, ownerID, view string, value any) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	key := ownerStatsKey(ownerID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, view, data)
	pipe.Expire(ctx, key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, ownerID string) error {
	return c.client.Del(ctx, ownerStatsKey(ownerID)).Err()
}
