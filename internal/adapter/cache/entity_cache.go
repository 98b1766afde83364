package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EntityCache caches single entities of one kind by id. It is a read-path
// optimization only: repository mutations always go to the backing store
// and invalidate the cached entry.
type EntityCache[T any] interface {
	// Get retrieves an entity from cache by id.
	// Returns nil if the entity is not cached.
	Get(ctx context.Context, id string) (*T, error)

	// Set stores an entity in cache with the configured TTL.
	Set(ctx context.Context, id string, entity *T) error

	// Delete removes an entity from cache by id.
	Delete(ctx context.Context, id string) error
}

// RedisEntityCache implements EntityCache using Redis as the backing store.
type RedisEntityCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisEntityCache creates a Redis-backed entity cache. The prefix
// namespaces keys per entity kind, e.g. "user" or "event".
func NewRedisEntityCache[T any](client *redis.Client, prefix string, ttl time.Duration, log *zap.Logger) *RedisEntityCache[T] {
	return &RedisEntityCache[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

func (c *RedisEntityCache[T]) cacheKey(id string) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}

// Get retrieves an entity from Redis cache.
func (c *RedisEntityCache[T]) Get(ctx context.Context, id string) (*T, error) {
	key := c.cacheKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		// Cache miss - not an error
		c.log.Debug("cache miss", zap.String("key", key))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	var entity T
	if err := json.Unmarshal(data, &entity); err != nil {
		c.log.Error("failed to unmarshal cached entity", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("key", key))
	return &entity, nil
}

// Set stores an entity in Redis cache with TTL.
func (c *RedisEntityCache[T]) Set(ctx context.Context, id string, entity *T) error {
	if entity == nil {
		return fmt.Errorf("cannot cache nil entity")
	}

	key := c.cacheKey(id)

	data, err := json.Marshal(entity)
	if err != nil {
		c.log.Error("failed to marshal entity for cache", zap.String("key", key), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.log.Debug("cached entity", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}

// Delete removes an entity from Redis cache.
func (c *RedisEntityCache[T]) Delete(ctx context.Context, id string) error {
	key := c.cacheKey(id)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.String("key", key), zap.Error(err))
		return err
	}

	c.log.Debug("deleted from cache", zap.String("key", key))
	return nil
}
