package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cloudscope/cloudscope/pkg/observability"
)

const redisKeyPrefix = "cloudscope:source:"
const redisIndexKey = "cloudscope:sources"

// RedisConfig configures a Redis-backed store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore persists sources in Redis: one JSON value per source plus a set
// of known ids.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) List(ctx context.Context) (sources []Source, err error) {
	defer s.observe(ctx, "list", time.Now(), &err)

	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list source ids: %w", err)
	}

	for _, id := range ids {
		data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
		if err == redis.Nil {
			// Index entry without a value, drop it.
			s.client.SRem(ctx, redisIndexKey, id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get source %s: %w", id, err)
		}
		var src Source
		if err := json.Unmarshal(data, &src); err != nil {
			return nil, fmt.Errorf("parse source %s: %w", id, err)
		}
		sources = append(sources, src)
	}
	sortSources(sources)
	return sources, nil
}

func (s *RedisStore) Put(ctx context.Context, src Source) (err error) {
	defer s.observe(ctx, "put", time.Now(), &err)

	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("marshal source: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+src.ID, data, 0)
	pipe.SAdd(ctx, redisIndexKey, src.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store source: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) (err error) {
	defer s.observe(ctx, "delete", time.Now(), &err)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, redisKeyPrefix+id)
	pipe.SRem(ctx, redisIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) (err error) {
	defer s.observe(ctx, "clear", time.Now(), &err)

	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return fmt.Errorf("list source ids: %w", err)
	}

	pipe := s.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, redisKeyPrefix+id)
	}
	pipe.Del(ctx, redisIndexKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("clear sources: %w", err)
	}
	return nil
}

func (s *RedisStore) Close(ctx context.Context) error {
	return s.client.Close()
}

func (s *RedisStore) observe(ctx context.Context, op string, start time.Time, err *error) {
	observability.Store().OnStoreOp(ctx, "redis", op, time.Since(start), *err)
}
