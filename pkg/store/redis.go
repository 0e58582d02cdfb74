package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
)

// DefaultRedisPrefix namespaces family keys.
const DefaultRedisPrefix = "famlayout:family:"

// RedisConfig configures a [RedisStore].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisStore keeps JSON family documents in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultRedisPrefix
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func (s *RedisStore) Get(ctx context.Context, id string) (graph.FamilyFile, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return graph.FamilyFile{}, ErrNotFound
	}
	if err != nil {
		return graph.FamilyFile{}, fmt.Errorf("redis get %s: %w", id, err)
	}
	return graph.UnmarshalFamily(data)
}

func (s *RedisStore) Put(ctx context.Context, id string, f graph.FamilyFile) error {
	data, err := graph.MarshalFamily(f)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(id), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis del %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List scans the key prefix. SCAN may return a key more than once.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
