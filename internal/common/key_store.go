package common

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// KeyStore holds short-lived markers: OAuth states waiting to be consumed and
// revoked session ids.
type KeyStore interface {
	Put(ctx context.Context, key string, ttl time.Duration) error
	Has(ctx context.Context, key string) (bool, error)
	// Take removes key and reports whether it was present.
	Take(ctx context.Context, key string) (bool, error)
}

type RedisKeyStore struct {
	redis *redis.Client
}

var _ KeyStore = (*RedisKeyStore)(nil)

func NewRedisKeyStore(client *redis.Client) *RedisKeyStore {
	return &RedisKeyStore{redis: client}
}

func (s *RedisKeyStore) Put(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}
	return nil
}

func (s *RedisKeyStore) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.redis.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key: %w", err)
	}
	return n > 0, nil
}

func (s *RedisKeyStore) Take(ctx context.Context, key string) (bool, error) {
	_, err := s.redis.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to take key: %w", err)
	}
	return true, nil
}

// MemoryKeyStore is the single-process KeyStore used in development and tests.
type MemoryKeyStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

var _ KeyStore = (*MemoryKeyStore)(nil)

func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{cache: cache.New(time.Hour, 10*time.Minute)}
}

func (s *MemoryKeyStore) Put(_ context.Context, key string, ttl time.Duration) error {
	s.cache.Set(key, struct{}{}, ttl)
	return nil
}

func (s *MemoryKeyStore) Has(_ context.Context, key string) (bool, error) {
	_, ok := s.cache.Get(key)
	return ok, nil
}

// Take is not atomic across processes; use RedisKeyStore when running more than one.
func (s *MemoryKeyStore) Take(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache.Get(key); !ok {
		return false, nil
	}
	s.cache.Delete(key)
	return true, nil
}

// NewKeyStore picks Redis when a client is available.
func NewKeyStore(client *redis.Client) KeyStore {
	if client == nil {
		return NewMemoryKeyStore()
	}
	return NewRedisKeyStore(client)
}
