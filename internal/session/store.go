// Package session stores per-session key/value state, such as the cached
// loyalty program catalog.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a per-session key/value store. Values are opaque bytes; a
// missing key reports found=false.
type Store interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, bool)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Close() error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  24 * time.Hour,
	}
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, storeKey(sessionID, key)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	return s.client.Set(ctx, storeKey(sessionID, key), value, s.ttl).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func storeKey(sessionID, key string) string {
	return "sess:" + sessionID + ":" + key
}

// MemoryStore keeps session state in process memory. Used when Redis is
// disabled and in tests. Entries never expire.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID, key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[storeKey(sessionID, key)]
	return value, ok
}

func (s *MemoryStore) Set(ctx context.Context, sessionID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[storeKey(sessionID, key)] = value
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
