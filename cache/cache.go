// Package cache stores upstream API responses so repeated exports do not refetch history.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Store is a JSON key value store. Read reports false when the key is absent.
type Store interface {
	Read(ctx context.Context, key string, out interface{}) (bool, error)
	Write(ctx context.Context, key string, value interface{}) error
	Clear(ctx context.Context, key string) error
}

// FileStore keeps one <key>.json file per entry, fronted by an in-memory copy of the raw bytes.
type FileStore struct {
	Dir    string
	memory *gocache.Cache
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{
		Dir:    dir,
		memory: gocache.New(30*time.Minute, time.Hour),
	}
}

func (s *FileStore) PathForKey(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

func (s *FileStore) Read(_ context.Context, key string, out interface{}) (bool, error) {
	if raw, ok := s.memory.Get(key); ok {
		return true, json.Unmarshal(raw.([]byte), out)
	}

	raw, err := os.ReadFile(s.PathForKey(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}

	s.memory.SetDefault(key, raw)
	return true, nil
}

func (s *FileStore) Write(_ context.Context, key string, value interface{}) error {
	raw, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return err
	}

	path := s.PathForKey(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}

	s.memory.SetDefault(key, raw)
	return nil
}

func (s *FileStore) Clear(_ context.Context, key string) error {
	s.memory.Delete(key)
	err := os.Remove(s.PathForKey(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ClearAll removes every cached entry.
func (s *FileStore) ClearAll() error {
	s.memory.Flush()
	return os.RemoveAll(s.Dir)
}

// RedisStore shares cached responses between processes, e.g. the serve scheduler and manual exports.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}

func (s *RedisStore) Read(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, out)
}

func (s *RedisStore) Write(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), raw, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// Nop never stores anything. Used by clients constructed without a cache.
type Nop struct{}

func (Nop) Read(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Nop) Write(context.Context, string, interface{}) error { return nil }
func (Nop) Clear(context.Context, string) error { return nil }
