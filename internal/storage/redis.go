package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	client *redis.Client
	opts   *CacheOptions
	ctx    context.Context
}

// NewRedisCache creates a new Redis cache instance. The address uses the
// tcp://[user:pass@]host:port[/db] form.
func NewRedisCache(addr string, options ...RedisOption) (*RedisCache, error) {
	opts := DefaultCacheOptions()

	u, err := url.Parse(addr)
	if err != nil {
		return nil, fmt.Errorf("can't parse url for redis: %w", err)
	}
	var passwd string
	if u.User != nil {
		passwd, _ = u.User.Password()
	}
	db := 0
	if 1 < len(u.Path) {
		db, err = strconv.Atoi(u.Path[1:])
		if err != nil {
			return nil, fmt.Errorf("can't parse redis db from %q: %w", addr, err)
		}
	}

	client := redis.NewClient(&redis.Options{
		Network:  u.Scheme,
		Addr:     u.Host,
		Password: passwd,
		DB:       db,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisCache{
		client: client,
		opts:   opts,
		ctx:    ctx,
	}

	// Apply options
	for _, option := range options {
		option(cache)
	}

	return cache, nil
}

// RedisOption is a function that configures Redis cache options
type RedisOption func(*RedisCache)

// WithRedisOptions sets cache options
func WithRedisOptions(opts *CacheOptions) RedisOption {
	return func(rc *RedisCache) {
		rc.opts = opts
	}
}

// WithContext sets the context for cache operations
func WithContext(ctx context.Context) RedisOption {
	return func(rc *RedisCache) {
		rc.ctx = ctx
	}
}

func (rc *RedisCache) SetSnapshotBackup(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot is nil")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return rc.client.Set(rc.ctx, snapshotBackupKey, data, rc.opts.DefaultTTL).Err()
}

func (rc *RedisCache) GetSnapshotBackup() (*Snapshot, error) {
	data, err := rc.client.Get(rc.ctx, snapshotBackupKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // No backup found
		}
		return nil, fmt.Errorf("failed to get backup from Redis: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal backup: %w", err)
	}

	return &snap, nil
}

func (rc *RedisCache) Close() error {
	return rc.client.Close()
}
