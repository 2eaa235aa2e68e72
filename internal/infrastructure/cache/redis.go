package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"joinup/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	KeyProjectsList = "projects:list"
	KeyStudentsList = "students:list"
)

// Redis is a JSON cache that turns into a no-op when the server cannot be
// reached, so callers always fall through to the database.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, logger zerolog.Logger) *Redis {
	logger = logger.With().Str("component", "cache").Logger()

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 600 * time.Second
	}

	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, bypassing cache")
		_ = client.Close()
		return &Redis{ttl: ttl, logger: logger}
	}

	return &Redis{client: client, ttl: ttl, logger: logger}
}

// NewRedisClient wraps an existing client.
func NewRedisClient(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *Redis {
	if ttl <= 0 {
		ttl = 600 * time.Second
	}
	return &Redis{client: client, ttl: ttl, logger: logger.With().Str("component", "cache").Logger()}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn().Err(err).Msg("redis unavailable, bypassing cache")
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

// GetJSON decodes the value at key into out and reports whether it was
// there.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any) error {
	if r.isUnavailable() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if r.isUnavailable() || len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.isUnavailable() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}

	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil {
			r.logger.Warn().Err(err).Str("key", k).Str("pattern", pattern).Msg("redis delete failed")
		}
	}
	return iter.Err()
}
