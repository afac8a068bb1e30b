// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Kavi981/Nxt-Round/internal/observability"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis initializes the Redis client with the given address.
func InitRedis(addr string) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("Redis connection warning: invalid REDIS_URL %q: %v (continuing without cache)", addr, err)
			client = nil
			return
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client = redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		client = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

// SetClient replaces the package client. Used by tests and bootstrap code
// that establish their own connection.
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the current Redis client instance.
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis client if one is connected.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// Aside implements the cache-aside pattern: on a hit, dest is populated from
// the cached JSON; on a miss, fetch is invoked and its result cached with the
// given TTL. When Redis is unavailable Aside degrades to calling fetch.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Result()
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(raw), dest); jsonErr == nil {
			observability.CacheHits.WithLabelValues(keyPrefix(key)).Inc()
			return nil
		}
		// Corrupt entry: drop it and fall through to the fetch path.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		observability.RedisErrors.WithLabelValues("get").Inc()
		log.Printf("cache read failed for %s: %v (falling back to store)", key, err)
	}
	observability.CacheMisses.WithLabelValues(keyPrefix(key)).Inc()

	if err := fetch(); err != nil {
		return err
	}

	if encoded, jsonErr := json.Marshal(dest); jsonErr == nil {
		if err := client.Set(ctx, key, encoded, ttl).Err(); err != nil {
			observability.RedisErrors.WithLabelValues("set").Inc()
		}
	}
	return nil
}

// keyPrefix reduces a cache key to its namespace segment so metric
// cardinality stays bounded.
func keyPrefix(key string) string {
	if i := strings.Index(key, ":"); i > 0 {
		return key[:i]
	}
	return key
}
