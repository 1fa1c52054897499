// Package rediscodec stores and retrieves msgplus Values from Redis, using
// the wire encoding itself as the cached payload rather than re-encoding it
// as JSON.
package rediscodec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"msgplus"
)

// NewClient builds a go-redis client from host/port/password.
func NewClient(host string, port int, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       0,
	})
}

// Set encodes v and stores it under key with the given ttl. A zero ttl
// means no expiry, matching go-redis's own convention.
func Set(ctx context.Context, client *redis.Client, key string, v msgplus.Value, ttl time.Duration) error {
	wire, err := msgplus.Marshal(v)
	if err != nil {
		return fmt.Errorf("rediscodec: encode: %w", err)
	}
	return client.Set(ctx, key, wire, ttl).Err()
}

// Get decodes the Value stored under key. The second return is false if
// the key does not exist; that case is not an error.
func Get(ctx context.Context, client *redis.Client, key string) (msgplus.Value, bool, error) {
	wire, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return msgplus.Value{}, false, nil
	}
	if err != nil {
		return msgplus.Value{}, false, err
	}
	v, err := msgplus.Unmarshal(wire)
	if err != nil {
		return msgplus.Value{}, false, fmt.Errorf("rediscodec: decode: %w", err)
	}
	return v, true, nil
}

// Delete removes key.
func Delete(ctx context.Context, client *redis.Client, key string) error {
	return client.Del(ctx, key).Err()
}
