// Package redis holds the process-wide client backing the idempotency layer.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init connects using a redis URL and verifies the connection with a ping.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}
	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	client = c
	return nil
}

// SetClient swaps the process client. Tests use this to point the package at
// a miniredis server.
func SetClient(c *redis.Client) {
	client = c
}

// Close releases the connection; safe to call when Init never ran.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// Get retrieves a value by key.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Set stores a key with an expiration.
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// SetNX sets a key only if it does not already exist.
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}

// Del removes a key.
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}
