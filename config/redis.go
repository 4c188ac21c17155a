package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// InitRedis returns a Redis client for the leaderboard cache, or nil when
// REDIS_ADDR is unset. The app works without it; caching is just skipped.
func InitRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable at %s, leaderboard cache disabled: %v", addr, err)
		return nil
	}

	return client
}
