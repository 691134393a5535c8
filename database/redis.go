package database

import (
	"context"
	"log"
	"time"

	"greencampus/config"

	"github.com/redis/go-redis/v9"
)

// Redis is the optional client backing the public response cache. It stays
// nil when caching is disabled or the server is unreachable; callers must
// degrade gracefully on nil.
var Redis *redis.Client

// InitRedis connects to Redis when the cache is enabled. A connection
// failure is logged and ignored so the portal runs without caching.
func InitRedis(cfg *config.Config) {
	if !cfg.Cache.Enabled {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPass,
		DB:       cfg.Cache.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("warning: redis unreachable at %s, response cache disabled: %v", cfg.Cache.RedisAddr, err)
		_ = client.Close()
		return
	}

	Redis = client
	log.Printf("redis connected: %s", cfg.Cache.RedisAddr)
}
