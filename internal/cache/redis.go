package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to Redis and fails fast when it is unreachable. The
// client is passed to consumers explicitly so tests can inject miniredis.
func InitRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")
	return client
}
