package httpmiddleware

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisWindow is a fixed-window per-key limiter shared across instances.
// It fails open: if redis is unreachable the request proceeds.
type RedisWindow struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisWindow creates a limiter allowing perMinute requests per key.
func NewRedisWindow(client *redis.Client, perMinute int) *RedisWindow {
	return &RedisWindow{
		client: client,
		limit:  perMinute,
		window: time.Minute,
		prefix: "presence:ratelimit:",
	}
}

// Allow increments the key's window counter and checks it against the limit.
func (l *RedisWindow) Allow(ctx context.Context, key string) bool {
	k := l.prefix + key
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		log.Printf("rate limit redis incr failed, allowing: %v", err)
		return true
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			log.Printf("rate limit redis expire failed: %v", err)
		}
	}
	return n <= int64(l.limit)
}
