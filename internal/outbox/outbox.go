package outbox

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Queue buffers serialized sightings awaiting delivery to the ingestion
// service. The memory backend is process-local; the redis backend survives
// scanner restarts.
type Queue interface {
	Publish(ctx context.Context, payload []byte) error
	Consume(ctx context.Context) (<-chan []byte, error)
}

// Memory is a bounded channel-backed queue.
type Memory struct {
	ch chan []byte
}

// NewMemory creates a bounded in-memory queue.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = 64
	}
	return &Memory{ch: make(chan []byte, size)}
}

// Publish enqueues a payload, blocking while the buffer is full.
func (q *Memory) Publish(ctx context.Context, payload []byte) error {
	select {
	case q.ch <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume returns a channel drained by the delivery loop.
func (q *Memory) Consume(ctx context.Context) (<-chan []byte, error) {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case payload := <-q.ch:
				select {
				case out <- payload:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Redis is a redis list-backed queue using LPUSH/BRPOP semantics.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis builds a queue on the given list key.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = "presence:sightings"
	}
	return &Redis{client: client, key: key}
}

// Publish enqueues a payload.
func (q *Redis) Publish(ctx context.Context, payload []byte) error {
	return q.client.LPush(ctx, q.key, payload).Err()
}

// Consume streams payloads using BRPOP.
func (q *Redis) Consume(ctx context.Context) (<-chan []byte, error) {
	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				continue
			}
			if len(res) == 2 {
				select {
				case out <- []byte(res[1]):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
