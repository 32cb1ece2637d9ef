package reporter

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"presence/internal/outbox"
	"presence/internal/scanner"
)

// Spool buffers sightings in an outbox and delivers them in the
// background with exponential backoff. A sighting that still fails after
// maxAttempts is dropped. Opt-in; the default pipeline sends directly.
type Spool struct {
	client      *Client
	queue       outbox.Queue
	maxAttempts int
	backoff     time.Duration
}

// NewSpool wraps client with a queue-backed delivery path.
func NewSpool(client *Client, q outbox.Queue, maxAttempts int, backoff time.Duration) *Spool {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if backoff <= 0 {
		backoff = time.Second
	}
	return &Spool{client: client, queue: q, maxAttempts: maxAttempts, backoff: backoff}
}

// Send enqueues the sighting for background delivery.
func (s *Spool) Send(ctx context.Context, sg scanner.Sighting) error {
	body, err := json.Marshal(payloadFor(sg))
	if err != nil {
		return err
	}
	return s.queue.Publish(ctx, body)
}

// Run drains the outbox until ctx is cancelled.
func (s *Spool) Run(ctx context.Context) error {
	msgs, err := s.queue.Consume(ctx)
	if err != nil {
		return err
	}
	for body := range msgs {
		s.deliver(ctx, body)
	}
	return nil
}

func (s *Spool) deliver(ctx context.Context, body []byte) {
	wait := s.backoff
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := s.client.post(ctx, body); err == nil {
			return
		}
		if attempt == s.maxAttempts {
			break
		}
		select {
		case <-time.After(wait):
			wait *= 2
		case <-ctx.Done():
			return
		}
	}
	log.Printf("dropping sighting after %d attempts: %s", s.maxAttempts, body)
}
