package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is the JSON payload published per credential record, for
// downstream aggregation across honeypot instances.
type Event struct {
	Peer     string    `json:"peer"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	SeenAt   time.Time `json:"seen_at"`
}

// Publisher pushes credential events to a Redis pub/sub channel.
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher connects to Redis and verifies the server is reachable
// before the listener starts accepting.  The ping is retried briefly
// with doubling delays so a Redis that comes up alongside the honeypot
// (compose, systemd) does not abort startup.
func NewPublisher(addr, password string, db int, channel string) (*Publisher, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	var err error
	delay := 500 * time.Millisecond
	for attempt := 0; attempt < 4; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
			delay *= 2
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			return &Publisher{client: rdb, channel: channel}, nil
		}
	}
	rdb.Close() //nolint:errcheck
	return nil, fmt.Errorf("redis connection failed: %w", err)
}

// Name implements Sink.
func (p *Publisher) Name() string { return "redis" }

// Record publishes one event.  Fields travel sanitized, same as every
// other sink.
func (p *Publisher) Record(peer string, username, password []byte) error {
	payload, err := json.Marshal(Event{
		Peer:     peer,
		Username: Sanitize(username),
		Password: Sanitize(password),
		SeenAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("redis: marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis: publish: %w", err)
	}
	return nil
}

// Close releases the client connection pool.
func (p *Publisher) Close() error {
	return p.client.Close()
}
