package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dedup tracks channel message ids so at-least-once webhook deliveries do
// not re-run the pipeline and re-send replies.
type Dedup interface {
	// FirstDelivery reports whether the message id has not been seen inside
	// the TTL window, claiming it atomically when it has not.
	FirstDelivery(ctx context.Context, messageID string) bool
}

// RedisDedup implements Dedup with a SET NX EX claim per message id.
// Redis faults fail open: a message is processed rather than dropped.
type RedisDedup struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisDedup(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisDedup, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDedup{client: client, ttl: ttl, logger: logger}, nil
}

func (d *RedisDedup) dedupKey(messageID string) string {
	return fmt.Sprintf("wamid:%s", messageID)
}

func (d *RedisDedup) FirstDelivery(ctx context.Context, messageID string) bool {
	if messageID == "" {
		return true
	}
	claimed, err := d.client.SetNX(ctx, d.dedupKey(messageID), 1, d.ttl).Result()
	if err != nil {
		d.logger.Warn("dedup check failed, processing anyway",
			zap.String("message_id", messageID), zap.Error(err))
		return true
	}
	return claimed
}

func (d *RedisDedup) Close() error {
	return d.client.Close()
}

// NoopDedup is used when no Redis URL is configured; every delivery counts
// as the first one.
type NoopDedup struct{}

func (NoopDedup) FirstDelivery(context.Context, string) bool { return true }
