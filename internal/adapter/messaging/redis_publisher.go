package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

// RedisPublisher publishes notifications on a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (r *RedisPublisher) Publish(ctx context.Context, notification domain.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return r.client.Publish(ctx, r.channel, payload).Err()
}
