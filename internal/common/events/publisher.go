// Package events publishes roster change notifications.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mergington-activities/internal/models"
)

// RedisPublisher publishes roster events as JSON on a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.RosterEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal roster event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, string(data)).Err(); err != nil {
		return fmt.Errorf("publish roster event to %s: %w", p.channel, err)
	}
	return nil
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.RosterEvent) error { return nil }
