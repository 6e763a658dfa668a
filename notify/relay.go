package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// OrdersChannel is the pub/sub channel admin dashboards subscribe to.
const OrdersChannel = "admin-orders"

// Relay broadcasts an event to connected admin clients. Implementations are
// best-effort; callers log and swallow errors.
type Relay interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type RedisRelay struct {
	client *redis.Client
}

func NewRedisRelay(client *redis.Client) *RedisRelay {
	return &RedisRelay{client: client}
}

func (r *RedisRelay) Publish(ctx context.Context, channel, event string, payload any) error {
	body, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("relay payload marshal error: %w", err)
	}
	return r.client.Publish(ctx, channel, body).Err()
}
