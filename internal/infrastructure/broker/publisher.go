package broker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	brokerRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/broker"
)

type Publisher struct {
	client  *Client
	timeout time.Duration
}

func NewPublisher(client *Client, cfg PublisherConfig) *Publisher {
	return &Publisher{
		client:  client,
		timeout: time.Duration(cfg.Timeout) * time.Millisecond,
	}
}

func (p *Publisher) Publish(ctx context.Context, event brokerRepo.ReviewEvent) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.client.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: p.client.stream,
		Values: map[string]any{
			"kind":        event.Kind,
			"photo_id":    event.PhotoID,
			"storage_key": event.StorageKey,
			"detail":      event.Detail,
		},
	}).Err()
}
