package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"utm-som/internal/sink"

	"github.com/redis/go-redis/v9"
)

const noticeKeyPrefix = "utm:notice:"

// Notices is a sink.Notices shared by every server instance. Expiry is left
// to Redis key TTLs.
type Notices struct {
	client *redis.Client
}

func NewNotices(c *Client) *Notices {
	return &Notices{client: c.GetClient()}
}

func noticeKey(key string) string {
	return noticeKeyPrefix + key
}

func (n *Notices) Set(ctx context.Context, key string, notice sink.Notice, ttl time.Duration) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}
	if err := n.client.Set(ctx, noticeKey(key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store notice: %w", err)
	}
	return nil
}

func (n *Notices) Get(ctx context.Context, key string) (sink.Notice, error) {
	payload, err := n.client.Get(ctx, noticeKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return sink.IdleNotice, nil
	}
	if err != nil {
		return sink.Notice{}, fmt.Errorf("failed to read notice: %w", err)
	}

	var notice sink.Notice
	if err := json.Unmarshal(payload, &notice); err != nil {
		return sink.Notice{}, fmt.Errorf("failed to decode notice: %w", err)
	}
	return notice, nil
}
