package redis

import (
	"context"
	"fmt"
	"time"

	"utm-som/internal/config"
	"utm-som/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Client wraps the Redis client with observability
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient creates a new Redis client. It returns nil, nil when Redis is not
// configured.
func NewClient(cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.Enabled {
		logger.Info(context.Background(), "Redis is disabled, skipping client initialization")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "addr", Value: cfg.Addr},
		observability.Field{Key: "db", Value: cfg.DB},
	)
	logger.Info(ctx, "successfully connected to Redis")

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
