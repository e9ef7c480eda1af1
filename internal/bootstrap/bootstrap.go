package bootstrap

import (
	"context"
	"fmt"
	"time"

	"utm-som/internal/config"
	"utm-som/internal/observability"
	"utm-som/internal/sink"
	"utm-som/internal/store"

	kafkaClient "utm-som/internal/clients/kafka"
	redisClient "utm-som/internal/clients/redis"
	sheetsClient "utm-som/internal/clients/sheets"
	linksHandler "utm-som/internal/links/handler"
	linksProcessor "utm-som/internal/links/processor"
)

// pingTimeout bounds the startup reachability check of the ledger database.
const pingTimeout = 5 * time.Second

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Logger *observability.Logger

	// Optional backends, nil when not configured
	Store         *store.Store
	Redis         *redisClient.Client
	KafkaProducer *kafkaClient.Producer

	// Record sink
	Dispatcher *sink.Dispatcher

	// Links
	LinksProcessor linksProcessor.LinkProcessor
	LinksHandler   linksHandler.Handler
}

// Initialize sets up all application dependencies. Every record sink backend
// is optional; with none configured commits still build links but nothing is
// logged.
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	var sinks []sink.Sink

	// Apps Script web app, the sheet logger used by the original form
	if cfg.Sink.ScriptURL != "" {
		sinks = append(sinks, sink.NewScriptSink(cfg.Sink.ScriptURL, cfg.Sink.Timeout, logger))
	}

	// Direct Google Sheets API append
	if cfg.Sheets.Enabled() {
		sheets, err := sheetsClient.NewClient(ctx, cfg.Sheets, logger)
		if err != nil {
			deps.Cleanup()
			return nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		sinks = append(sinks, sheets)
	}

	// Postgres ledger, also backs the history endpoint
	var history linksProcessor.HistoryStore
	if cfg.Database.Enabled() {
		s, err := store.New(cfg.Database.URL, logger)
		if err != nil {
			deps.Cleanup()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		deps.Store = &s

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = deps.Store.Ping(pingCtx)
		cancel()
		if err != nil {
			deps.Cleanup()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		history = deps.Store
		sinks = append(sinks, sink.NewLedgerSink(deps.Store))
	}

	// Kafka event stream
	if cfg.Kafka.Enabled() {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)
		sinks = append(sinks, deps.KafkaProducer)
	}

	// Notice board: Redis when shared across instances, memory otherwise
	var notices sink.Notices = sink.NewMemoryNotices()
	redis, err := redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	if redis != nil {
		deps.Redis = redis
		notices = redisClient.NewNotices(redis)
	}

	deps.Dispatcher = sink.NewDispatcher(sink.Multi(sinks...), notices, cfg.Sink.Timeout, cfg.Sink.NoticeTTL, logger)
	if !deps.Dispatcher.Enabled() {
		logger.Warn(ctx, "no record sink configured, generated links will not be logged")
	}

	deps.LinksProcessor = linksProcessor.New(deps.Dispatcher, history, cfg.Sink.HistoryURL, logger)
	deps.LinksHandler = linksHandler.New(deps.LinksProcessor, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup. Call it after the
// dispatcher has drained.
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka producer", err)
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close redis client", err)
		}
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close database", err)
		}
	}
}
