package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rukorent/internal/app/outbox"
	"rukorent/internal/domain/checkout"
	"rukorent/internal/infra/broker/kafka"
	"rukorent/internal/infra/config"
	mongodb "rukorent/internal/infra/db/mongo"
	ginserver "rukorent/internal/infra/http/gin"
	"rukorent/internal/infra/obs"
	infraoutbox "rukorent/internal/infra/outbox"
	"rukorent/internal/infra/rukoapi"
	"rukorent/internal/infra/security"
	"rukorent/internal/infra/storage/memory"
	redisstore "rukorent/internal/infra/storage/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	infra, err := openInfrastructure(ctx, cfg, logger)
	if err != nil {
		logger.Error("infrastructure setup failed", "error", err)
		os.Exit(1)
	}
	defer infra.Close()

	api := rukoapi.New(cfg.BookingAPIURL, &http.Client{Timeout: cfg.BookingAPITimeout}, logger)
	handlers := buildHandlers(cfg, logger, dependencies{
		Catalog:   api,
		Bookings:  api,
		Checkouts: infra.checkouts,
		Outbox:    infra.outbox,
		Resolver:  security.NewSessionResolver(cfg.HeaderAuthFallback),
	})
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Checks: infra.checks}, handlers)

	if infra.relay != nil {
		go func() {
			if err := infra.relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox relay stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "checkout_store", cfg.CheckoutStore, "relay", cfg.RelayEnabled())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type infrastructure struct {
	checkouts checkout.Store
	outbox    outbox.Outbox
	relay     *infraoutbox.Worker
	checks    map[string]obs.Check
	closers   []io.Closer
}

func (i *infrastructure) Close() {
	for n := len(i.closers) - 1; n >= 0; n-- {
		_ = i.closers[n].Close()
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func openInfrastructure(ctx context.Context, cfg config.Config, logger *slog.Logger) (*infrastructure, error) {
	infra := &infrastructure{checks: map[string]obs.Check{}}

	var mongoClient *mongodb.Client
	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		mongoClient = client
		infra.checks["mongo"] = client.Ping
		infra.closers = append(infra.closers, closerFunc(func() error { return client.Close(context.Background()) }))
	}

	switch cfg.CheckoutStore {
	case config.StoreMongo:
		store, err := mongodb.NewCheckoutStore(ctx, mongoClient.DB, cfg.CheckoutTTL)
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("mongo checkout store: %w", err)
		}
		infra.checkouts = store
	case config.StoreRedis:
		client := redisstore.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		store := redisstore.NewCheckoutStore(client, cfg.CheckoutTTL)
		infra.checkouts = store
		infra.checks["redis"] = store.Ping
		infra.closers = append(infra.closers, client)
	default:
		infra.checkouts = memory.NewCheckoutStore(cfg.CheckoutTTL)
	}

	if !cfg.RelayEnabled() {
		infra.outbox = memory.NewOutbox(1000)
		logger.Info("outbox relay disabled, events kept in memory")
		return infra, nil
	}
	store, err := infraoutbox.NewMongoStore(ctx, mongoClient.DB)
	if err != nil {
		infra.Close()
		return nil, fmt.Errorf("mongo outbox: %w", err)
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, kafka.NewConfig("rukorent"))
	if err != nil {
		infra.Close()
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	infra.closers = append(infra.closers, producer)
	infra.outbox = store
	infra.relay = &infraoutbox.Worker{
		Store:       store,
		Producer:    producer,
		Logger:      logger,
		Interval:    cfg.OutboxPollInterval,
		TopicPrefix: cfg.KafkaTopicPrefix,
		Backoff:     cfg.RetryBackoff,
		MaxAttempts: 10,
	}
	return infra, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
