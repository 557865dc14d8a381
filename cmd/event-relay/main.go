package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/property-registry/internal/adapter"
	"github.com/feral-file/property-registry/internal/config"
	"github.com/feral-file/property-registry/internal/logger"
	"github.com/feral-file/property-registry/internal/providers/jetstream"
	"github.com/feral-file/property-registry/internal/providers/temporal"
	"github.com/feral-file/property-registry/internal/relay"
	"github.com/feral-file/property-registry/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadEventRelayConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "event-relay",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Event Relay", zap.String("name", cfg.Relay.Name), zap.Strings("sinks", cfg.Relay.Sinks))

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)
	cursors := store.NewCursorStore(dataStore)

	var sinks []relay.Sink
	for _, name := range cfg.Relay.Sinks {
		switch name {
		case config.SINK_JETSTREAM:
			publisher, err := jetstream.NewPublisher(
				jetstream.Config{
					URL:            cfg.NATS.URL,
					StreamName:     cfg.NATS.StreamName,
					SubjectPrefix:  cfg.NATS.SubjectPrefix,
					MaxReconnects:  cfg.NATS.MaxReconnects,
					ReconnectWait:  cfg.NATS.ReconnectWait,
					ConnectionName: cfg.NATS.ConnectionName,
				},
				adapter.NewNatsJetStream(),
				adapter.NewJSON(),
			)
			if err != nil {
				logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
			}
			defer publisher.Close()

			if err := publisher.EnsureStream(ctx); err != nil {
				logger.FatalCtx(ctx, "Failed to ensure event stream", zap.Error(err), zap.String("stream", cfg.NATS.StreamName))
			}
			sinks = append(sinks, relay.NewJetStreamSink(publisher))

		case config.SINK_WEBHOOK:
			temporalClient, err := client.Dial(client.Options{
				HostPort:  cfg.Temporal.HostPort,
				Namespace: cfg.Temporal.Namespace,
				Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
			})
			if err != nil {
				logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
			}
			defer temporalClient.Close()
			logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

			sinks = append(sinks, relay.NewWebhookSink(temporalClient, cfg.Temporal.WebhookTaskQueue))
		}
	}
	if len(sinks) == 0 {
		logger.FatalCtx(ctx, "No relay sinks configured")
	}

	eventRelay := relay.New(
		relay.Config{
			Name:           cfg.Relay.Name,
			PollInterval:   cfg.Relay.PollInterval,
			BatchSize:      cfg.Relay.BatchSize,
			WorkerPoolSize: cfg.Relay.Worker.WorkerPoolSize,
			WorkerQueue:    cfg.Relay.Worker.WorkerQueueSize,
		},
		dataStore,
		cursors,
		sinks,
		adapter.NewClock(),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := eventRelay.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "relay"))
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := eventRelay.Stop(stopCtx); err != nil {
		logger.ErrorCtx(stopCtx, err, zap.String("component", "relay"))
	}
	cancel()

	logger.Info("Event Relay stopped")
}
