package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"lexhook/internal/config"
	"lexhook/internal/httpapi"
	"lexhook/internal/intents"
	"lexhook/internal/journal"
	"lexhook/internal/lookup"
	"lexhook/internal/mqtt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stdout, nil)).Error("load config failed", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var publisher intents.DevicePublisher
	if cfg.MQTTBrokerURL != "" {
		p := mqtt.NewPublisher(mqtt.PublisherConfig{
			BrokerURL:      cfg.MQTTBrokerURL,
			ClientID:       cfg.MQTTClientID,
			Username:       cfg.MQTTUsername,
			Password:       cfg.MQTTPassword,
			TopicPrefix:    cfg.MQTTTopicPrefix,
			Topic:          cfg.MQTTCommandTopic,
			QoS:            cfg.MQTTCommandQoS,
			ConnectTimeout: cfg.MQTTConnectTimeout,
		}, logger)
		if err := p.Start(ctx); err != nil {
			logger.Error("start mqtt publisher failed", "error", err)
			os.Exit(1)
		}
		publisher = p
	} else {
		logger.Warn("MQTT_BROKER_URL not set, device commands will only be logged")
		publisher = mqtt.NewLogPublisher(logger)
	}

	var shows intents.ShowLookup
	if client := lookup.NewClient(cfg.LookupURL, cfg.LookupTimeout); client.Enabled() {
		shows = client
	} else {
		logger.Warn("LOOKUP_URL not set, Watch requests will apologise")
	}

	var fulfillments intents.Journal
	if cfg.DBDSN != "" {
		store, err := journal.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Error("connect journal db failed", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := store.Migrate(ctx); err != nil {
			logger.Error("migrate journal db failed", "error", err)
			os.Exit(1)
		}
		fulfillments = store
	}

	dispatcher := intents.NewDispatcher(intents.Config{Location: cfg.Location}, publisher, shows, fulfillments, logger)

	srv := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(httpapi.RouterConfig{
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, dispatcher, logger), logger)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}
