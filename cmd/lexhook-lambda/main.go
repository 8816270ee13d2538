// Command lexhook-lambda runs the fulfillment hook as an AWS Lambda function
// invoked directly by the bot.
package main

import (
	"context"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/lambda"

	"lexhook/internal/config"
	"lexhook/internal/domain"
	"lexhook/internal/intents"
	"lexhook/internal/journal"
	"lexhook/internal/lookup"
	"lexhook/internal/mqtt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("load config failed", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	var publisher intents.DevicePublisher = mqtt.NewLogPublisher(logger)
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
		// The connection lives for the whole execution environment.
		if err := p.Start(context.Background()); err != nil {
			logger.Error("start mqtt publisher failed", "error", err)
			os.Exit(1)
		}
		publisher = p
	}

	var shows intents.ShowLookup
	if client := lookup.NewClient(cfg.LookupURL, cfg.LookupTimeout); client.Enabled() {
		shows = client
	}

	var fulfillments intents.Journal
	if cfg.DBDSN != "" {
		store, err := journal.New(context.Background(), cfg.DBDSN)
		if err != nil {
			logger.Error("connect journal db failed", "error", err)
			os.Exit(1)
		}
		defer store.Close()

		if err := store.Migrate(context.Background()); err != nil {
			logger.Error("migrate journal db failed", "error", err)
			os.Exit(1)
		}
		fulfillments = store
	}

	dispatcher := intents.NewDispatcher(intents.Config{Location: cfg.Location}, publisher, shows, fulfillments, logger)

	lambda.Start(func(ctx context.Context, event domain.IntentRequest) (domain.Response, error) {
		return dispatcher.Dispatch(ctx, event)
	})
}
