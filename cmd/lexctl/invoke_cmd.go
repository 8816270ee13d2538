package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lexhook/internal/config"
	"lexhook/internal/domain"
	"lexhook/internal/intents"
	"lexhook/internal/lookup"
	"lexhook/internal/mqtt"
)

func newInvokeCmd() *cobra.Command {
	var eventPath string
	var publish bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Dispatch a saved intent request event and print the response",
		Long: "Reads an intent request event (JSON) from a file, or stdin with --event -, " +
			"runs it through the dispatcher and prints the dialog response. Device commands " +
			"are only logged unless --publish is set.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			event, err := readEvent(cmd.InOrStdin(), eventPath)
			if err != nil {
				return err
			}

			var publisher intents.DevicePublisher = mqtt.NewLogPublisher(logger)
			if publish {
				if cfg.MQTTBrokerURL == "" {
					return fmt.Errorf("--publish requires MQTT_BROKER_URL")
				}
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
				if err := p.Start(cmd.Context()); err != nil {
					return fmt.Errorf("start mqtt publisher: %w", err)
				}
				publisher = p
			}

			var shows intents.ShowLookup
			if client := lookup.NewClient(cfg.LookupURL, cfg.LookupTimeout); client.Enabled() {
				shows = client
			}

			dispatcher := intents.NewDispatcher(intents.Config{Location: cfg.Location}, publisher, shows, nil, logger)
			resp, err := dispatcher.Dispatch(cmd.Context(), event)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVarP(&eventPath, "event", "e", "", "path to the event JSON file, - for stdin")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish device commands to the configured MQTT broker")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func readEvent(stdin io.Reader, path string) (domain.IntentRequest, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.IntentRequest{}, fmt.Errorf("read event: %w", err)
	}

	var event domain.IntentRequest
	if err := json.Unmarshal(raw, &event); err != nil {
		return domain.IntentRequest{}, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}
