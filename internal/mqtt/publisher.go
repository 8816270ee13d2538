package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"lexhook/internal/domain"
)

var ErrNotConnected = errors.New("mqtt publisher is not connected")

type PublisherConfig struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	Topic       string
	QoS         byte

	// ConnectTimeout bounds how long Start waits for the first connection.
	// After it elapses paho keeps retrying in the background.
	ConnectTimeout time.Duration
}

const defaultConnectTimeout = 10 * time.Second

// Publisher sends device commands to the broker. Commands are not retained
// and no device acknowledgement is awaited.
type Publisher struct {
	cfg    PublisherConfig
	logger *slog.Logger

	mu     sync.RWMutex
	client paho.Client
}

func NewPublisher(cfg PublisherConfig, logger *slog.Logger) *Publisher {
	return &Publisher{
		cfg:    cfg,
		logger: logger,
	}
}

func (p *Publisher) Start(ctx context.Context) error {
	opts := paho.NewClientOptions().
		AddBroker(p.cfg.BrokerURL).
		SetClientID(p.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	if p.cfg.Username != "" {
		opts.SetUsername(p.cfg.Username)
		opts.SetPassword(p.cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		p.logger.Error("mqtt connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(_ paho.Client) {
		p.logger.Info("mqtt connected", "broker", p.cfg.BrokerURL, "topic", p.topic())
	})

	timeout := p.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		p.logger.Warn("mqtt broker not reachable yet, retrying in background", "broker", p.cfg.BrokerURL, "waited", timeout)
	} else if err := token.Error(); err != nil {
		return err
	}
	p.setClient(client)

	go func() {
		<-ctx.Done()
		client.Disconnect(250)
	}()

	return nil
}

func (p *Publisher) setClient(client paho.Client) {
	p.mu.Lock()
	p.client = client
	p.mu.Unlock()
}

func (p *Publisher) topic() string {
	return CommandTopic(p.cfg.TopicPrefix, p.cfg.Topic)
}

// PublishCommand encodes cmd and publishes it on the command topic. It returns
// once the broker has accepted the message or ctx is done.
func (p *Publisher) PublishCommand(ctx context.Context, cmd domain.DeviceCommand) error {
	p.mu.RLock()
	client := p.client
	p.mu.RUnlock()
	if client == nil {
		return ErrNotConnected
	}

	body, err := json.Marshal(cmd)
	if err != nil {
		return err
	}

	topic := p.topic()
	token := client.Publish(topic, p.cfg.QoS, false, body)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	p.logger.Debug("device command published", "topic", topic, "method", cmd.Method)
	return nil
}

// LogPublisher stands in for the broker when none is configured: commands are
// logged and dropped.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishCommand(_ context.Context, cmd domain.DeviceCommand) error {
	p.logger.Info("device command (no broker configured)", "method", cmd.Method, "action", cmd.Action, "channel", cmd.ChannelNumber)
	return nil
}
