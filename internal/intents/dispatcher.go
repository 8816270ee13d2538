package intents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lexhook/internal/domain"
	"lexhook/internal/metrics"
)

var ErrUnsupportedIntent = errors.New("unsupported intent")

// DevicePublisher delivers a command to the device. Delivery is fire-and-forget
// beyond the broker accepting the message.
type DevicePublisher interface {
	PublishCommand(ctx context.Context, cmd domain.DeviceCommand) error
}

type ShowLookup interface {
	Lookup(ctx context.Context, show string) (domain.ShowLookupResult, error)
}

// Journal records fulfilled reservations. Write failures never fail a turn.
type Journal interface {
	RecordFulfillment(ctx context.Context, rec domain.FulfillmentRecord) error
}

type Config struct {
	// Location is the zone "today" is evaluated in for date slots.
	Location *time.Location
	Now      func() time.Time
}

type Dispatcher struct {
	cfg       Config
	publisher DevicePublisher
	lookup    ShowLookup
	journal   Journal
	logger    *slog.Logger
}

type handlerFunc func(ctx context.Context, t *turn) (domain.Response, error)

// NewDispatcher wires the intent handlers. lookup and journal may be nil.
func NewDispatcher(cfg Config, publisher DevicePublisher, lookup ShowLookup, journal Journal, logger *slog.Logger) *Dispatcher {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		cfg:       cfg,
		publisher: publisher,
		lookup:    lookup,
		journal:   journal,
		logger:    logger,
	}
}

// Dispatch routes one code hook invocation to the handler for its intent.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.IntentRequest) (domain.Response, error) {
	name := req.CurrentIntent.Name
	source := string(req.InvocationSource)

	handler, ok := d.handlerFor(name)
	if !ok {
		metrics.IntentRequestsTotal.WithLabelValues("unsupported", source, "error").Inc()
		return domain.Response{}, fmt.Errorf("intent with name %s not supported: %w", name, ErrUnsupportedIntent)
	}

	invocationID := uuid.NewString()
	logger := d.logger.With("invocation_id", invocationID, "intent", string(name))
	logger.Debug("dispatch", "user_id", req.UserID, "bot", req.Bot.Name, "source", source)

	t := newTurn(req, invocationID, logger)
	resp, err := handler(ctx, t)
	if err != nil {
		metrics.IntentRequestsTotal.WithLabelValues(string(name), source, "error").Inc()
		logger.Error("intent handler failed", "error", err)
		return domain.Response{}, err
	}
	metrics.IntentRequestsTotal.WithLabelValues(string(name), source, string(resp.DialogAction.Type)).Inc()
	return resp, nil
}

// Supported lists the intents the dispatcher accepts.
func Supported() []domain.IntentName {
	return []domain.IntentName{
		domain.IntentBookHotel,
		domain.IntentBookCar,
		domain.IntentRemote,
		domain.IntentTurn,
		domain.IntentWatch,
	}
}

func (d *Dispatcher) handlerFor(name domain.IntentName) (handlerFunc, bool) {
	switch name {
	case domain.IntentBookHotel:
		return d.bookHotel, true
	case domain.IntentBookCar:
		return d.bookCar, true
	case domain.IntentRemote:
		return d.remote, true
	case domain.IntentTurn:
		return d.turnChannel, true
	case domain.IntentWatch:
		return d.watch, true
	default:
		return nil, false
	}
}

func (d *Dispatcher) publish(ctx context.Context, cmd domain.DeviceCommand) error {
	if d.publisher == nil {
		metrics.DevicePublishTotal.WithLabelValues(cmd.Method, "error").Inc()
		return errors.New("device publisher is not configured")
	}
	if err := d.publisher.PublishCommand(ctx, cmd); err != nil {
		metrics.DevicePublishTotal.WithLabelValues(cmd.Method, "error").Inc()
		return fmt.Errorf("publish %s command: %w", cmd.Method, err)
	}
	metrics.DevicePublishTotal.WithLabelValues(cmd.Method, "ok").Inc()
	return nil
}

func (d *Dispatcher) record(ctx context.Context, t *turn, reservation string, resp domain.Response) {
	if d.journal == nil {
		return
	}
	rec := domain.FulfillmentRecord{
		InvocationID: t.id,
		UserID:       t.req.UserID,
		BotName:      t.req.Bot.Name,
		Intent:       t.intent,
		Reservation:  reservation,
		Price:        t.price,
		FulfilledAt:  d.cfg.Now().UTC(),
	}
	if resp.DialogAction.Message != nil {
		rec.Message = resp.DialogAction.Message.Content
	}
	if err := d.journal.RecordFulfillment(ctx, rec); err != nil {
		metrics.JournalWriteTotal.WithLabelValues("error").Inc()
		t.logger.Warn("record fulfillment failed", "error", err)
		return
	}
	metrics.JournalWriteTotal.WithLabelValues("ok").Inc()
}
