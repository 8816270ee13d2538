package intents

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"lexhook/internal/domain"
)

type fakePublisher struct {
	commands []domain.DeviceCommand
	err      error
}

func (p *fakePublisher) PublishCommand(_ context.Context, cmd domain.DeviceCommand) error {
	if p.err != nil {
		return p.err
	}
	p.commands = append(p.commands, cmd)
	return nil
}

type fakeLookup struct {
	result domain.ShowLookupResult
	err    error
	shows  []string
}

func (l *fakeLookup) Lookup(_ context.Context, show string) (domain.ShowLookupResult, error) {
	l.shows = append(l.shows, show)
	return l.result, l.err
}

type fakeJournal struct {
	records []domain.FulfillmentRecord
	err     error
}

func (j *fakeJournal) RecordFulfillment(_ context.Context, rec domain.FulfillmentRecord) error {
	if j.err != nil {
		return j.err
	}
	j.records = append(j.records, rec)
	return nil
}

// fixedNow is 2030-01-10 09:00 in Taipei.
var fixedNow = time.Date(2030, 1, 10, 1, 0, 0, 0, time.UTC)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		return time.FixedZone("CST", 8*3600)
	}
	return loc
}

func newTestDispatcher(t *testing.T, pub DevicePublisher, lookup ShowLookup, journal Journal) *Dispatcher {
	t.Helper()
	return NewDispatcher(Config{
		Location: testLocation(t),
		Now:      func() time.Time { return fixedNow },
	}, pub, lookup, journal, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func request(intent domain.IntentName, source domain.InvocationSource, slots domain.Slots, attrs domain.SessionAttributes) domain.IntentRequest {
	return domain.IntentRequest{
		CurrentIntent: domain.CurrentIntent{
			Name:               intent,
			Slots:              slots,
			ConfirmationStatus: domain.ConfirmationNone,
		},
		Bot:               domain.Bot{Name: "HomeBot"},
		UserID:            "user-1",
		InvocationSource:  source,
		SessionAttributes: attrs,
	}
}

func s(v string) *string { return &v }
