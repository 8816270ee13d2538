package intents

import (
	"context"
	"errors"
	"fmt"

	"lexhook/internal/domain"
	"lexhook/internal/metrics"
	"lexhook/internal/slots"
)

const slotShow = "Show"

var errLookupDisabled = errors.New("show lookup is not configured")

// watch resolves a show to a channel and turns the device to it. The turn
// always closes as Fulfilled; lookup or publish trouble becomes an apology.
func (d *Dispatcher) watch(ctx context.Context, t *turn) (domain.Response, error) {
	reservation, err := t.track(domain.WatchReservation{
		ReservationType: domain.ReservationWatch,
		Show:            t.slots.Ptr(slotShow),
	})
	if err != nil {
		return domain.Response{}, err
	}

	if t.inDialog() {
		return t.delegate(), nil
	}

	if _, missing := t.firstMissing(slotShow); missing {
		return t.elicit(slotShow, "Which show would you like to watch?"), nil
	}

	show := t.slots.Value(slotShow)
	t.logger.Debug("watch fulfillment", "reservation", reservation)
	t.confirm(reservation)

	resp := t.fulfilled(d.tuneToShow(ctx, t, show))
	d.record(ctx, t, reservation, resp)
	return resp, nil
}

func (d *Dispatcher) tuneToShow(ctx context.Context, t *turn, show string) string {
	result, err := d.lookupShow(ctx, show)
	if err != nil {
		metrics.ShowLookupTotal.WithLabelValues("error").Inc()
		t.logger.Warn("show lookup failed", "show", show, "error", err)
		return fmt.Sprintf("Sorry, I could not look up %s right now.  Please try again later.", show)
	}
	if !result.Found || !slots.IsDigits(result.Channel) {
		metrics.ShowLookupTotal.WithLabelValues("not_found").Inc()
		return fmt.Sprintf("Sorry! There is no %s for you.", show)
	}
	metrics.ShowLookupTotal.WithLabelValues("found").Inc()

	if err := d.publish(ctx, domain.DeviceCommand{Method: methodTurn, ChannelNumber: result.Channel}); err != nil {
		t.logger.Warn("publish channel for show failed", "show", show, "channel", result.Channel, "error", err)
		return fmt.Sprintf("Sorry, I found %s on channel %s but could not reach your TV.", show, result.Channel)
	}
	return fmt.Sprintf("Done channel for %s %s", show, result.Channel)
}

func (d *Dispatcher) lookupShow(ctx context.Context, show string) (domain.ShowLookupResult, error) {
	if d.lookup == nil {
		return domain.ShowLookupResult{}, errLookupDisabled
	}
	return d.lookup.Lookup(ctx, show)
}
