package intents

import (
	"fmt"
	"log/slog"
	"strconv"

	"lexhook/internal/dialog"
	"lexhook/internal/domain"
	"lexhook/internal/metrics"
)

// turn is the per-invocation working copy of the request. Handlers mutate its
// slots and attrs; the caller's request is never touched.
type turn struct {
	req    domain.IntentRequest
	id     string
	intent domain.IntentName
	slots  domain.Slots
	attrs  domain.SessionAttributes
	price  string
	logger *slog.Logger
}

func newTurn(req domain.IntentRequest, id string, logger *slog.Logger) *turn {
	return &turn{
		req:    req,
		id:     id,
		intent: req.CurrentIntent.Name,
		slots:  req.CurrentIntent.Slots.Clone(),
		attrs:  req.SessionAttributes.Clone(),
		logger: logger,
	}
}

// inDialog reports whether the platform is still filling slots. Anything
// other than DialogCodeHook is treated as fulfillment.
func (t *turn) inDialog() bool {
	return t.req.InvocationSource == domain.DialogCodeHook
}

// track stores the provisional reservation under currentReservation.
func (t *turn) track(reservation any) (string, error) {
	raw, err := domain.EncodeReservation(reservation)
	if err != nil {
		return "", fmt.Errorf("encode reservation: %w", err)
	}
	t.attrs[domain.AttrCurrentReservation] = raw
	return raw, nil
}

// reelicit clears the violated slot and asks the platform to prompt for it again.
func (t *turn) reelicit(v domain.ValidationResult) domain.Response {
	metrics.ValidationFailuresTotal.WithLabelValues(string(t.intent), v.ViolatedSlot).Inc()
	t.logger.Debug("slot failed validation", "slot", v.ViolatedSlot)
	t.slots[v.ViolatedSlot] = nil
	return dialog.ElicitSlot(t.attrs, t.intent, t.slots, v.ViolatedSlot, v.Message)
}

func (t *turn) elicit(slot, prompt string) domain.Response {
	return dialog.ElicitSlot(t.attrs, t.intent, t.slots, slot, dialog.PlainText(prompt))
}

func (t *turn) setPrice(price float64) {
	t.attrs[domain.AttrCurrentReservationPrice] = strconv.FormatFloat(price, 'f', 2, 64)
}

func (t *turn) clearPrice() {
	delete(t.attrs, domain.AttrCurrentReservationPrice)
}

// confirm moves the reservation from the transient keys to lastConfirmedReservation.
func (t *turn) confirm(reservation string) {
	t.price = t.attrs[domain.AttrCurrentReservationPrice]
	delete(t.attrs, domain.AttrCurrentReservationPrice)
	delete(t.attrs, domain.AttrCurrentReservation)
	t.attrs[domain.AttrLastConfirmedReservation] = reservation
}

func (t *turn) delegate() domain.Response {
	return dialog.Delegate(t.attrs, t.slots)
}

func (t *turn) fulfilled(content string) domain.Response {
	return dialog.Close(t.attrs, domain.Fulfilled, dialog.PlainText(content))
}

// firstMissing returns the first required slot without a value.
func (t *turn) firstMissing(required ...string) (string, bool) {
	for _, name := range required {
		if t.slots.Value(name) == "" {
			return name, true
		}
	}
	return "", false
}
