package intents

import (
	"context"
	"fmt"

	"lexhook/internal/dialog"
	"lexhook/internal/domain"
	"lexhook/internal/slots"
)

const (
	slotAction        = "Action"
	slotChannelNumber = "ChannelNumber"

	methodRemote = "Remote"
	methodTurn   = "Turn"
)

var remoteActions = []string{"back", "next", "louder", "smaller", "power"}

func validateRemote(s domain.Slots) domain.ValidationResult {
	action := s.Value(slotAction)
	if action != "" && !slots.OneOf(action, remoteActions) {
		return dialog.Invalid(slotAction, fmt.Sprintf("We currently do not support %s as a valid action.  Can you try a different action?", action))
	}
	return dialog.Valid()
}

func (d *Dispatcher) remote(ctx context.Context, t *turn) (domain.Response, error) {
	reservation, err := t.track(domain.RemoteReservation{
		ReservationType: domain.ReservationRemote,
		Action:          t.slots.Ptr(slotAction),
	})
	if err != nil {
		return domain.Response{}, err
	}

	if v := validateRemote(t.slots); !v.IsValid {
		return t.reelicit(v), nil
	}
	if t.inDialog() {
		return t.delegate(), nil
	}

	if _, missing := t.firstMissing(slotAction); missing {
		return t.elicit(slotAction, "What would you like the remote to do?  You can say back, next, louder, smaller or power."), nil
	}

	action := t.slots.Value(slotAction)
	t.logger.Debug("remote fulfillment", "reservation", reservation)
	t.confirm(reservation)

	if err := d.publish(ctx, domain.DeviceCommand{Method: methodRemote, Action: action}); err != nil {
		return domain.Response{}, err
	}

	resp := t.fulfilled("Done Action " + action)
	d.record(ctx, t, reservation, resp)
	return resp, nil
}

func validateTurn(s domain.Slots) domain.ValidationResult {
	channel := s.Value(slotChannelNumber)
	if channel != "" && !slots.IsDigits(channel) {
		return dialog.Invalid(slotChannelNumber, fmt.Sprintf("We currently do not support %s as a valid channel number.  Can you try a different number?", channel))
	}
	return dialog.Valid()
}

func (d *Dispatcher) turnChannel(ctx context.Context, t *turn) (domain.Response, error) {
	reservation, err := t.track(domain.TurnReservation{
		ReservationType: domain.ReservationTurn,
		ChannelNumber:   t.slots.Ptr(slotChannelNumber),
	})
	if err != nil {
		return domain.Response{}, err
	}

	if v := validateTurn(t.slots); !v.IsValid {
		return t.reelicit(v), nil
	}
	if t.inDialog() {
		return t.delegate(), nil
	}

	if _, missing := t.firstMissing(slotChannelNumber); missing {
		return t.elicit(slotChannelNumber, "Which channel number would you like to watch?"), nil
	}

	channel := t.slots.Value(slotChannelNumber)
	t.logger.Debug("turn fulfillment", "reservation", reservation)
	t.confirm(reservation)

	if err := d.publish(ctx, domain.DeviceCommand{Method: methodTurn, ChannelNumber: channel}); err != nil {
		return domain.Response{}, err
	}

	resp := t.fulfilled("Done channel " + channel)
	d.record(ctx, t, reservation, resp)
	return resp, nil
}
