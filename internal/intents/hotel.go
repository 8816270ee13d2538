package intents

import (
	"context"
	"fmt"

	"lexhook/internal/dialog"
	"lexhook/internal/domain"
	"lexhook/internal/pricing"
	"lexhook/internal/slots"
)

const (
	slotLocation    = "Location"
	slotCheckInDate = "CheckInDate"
	slotNights      = "Nights"
	slotRoomType    = "RoomType"

	maxNights = 30
)

var supportedCities = []string{
	"new york", "los angeles", "chicago", "houston", "philadelphia", "phoenix",
	"san antonio", "san diego", "dallas", "san jose", "austin", "jacksonville",
	"san francisco", "indianapolis", "columbus", "fort worth", "charlotte",
	"detroit", "el paso", "seattle", "denver", "washington dc", "memphis",
	"boston", "nashville", "baltimore", "portland",
}

var hotelPrompts = map[string]string{
	slotLocation:    "What city will you be staying in?",
	slotCheckInDate: "What day do you want to check in?",
	slotNights:      "How many nights will you be staying?",
	slotRoomType:    "What type of room would you like, queen, king or deluxe?",
}

func (d *Dispatcher) validateHotel(s domain.Slots) domain.ValidationResult {
	location := s.Value(slotLocation)
	checkIn := s.Value(slotCheckInDate)
	nights := s.Value(slotNights)
	roomType := s.Value(slotRoomType)

	if location != "" && !slots.OneOf(location, supportedCities) {
		return dialog.Invalid(slotLocation, fmt.Sprintf("We currently do not support %s as a valid destination.  Can you try a different city?", location))
	}

	if checkIn != "" {
		date, err := slots.ParseDate(checkIn, d.cfg.Location)
		if err != nil {
			return dialog.Invalid(slotCheckInDate, "I did not understand your check in date.  When would you like to check in?")
		}
		if !slots.IsAfterToday(date, d.cfg.Now(), d.cfg.Location) {
			return dialog.Invalid(slotCheckInDate, "Reservations must be scheduled at least one day in advance.  Can you try a different date?")
		}
	}

	if nights != "" {
		n, ok := slots.ParseCount(nights)
		if !ok || n < 1 || n > maxNights {
			return dialog.Invalid(slotNights, "You can make a reservations for from one to thirty nights.  How many nights would you like to stay for?")
		}
	}

	if roomType != "" && !slots.OneOf(roomType, pricing.RoomTypes) {
		return dialog.Invalid(slotRoomType, "I did not recognize that room type.  Would you like to stay in a queen, king, or deluxe room?")
	}

	return dialog.Valid()
}

func hotelReservation(s domain.Slots) domain.HotelReservation {
	r := domain.HotelReservation{
		ReservationType: domain.ReservationHotel,
		Location:        s.Ptr(slotLocation),
		RoomType:        s.Ptr(slotRoomType),
		CheckInDate:     s.Ptr(slotCheckInDate),
	}
	if n, ok := slots.ParseCount(s.Value(slotNights)); ok {
		r.Nights = &n
	}
	return r
}

func (d *Dispatcher) bookHotel(ctx context.Context, t *turn) (domain.Response, error) {
	r := hotelReservation(t.slots)
	reservation, err := t.track(r)
	if err != nil {
		return domain.Response{}, err
	}

	if v := d.validateHotel(t.slots); !v.IsValid {
		return t.reelicit(v), nil
	}

	if t.inDialog() {
		// Quote a price once every pricing input is known, otherwise drop any
		// quote left over from an earlier turn.
		if r.Location != nil && r.CheckInDate != nil && r.Nights != nil && r.RoomType != nil {
			t.setPrice(pricing.Hotel(*r.Location, *r.Nights, *r.RoomType))
		} else {
			t.clearPrice()
		}
		return t.delegate(), nil
	}

	if slot, missing := t.firstMissing(slotLocation, slotCheckInDate, slotNights, slotRoomType); missing {
		return t.elicit(slot, hotelPrompts[slot]), nil
	}

	t.logger.Debug("book hotel", "reservation", reservation)
	t.confirm(reservation)

	resp := t.fulfilled("Thanks, I have placed your reservation.   Please let me know if you would like to book a car rental, or another hotel.")
	d.record(ctx, t, reservation, resp)
	return resp, nil
}
