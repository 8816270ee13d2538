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
	slotPickUpCity = "PickUpCity"
	slotPickUpDate = "PickUpDate"
	slotReturnDate = "ReturnDate"
	slotDriverAge  = "DriverAge"
	slotCarType    = "CarType"

	maxRentalDays  = 30
	minDriverAge   = 18
	carBookedReply = "Thanks, I have placed your reservation."
)

var carSlotOrder = []string{slotPickUpCity, slotPickUpDate, slotReturnDate, slotDriverAge, slotCarType}

var carPrompts = map[string]string{
	slotPickUpCity: "Where would you like to make your car reservation?",
	slotPickUpDate: "What day do you want to start your rental?",
	slotReturnDate: "What day do you want to return the car?",
	slotDriverAge:  "How old is the driver for this car rental?",
	slotCarType:    "What type of car would you like?  Popular models are economy, midsize, and luxury.",
}

func (d *Dispatcher) validateCar(s domain.Slots) domain.ValidationResult {
	city := s.Value(slotPickUpCity)
	pickUp := s.Value(slotPickUpDate)
	ret := s.Value(slotReturnDate)
	age := s.Value(slotDriverAge)
	carType := s.Value(slotCarType)

	if city != "" && !slots.OneOf(city, supportedCities) {
		return dialog.Invalid(slotPickUpCity, fmt.Sprintf("We currently do not support %s as a valid destination.  Can you try a different city?", city))
	}

	pickUpDate, pickUpErr := slots.ParseDate(pickUp, d.cfg.Location)
	if pickUp != "" {
		if pickUpErr != nil {
			return dialog.Invalid(slotPickUpDate, "I did not understand your departure date.  When would you like to pick up your car rental?")
		}
		if !slots.IsAfterToday(pickUpDate, d.cfg.Now(), d.cfg.Location) {
			return dialog.Invalid(slotPickUpDate, "Reservations must be scheduled at least one day in advance.  Can you try a different date?")
		}
	}

	returnDate, returnErr := slots.ParseDate(ret, d.cfg.Location)
	if ret != "" && returnErr != nil {
		return dialog.Invalid(slotReturnDate, "I did not understand your return date.  When would you like to return your car rental?")
	}

	if pickUp != "" && ret != "" {
		if !returnDate.After(pickUpDate) {
			return dialog.Invalid(slotReturnDate, "Your return date must be after your pick up date.  Can you try a different return date?")
		}
		if slots.DayDifference(returnDate, pickUpDate) > maxRentalDays {
			return dialog.Invalid(slotReturnDate, "You can reserve a car for up to thirty days.  Can you try a different return date?")
		}
	}

	if age != "" {
		n, ok := slots.ParseCount(age)
		if !ok {
			return dialog.Invalid(slotDriverAge, "I did not understand the driver's age.  How old is the driver?")
		}
		if n < minDriverAge {
			return dialog.Invalid(slotDriverAge, "Your driver must be at least eighteen to rent a car.  Can you provide the age of a different driver?")
		}
	}

	if carType != "" && !slots.OneOf(carType, pricing.CarTypes) {
		return dialog.Invalid(slotCarType, "I did not recognize that model.  What type of car would you like to rent?  Popular cars are economy, midsize, or luxury")
	}

	return dialog.Valid()
}

func carReservation(s domain.Slots) domain.CarReservation {
	r := domain.CarReservation{
		ReservationType: domain.ReservationCar,
		PickUpCity:      s.Ptr(slotPickUpCity),
		PickUpDate:      s.Ptr(slotPickUpDate),
		ReturnDate:      s.Ptr(slotReturnDate),
		CarType:         s.Ptr(slotCarType),
	}
	if n, ok := slots.ParseCount(s.Value(slotDriverAge)); ok {
		r.DriverAge = &n
	}
	return r
}

func (d *Dispatcher) bookCar(ctx context.Context, t *turn) (domain.Response, error) {
	r := carReservation(t.slots)
	reservation, err := t.track(r)
	if err != nil {
		return domain.Response{}, err
	}

	if v := d.validateCar(t.slots); !v.IsValid {
		return t.reelicit(v), nil
	}

	if t.inDialog() {
		d.quoteCar(t, r)
		return t.delegate(), nil
	}

	if slot, missing := t.firstMissing(carSlotOrder...); missing {
		return t.elicit(slot, carPrompts[slot]), nil
	}

	t.logger.Debug("book car", "reservation", reservation)
	t.confirm(reservation)

	resp := t.fulfilled(carBookedReply)
	d.record(ctx, t, reservation, resp)
	return resp, nil
}

func (d *Dispatcher) quoteCar(t *turn, r domain.CarReservation) {
	if r.PickUpCity == nil || r.PickUpDate == nil || r.ReturnDate == nil || r.DriverAge == nil || r.CarType == nil {
		t.clearPrice()
		return
	}
	pickUp, err1 := slots.ParseDate(*r.PickUpDate, d.cfg.Location)
	ret, err2 := slots.ParseDate(*r.ReturnDate, d.cfg.Location)
	if err1 != nil || err2 != nil {
		t.clearPrice()
		return
	}
	days := slots.DayDifference(ret, pickUp)
	t.setPrice(pricing.Car(*r.PickUpCity, days, *r.DriverAge, *r.CarType))
}
