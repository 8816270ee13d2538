// Package pricing computes the quoted price of hotel and car reservations.
// Prices are a deterministic function of the reservation; there is no rate
// table behind them.
package pricing

import (
	"strings"

	"lexhook/internal/slots"
)

var (
	RoomTypes = []string{"queen", "king", "deluxe"}
	CarTypes  = []string{"economy", "standard", "midsize", "full size", "minivan", "luxury"}
)

const youngDriverAge = 25

// LocationCost sums the alphabet offsets of the letters in location.
func LocationCost(location string) int {
	cost := 0
	for _, r := range strings.ToLower(location) {
		if r >= 'a' && r <= 'z' {
			cost += int(r - 'a')
		}
	}
	return cost
}

// Hotel returns the price of a stay. Unknown room types price as queen.
func Hotel(location string, nights int, roomType string) float64 {
	idx := slots.IndexOf(roomType, RoomTypes)
	if idx < 0 {
		idx = 0
	}
	perNight := 100 + LocationCost(location) + 100 + idx
	return float64(nights * perNight)
}

// Car returns the price of a rental. Unknown car types price as economy and
// drivers under 25 pay a 10% surcharge on the car class component.
func Car(location string, days, driverAge int, carType string) float64 {
	idx := slots.IndexOf(carType, CarTypes)
	if idx < 0 {
		idx = 0
	}
	ageMultiplier := 1.0
	if driverAge < youngDriverAge {
		ageMultiplier = 1.10
	}
	perDay := float64(100+LocationCost(location)) + float64(idx*50)*ageMultiplier
	return float64(days) * perDay
}
