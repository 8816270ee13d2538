package domain

import "encoding/json"

const (
	ReservationHotel  = "Hotel"
	ReservationCar    = "Car"
	ReservationRemote = "Remote"
	ReservationTurn   = "Turn"
	ReservationWatch  = "Watch"
)

type HotelReservation struct {
	ReservationType string  `json:"ReservationType"`
	Location        *string `json:"Location"`
	RoomType        *string `json:"RoomType"`
	CheckInDate     *string `json:"CheckInDate"`
	Nights          *int    `json:"Nights"`
}

type CarReservation struct {
	ReservationType string  `json:"ReservationType"`
	PickUpCity      *string `json:"PickUpCity"`
	PickUpDate      *string `json:"PickUpDate"`
	ReturnDate      *string `json:"ReturnDate"`
	DriverAge       *int    `json:"DriverAge"`
	CarType         *string `json:"CarType"`
}

type RemoteReservation struct {
	ReservationType string  `json:"ReservationType"`
	Action          *string `json:"Action"`
}

type TurnReservation struct {
	ReservationType string  `json:"ReservationType"`
	ChannelNumber   *string `json:"ChannelNumber"`
}

type WatchReservation struct {
	ReservationType string  `json:"ReservationType"`
	Show            *string `json:"Show"`
}

// EncodeReservation serializes a reservation for storage in session attributes.
func EncodeReservation(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
