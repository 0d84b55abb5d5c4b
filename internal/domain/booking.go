package domain

import "time"

// Booking persists one passenger-to-seat association on one flight.
// Reference is an opaque token handed to clients and used as the event key.
type Booking struct {
	ID          int64     `json:"id"`
	Reference   string    `json:"reference"`
	FlightID    int64     `json:"flight_id"`
	PassengerID int64     `json:"passenger_id"`
	SeatNumber  int       `json:"seat_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// SeatAssignment is a hydrated booking seen from the flight side.
type SeatAssignment struct {
	Passenger Passenger `json:"passenger"`
	Seat      int       `json:"seat"`
}

// FlightSeat is a hydrated booking seen from the passenger side.
type FlightSeat struct {
	Flight Flight `json:"flight"`
	Seat   int    `json:"seat"`
}
