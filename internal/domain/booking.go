package domain

import "time"

type Passenger struct {
	Name  string
	Sex   *string
	Age   *int
	Phone *string
}

// Booking is a confirmed claim on one seat of one flight.
// No two bookings share the same (FlightID, SeatNumber).
type Booking struct {
	ID         string
	FlightID   string
	SeatNumber string
	UserEmail  string
	Passenger  Passenger
	CreatedAt  time.Time
}
