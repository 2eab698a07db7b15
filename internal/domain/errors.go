package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSeatTaken          = errors.New("seat already booked")
	ErrFlightNotFound     = errors.New("flight not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

type ErrorKind string

const (
	KindMissingFields        ErrorKind = "missing_fields"
	KindMissingPassengerName ErrorKind = "missing_passenger_name"
	KindFlightNotFound       ErrorKind = "flight_not_found"
	KindSeatTaken            ErrorKind = "seat_taken"
	KindStorageUnavailable   ErrorKind = "storage_unavailable"
)

// ReservationError is the only error type returned by a reservation attempt.
type ReservationError struct {
	Kind ErrorKind
	Err  error
}

func (e *ReservationError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ReservationError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the identical call may succeed later.
func (e *ReservationError) Retryable() bool {
	return e.Kind == KindStorageUnavailable
}

func NewReservationError(kind ErrorKind, err error) *ReservationError {
	return &ReservationError{Kind: kind, Err: err}
}

// KindOf resolves err to a reservation error kind. Unknown errors are
// treated as storage failures.
func KindOf(err error) ErrorKind {
	var re *ReservationError
	switch {
	case errors.As(err, &re):
		return re.Kind
	case errors.Is(err, ErrSeatTaken):
		return KindSeatTaken
	case errors.Is(err, ErrFlightNotFound):
		return KindFlightNotFound
	default:
		return KindStorageUnavailable
	}
}
