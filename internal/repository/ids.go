package repository

import "github.com/google/uuid"

func newBookingID() string {
	return uuid.NewString()
}
