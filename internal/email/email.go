package email

import (
	"context"

	"github.com/Domenick1991/seatbooking/internal/kafka"
	"github.com/Domenick1991/seatbooking/internal/logger"
)

// Sender delivers booking notifications. Delivery is a log line until a
// mail provider is configured.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	logger.InfoContext(ctx, "send booking email",
		"to", event.UserEmail,
		"type", event.Type,
		"booking_id", event.BookingID,
		"flight_id", event.FlightID,
		"seat_number", event.SeatNumber,
	)
	return nil
}
