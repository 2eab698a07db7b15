package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/kafka"
	"github.com/Domenick1991/seatbooking/internal/logger"
	"github.com/Domenick1991/seatbooking/internal/metrics"
	"github.com/Domenick1991/seatbooking/internal/repository"
)

const (
	defaultStorageTimeout = 5 * time.Second
	publishTimeout        = 2 * time.Second
)

type BookingUseCase interface {
	Reserve(ctx context.Context, input ReserveInput) (*domain.Booking, error)
}

// FlightCatalog resolves flight ids before a commit.
type FlightCatalog interface {
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            FlightCatalog
	producer           Producer
	metrics            *metrics.Metrics
	bookingTopic       string
	notificationsTopic string
	storageTimeout     time.Duration
}

type PassengerInput struct {
	Name  string
	Sex   string
	Age   string
	Phone string
}

type ReserveInput struct {
	FlightID   string
	SeatNumber string
	UserEmail  string
	Passenger  PassengerInput
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithStorageTimeout(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.storageTimeout = d
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func NewBookingService(bookings repository.BookingRepository, flights FlightCatalog, opts ...BookingServiceOption) *BookingService {
	s := &BookingService{
		bookings:       bookings,
		flights:        flights,
		storageTimeout: defaultStorageTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reserve validates input, checks the flight exists and commits the seat.
// Every error is a *domain.ReservationError. The ledger write is the only
// state change; a failed call leaves no booking behind.
func (s *BookingService) Reserve(ctx context.Context, input ReserveInput) (booking *domain.Booking, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(domain.KindOf(err))
		}
		s.metrics.ObserveReservation(outcome, time.Since(start).Seconds())
	}()

	candidate, rerr := buildBooking(input)
	if rerr != nil {
		return nil, rerr
	}

	storageCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.flights.GetByID(storageCtx, candidate.FlightID); err != nil {
		if errors.Is(err, domain.ErrFlightNotFound) {
			return nil, domain.NewReservationError(domain.KindFlightNotFound, err)
		}
		return nil, s.storageFailure(ctx, "lookup flight", err)
	}

	committed, err := s.bookings.TryCommit(storageCtx, candidate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatTaken):
			return nil, domain.NewReservationError(domain.KindSeatTaken, err)
		case errors.Is(err, domain.ErrFlightNotFound):
			return nil, domain.NewReservationError(domain.KindFlightNotFound, err)
		default:
			return nil, s.storageFailure(ctx, "commit booking", err)
		}
	}

	logger.InfoContext(ctx, "seat reserved",
		"booking_id", committed.ID,
		"flight_id", committed.FlightID,
		"seat_number", committed.SeatNumber,
	)
	s.publish(ctx, committed)
	return committed, nil
}

func (s *BookingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storageTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storageTimeout)
}

func (s *BookingService) storageFailure(ctx context.Context, op string, err error) error {
	logger.ErrorContext(ctx, "reservation storage failure", "op", op, "error", err)
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		err = fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
	}
	return domain.NewReservationError(domain.KindStorageUnavailable, err)
}

// publish is best effort; the booking is already committed.
func (s *BookingService) publish(ctx context.Context, b *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := kafka.NewBookingEvent(kafka.EventBookingConfirmed, b)
	topics := []string{s.bookingTopic}
	if s.notificationsTopic != "" {
		topics = append(topics, s.notificationsTopic)
	}
	for _, topic := range topics {
		if err := s.producer.Publish(pubCtx, topic, b.ID, event); err != nil {
			logger.WarnContext(ctx, "failed to publish booking event", "topic", topic, "booking_id", b.ID, "error", err)
		}
	}
}

func buildBooking(input ReserveInput) (domain.Booking, *domain.ReservationError) {
	flightID := strings.TrimSpace(input.FlightID)
	seat := strings.TrimSpace(input.SeatNumber)
	email := strings.TrimSpace(input.UserEmail)
	if flightID == "" || seat == "" || email == "" {
		return domain.Booking{}, domain.NewReservationError(domain.KindMissingFields, errors.New("flight_id, seat_number and user_email are required"))
	}

	name := strings.TrimSpace(input.Passenger.Name)
	if name == "" {
		return domain.Booking{}, domain.NewReservationError(domain.KindMissingPassengerName, errors.New("passenger name required"))
	}

	return domain.Booking{
		FlightID:   flightID,
		SeatNumber: seat,
		UserEmail:  email,
		Passenger: domain.Passenger{
			Name:  name,
			Sex:   optionalString(input.Passenger.Sex),
			Age:   NormalizeAge(input.Passenger.Age),
			Phone: optionalString(input.Passenger.Phone),
		},
	}, nil
}

// NormalizeAge parses a passenger age leniently: empty, "null", non-integer
// and negative values all mean "absent".
func NormalizeAge(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}
	age, err := strconv.Atoi(raw)
	if err != nil || age < 0 {
		return nil
	}
	return &age
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

var _ BookingUseCase = (*BookingService)(nil)
