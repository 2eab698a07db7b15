package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
)

// MemoryBookingRepository keeps bookings in process memory. Each flight owns
// a sync.Map keyed by seat number; LoadOrStore is the atomic conditional
// write, so commits to different seats never share a lock.
type MemoryBookingRepository struct {
	flights sync.Map // flight id -> *sync.Map (seat -> *domain.Booking)
	now     func() time.Time
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{now: time.Now}
}

func (r *MemoryBookingRepository) seats(flightID string) *sync.Map {
	v, _ := r.flights.LoadOrStore(flightID, &sync.Map{})
	return v.(*sync.Map)
}

func (r *MemoryBookingRepository) TryCommit(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("commit booking", err)
	}
	if booking.ID == "" {
		booking.ID = newBookingID()
	}
	booking.CreatedAt = r.now().UTC()

	stored := booking
	if _, loaded := r.seats(booking.FlightID).LoadOrStore(booking.SeatNumber, &stored); loaded {
		return nil, domain.ErrSeatTaken
	}
	return &booking, nil
}

func (r *MemoryBookingRepository) SeatsOccupied(ctx context.Context, flightID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("list occupied seats", err)
	}
	v, ok := r.flights.Load(flightID)
	if !ok {
		return []string{}, nil
	}

	seats := make([]string, 0)
	v.(*sync.Map).Range(func(key, _ any) bool {
		seats = append(seats, key.(string))
		return true
	})
	sort.Strings(seats)
	return seats, nil
}

var _ BookingRepository = (*MemoryBookingRepository)(nil)
