package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository is the booking ledger. It is the only writer of bookings
// and the sole arbiter of seat uniqueness.
type BookingRepository interface {
	// TryCommit inserts booking unless its seat is already taken, in which
	// case it returns domain.ErrSeatTaken. ID and CreatedAt are assigned
	// by the ledger when empty.
	TryCommit(ctx context.Context, booking domain.Booking) (*domain.Booking, error)
	// SeatsOccupied lists booked seats of a flight, sorted.
	SeatsOccupied(ctx context.Context, flightID string) ([]string, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// TryCommit relies on the bookings_flight_seat_key unique constraint: the
// insert itself detects the conflict, so concurrent commits for one seat
// are serialized by Postgres and exactly one returns a row.
func (r *PGBookingRepository) TryCommit(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	if booking.ID == "" {
		booking.ID = newBookingID()
	}

	const stmt = `
INSERT INTO bookings (id, flight_id, seat_number, user_email, passenger_name, passenger_sex, passenger_age, passenger_phone)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (flight_id, seat_number) DO NOTHING
RETURNING created_at`

	p := booking.Passenger
	err := r.db.QueryRow(ctx, stmt,
		booking.ID,
		booking.FlightID,
		booking.SeatNumber,
		booking.UserEmail,
		p.Name,
		p.Sex,
		p.Age,
		p.Phone,
	).Scan(&booking.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), isUniqueViolation(err):
			return nil, domain.ErrSeatTaken
		case isForeignKeyViolation(err):
			return nil, domain.ErrFlightNotFound
		default:
			return nil, unavailable("commit booking", err)
		}
	}
	return &booking, nil
}

func (r *PGBookingRepository) SeatsOccupied(ctx context.Context, flightID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT seat_number FROM bookings WHERE flight_id = $1 ORDER BY seat_number`, flightID)
	if err != nil {
		return nil, unavailable("list occupied seats", err)
	}
	defer rows.Close()

	seats, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, unavailable("list occupied seats", err)
	}
	sort.Strings(seats)
	return seats, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
