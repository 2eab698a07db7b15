package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Insert(ctx context.Context, flights []domain.Flight) (int64, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_no, origin, destination, departure_date, price_cents, created_at`

func (r *PGFlightRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Flight, error) {
	query, args := buildSearchQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable("search flights", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNo, &f.Origin, &f.Destination, &f.DepartureDate, &f.PriceCents, &f.CreatedAt); err != nil {
			return nil, unavailable("scan flight", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("search flights", err)
	}
	return flights, nil
}

func buildSearchQuery(filter domain.SearchFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Origin != "" {
		args = append(args, containsPattern(filter.Origin))
		conds = append(conds, fmt.Sprintf(`origin ILIKE $%d`, len(args)))
	}
	if filter.Destination != "" {
		args = append(args, containsPattern(filter.Destination))
		conds = append(conds, fmt.Sprintf(`destination ILIKE $%d`, len(args)))
	}
	if filter.Date != nil {
		args = append(args, filter.Date.Format(domain.DateLayout))
		conds = append(conds, fmt.Sprintf(`departure_date = $%d::date`, len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + flightColumns + ` FROM flights`)
	if len(conds) > 0 {
		b.WriteString(` WHERE ` + strings.Join(conds, ` AND `))
	}
	fmt.Fprintf(&b, ` ORDER BY departure_date, id LIMIT %d`, domain.MaxSearchResults)
	return b.String(), args
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = $1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNo, &f.Origin, &f.Destination, &f.DepartureDate, &f.PriceCents, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, unavailable("get flight", err)
	}
	return &f, nil
}

// Insert bulk-loads flights with COPY.
func (r *PGFlightRepository) Insert(ctx context.Context, flights []domain.Flight) (int64, error) {
	n, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"flights"},
		[]string{"id", "flight_no", "origin", "destination", "departure_date", "price_cents"},
		pgx.CopyFromSlice(len(flights), func(i int) ([]any, error) {
			f := flights[i]
			return []any{f.ID, f.FlightNo, f.Origin, f.Destination, f.DepartureDate, f.PriceCents}, nil
		}),
	)
	if err != nil {
		return 0, unavailable("insert flights", err)
	}
	return n, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
