package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/testutil"
)

func TestPGRepositories(t *testing.T) {
	pool := testutil.NewTestPool(t)
	flights := NewFlightRepository(pool)
	bookings := NewBookingRepository(pool)

	t.Run("TryCommit enforces seat uniqueness", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		testutil.InsertFlight(t, ctx, pool, domain.Flight{ID: "F1", FlightNo: "BA1", Origin: "London", Destination: "Paris", DepartureDate: testutil.Date(t, "2026-11-01"), PriceCents: 10000})

		age := 30
		b, err := bookings.TryCommit(ctx, domain.Booking{FlightID: "F1", SeatNumber: "12A", UserEmail: "a@x.com", Passenger: domain.Passenger{Name: "Alice", Age: &age}})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if b.ID == "" || b.CreatedAt.IsZero() {
			t.Fatalf("unexpected booking: %+v", b)
		}

		_, err = bookings.TryCommit(ctx, domain.Booking{FlightID: "F1", SeatNumber: "12A", UserEmail: "b@x.com", Passenger: domain.Passenger{Name: "Bob"}})
		if err != domain.ErrSeatTaken {
			t.Fatalf("expected ErrSeatTaken, got %v", err)
		}

		seats, err := bookings.SeatsOccupied(ctx, "F1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(seats) != 1 || seats[0] != "12A" {
			t.Fatalf("unexpected seats: %v", seats)
		}
	})

	t.Run("TryCommit unknown flight", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		_, err := bookings.TryCommit(ctx, domain.Booking{FlightID: "nope", SeatNumber: "1A", UserEmail: "a@x.com", Passenger: domain.Passenger{Name: "Alice"}})
		if err != domain.ErrFlightNotFound {
			t.Fatalf("expected ErrFlightNotFound, got %v", err)
		}
	})

	t.Run("concurrent TryCommit has one winner", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		testutil.InsertFlight(t, ctx, pool, domain.Flight{ID: "F1", FlightNo: "BA1", Origin: "London", Destination: "Paris", DepartureDate: testutil.Date(t, "2026-11-01")})

		const n = 12
		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			errs []error
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := bookings.TryCommit(ctx, domain.Booking{FlightID: "F1", SeatNumber: "9C", UserEmail: fmt.Sprintf("u%d@x.com", i), Passenger: domain.Passenger{Name: "P"}})
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}(i)
		}
		wg.Wait()

		var ok, taken int
		for _, err := range errs {
			switch err {
			case nil:
				ok++
			case domain.ErrSeatTaken:
				taken++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if ok != 1 || taken != n-1 {
			t.Fatalf("expected 1 success and %d conflicts, got %d and %d", n-1, ok, taken)
		}
	})

	t.Run("Search filters and orders", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		if _, err := flights.Insert(ctx, []domain.Flight{
			{ID: "b", FlightNo: "X2", Origin: "New York", Destination: "Rome", DepartureDate: testutil.Date(t, "2026-11-05")},
			{ID: "a", FlightNo: "X1", Origin: "new york", Destination: "Oslo", DepartureDate: testutil.Date(t, "2026-11-04")},
			{ID: "c", FlightNo: "X3", Origin: "Berlin", Destination: "Rome", DepartureDate: testutil.Date(t, "2026-11-04")},
		}); err != nil {
			t.Fatalf("insert flights: %v", err)
		}

		got, err := flights.Search(ctx, domain.SearchFilter{Origin: "YORK"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
			t.Fatalf("unexpected flights: %+v", got)
		}

		d := testutil.Date(t, "2026-11-04")
		got, err = flights.Search(ctx, domain.SearchFilter{Date: &d})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
			t.Fatalf("unexpected flights: %+v", got)
		}

		if _, err := flights.GetByID(ctx, "zzz"); err != domain.ErrFlightNotFound {
			t.Fatalf("expected ErrFlightNotFound, got %v", err)
		}
	})
}
