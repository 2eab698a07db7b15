package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(flightID, seat, email string) domain.Booking {
	return domain.Booking{
		FlightID:   flightID,
		SeatNumber: seat,
		UserEmail:  email,
		Passenger:  domain.Passenger{Name: "Alice"},
	}
}

func TestMemoryBookingRepository_TryCommit(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	b, err := repo.TryCommit(ctx, newBooking("F1", "12A", "a@x.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	_, err = repo.TryCommit(ctx, newBooking("F1", "12A", "b@x.com"))
	assert.ErrorIs(t, err, domain.ErrSeatTaken)

	_, err = repo.TryCommit(ctx, newBooking("F2", "12A", "b@x.com"))
	assert.NoError(t, err, "same seat on another flight is free")

	seats, err := repo.SeatsOccupied(ctx, "F1")
	require.NoError(t, err)
	assert.Equal(t, []string{"12A"}, seats)
}

func TestMemoryBookingRepository_SeatsOccupiedSorted(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	for _, seat := range []string{"3C", "1A", "2B"} {
		_, err := repo.TryCommit(ctx, newBooking("F1", seat, "a@x.com"))
		require.NoError(t, err)
	}

	seats, err := repo.SeatsOccupied(ctx, "F1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1A", "2B", "3C"}, seats)

	empty, err := repo.SeatsOccupied(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryBookingRepository_ConcurrentCommitsSameSeat(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()

	const n = 64
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		conflicts atomic.Int32
		start     = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, err := repo.TryCommit(ctx, newBooking("F1", "7F", fmt.Sprintf("u%d@x.com", i)))
			switch {
			case err == nil:
				successes.Add(1)
			case err == domain.ErrSeatTaken:
				conflicts.Add(1)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(n-1), conflicts.Load())

	seats, err := repo.SeatsOccupied(ctx, "F1")
	require.NoError(t, err)
	assert.Equal(t, []string{"7F"}, seats)
}

func TestMemoryBookingRepository_CanceledContext(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.TryCommit(ctx, newBooking("F1", "1A", "a@x.com"))
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	seats, err := repo.SeatsOccupied(context.Background(), "F1")
	require.NoError(t, err)
	assert.Empty(t, seats)
}
