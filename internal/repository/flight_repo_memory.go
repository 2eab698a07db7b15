package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
)

// MemoryFlightRepository serves flights from a sorted in-memory slice.
type MemoryFlightRepository struct {
	mu      sync.RWMutex
	flights []domain.Flight
	byID    map[string]int
}

func NewMemoryFlightRepository(flights ...domain.Flight) *MemoryFlightRepository {
	r := &MemoryFlightRepository{byID: make(map[string]int)}
	_, _ = r.Insert(context.Background(), flights)
	return r
}

func (r *MemoryFlightRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("search flights", err)
	}
	origin := strings.ToLower(filter.Origin)
	destination := strings.ToLower(filter.Destination)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Flight, 0)
	for _, f := range r.flights {
		if origin != "" && !strings.Contains(strings.ToLower(f.Origin), origin) {
			continue
		}
		if destination != "" && !strings.Contains(strings.ToLower(f.Destination), destination) {
			continue
		}
		if filter.Date != nil && !sameDate(f.DepartureDate, *filter.Date) {
			continue
		}
		out = append(out, f)
		if len(out) == domain.MaxSearchResults {
			break
		}
	}
	return out, nil
}

func (r *MemoryFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("get flight", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	f := r.flights[i]
	return &f, nil
}

// Insert adds flights, replacing any with the same id.
func (r *MemoryFlightRepository) Insert(_ context.Context, flights []domain.Flight) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range flights {
		if i, ok := r.byID[f.ID]; ok {
			r.flights[i] = f
			continue
		}
		r.flights = append(r.flights, f)
		r.byID[f.ID] = len(r.flights) - 1
	}
	sort.SliceStable(r.flights, func(i, j int) bool {
		a, b := r.flights[i], r.flights[j]
		if !a.DepartureDate.Equal(b.DepartureDate) {
			return a.DepartureDate.Before(b.DepartureDate)
		}
		return a.ID < b.ID
	})
	for i, f := range r.flights {
		r.byID[f.ID] = i
	}
	return int64(len(flights)), nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

var _ FlightRepository = (*MemoryFlightRepository)(nil)
