package flights

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/logger"
	"github.com/Domenick1991/seatbooking/internal/metrics"
	"github.com/Domenick1991/seatbooking/internal/repository"
	"golang.org/x/sync/singleflight"
)

type FlightUseCase interface {
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	OccupiedSeats(ctx context.Context, flightID string) ([]string, error)
}

// FlightCache holds flight records only. Flights are immutable here, so
// cached entries never go stale before their TTL.
type FlightCache interface {
	GetSearch(ctx context.Context, filter domain.SearchFilter) ([]domain.Flight, bool, error)
	SetSearch(ctx context.Context, filter domain.SearchFilter, flights []domain.Flight) error
	GetFlight(ctx context.Context, id string) (*domain.Flight, error)
	SetFlight(ctx context.Context, flight *domain.Flight) error
}

const defaultStorageTimeout = 5 * time.Second

type FlightService struct {
	repo           repository.FlightRepository
	bookings       repository.BookingRepository
	cache          FlightCache
	metrics        *metrics.Metrics
	group          singleflight.Group
	storageTimeout time.Duration
}

type FlightServiceOption func(*FlightService)

func WithCache(cache FlightCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithMetrics(m *metrics.Metrics) FlightServiceOption {
	return func(s *FlightService) {
		s.metrics = m
	}
}

// WithStorageTimeout bounds every repository and ledger call. Zero or less
// disables the bound.
func WithStorageTimeout(d time.Duration) FlightServiceOption {
	return func(s *FlightService) {
		s.storageTimeout = d
	}
}

func NewFlightService(repo repository.FlightRepository, bookings repository.BookingRepository, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, bookings: bookings, storageTimeout: defaultStorageTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns at most domain.MaxSearchResults flights ordered by
// departure date. Concurrent identical misses share one storage query, run
// detached from any single caller so one caller giving up does not fail the
// others. Each caller gets its own copy of the result.
func (s *FlightService) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Flight, error) {
	filter = normalizeFilter(filter)
	s.metrics.ObserveSearch()

	if s.cache != nil {
		cached, ok, err := s.cache.GetSearch(ctx, filter)
		if err != nil {
			logger.WarnContext(ctx, "flight search cache read failed", "error", err)
		}
		s.metrics.ObserveCache(ok)
		if ok {
			return cached, nil
		}
	}

	ch := s.group.DoChan(filterKey(filter), func() (any, error) {
		sharedCtx, cancel := s.withTimeout(context.WithoutCancel(ctx))
		defer cancel()
		return s.searchAndCache(sharedCtx, filter)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, storageError(res.Err)
		}
		return slices.Clone(res.Val.([]domain.Flight)), nil
	case <-ctx.Done():
		return nil, storageError(ctx.Err())
	}
}

func (s *FlightService) searchAndCache(ctx context.Context, filter domain.SearchFilter) ([]domain.Flight, error) {
	flights, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, filter, flights); err != nil {
			logger.WarnContext(ctx, "flight search cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlight(ctx, id)
		if err != nil {
			logger.WarnContext(ctx, "flight cache read failed", "flight_id", id, "error", err)
		}
		s.metrics.ObserveCache(cached != nil)
		if cached != nil {
			return cached, nil
		}
	}

	storageCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	flight, err := s.repo.GetByID(storageCtx, id)
	if err != nil {
		return nil, storageError(err)
	}

	if s.cache != nil {
		if err := s.cache.SetFlight(ctx, flight); err != nil {
			logger.WarnContext(ctx, "flight cache write failed", "flight_id", id, "error", err)
		}
	}
	return flight, nil
}

// OccupiedSeats always reads the ledger so that every completed booking is
// visible.
func (s *FlightService) OccupiedSeats(ctx context.Context, flightID string) ([]string, error) {
	if strings.TrimSpace(flightID) == "" {
		return nil, domain.ErrFlightNotFound
	}

	storageCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	seats, err := s.bookings.SeatsOccupied(storageCtx, flightID)
	if err != nil {
		return nil, storageError(err)
	}
	return seats, nil
}

func (s *FlightService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storageTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storageTimeout)
}

// storageError keeps not-found as is and labels everything else unavailable.
func storageError(err error) error {
	if errors.Is(err, domain.ErrFlightNotFound) || errors.Is(err, domain.ErrStorageUnavailable) {
		return err
	}
	return errors.Join(domain.ErrStorageUnavailable, err)
}

func normalizeFilter(filter domain.SearchFilter) domain.SearchFilter {
	filter.Origin = strings.TrimSpace(filter.Origin)
	filter.Destination = strings.TrimSpace(filter.Destination)
	return filter
}

func filterKey(filter domain.SearchFilter) string {
	date := ""
	if filter.Date != nil {
		date = filter.Date.Format(domain.DateLayout)
	}
	return strings.ToLower(filter.Origin) + "\x00" + strings.ToLower(filter.Destination) + "\x00" + date
}

var _ FlightUseCase = (*FlightService)(nil)
