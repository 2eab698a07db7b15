package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/seatbooking/api"
	"github.com/Domenick1991/seatbooking/config"
	"github.com/Domenick1991/seatbooking/internal/bootstrap"
	"github.com/Domenick1991/seatbooking/internal/cache"
	"github.com/Domenick1991/seatbooking/internal/kafka"
	"github.com/Domenick1991/seatbooking/internal/logger"
	"github.com/Domenick1991/seatbooking/internal/metrics"
	"github.com/Domenick1991/seatbooking/internal/repository"
	"github.com/Domenick1991/seatbooking/internal/seed"
	"github.com/Domenick1991/seatbooking/internal/service/booking"
	"github.com/Domenick1991/seatbooking/internal/service/flights"
	"github.com/Domenick1991/seatbooking/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

type storage struct {
	flights  repository.FlightRepository
	bookings repository.BookingRepository
	ready    bootstrap.ReadinessCheck
	close    func()
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfgPath); err != nil {
		stop()
		logger.Error("app stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer store.close()

	m := metrics.New(nil)

	flightOpts := []flights.FlightServiceOption{
		flights.WithMetrics(m),
		flights.WithStorageTimeout(cfg.Booking.StorageTimeout()),
	}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.CacheTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, serving without cache", "addr", cfg.Redis.Addr, "error", err)
		} else {
			flightOpts = append(flightOpts, flights.WithCache(redisCache))
		}
	}
	flightService := flights.NewFlightService(store.flights, store.bookings, flightOpts...)

	bookingOpts := []booking.BookingServiceOption{
		booking.WithMetrics(m),
		booking.WithStorageTimeout(cfg.Booking.StorageTimeout()),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}
	bookingService := booking.NewBookingService(store.bookings, flightService, bookingOpts...)

	router := api.NewRouter(api.RouterConfig{
		SwaggerDir:  cfg.HTTP.SwaggerDir,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, flightService, bookingService)

	if err := bootstrap.Run(ctx, cfg, router, store.ready); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		catalog := repository.NewMemoryFlightRepository()
		if _, err := catalog.Insert(ctx, seed.NewGenerator(uint64(time.Now().UnixNano()), time.Now()).Flights(seed.DefaultCount)); err != nil {
			return nil, fmt.Errorf("seed memory catalog: %w", err)
		}
		logger.Info("using in-memory storage", "flights", seed.DefaultCount)
		return &storage{
			flights:  catalog,
			bookings: repository.NewMemoryBookingRepository(),
			close:    func() {},
		}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = cfg.Database.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := migrations.Apply(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &storage{
		flights:  repository.NewFlightRepository(pool),
		bookings: repository.NewBookingRepository(pool),
		ready:    pool.Ping,
		close:    pool.Close,
	}, nil
}
