package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/seatbooking/config"
	"github.com/Domenick1991/seatbooking/internal/logger"
	"github.com/Domenick1991/seatbooking/internal/repository"
	"github.com/Domenick1991/seatbooking/internal/seed"
	"github.com/Domenick1991/seatbooking/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const chunkSize = 50

func main() {
	count := flag.Int("count", seed.DefaultCount, "number of flights to generate")
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *cfgPath, *count); err != nil {
		stop()
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string, count int) error {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return fmt.Errorf("seeding requires the postgres storage driver, got %q", cfg.Storage.Driver)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	repo := repository.NewFlightRepository(pool)
	now := time.Now()
	flights := seed.NewGenerator(uint64(now.UnixNano()), now).Flights(count)

	var inserted int64
	for _, chunk := range seed.Chunks(flights, chunkSize) {
		n, err := repo.Insert(ctx, chunk)
		if err != nil {
			logger.Error("insert chunk", "size", len(chunk), "error", err)
			continue
		}
		inserted += n
		logger.Info("inserted flights", "rows", n)
	}
	logger.Info("seed done", "attempted", len(flights), "inserted", inserted)
	if inserted == 0 && len(flights) > 0 {
		return errors.New("no flights inserted")
	}
	return nil
}
