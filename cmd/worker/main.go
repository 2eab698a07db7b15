package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/seatbooking/config"
	"github.com/Domenick1991/seatbooking/internal/email"
	"github.com/Domenick1991/seatbooking/internal/kafka"
	"github.com/Domenick1991/seatbooking/internal/logger"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithService(ctx, "notify-worker")

	if err := run(ctx, cfgPath); err != nil {
		stop()
		logger.ErrorContext(ctx, "worker stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.NotificationsTopic == "" {
		return errors.New("kafka brokers and notifications topic are required")
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.ErrorContext(ctx, "close consumer", "error", err)
		}
	}()
	emailSender := email.NewSender()

	done := make(chan error, 1)
	go func() {
		done <- consumer.Consume(ctx, kafka.BookingEventHandler(emailSender.Send))
	}()
	logger.InfoContext(ctx, "worker started", "topic", cfg.Kafka.NotificationsTopic, "group_id", cfg.Kafka.GroupID)

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("consume: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.InfoContext(ctx, "shutting down")
	}

	select {
	case err := <-done:
		return err
	case <-time.After(time.Duration(cfg.Worker.ShutdownTimeoutSeconds) * time.Second):
		logger.WarnContext(ctx, "consumer did not stop in time")
		return nil
	}
}
