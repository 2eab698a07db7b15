package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/seatbooking/config"
	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores immutable flight records and search pages. Booking
// state is never cached.
type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetSearch returns ok=false on a miss.
func (c *RedisCache) GetSearch(ctx context.Context, filter domain.SearchFilter) ([]domain.Flight, bool, error) {
	var flights []domain.Flight
	ok, err := c.get(ctx, searchKey(filter), &flights)
	return flights, ok, err
}

func (c *RedisCache) SetSearch(ctx context.Context, filter domain.SearchFilter, flights []domain.Flight) error {
	return c.set(ctx, searchKey(filter), flights)
}

// GetFlight returns nil, nil on a miss.
func (c *RedisCache) GetFlight(ctx context.Context, id string) (*domain.Flight, error) {
	var f domain.Flight
	ok, err := c.get(ctx, flightKey(id), &f)
	if err != nil || !ok {
		return nil, err
	}
	return &f, nil
}

func (c *RedisCache) SetFlight(ctx context.Context, flight *domain.Flight) error {
	return c.set(ctx, flightKey(flight.ID), flight)
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.flightsTTL).Err()
}

func flightKey(id string) string {
	return "cache:flight:" + id
}

// searchKey folds case because matching is case-insensitive.
func searchKey(filter domain.SearchFilter) string {
	date := "*"
	if filter.Date != nil {
		date = filter.Date.Format(domain.DateLayout)
	}
	return strings.Join([]string{
		"cache:flights:search",
		strings.ToLower(filter.Origin),
		strings.ToLower(filter.Destination),
		date,
	}, "\x1f")
}
