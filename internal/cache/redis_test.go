package cache

import (
	"testing"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSearchKey_FoldsCase(t *testing.T) {
	a := searchKey(domain.SearchFilter{Origin: "London", Destination: "TOKYO"})
	b := searchKey(domain.SearchFilter{Origin: "london", Destination: "tokyo"})
	assert.Equal(t, a, b)
}

func TestSearchKey_DistinguishesFilters(t *testing.T) {
	d := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

	filters := []domain.SearchFilter{
		{},
		{Origin: "a"},
		{Destination: "a"},
		{Date: &d},
		{Origin: "a", Destination: "b"},
		{Origin: "a\x1fb"},
	}
	keys := make(map[string]struct{}, len(filters))
	for _, f := range filters {
		keys[searchKey(f)] = struct{}{}
	}
	assert.Len(t, keys, 6)
}

func TestFlightKey(t *testing.T) {
	assert.Equal(t, "cache:flight:F1", flightKey("F1"))
}
