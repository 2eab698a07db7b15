package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/seatbooking/config"
	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	err := run(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestOpenStorage_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageDriverMemory}}

	store, err := openStorage(context.Background(), cfg)
	require.NoError(t, err)
	defer store.close()

	flights, err := store.flights.Search(context.Background(), domain.SearchFilter{})
	require.NoError(t, err)
	assert.Len(t, flights, seed.DefaultCount)
	assert.Nil(t, store.ready)
}
