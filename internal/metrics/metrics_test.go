package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveReservation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveReservation("ok", 0.01)
	m.ObserveReservation("ok", 0.02)
	m.ObserveReservation("seat_taken", 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationsTotal.WithLabelValues("seat_taken")))
}

func TestObserveCache(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveSearch()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheResultsTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheResultsTotal.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesTotal))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveReservation("ok", 1)
		m.ObserveSearch()
		m.ObserveCache(true)
	})
}
