package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the reservation and catalog collectors.
type Metrics struct {
	ReservationsTotal   *prometheus.CounterVec
	ReservationDuration prometheus.Histogram
	SearchesTotal       prometheus.Counter
	CacheResultsTotal   *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		ReservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seatbooking_reservations_total",
			Help: "Reservation attempts by outcome",
		}, []string{"outcome"}),

		ReservationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "seatbooking_reservation_duration_seconds",
			Help:    "Time spent in a reservation attempt",
			Buckets: prometheus.DefBuckets,
		}),

		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seatbooking_flight_searches_total",
			Help: "Total flight searches served",
		}),

		CacheResultsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seatbooking_flight_cache_results_total",
			Help: "Flight cache lookups by result",
		}, []string{"result"}),
	}

	reg.MustRegister(m.ReservationsTotal, m.ReservationDuration, m.SearchesTotal, m.CacheResultsTotal)
	return m
}

// ObserveReservation records one reservation outcome. Safe on a nil receiver.
func (m *Metrics) ObserveReservation(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(outcome).Inc()
	m.ReservationDuration.Observe(seconds)
}

func (m *Metrics) ObserveSearch() {
	if m == nil {
		return
	}
	m.SearchesTotal.Inc()
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheResultsTotal.WithLabelValues(result).Inc()
}
