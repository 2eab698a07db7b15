// Package seed generates random flight schedules for local runs and demos.
package seed

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/google/uuid"
)

const DefaultCount = 120

var cities = []string{
	"London", "Tokyo", "New York", "Paris", "Dubai", "Singapore", "Sydney", "Toronto",
	"Los Angeles", "San Francisco", "Berlin", "Rome", "Barcelona", "Hong Kong", "Seoul",
	"Mumbai", "Delhi", "Bangkok", "Istanbul", "Amsterdam", "Copenhagen", "Zurich",
	"Vienna", "Munich", "Chicago", "Dallas", "Atlanta", "Mexico City", "Sao Paulo",
	"Buenos Aires", "Cape Town", "Johannesburg", "Auckland", "Honolulu",
}

var airlines = []string{"AE", "AX", "AH", "AA", "AZ", "BA", "DL", "QF", "SQ", "EK", "JL", "NH"}

const (
	minPriceCents = 250_00
	maxPriceCents = 4500_00
	maxDaysAhead  = 365
)

type Generator struct {
	rnd   *rand.Rand
	today time.Time
}

// NewGenerator returns a generator whose departures fall within the year
// after today. The same seed yields the same schedule, apart from ids.
func NewGenerator(seed uint64, today time.Time) *Generator {
	y, m, d := today.Date()
	return &Generator{
		rnd:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		today: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

func (g *Generator) Flights(n int) []domain.Flight {
	out := make([]domain.Flight, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Flight())
	}
	return out
}

func (g *Generator) Flight() domain.Flight {
	origin := g.rnd.IntN(len(cities))
	destination := g.rnd.IntN(len(cities) - 1)
	if destination >= origin {
		destination++
	}
	return domain.Flight{
		ID:            uuid.NewString(),
		FlightNo:      fmt.Sprintf("%s%d", airlines[g.rnd.IntN(len(airlines))], 100+g.rnd.IntN(9900)),
		Origin:        cities[origin],
		Destination:   cities[destination],
		DepartureDate: g.today.AddDate(0, 0, 1+g.rnd.IntN(maxDaysAhead)),
		PriceCents:    minPriceCents + g.rnd.Int64N(maxPriceCents-minPriceCents+1),
	}
}

// Chunks splits flights into batches of at most size.
func Chunks(flights []domain.Flight, size int) [][]domain.Flight {
	if size <= 0 {
		size = len(flights)
	}
	var out [][]domain.Flight
	for len(flights) > 0 {
		n := min(size, len(flights))
		out = append(out, flights[:n])
		flights = flights[n:]
	}
	return out
}
