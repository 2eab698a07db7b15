package domain

import "time"

// MaxSearchResults caps a single flight search.
const MaxSearchResults = 200

// DateLayout is the wire and storage format of a departure date.
const DateLayout = "2006-01-02"

type Flight struct {
	ID            string
	FlightNo      string
	Origin        string
	Destination   string
	DepartureDate time.Time
	PriceCents    int64
	CreatedAt     time.Time
}

// SearchFilter narrows a flight search. Zero values impose no constraint.
type SearchFilter struct {
	Origin      string
	Destination string
	Date        *time.Time
}
