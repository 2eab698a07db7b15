package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
)

// flexString accepts a JSON string, number or null. Used for passenger age,
// which clients send in every shape.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	// Any other literal is kept verbatim and normalized downstream.
	*f = flexString(data)
	return nil
}

type passengerRequest struct {
	Name  string     `json:"name"`
	Sex   string     `json:"sex"`
	Age   flexString `json:"age"`
	Phone string     `json:"phone"`
}

type bookRequest struct {
	FlightID   string            `json:"flight_id"`
	SeatNumber string            `json:"seat_number"`
	UserEmail  string            `json:"user_email"`
	Passenger  *passengerRequest `json:"passenger"`
}

type searchRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

func (r searchRequest) filter() (domain.SearchFilter, error) {
	filter := domain.SearchFilter{
		Origin:      strings.TrimSpace(r.Origin),
		Destination: strings.TrimSpace(r.Destination),
	}
	if date := strings.TrimSpace(r.Date); date != "" {
		d, err := time.Parse(domain.DateLayout, date)
		if err != nil {
			return domain.SearchFilter{}, err
		}
		filter.Date = &d
	}
	return filter, nil
}

type flightResponse struct {
	ID            string  `json:"id"`
	FlightNo      string  `json:"flight_no"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	Price         float64 `json:"price"`
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:            f.ID,
		FlightNo:      f.FlightNo,
		Origin:        f.Origin,
		Destination:   f.Destination,
		DepartureDate: f.DepartureDate.Format(domain.DateLayout),
		Price:         float64(f.PriceCents) / 100,
	}
}

type bookingResponse struct {
	ID             string  `json:"id"`
	FlightID       string  `json:"flight_id"`
	SeatNumber     string  `json:"seat_number"`
	UserEmail      string  `json:"user_email"`
	PassengerName  string  `json:"passenger_name"`
	PassengerSex   *string `json:"passenger_sex"`
	PassengerAge   *int    `json:"passenger_age"`
	PassengerPhone *string `json:"passenger_phone"`
	CreatedAt      string  `json:"created_at"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:             b.ID,
		FlightID:       b.FlightID,
		SeatNumber:     b.SeatNumber,
		UserEmail:      b.UserEmail,
		PassengerName:  b.Passenger.Name,
		PassengerSex:   b.Passenger.Sex,
		PassengerAge:   b.Passenger.Age,
		PassengerPhone: b.Passenger.Phone,
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
	}
}
