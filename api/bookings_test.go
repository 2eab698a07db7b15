package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/Domenick1991/seatbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Reserve(ctx context.Context, input booking.ReserveInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func newBookContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/book", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newBookContext(t, `{"flight_id":"F1","seat_number":"12A","user_email":"a@x.com","passenger":{"name":"Alice","sex":"F","age":34,"phone":"+1"}}`)

	input := booking.ReserveInput{
		FlightID:   "F1",
		SeatNumber: "12A",
		UserEmail:  "a@x.com",
		Passenger:  booking.PassengerInput{Name: "Alice", Sex: "F", Age: "34", Phone: "+1"},
	}
	age := 34
	created := &domain.Booking{
		ID:         "b1",
		FlightID:   "F1",
		SeatNumber: "12A",
		UserEmail:  "a@x.com",
		Passenger:  domain.Passenger{Name: "Alice", Age: &age},
		CreatedAt:  time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	mockService.On("Reserve", c.Request.Context(), input).Return(created, nil).Once()

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data bookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "b1", response.Data.ID)
	assert.Equal(t, "12A", response.Data.SeatNumber)
	require.NotNil(t, response.Data.PassengerAge)
	assert.Equal(t, 34, *response.Data.PassengerAge)
	assert.Nil(t, response.Data.PassengerSex)
	assert.Equal(t, "2026-10-01T12:00:00Z", response.Data.CreatedAt)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_AgeShapes(t *testing.T) {
	testCases := []struct {
		name string
		age  string
		want string
	}{
		{"string", `"41"`, "41"},
		{"garbage string", `"not-a-number"`, "not-a-number"},
		{"null", `null`, ""},
		{"float", `12.5`, "12.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)
			c, w := newBookContext(t, `{"flight_id":"F1","seat_number":"1A","user_email":"a@x.com","passenger":{"name":"Al","age":`+tc.age+`}}`)

			mockService.On("Reserve", mock.Anything, mock.MatchedBy(func(in booking.ReserveInput) bool {
				return in.Passenger.Age == tc.want
			})).Return(&domain.Booking{ID: "b"}, nil).Once()

			handler.create(c)

			assert.Equal(t, http.StatusCreated, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestBookingHandler_create_ErrorMapping(t *testing.T) {
	testCases := []struct {
		kind   domain.ErrorKind
		status int
		msg    string
	}{
		{domain.KindMissingFields, http.StatusBadRequest, "missing fields"},
		{domain.KindMissingPassengerName, http.StatusBadRequest, "Passenger name required"},
		{domain.KindFlightNotFound, http.StatusNotFound, "flight not found"},
		{domain.KindSeatTaken, http.StatusConflict, "seat already booked"},
		{domain.KindStorageUnavailable, http.StatusInternalServerError, "storage unavailable, retry later"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.kind), func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)
			c, w := newBookContext(t, `{"flight_id":"F1","seat_number":"1A","user_email":"a@x.com","passenger":{"name":"Al"}}`)

			mockService.On("Reserve", mock.Anything, mock.Anything).Return(nil, domain.NewReservationError(tc.kind, nil)).Once()

			handler.create(c)

			assert.Equal(t, tc.status, w.Code)
			var response errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, string(tc.kind), response.Code)
			assert.Equal(t, tc.msg, response.Error)
		})
	}
}

func TestBookingHandler_create_MissingPassengerObject(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, _ := newBookContext(t, `{"flight_id":"F1","seat_number":"1A","user_email":"a@x.com"}`)

	mockService.On("Reserve", mock.Anything, booking.ReserveInput{FlightID: "F1", SeatNumber: "1A", UserEmail: "a@x.com"}).
		Return(nil, domain.NewReservationError(domain.KindMissingPassengerName, nil)).Once()

	handler.create(c)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_InvalidBody(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newBookContext(t, `{"flight_id":`)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
}
