package api

import (
	"net/http"

	"github.com/Domenick1991/seatbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/book", h.create)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
		return
	}

	input := booking.ReserveInput{
		FlightID:   req.FlightID,
		SeatNumber: req.SeatNumber,
		UserEmail:  req.UserEmail,
	}
	if p := req.Passenger; p != nil {
		input.Passenger = booking.PassengerInput{
			Name:  p.Name,
			Sex:   p.Sex,
			Age:   string(p.Age),
			Phone: p.Phone,
		}
	}

	created, err := h.service.Reserve(c.Request.Context(), input)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toBookingResponse(created)})
}
