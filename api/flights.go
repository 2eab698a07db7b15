package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/Domenick1991/seatbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/flights", h.search)
	router.GET("/flights/:id", h.get)
	router.GET("/occupied-seats/:flight_id", h.occupied)
}

func (h *FlightHandler) search(c *gin.Context) {
	var req searchRequest
	// An empty body searches without filters.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, codeInvalidRequestBody, err.Error())
		return
	}
	filter, err := req.filter()
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidDate, "date must be YYYY-MM-DD")
		return
	}

	list, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}

	data := make([]flightResponse, 0, len(list))
	for _, f := range list {
		data = append(data, toFlightResponse(f))
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}

func (h *FlightHandler) occupied(c *gin.Context) {
	seats, err := h.service.OccupiedSeats(c.Request.Context(), c.Param("flight_id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if seats == nil {
		seats = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"occupied": seats})
}

// Health reports liveness for container probes.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
