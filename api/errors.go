package api

import (
	"net/http"

	"github.com/Domenick1991/seatbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidDate        = "invalid_date"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, errorResponse{Error: msg, Code: code})
}

// statusForKind maps reservation outcomes onto HTTP.
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindMissingFields, domain.KindMissingPassengerName:
		return http.StatusBadRequest
	case domain.KindFlightNotFound:
		return http.StatusNotFound
	case domain.KindSeatTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

var kindMessages = map[domain.ErrorKind]string{
	domain.KindMissingFields:        "missing fields",
	domain.KindMissingPassengerName: "Passenger name required",
	domain.KindFlightNotFound:       "flight not found",
	domain.KindSeatTaken:            "seat already booked",
	domain.KindStorageUnavailable:   "storage unavailable, retry later",
}

func writeDomainError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	msg, ok := kindMessages[kind]
	if !ok {
		msg = err.Error()
	}
	if kind == domain.KindStorageUnavailable {
		_ = c.Error(err)
	}
	writeError(c, statusForKind(kind), string(kind), msg)
}
