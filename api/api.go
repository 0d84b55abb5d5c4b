// Package api exposes the reservation services over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusFor maps domain failure kinds onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidSeat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrNotBooked):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEntity),
		errors.Is(err, domain.ErrSeatTaken),
		errors.Is(err, domain.ErrAlreadyBooked),
		errors.Is(err, domain.ErrNoCapacity):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
