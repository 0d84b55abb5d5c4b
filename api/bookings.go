package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/Domenick1991/airreservation/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

// Register mounts the booking routes under a flight group.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/:number/bookings", h.list)
	router.POST("/:number/bookings", h.create)
	router.DELETE("/:number/bookings/:name/:surname", h.remove)
}

type createBookingRequest struct {
	Name       string `json:"name" binding:"required"`
	Surname    string `json:"surname" binding:"required"`
	SeatNumber int    `json:"seat_number" binding:"required"`
}

type bookingResponse struct {
	ID         int64  `json:"id"`
	Reference  string `json:"reference"`
	FlightID   int64  `json:"flight_id"`
	SeatNumber int    `json:"seat_number"`
	Name       string `json:"name"`
	Surname    string `json:"surname"`
	CreatedAt  string `json:"created_at"`
}

func (h *BookingHandler) list(c *gin.Context) {
	assignments, err := h.service.ForFlight(c.Request.Context(), c.Param("number"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := domain.PassengerKey{Name: req.Name, Surname: req.Surname}
	b, err := h.service.Assign(c.Request.Context(), c.Param("number"), key, req.SeatNumber)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingResponse{
		ID:         b.ID,
		Reference:  b.Reference,
		FlightID:   b.FlightID,
		SeatNumber: b.SeatNumber,
		Name:       req.Name,
		Surname:    req.Surname,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	})
}

func (h *BookingHandler) remove(c *gin.Context) {
	key := domain.PassengerKey{Name: c.Param("name"), Surname: c.Param("surname")}
	if err := h.service.Release(c.Request.Context(), c.Param("number"), key); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
