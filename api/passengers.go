package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/airreservation/internal/service/booking"
	"github.com/Domenick1991/airreservation/internal/service/passengers"
	"github.com/gin-gonic/gin"
)

type PassengerHandler struct {
	service  passengers.PassengerUseCase
	bookings booking.BookingUseCase
}

func NewPassengerHandler(service passengers.PassengerUseCase, bookings booking.BookingUseCase) *PassengerHandler {
	return &PassengerHandler{service: service, bookings: bookings}
}

func (h *PassengerHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.GET("/:id/bookings", h.listBookings)
	router.PATCH("/:id/phone", h.changePhone)
	router.DELETE("/:id", h.remove)
}

type createPassengerRequest struct {
	Name        string `json:"name" binding:"required"`
	Surname     string `json:"surname" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type changePhoneRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

func (h *PassengerHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PassengerHandler) create(c *gin.Context) {
	var req createPassengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Register(c.Request.Context(), req.Name, req.Surname, req.PhoneNumber)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PassengerHandler) get(c *gin.Context) {
	id, ok := h.passengerID(c)
	if !ok {
		return
	}
	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PassengerHandler) listBookings(c *gin.Context) {
	id, ok := h.passengerID(c)
	if !ok {
		return
	}
	seats, err := h.bookings.ForPassenger(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, seats)
}

func (h *PassengerHandler) changePhone(c *gin.Context) {
	id, ok := h.passengerID(c)
	if !ok {
		return
	}
	var req changePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.ChangePhone(c.Request.Context(), id, req.PhoneNumber)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PassengerHandler) remove(c *gin.Context) {
	id, ok := h.passengerID(c)
	if !ok {
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PassengerHandler) passengerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
