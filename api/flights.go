package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/Domenick1991/airreservation/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:number", h.get)
	router.PATCH("/:number/schedule", h.reschedule)
	router.PATCH("/:number/route", h.reroute)
	router.DELETE("/:number", h.cancel)
}

type flightResponse struct {
	ID             int64  `json:"id"`
	Number         string `json:"number"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Departure      string `json:"departure"`
	Arrival        string `json:"arrival"`
	Capacity       int    `json:"capacity"`
	AvailableSeats int    `json:"available_seats"`
	DurationHours  int    `json:"duration_hours"`
	DurationMins   int    `json:"duration_minutes"`
}

type rescheduleRequest struct {
	Departure time.Time `json:"departure" binding:"required"`
	Arrival   time.Time `json:"arrival" binding:"required"`
}

type rerouteRequest struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// list serves the flight listing, optionally filtered by route, departure
// window, or minimum free seats.
func (h *FlightHandler) list(c *gin.Context) {
	ctx := c.Request.Context()

	if route := c.Query("route"); route != "" {
		origin, destination, ok := splitRoute(route)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "route must look like WAW-JFK"})
			return
		}
		includeReturn := c.Query("include_return") == "true"
		list, err := h.service.ListOnRoute(ctx, origin, destination, includeReturn)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, toFlightResponses(list))
		return
	}

	if hours := c.Query("within_hours"); hours != "" {
		n, err := strconv.Atoi(hours)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "within_hours must be a positive integer"})
			return
		}
		list, err := h.service.ListDepartingWithin(ctx, time.Duration(n)*time.Hour)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, toFlightResponses(list))
		return
	}

	if minSeats := c.Query("min_seats"); minSeats != "" {
		n, err := strconv.Atoi(minSeats)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_seats must be a non-negative integer"})
			return
		}
		list, err := h.service.ListWithMinSeats(ctx, n)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, toFlightResponses(list))
		return
	}

	list, err := h.service.List(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(list))
}

func (h *FlightHandler) create(c *gin.Context) {
	var input flights.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Schedule(c.Request.Context(), input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) reschedule(c *gin.Context) {
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Reschedule(c.Request.Context(), c.Param("number"), req.Departure, req.Arrival)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) reroute(c *gin.Context) {
	var req rerouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Reroute(c.Request.Context(), c.Param("number"), req.Origin, req.Destination)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("number")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toFlightResponse(f *domain.Flight) flightResponse {
	hours, minutes := f.Duration()
	return flightResponse{
		ID:             f.ID,
		Number:         f.Number,
		Origin:         f.Origin,
		Destination:    f.Destination,
		Departure:      f.Departure.Format(time.RFC3339),
		Arrival:        f.Arrival.Format(time.RFC3339),
		Capacity:       f.Capacity,
		AvailableSeats: f.Available,
		DurationHours:  hours,
		DurationMins:   minutes,
	}
}

func toFlightResponses(list []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(list))
	for i := range list {
		out = append(out, toFlightResponse(&list[i]))
	}
	return out
}

func splitRoute(route string) (origin, destination string, ok bool) {
	parts := strings.Split(route, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
