package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airreservation/api"
	"github.com/Domenick1991/airreservation/config"
	"github.com/Domenick1991/airreservation/internal/service/booking"
	"github.com/Domenick1991/airreservation/internal/service/flights"
	"github.com/Domenick1991/airreservation/internal/service/passengers"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, passengerSvc passengers.PassengerUseCase) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(flightSvc, bookingSvc, passengerSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires the handlers onto a gin engine.
func NewRouter(flightSvc flights.FlightUseCase, bookingSvc booking.BookingUseCase, passengerSvc passengers.PassengerUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	flightGroup := router.Group("/flights")
	api.NewFlightHandler(flightSvc).Register(flightGroup)
	api.NewBookingHandler(bookingSvc).Register(flightGroup)

	passengerGroup := router.Group("/passengers")
	api.NewPassengerHandler(passengerSvc, bookingSvc).Register(passengerGroup)

	return router
}
