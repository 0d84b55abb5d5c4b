package flights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/Domenick1991/airreservation/internal/repository"
	"github.com/Domenick1991/airreservation/pkg/logger"
)

type FlightUseCase interface {
	Schedule(ctx context.Context, input ScheduleInput) (*domain.Flight, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	ListOnRoute(ctx context.Context, origin, destination string, includeReturn bool) ([]domain.Flight, error)
	ListDepartingWithin(ctx context.Context, window time.Duration) ([]domain.Flight, error)
	ListWithMinSeats(ctx context.Context, minSeats int) ([]domain.Flight, error)
	Reschedule(ctx context.Context, number string, departure, arrival time.Time) (*domain.Flight, error)
	Reroute(ctx context.Context, number, origin, destination string) (*domain.Flight, error)
	Cancel(ctx context.Context, number string) error
	RefreshCache(ctx context.Context) error
}

// Cache is the flights-listing cache the service reads through.
type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type ScheduleInput struct {
	Number      string    `json:"number"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Departure   time.Time `json:"departure"`
	Arrival     time.Time `json:"arrival"`
	Capacity    int       `json:"capacity"`
}

type FlightService struct {
	flights  repository.FlightRepository
	bookings repository.BookingRepository
	cache    Cache
	log      logger.Logger
}

func NewFlightService(flights repository.FlightRepository, bookings repository.BookingRepository, cache Cache, log logger.Logger) *FlightService {
	return &FlightService{flights: flights, bookings: bookings, cache: cache, log: log}
}

// Schedule validates and persists a fresh flight. Nothing is persisted on
// any validation failure.
func (s *FlightService) Schedule(ctx context.Context, input ScheduleInput) (*domain.Flight, error) {
	flight, err := domain.NewFlight(input.Number, input.Origin, input.Destination, input.Departure, input.Arrival, input.Capacity)
	if err != nil {
		return nil, err
	}

	exists, err := s.flights.Exists(ctx, flight.Number)
	if err != nil {
		return nil, fmt.Errorf("%w: check flight %s: %w", domain.ErrGateway, flight.Number, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: flight %s", domain.ErrDuplicateEntity, flight.Number)
	}

	if err := s.flights.Insert(ctx, flight); err != nil {
		return nil, fmt.Errorf("%w: insert flight %s: %w", domain.ErrGateway, flight.Number, err)
	}

	s.invalidate(ctx)
	s.log.Info("flight scheduled", "number", flight.Number, "route", flight.Route(), "capacity", flight.Capacity)
	return flight, nil
}

// GetByNumber hydrates the aggregate including its seat map.
func (s *FlightService) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	if !domain.ValidFlightNumber(number) {
		return nil, fmt.Errorf("%w: flight number %q", domain.ErrInvalidFormat, number)
	}

	flight, err := s.flights.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: flight %s", domain.ErrNotFound, number)
		}
		return nil, fmt.Errorf("%w: get flight %s: %w", domain.ErrGateway, number, err)
	}

	assignments, err := s.bookings.ForFlight(ctx, flight.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: load bookings for flight %s: %w", domain.ErrGateway, number, err)
	}

	seats := make(map[domain.PassengerKey]int, len(assignments))
	for _, a := range assignments {
		seats[a.Passenger.Key()] = a.Seat
	}
	flight.LoadSeatMap(seats)
	return flight, nil
}

// List is cache-aside: cache errors degrade to the repository and are
// logged, never returned.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlights(ctx)
		if err != nil {
			s.log.Warn("flights cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list flights: %w", domain.ErrGateway, err)
	}

	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warn("flights cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) ListOnRoute(ctx context.Context, origin, destination string, includeReturn bool) ([]domain.Flight, error) {
	flights, err := s.flights.ListOnRoute(ctx, normalizeAirport(origin), normalizeAirport(destination), includeReturn)
	if err != nil {
		return nil, fmt.Errorf("%w: list flights on route: %w", domain.ErrGateway, err)
	}
	return flights, nil
}

func (s *FlightService) ListDepartingWithin(ctx context.Context, window time.Duration) ([]domain.Flight, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive", domain.ErrInvalidArgument)
	}
	flights, err := s.flights.ListDepartingWithin(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("%w: list departing flights: %w", domain.ErrGateway, err)
	}
	return flights, nil
}

func (s *FlightService) ListWithMinSeats(ctx context.Context, minSeats int) ([]domain.Flight, error) {
	flights, err := s.flights.ListWithMinSeats(ctx, minSeats)
	if err != nil {
		return nil, fmt.Errorf("%w: list flights with seats: %w", domain.ErrGateway, err)
	}
	return flights, nil
}

func (s *FlightService) Reschedule(ctx context.Context, number string, departure, arrival time.Time) (*domain.Flight, error) {
	return s.mutate(ctx, number, func(f *domain.Flight) error {
		return f.Reschedule(departure, arrival)
	})
}

func (s *FlightService) Reroute(ctx context.Context, number, origin, destination string) (*domain.Flight, error) {
	return s.mutate(ctx, number, func(f *domain.Flight) error {
		return f.Reroute(origin, destination)
	})
}

// mutate applies a domain mutation and persists it. If the update fails the
// mutation is not observable: the aggregate is reloaded per call.
func (s *FlightService) mutate(ctx context.Context, number string, apply func(*domain.Flight) error) (*domain.Flight, error) {
	flight, err := s.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := apply(flight); err != nil {
		return nil, err
	}
	if err := s.flights.Update(ctx, flight); err != nil {
		return nil, fmt.Errorf("%w: update flight %s: %w", domain.ErrGateway, number, err)
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Cancel(ctx context.Context, number string) error {
	if !domain.ValidFlightNumber(number) {
		return fmt.Errorf("%w: flight number %q", domain.ErrInvalidFormat, number)
	}
	if err := s.flights.DeleteByNumber(ctx, number); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: flight %s", domain.ErrNotFound, number)
		}
		return fmt.Errorf("%w: delete flight %s: %w", domain.ErrGateway, number, err)
	}
	s.invalidate(ctx)
	s.log.Info("flight cancelled", "number", number)
	return nil
}

// RefreshCache reloads the flights listing into the cache. Used by the
// worker's periodic sweep.
func (s *FlightService) RefreshCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	flights, err := s.flights.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: list flights: %w", domain.ErrGateway, err)
	}
	if err := s.cache.SetFlights(ctx, flights); err != nil {
		return fmt.Errorf("refresh flights cache: %w", err)
	}
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("flights cache invalidation failed", "error", err)
	}
}

func normalizeAirport(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

var _ FlightUseCase = (*FlightService)(nil)
