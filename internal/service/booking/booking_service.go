package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/Domenick1991/airreservation/internal/kafka"
	"github.com/Domenick1991/airreservation/internal/repository"
	"github.com/Domenick1991/airreservation/pkg/logger"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	Assign(ctx context.Context, flightNumber string, key domain.PassengerKey, seatNo int) (*domain.Booking, error)
	Release(ctx context.Context, flightNumber string, key domain.PassengerKey) error
	ForFlight(ctx context.Context, flightNumber string) ([]domain.SeatAssignment, error)
	ForPassenger(ctx context.Context, passengerID int64) ([]domain.FlightSeat, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Cache is the slice of the flights cache the booking service touches:
// every assignment changes availability, so the listing must be dropped.
type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type BookingService struct {
	flights            repository.FlightRepository
	passengers         repository.PassengerRepository
	bookings           repository.BookingRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	log                logger.Logger

	// One mutex per flight number serializes the load-mutate-persist
	// window; seat uniqueness is only guaranteed under exclusive access.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	bookings repository.BookingRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	log logger.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		flights:      flights,
		passengers:   passengers,
		bookings:     bookings,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		log:          log,
		locks:        make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Assign books a seat for the passenger identified by key. On a gateway
// failure the in-memory assignment is rolled back, so a failed call leaves
// no partial state anywhere.
func (s *BookingService) Assign(ctx context.Context, flightNumber string, key domain.PassengerKey, seatNo int) (*domain.Booking, error) {
	lock := s.flightLock(flightNumber)
	lock.Lock()
	defer lock.Unlock()

	flight, passenger, err := s.load(ctx, flightNumber, key)
	if err != nil {
		return nil, err
	}
	if passenger == nil {
		return nil, fmt.Errorf("%w: passenger %s", domain.ErrNotFound, key.FullName())
	}

	if err := flight.AssignSeat(key, seatNo); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Reference:   uuid.NewString(),
		FlightID:    flight.ID,
		PassengerID: passenger.ID,
		SeatNumber:  seatNo,
	}
	if err := s.bookings.Insert(ctx, booking); err != nil {
		if _, rbErr := flight.ReleaseSeat(key); rbErr != nil {
			s.log.Error("assignment rollback failed", "flight", flightNumber, "passenger", key.FullName(), "error", rbErr)
		}
		if errors.Is(err, domain.ErrNoCapacity) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: insert booking: %w", domain.ErrGateway, err)
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.EventBookingCreated, flight, passenger, booking)
	s.log.Info("passenger assigned",
		"flight", flight.Number, "passenger", key.FullName(), "seat", seatNo, "reference", booking.Reference)
	return booking, nil
}

// Release removes the passenger's booking by identity key. ErrNotBooked is
// an observable non-fatal outcome and mutates nothing.
func (s *BookingService) Release(ctx context.Context, flightNumber string, key domain.PassengerKey) error {
	lock := s.flightLock(flightNumber)
	lock.Lock()
	defer lock.Unlock()

	flight, passenger, err := s.load(ctx, flightNumber, key)
	if err != nil {
		return err
	}
	if passenger == nil {
		return fmt.Errorf("%w: %s on flight %s", domain.ErrNotBooked, key.FullName(), flightNumber)
	}

	seatNo, err := flight.ReleaseSeat(key)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, flight.ID, passenger.ID); err != nil {
		if rbErr := flight.AssignSeat(key, seatNo); rbErr != nil {
			s.log.Error("release rollback failed", "flight", flightNumber, "passenger", key.FullName(), "error", rbErr)
		}
		return fmt.Errorf("%w: delete booking: %w", domain.ErrGateway, err)
	}

	s.invalidate(ctx)
	booking := &domain.Booking{FlightID: flight.ID, PassengerID: passenger.ID, SeatNumber: seatNo}
	s.publish(ctx, kafka.EventBookingRemoved, flight, passenger, booking)
	s.log.Info("passenger removed", "flight", flight.Number, "passenger", key.FullName(), "seat", seatNo)
	return nil
}

func (s *BookingService) ForFlight(ctx context.Context, flightNumber string) ([]domain.SeatAssignment, error) {
	flight, err := s.flights.GetByNumber(ctx, flightNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: flight %s", domain.ErrNotFound, flightNumber)
		}
		return nil, fmt.Errorf("%w: get flight %s: %w", domain.ErrGateway, flightNumber, err)
	}
	assignments, err := s.bookings.ForFlight(ctx, flight.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: bookings for flight %s: %w", domain.ErrGateway, flightNumber, err)
	}
	return assignments, nil
}

func (s *BookingService) ForPassenger(ctx context.Context, passengerID int64) ([]domain.FlightSeat, error) {
	seats, err := s.bookings.ForPassenger(ctx, passengerID)
	if err != nil {
		return nil, fmt.Errorf("%w: bookings for passenger %d: %w", domain.ErrGateway, passengerID, err)
	}
	return seats, nil
}

// load hydrates the flight aggregate and resolves the passenger by identity
// key. A missing passenger is reported as (flight, nil, nil): the caller
// decides whether that is NotFound or NotBooked.
func (s *BookingService) load(ctx context.Context, flightNumber string, key domain.PassengerKey) (*domain.Flight, *domain.Passenger, error) {
	flight, err := s.flights.GetByNumber(ctx, flightNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: flight %s", domain.ErrNotFound, flightNumber)
		}
		return nil, nil, fmt.Errorf("%w: get flight %s: %w", domain.ErrGateway, flightNumber, err)
	}

	assignments, err := s.bookings.ForFlight(ctx, flight.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bookings for flight %s: %w", domain.ErrGateway, flightNumber, err)
	}
	seats := make(map[domain.PassengerKey]int, len(assignments))
	for _, a := range assignments {
		seats[a.Passenger.Key()] = a.Seat
	}
	flight.LoadSeatMap(seats)

	passenger, err := s.passengers.Find(ctx, key.Name, key.Surname)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return flight, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: find passenger %s: %w", domain.ErrGateway, key.FullName(), err)
	}
	return flight, passenger, nil
}

func (s *BookingService) flightLock(number string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[number]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[number] = lock
	}
	return lock
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("flights cache invalidation failed", "error", err)
	}
}

// publish emits the booking event. Delivery failures are logged, never
// propagated: the booking itself already succeeded.
func (s *BookingService) publish(ctx context.Context, eventType string, flight *domain.Flight, passenger *domain.Passenger, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:             eventType,
		Reference:        booking.Reference,
		FlightNumber:     flight.Number,
		SeatNumber:       booking.SeatNumber,
		PassengerName:    passenger.Name,
		PassengerSurname: passenger.Surname,
		PhoneNumber:      passenger.PhoneNumber,
		At:               time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		s.log.Warn("booking event publish failed", "type", eventType, "reference", booking.Reference, "error", err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			s.log.Warn("notification publish failed", "type", eventType, "reference", booking.Reference, "error", err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
