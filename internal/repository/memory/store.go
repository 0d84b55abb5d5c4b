// Package memory holds an in-memory implementation of the persistence
// gateway, used by tests and local runs without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/Domenick1991/airreservation/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	flights    map[int64]domain.Flight
	passengers map[int64]domain.Passenger
	bookings   map[int64]domain.Booking

	nextFlightID    int64
	nextPassengerID int64
	nextBookingID   int64
}

func NewStore() *Store {
	return &Store{
		flights:    make(map[int64]domain.Flight),
		passengers: make(map[int64]domain.Passenger),
		bookings:   make(map[int64]domain.Booking),
	}
}

// --- repository.FlightRepository ---

func (s *Store) Exists(ctx context.Context, number string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.flightByNumber(number)
	return ok, nil
}

func (s *Store) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.flightByNumber(number)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return restoreFlight(f), nil
}

func (s *Store) Insert(ctx context.Context, flight *domain.Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextFlightID++
	flight.ID = s.nextFlightID
	flight.CreatedAt = time.Now()
	flight.UpdatedAt = flight.CreatedAt
	s.flights[flight.ID] = flatFlight(flight)
	return nil
}

func (s *Store) Update(ctx context.Context, flight *domain.Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.flights[flight.ID]; !ok {
		return domain.ErrNotFound
	}
	flight.UpdatedAt = time.Now()
	s.flights[flight.ID] = flatFlight(flight)
	return nil
}

func (s *Store) DeleteByNumber(ctx context.Context, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flightByNumber(number)
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.flights, f.ID)
	for id, b := range s.bookings {
		if b.FlightID == f.ID {
			delete(s.bookings, id)
		}
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(domain.Flight) bool { return true }), nil
}

func (s *Store) ListOnRoute(ctx context.Context, origin, destination string, includeReturn bool) ([]domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(f domain.Flight) bool {
		if f.Origin == origin && f.Destination == destination {
			return true
		}
		return includeReturn && f.Origin == destination && f.Destination == origin
	}), nil
}

func (s *Store) ListDepartingWithin(ctx context.Context, window time.Duration) ([]domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	until := now.Add(window)
	return s.collect(func(f domain.Flight) bool {
		return !f.Departure.Before(now) && !f.Departure.After(until)
	}), nil
}

func (s *Store) ListWithMinSeats(ctx context.Context, minSeats int) ([]domain.Flight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	flights := s.collect(func(f domain.Flight) bool { return f.Available >= minSeats })
	sort.Slice(flights, func(i, j int) bool { return flights[i].Available > flights[j].Available })
	return flights, nil
}

// --- repository.PassengerRepository ---

func (s *Store) ExistsPassenger(ctx context.Context, name, surname string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.passengerByName(name, surname)
	return ok, nil
}

func (s *Store) Find(ctx context.Context, name, surname string) (*domain.Passenger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.passengerByName(name, surname)
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.passengers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (s *Store) InsertPassenger(ctx context.Context, passenger *domain.Passenger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPassengerID++
	passenger.ID = s.nextPassengerID
	s.passengers[passenger.ID] = *passenger
	return nil
}

func (s *Store) UpdatePassenger(ctx context.Context, passenger *domain.Passenger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.passengers[passenger.ID]; !ok {
		return domain.ErrNotFound
	}
	s.passengers[passenger.ID] = *passenger
	return nil
}

func (s *Store) DeletePassenger(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.passengers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.passengers, id)
	for bid, b := range s.bookings {
		if b.PassengerID == id {
			delete(s.bookings, bid)
		}
	}
	return nil
}

func (s *Store) ListPassengers(ctx context.Context) ([]domain.Passenger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Passenger, 0, len(s.passengers))
	for _, p := range s.passengers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Surname != out[j].Surname {
			return out[i].Surname < out[j].Surname
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// --- repository.BookingRepository ---

func (s *Store) InsertBooking(ctx context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.flights[booking.FlightID]
	if !ok {
		return domain.ErrNotFound
	}
	if f.Available == 0 {
		return fmt.Errorf("%w: flight %d", domain.ErrNoCapacity, booking.FlightID)
	}
	f.Available--
	f.UpdatedAt = time.Now()
	s.flights[booking.FlightID] = f

	s.nextBookingID++
	booking.ID = s.nextBookingID
	booking.CreatedAt = time.Now()
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *Store) DeleteBooking(ctx context.Context, flightID, passengerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, b := range s.bookings {
		if b.FlightID == flightID && b.PassengerID == passengerID {
			delete(s.bookings, id)
			if f, ok := s.flights[flightID]; ok {
				f.Available++
				f.UpdatedAt = time.Now()
				s.flights[flightID] = f
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) ForFlight(ctx context.Context, flightID int64) ([]domain.SeatAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SeatAssignment, 0)
	for _, b := range s.bookings {
		if b.FlightID != flightID {
			continue
		}
		p, ok := s.passengers[b.PassengerID]
		if !ok {
			continue
		}
		out = append(out, domain.SeatAssignment{Passenger: p, Seat: b.SeatNumber})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out, nil
}

func (s *Store) ForPassenger(ctx context.Context, passengerID int64) ([]domain.FlightSeat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.FlightSeat, 0)
	for _, b := range s.bookings {
		if b.PassengerID != passengerID {
			continue
		}
		f, ok := s.flights[b.FlightID]
		if !ok {
			continue
		}
		out = append(out, domain.FlightSeat{Flight: f, Seat: b.SeatNumber})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Flight.Departure.Before(out[j].Flight.Departure) })
	return out, nil
}

func (s *Store) flightByNumber(number string) (domain.Flight, bool) {
	for _, f := range s.flights {
		if f.Number == number {
			return f, true
		}
	}
	return domain.Flight{}, false
}

func (s *Store) passengerByName(name, surname string) (domain.Passenger, bool) {
	for _, p := range s.passengers {
		if p.Name == name && p.Surname == surname {
			return p, true
		}
	}
	return domain.Passenger{}, false
}

func (s *Store) collect(keep func(domain.Flight) bool) []domain.Flight {
	out := make([]domain.Flight, 0)
	for _, f := range s.flights {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Departure.Before(out[j].Departure) })
	return out
}

// flatFlight copies the persisted fields; the seat map stays with the caller.
func flatFlight(f *domain.Flight) domain.Flight {
	cp := domain.RestoreFlight(f.ID, f.Number, f.Origin, f.Destination, f.Departure, f.Arrival, f.Capacity, f.Available)
	cp.CreatedAt = f.CreatedAt
	cp.UpdatedAt = f.UpdatedAt
	return *cp
}

func restoreFlight(f domain.Flight) *domain.Flight {
	cp := f
	return &cp
}

// The store itself satisfies the flight gateway; the passenger and booking
// gateways share method names with it (Insert, Update, Delete), so thin
// adapters forward those to the aggregate-specific implementations.

type PassengerRepo struct{ *Store }

func (r PassengerRepo) Exists(ctx context.Context, name, surname string) (bool, error) {
	return r.Store.ExistsPassenger(ctx, name, surname)
}
func (r PassengerRepo) Insert(ctx context.Context, p *domain.Passenger) error {
	return r.Store.InsertPassenger(ctx, p)
}
func (r PassengerRepo) Update(ctx context.Context, p *domain.Passenger) error {
	return r.Store.UpdatePassenger(ctx, p)
}
func (r PassengerRepo) Delete(ctx context.Context, id int64) error {
	return r.Store.DeletePassenger(ctx, id)
}
func (r PassengerRepo) List(ctx context.Context) ([]domain.Passenger, error) {
	return r.Store.ListPassengers(ctx)
}

type BookingRepo struct{ *Store }

func (r BookingRepo) Insert(ctx context.Context, b *domain.Booking) error {
	return r.Store.InsertBooking(ctx, b)
}
func (r BookingRepo) Delete(ctx context.Context, flightID, passengerID int64) error {
	return r.Store.DeleteBooking(ctx, flightID, passengerID)
}

var (
	_ repository.FlightRepository    = (*Store)(nil)
	_ repository.PassengerRepository = PassengerRepo{}
	_ repository.BookingRepository   = BookingRepo{}
)
