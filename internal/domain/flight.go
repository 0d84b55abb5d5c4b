package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Flight is the aggregate owning the seat map. Available is kept equal to
// Capacity minus the number of bookings whenever the seat map is loaded;
// list queries that skip the seat map carry the stored counter instead.
type Flight struct {
	ID          int64     `json:"id"`
	Number      string    `json:"number"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Departure   time.Time `json:"departure"`
	Arrival     time.Time `json:"arrival"`
	Capacity    int       `json:"capacity"`
	Available   int       `json:"available_seats"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	seats map[PassengerKey]int
}

// NewFlight validates and normalizes a fresh flight. It does not persist;
// persistence and the uniqueness check belong to the flight service.
func NewFlight(number, origin, destination string, departure, arrival time.Time, capacity int) (*Flight, error) {
	if !ValidFlightNumber(number) {
		return nil, fmt.Errorf("%w: flight number %q", ErrInvalidFormat, number)
	}
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if !ValidAirportCode(origin) {
		return nil, fmt.Errorf("%w: origin airport %q", ErrInvalidFormat, origin)
	}
	if !ValidAirportCode(destination) {
		return nil, fmt.Errorf("%w: destination airport %q", ErrInvalidFormat, destination)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidArgument, capacity)
	}
	if !departure.Before(arrival) {
		return nil, fmt.Errorf("%w: departure %s is not before arrival %s", ErrInvalidArgument, departure, arrival)
	}

	return &Flight{
		Number:      strings.ToUpper(number),
		Origin:      strings.ToUpper(origin),
		Destination: strings.ToUpper(destination),
		Departure:   departure,
		Arrival:     arrival,
		Capacity:    capacity,
		Available:   capacity,
		seats:       make(map[PassengerKey]int),
	}, nil
}

// RestoreFlight rebuilds a flight from storage without re-validating.
// The seat map, if any, is attached separately with LoadSeatMap.
func RestoreFlight(id int64, number, origin, destination string, departure, arrival time.Time, capacity, available int) *Flight {
	return &Flight{
		ID:          id,
		Number:      strings.ToUpper(number),
		Origin:      strings.ToUpper(strings.TrimSpace(origin)),
		Destination: strings.ToUpper(strings.TrimSpace(destination)),
		Departure:   departure,
		Arrival:     arrival,
		Capacity:    capacity,
		Available:   available,
	}
}

// LoadSeatMap attaches hydrated bookings and re-derives the availability
// counter from them.
func (f *Flight) LoadSeatMap(seats map[PassengerKey]int) {
	f.seats = make(map[PassengerKey]int, len(seats))
	for k, v := range seats {
		f.seats[k] = v
	}
	f.Available = f.Capacity - len(f.seats)
}

// AssignSeat books a seat for the passenger. It mutates nothing on any
// failure branch.
func (f *Flight) AssignSeat(key PassengerKey, seatNo int) error {
	if f.Available == 0 {
		return fmt.Errorf("%w: flight %s is full", ErrNoCapacity, f.Number)
	}
	if seatNo < 1 || seatNo > f.Capacity {
		return fmt.Errorf("%w: seat %d on flight %s with %d seats", ErrInvalidSeat, seatNo, f.Number, f.Capacity)
	}
	for _, taken := range f.seats {
		if taken == seatNo {
			return fmt.Errorf("%w: seat %d on flight %s", ErrSeatTaken, seatNo, f.Number)
		}
	}
	if _, booked := f.seats[key]; booked {
		return fmt.Errorf("%w: %s on flight %s", ErrAlreadyBooked, key.FullName(), f.Number)
	}

	if f.seats == nil {
		f.seats = make(map[PassengerKey]int)
	}
	f.seats[key] = seatNo
	f.Available--
	return nil
}

// ReleaseSeat removes the passenger's booking by identity key and returns
// the freed seat number. ErrNotBooked leaves the flight unchanged.
func (f *Flight) ReleaseSeat(key PassengerKey) (int, error) {
	seatNo, booked := f.seats[key]
	if !booked {
		return 0, fmt.Errorf("%w: %s on flight %s", ErrNotBooked, key.FullName(), f.Number)
	}
	delete(f.seats, key)
	f.Available++
	return seatNo, nil
}

func (f *Flight) SeatFor(key PassengerKey) (int, bool) {
	seatNo, booked := f.seats[key]
	return seatNo, booked
}

// SeatMap returns a copy of the passenger-to-seat associations.
func (f *Flight) SeatMap() map[PassengerKey]int {
	out := make(map[PassengerKey]int, len(f.seats))
	for k, v := range f.seats {
		out[k] = v
	}
	return out
}

func (f *Flight) Passengers() []PassengerKey {
	out := make([]PassengerKey, 0, len(f.seats))
	for k := range f.seats {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Surname != out[j].Surname {
			return out[i].Surname < out[j].Surname
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (f *Flight) OccupiedSeats() []int {
	out := make([]int, 0, len(f.seats))
	for _, seatNo := range f.seats {
		out = append(out, seatNo)
	}
	sort.Ints(out)
	return out
}

func (f *Flight) Route() string {
	return f.Origin + "-" + f.Destination
}

// Duration reports the scheduled flight time as whole hours plus the
// remainder in minutes.
func (f *Flight) Duration() (hours, minutes int) {
	d := f.Arrival.Sub(f.Departure)
	return int(d.Hours()), int(d.Minutes()) % 60
}

func (f *Flight) Reschedule(departure, arrival time.Time) error {
	if !departure.Before(arrival) {
		return fmt.Errorf("%w: departure %s is not before arrival %s", ErrInvalidArgument, departure, arrival)
	}
	f.Departure = departure
	f.Arrival = arrival
	return nil
}

func (f *Flight) Reroute(origin, destination string) error {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if !ValidAirportCode(origin) {
		return fmt.Errorf("%w: origin airport %q", ErrInvalidFormat, origin)
	}
	if !ValidAirportCode(destination) {
		return fmt.Errorf("%w: destination airport %q", ErrInvalidFormat, destination)
	}
	f.Origin = strings.ToUpper(origin)
	f.Destination = strings.ToUpper(destination)
	return nil
}

// Resize changes the capacity. Shrinking below the current booking count
// is rejected: it would break the availability invariant.
func (f *Flight) Resize(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidArgument, capacity)
	}
	if capacity < len(f.seats) {
		return fmt.Errorf("%w: capacity %d below %d existing bookings", ErrInvalidArgument, capacity, len(f.seats))
	}
	f.Capacity = capacity
	f.Available = capacity - len(f.seats)
	return nil
}
