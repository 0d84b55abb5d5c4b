package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlight(t *testing.T, capacity int) *Flight {
	t.Helper()
	dep := time.Date(2023, 5, 1, 15, 30, 0, 0, time.UTC)
	arr := time.Date(2023, 5, 1, 18, 45, 0, 0, time.UTC)
	f, err := NewFlight("LO777", "WAW", "JFK", dep, arr, capacity)
	require.NoError(t, err)
	return f
}

func TestNewFlight(t *testing.T) {
	f := testFlight(t, 100)
	assert.Equal(t, "LO777", f.Number)
	assert.Equal(t, "WAW", f.Origin)
	assert.Equal(t, "JFK", f.Destination)
	assert.Equal(t, 100, f.Capacity)
	assert.Equal(t, 100, f.Available)
	assert.Empty(t, f.Passengers())
}

func TestNewFlight_NormalizesCase(t *testing.T) {
	dep := time.Now()
	arr := dep.Add(2 * time.Hour)
	f, err := NewFlight("lo777", " waw ", "jfk", dep, arr, 10)
	require.NoError(t, err)
	assert.Equal(t, "LO777", f.Number)
	assert.Equal(t, "WAW", f.Origin)
	assert.Equal(t, "JFK", f.Destination)
	assert.Equal(t, "WAW-JFK", f.Route())
}

func TestNewFlight_Invalid(t *testing.T) {
	dep := time.Date(2023, 5, 1, 15, 30, 0, 0, time.UTC)
	arr := dep.Add(3 * time.Hour)

	_, err := NewFlight("INVALID1", "WAW", "JFK", dep, arr, 100)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = NewFlight("LO777", "WARSAW", "JFK", dep, arr, 100)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = NewFlight("LO777", "WAW", "JFK", dep, arr, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewFlight("LO777", "WAW", "JFK", dep, arr, -5)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewFlight("LO777", "WAW", "JFK", arr, dep, 100)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Strictly before: equal times are rejected too.
	_, err = NewFlight("LO777", "WAW", "JFK", dep, dep, 100)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFlight_AssignAndReleaseSeat(t *testing.T) {
	f := testFlight(t, 3)
	anna := PassengerKey{Name: "Anna", Surname: "Muczynska"}

	require.NoError(t, f.AssignSeat(anna, 2))
	assert.Equal(t, 2, f.Available)

	seatNo, ok := f.SeatFor(anna)
	assert.True(t, ok)
	assert.Equal(t, 2, seatNo)

	freed, err := f.ReleaseSeat(anna)
	require.NoError(t, err)
	assert.Equal(t, 2, freed)
	assert.Equal(t, 3, f.Available)

	// The freed seat is bookable again, by anyone.
	other := PassengerKey{Name: "Jan", Surname: "Kowalski"}
	require.NoError(t, f.AssignSeat(other, 2))
	assert.Equal(t, 2, f.Available)
}

func TestFlight_AssignSeat_SeatTaken(t *testing.T) {
	f := testFlight(t, 10)
	require.NoError(t, f.AssignSeat(PassengerKey{Name: "Anna", Surname: "Muczynska"}, 5))

	err := f.AssignSeat(PassengerKey{Name: "Jan", Surname: "Kowalski"}, 5)
	assert.ErrorIs(t, err, ErrSeatTaken)
	assert.Equal(t, 9, f.Available)
	assert.Len(t, f.Passengers(), 1)
}

func TestFlight_AssignSeat_AlreadyBooked(t *testing.T) {
	f := testFlight(t, 10)
	p := RestorePassenger(1, "Anna", "Muczynska", "+48694466866")
	require.NoError(t, f.AssignSeat(p.Key(), 5))

	// A distinct instance with the same name and surname is the same person.
	rehydrated := RestorePassenger(7, "Anna", "Muczynska", "+48694466866")
	err := f.AssignSeat(rehydrated.Key(), 6)
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.Equal(t, 9, f.Available)
}

func TestFlight_AssignSeat_NoCapacity(t *testing.T) {
	f := testFlight(t, 2)
	require.NoError(t, f.AssignSeat(PassengerKey{Name: "Anna", Surname: "Muczynska"}, 1))
	require.NoError(t, f.AssignSeat(PassengerKey{Name: "Jan", Surname: "Kowalski"}, 2))
	assert.Equal(t, 0, f.Available)

	err := f.AssignSeat(PassengerKey{Name: "Piotr", Surname: "Nowak"}, 1)
	assert.ErrorIs(t, err, ErrNoCapacity)
}

func TestFlight_AssignSeat_InvalidSeat(t *testing.T) {
	f := testFlight(t, 10)
	key := PassengerKey{Name: "Anna", Surname: "Muczynska"}

	assert.ErrorIs(t, f.AssignSeat(key, 0), ErrInvalidSeat)
	assert.ErrorIs(t, f.AssignSeat(key, -1), ErrInvalidSeat)
	assert.ErrorIs(t, f.AssignSeat(key, 11), ErrInvalidSeat)
	assert.Equal(t, 10, f.Available)

	// The range is fixed by capacity, not by remaining availability.
	require.NoError(t, f.AssignSeat(key, 10))
}

func TestFlight_ReleaseSeat_NotBooked(t *testing.T) {
	f := testFlight(t, 10)
	_, err := f.ReleaseSeat(PassengerKey{Name: "Anna", Surname: "Muczynska"})
	assert.ErrorIs(t, err, ErrNotBooked)
	assert.Equal(t, 10, f.Available)
}

func TestFlight_Duration(t *testing.T) {
	f := testFlight(t, 100) // 15:30 -> 18:45
	hours, minutes := f.Duration()
	assert.Equal(t, 3, hours)
	assert.Equal(t, 15, minutes)
}

func TestFlight_Duration_MultiDay(t *testing.T) {
	dep := time.Date(2023, 5, 1, 23, 0, 0, 0, time.UTC)
	arr := time.Date(2023, 5, 3, 1, 30, 0, 0, time.UTC)
	f, err := NewFlight("LO22", "WAW", "NRT", dep, arr, 200)
	require.NoError(t, err)

	hours, minutes := f.Duration()
	assert.Equal(t, 26, hours)
	assert.Equal(t, 30, minutes)
}

func TestFlight_Reschedule(t *testing.T) {
	f := testFlight(t, 100)
	dep := f.Departure.Add(24 * time.Hour)

	assert.ErrorIs(t, f.Reschedule(dep, dep), ErrInvalidArgument)

	require.NoError(t, f.Reschedule(dep, dep.Add(3*time.Hour)))
	assert.Equal(t, dep, f.Departure)
}

func TestFlight_Resize(t *testing.T) {
	f := testFlight(t, 4)
	require.NoError(t, f.AssignSeat(PassengerKey{Name: "Anna", Surname: "Muczynska"}, 1))
	require.NoError(t, f.AssignSeat(PassengerKey{Name: "Jan", Surname: "Kowalski"}, 2))

	assert.ErrorIs(t, f.Resize(0), ErrInvalidArgument)
	assert.ErrorIs(t, f.Resize(1), ErrInvalidArgument)
	assert.Equal(t, 4, f.Capacity)

	require.NoError(t, f.Resize(2))
	assert.Equal(t, 0, f.Available)

	require.NoError(t, f.Resize(10))
	assert.Equal(t, 8, f.Available)
}

func TestFlight_LoadSeatMap(t *testing.T) {
	f := RestoreFlight(1, "LO777", "WAW", "JFK", time.Now(), time.Now().Add(time.Hour), 100, 100)
	f.LoadSeatMap(map[PassengerKey]int{
		{Name: "Anna", Surname: "Muczynska"}: 4,
		{Name: "Jan", Surname: "Kowalski"}:   9,
	})

	assert.Equal(t, 98, f.Available)
	assert.Equal(t, []int{4, 9}, f.OccupiedSeats())
	assert.Equal(t, []PassengerKey{
		{Name: "Jan", Surname: "Kowalski"},
		{Name: "Anna", Surname: "Muczynska"},
	}, f.Passengers())
}
