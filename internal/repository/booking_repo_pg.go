package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// Insert stores the booking and decrements the flight's seat counter in
	// one transaction. The generated id and timestamp are written back.
	Insert(ctx context.Context, booking *domain.Booking) error
	// Delete removes the booking and increments the flight's seat counter in
	// one transaction.
	Delete(ctx context.Context, flightID, passengerID int64) error
	ForFlight(ctx context.Context, flightID int64) ([]domain.SeatAssignment, error)
	ForPassenger(ctx context.Context, passengerID int64) ([]domain.FlightSeat, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Insert(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now() WHERE id=$1 AND available_seats > 0`, booking.FlightID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: flight %d", domain.ErrNoCapacity, booking.FlightID)
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (reference, flight_id, passenger_id, seat_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		booking.Reference, booking.FlightID, booking.PassengerID, booking.SeatNumber).
		Scan(&booking.ID, &booking.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) Delete(ctx context.Context, flightID, passengerID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `DELETE FROM bookings WHERE flight_id=$1 AND passenger_id=$2`, flightID, passengerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now() WHERE id=$1`, flightID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) ForFlight(ctx context.Context, flightID int64) ([]domain.SeatAssignment, error) {
	rows, err := r.db.Query(ctx, `SELECT p.id, p.name, p.surname, p.phone_number, b.seat_number
		FROM passengers p JOIN bookings b ON p.id = b.passenger_id
		WHERE b.flight_id = $1
		ORDER BY b.seat_number`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]domain.SeatAssignment, 0)
	for rows.Next() {
		var a domain.SeatAssignment
		if err := rows.Scan(&a.Passenger.ID, &a.Passenger.Name, &a.Passenger.Surname, &a.Passenger.PhoneNumber, &a.Seat); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *PGBookingRepository) ForPassenger(ctx context.Context, passengerID int64) ([]domain.FlightSeat, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, f.number, f.origin, f.destination, f.departure_time, f.arrival_time, f.capacity, f.available_seats, f.created_at, f.updated_at, b.seat_number
		FROM flights f JOIN bookings b ON f.id = b.flight_id
		WHERE b.passenger_id = $1
		ORDER BY f.departure_time`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.FlightSeat, 0)
	for rows.Next() {
		var fs domain.FlightSeat
		if err := rows.Scan(&fs.Flight.ID, &fs.Flight.Number, &fs.Flight.Origin, &fs.Flight.Destination,
			&fs.Flight.Departure, &fs.Flight.Arrival, &fs.Flight.Capacity, &fs.Flight.Available,
			&fs.Flight.CreatedAt, &fs.Flight.UpdatedAt, &fs.Seat); err != nil {
			return nil, err
		}
		seats = append(seats, fs)
	}
	return seats, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
