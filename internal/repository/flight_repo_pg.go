package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Exists(ctx context.Context, number string) (bool, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
	Insert(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	DeleteByNumber(ctx context.Context, number string) error
	List(ctx context.Context) ([]domain.Flight, error)
	ListOnRoute(ctx context.Context, origin, destination string, includeReturn bool) ([]domain.Flight, error)
	ListDepartingWithin(ctx context.Context, window time.Duration) ([]domain.Flight, error)
	ListWithMinSeats(ctx context.Context, minSeats int) ([]domain.Flight, error)
}

const flightColumns = `id, number, origin, destination, departure_time, arrival_time, capacity, available_seats, created_at, updated_at`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Exists(ctx context.Context, number string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE number=$1`, number).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE number=$1`, number)
	flight, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return flight, nil
}

func (r *PGFlightRepository) Insert(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (number, origin, destination, departure_time, arrival_time, capacity, available_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		flight.Number, flight.Origin, flight.Destination, flight.Departure, flight.Arrival, flight.Capacity, flight.Available).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET origin=$1, destination=$2, departure_time=$3, arrival_time=$4, capacity=$5, available_seats=$6, updated_at=now() WHERE id=$7`,
		flight.Origin, flight.Destination, flight.Departure, flight.Arrival, flight.Capacity, flight.Available, flight.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) DeleteByNumber(ctx context.Context, number string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE number=$1`, number)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) ListOnRoute(ctx context.Context, origin, destination string, includeReturn bool) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE origin=$1 AND destination=$2 ORDER BY departure_time`
	if includeReturn {
		query = `SELECT ` + flightColumns + ` FROM flights WHERE (origin=$1 AND destination=$2) OR (origin=$2 AND destination=$1) ORDER BY departure_time`
	}
	rows, err := r.db.Query(ctx, query, origin, destination)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) ListDepartingWithin(ctx context.Context, window time.Duration) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE departure_time BETWEEN now() AND now() + make_interval(mins => $1) ORDER BY departure_time`,
		int(window.Minutes()))
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) ListWithMinSeats(ctx context.Context, minSeats int) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights WHERE available_seats >= $1 ORDER BY available_seats DESC`, minSeats)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Number, &f.Origin, &f.Destination, &f.Departure, &f.Arrival, &f.Capacity, &f.Available, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
