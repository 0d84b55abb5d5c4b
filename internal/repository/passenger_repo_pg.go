package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PassengerRepository interface {
	Exists(ctx context.Context, name, surname string) (bool, error)
	Find(ctx context.Context, name, surname string) (*domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	Insert(ctx context.Context, passenger *domain.Passenger) error
	Update(ctx context.Context, passenger *domain.Passenger) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Passenger, error)
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

func (r *PGPassengerRepository) Exists(ctx context.Context, name, surname string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM passengers WHERE name=$1 AND surname=$2`, name, surname).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGPassengerRepository) Find(ctx context.Context, name, surname string) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, surname, phone_number FROM passengers WHERE name=$1 AND surname=$2`, name, surname)
	return scanPassenger(row)
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, surname, phone_number FROM passengers WHERE id=$1`, id)
	return scanPassenger(row)
}

func (r *PGPassengerRepository) Insert(ctx context.Context, passenger *domain.Passenger) error {
	return r.db.QueryRow(ctx, `INSERT INTO passengers (name, surname, phone_number) VALUES ($1, $2, $3) RETURNING id`,
		passenger.Name, passenger.Surname, passenger.PhoneNumber).
		Scan(&passenger.ID)
}

func (r *PGPassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	res, err := r.db.Exec(ctx, `UPDATE passengers SET phone_number=$1 WHERE id=$2`, passenger.PhoneNumber, passenger.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPassengerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM passengers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPassengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, surname, phone_number FROM passengers ORDER BY surname, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.Name, &p.Surname, &p.PhoneNumber); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func scanPassenger(row pgx.Row) (*domain.Passenger, error) {
	var p domain.Passenger
	if err := row.Scan(&p.ID, &p.Name, &p.Surname, &p.PhoneNumber); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
