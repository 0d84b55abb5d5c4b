package passengers

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/Domenick1991/airreservation/internal/repository"
	"github.com/Domenick1991/airreservation/pkg/logger"
)

type PassengerUseCase interface {
	Register(ctx context.Context, name, surname, phone string) (*domain.Passenger, error)
	Find(ctx context.Context, name, surname string) (*domain.Passenger, error)
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	List(ctx context.Context) ([]domain.Passenger, error)
	ChangePhone(ctx context.Context, id int64, phone string) (*domain.Passenger, error)
	Remove(ctx context.Context, id int64) error
}

type PassengerService struct {
	passengers repository.PassengerRepository
	log        logger.Logger
}

func NewPassengerService(passengers repository.PassengerRepository, log logger.Logger) *PassengerService {
	return &PassengerService{passengers: passengers, log: log}
}

// Register validates and persists a fresh passenger. The (name, surname)
// pair is the identity key, so duplicates are rejected before the insert.
func (s *PassengerService) Register(ctx context.Context, name, surname, phone string) (*domain.Passenger, error) {
	passenger, err := domain.NewPassenger(name, surname, phone)
	if err != nil {
		return nil, err
	}

	exists, err := s.passengers.Exists(ctx, passenger.Name, passenger.Surname)
	if err != nil {
		return nil, fmt.Errorf("%w: check passenger %s: %w", domain.ErrGateway, passenger.FullName(), err)
	}
	if exists {
		return nil, fmt.Errorf("%w: passenger %s", domain.ErrDuplicateEntity, passenger.FullName())
	}

	if err := s.passengers.Insert(ctx, passenger); err != nil {
		return nil, fmt.Errorf("%w: insert passenger %s: %w", domain.ErrGateway, passenger.FullName(), err)
	}

	s.log.Info("passenger registered", "id", passenger.ID, "name", passenger.FullName())
	return passenger, nil
}

func (s *PassengerService) Find(ctx context.Context, name, surname string) (*domain.Passenger, error) {
	passenger, err := s.passengers.Find(ctx, name, surname)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: passenger %s %s", domain.ErrNotFound, name, surname)
		}
		return nil, fmt.Errorf("%w: find passenger: %w", domain.ErrGateway, err)
	}
	return passenger, nil
}

func (s *PassengerService) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	passenger, err := s.passengers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: passenger %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: get passenger %d: %w", domain.ErrGateway, id, err)
	}
	return passenger, nil
}

func (s *PassengerService) List(ctx context.Context) ([]domain.Passenger, error) {
	passengers, err := s.passengers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list passengers: %w", domain.ErrGateway, err)
	}
	return passengers, nil
}

// ChangePhone re-validates the number, then mutates and persists. On a
// gateway failure the previous number is restored in memory, so the
// returned aggregate never disagrees with storage.
func (s *PassengerService) ChangePhone(ctx context.Context, id int64, phone string) (*domain.Passenger, error) {
	passenger, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := passenger.PhoneNumber
	if err := passenger.SetPhoneNumber(phone); err != nil {
		return nil, err
	}
	if err := s.passengers.Update(ctx, passenger); err != nil {
		passenger.PhoneNumber = previous
		return nil, fmt.Errorf("%w: update passenger %d: %w", domain.ErrGateway, id, err)
	}
	return passenger, nil
}

func (s *PassengerService) Remove(ctx context.Context, id int64) error {
	if err := s.passengers.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: passenger %d", domain.ErrNotFound, id)
		}
		return fmt.Errorf("%w: delete passenger %d: %w", domain.ErrGateway, id, err)
	}
	s.log.Info("passenger deleted", "id", id)
	return nil
}

var _ PassengerUseCase = (*PassengerService)(nil)
