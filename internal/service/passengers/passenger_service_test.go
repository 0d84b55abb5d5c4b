package passengers

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/Domenick1991/airreservation/internal/repository/memory"
	"github.com/Domenick1991/airreservation/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(store *memory.Store) *PassengerService {
	return NewPassengerService(memory.PassengerRepo{Store: store}, logger.NewNop())
}

func TestPassengerService_Register(t *testing.T) {
	service := newService(memory.NewStore())

	p, err := service.Register(context.Background(), "Anna", "Muczynska", "+48694466866")
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Anna Muczynska", p.FullName())
}

func TestPassengerService_Register_InvalidPhoneSkipsGateway(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)

	_, err := service.Register(context.Background(), "Anna", "Muczynska", "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	all, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPassengerService_Register_Duplicate(t *testing.T) {
	service := newService(memory.NewStore())
	ctx := context.Background()

	_, err := service.Register(ctx, "Anna", "Muczynska", "+48694466866")
	require.NoError(t, err)

	// Same identity key, different phone: still the same person.
	_, err = service.Register(ctx, "Anna", "Muczynska", "123 456 7890")
	assert.ErrorIs(t, err, domain.ErrDuplicateEntity)
}

func TestPassengerService_ChangePhone(t *testing.T) {
	store := memory.NewStore()
	service := newService(store)
	ctx := context.Background()

	p, err := service.Register(ctx, "Anna", "Muczynska", "+48694466866")
	require.NoError(t, err)

	_, err = service.ChangePhone(ctx, p.ID, "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	updated, err := service.ChangePhone(ctx, p.ID, "(123)456-7890")
	require.NoError(t, err)
	assert.Equal(t, "(123)456-7890", updated.PhoneNumber)

	stored, err := service.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "(123)456-7890", stored.PhoneNumber)
}

type failingPassengerRepo struct {
	memory.PassengerRepo
}

func (failingPassengerRepo) Update(ctx context.Context, p *domain.Passenger) error {
	return errors.New("connection reset")
}

func TestPassengerService_ChangePhone_GatewayFailureRollsBack(t *testing.T) {
	store := memory.NewStore()
	service := NewPassengerService(failingPassengerRepo{memory.PassengerRepo{Store: store}}, logger.NewNop())
	ctx := context.Background()

	p, err := service.Register(ctx, "Anna", "Muczynska", "+48694466866")
	require.NoError(t, err)

	updated, err := service.ChangePhone(ctx, p.ID, "(123)456-7890")
	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.Nil(t, updated)

	stored, err := service.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "+48694466866", stored.PhoneNumber)
}

func TestPassengerService_Remove(t *testing.T) {
	service := newService(memory.NewStore())
	ctx := context.Background()

	p, err := service.Register(ctx, "Anna", "Muczynska", "+48694466866")
	require.NoError(t, err)

	require.NoError(t, service.Remove(ctx, p.ID))
	assert.ErrorIs(t, service.Remove(ctx, p.ID), domain.ErrNotFound)

	_, err = service.Find(ctx, "Anna", "Muczynska")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
