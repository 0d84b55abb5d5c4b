package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airreservation/internal/domain"
	"github.com/Domenick1991/airreservation/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Schedule(ctx context.Context, input flights.ScheduleInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) ListOnRoute(ctx context.Context, origin, destination string, includeReturn bool) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination, includeReturn)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) ListDepartingWithin(ctx context.Context, window time.Duration) ([]domain.Flight, error) {
	args := m.Called(ctx, window)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) ListWithMinSeats(ctx context.Context, minSeats int) ([]domain.Flight, error) {
	args := m.Called(ctx, minSeats)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Reschedule(ctx context.Context, number string, departure, arrival time.Time) (*domain.Flight, error) {
	args := m.Called(ctx, number, departure, arrival)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Reroute(ctx context.Context, number, origin, destination string) (*domain.Flight, error) {
	args := m.Called(ctx, number, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Cancel(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockFlightUseCase) RefreshCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func sampleFlight() *domain.Flight {
	dep := time.Date(2023, 5, 1, 15, 30, 0, 0, time.UTC)
	return domain.RestoreFlight(1, "LO777", "WAW", "JFK", dep, dep.Add(3*time.Hour+15*time.Minute), 100, 50)
}

func TestFlightHandler_List(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights", nil)

	mockService.On("List", c.Request.Context()).Return([]domain.Flight{*sampleFlight()}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"LO777"`)
	assert.Contains(t, w.Body.String(), `"duration_hours":3`)
	assert.Contains(t, w.Body.String(), `"duration_minutes":15`)
}

func TestFlightHandler_List_RouteFilter(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights?route=WAW-JFK&include_return=true", nil)

	mockService.On("ListOnRoute", c.Request.Context(), "WAW", "JFK", true).Return([]domain.Flight{*sampleFlight()}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_List_BadRouteFilter(t *testing.T) {
	handler := NewFlightHandler(&MockFlightUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights?route=WAWJFK", nil)

	handler.list(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlightHandler_List_WithinHoursFilter(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights?within_hours=5", nil)

	mockService.On("ListDepartingWithin", c.Request.Context(), 5*time.Hour).Return([]domain.Flight{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_Get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights/XX999", nil)
	c.Params = gin.Params{{Key: "number", Value: "XX999"}}

	mockService.On("GetByNumber", c.Request.Context(), "XX999").Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidFormat))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidArgument))
	assert.Equal(t, http.StatusBadRequest, statusFor(domain.ErrInvalidSeat))
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, statusFor(domain.ErrNotBooked))
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrDuplicateEntity))
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrSeatTaken))
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrAlreadyBooked))
	assert.Equal(t, http.StatusConflict, statusFor(domain.ErrNoCapacity))
	assert.Equal(t, http.StatusInternalServerError, statusFor(domain.ErrGateway))
}
