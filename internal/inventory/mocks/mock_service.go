package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/cx-tal-miterani/seat-inventory/internal/inventory"
)

// MockSeatService is a mock implementation of inventory.SeatService
type MockSeatService struct {
	mock.Mock
}

func (m *MockSeatService) GenerateSeats(ctx context.Context, flight *inventory.Flight) (int, error) {
	args := m.Called(ctx, flight)
	return args.Int(0), args.Error(1)
}

func (m *MockSeatService) HasSeats(ctx context.Context, flightID uuid.UUID) (bool, error) {
	args := m.Called(ctx, flightID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeatService) SeatMap(ctx context.Context, flightID uuid.UUID, class inventory.SeatClass) (inventory.SeatMap, error) {
	args := m.Called(ctx, flightID, class)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(inventory.SeatMap), args.Error(1)
}

func (m *MockSeatService) Reserve(ctx context.Context, seatID uuid.UUID, hold time.Duration) (*inventory.Reservation, error) {
	args := m.Called(ctx, seatID, hold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Reservation), args.Error(1)
}

func (m *MockSeatService) Book(ctx context.Context, seatID uuid.UUID) (*inventory.Seat, error) {
	args := m.Called(ctx, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Seat), args.Error(1)
}

func (m *MockSeatService) Release(ctx context.Context, seatID uuid.UUID) (*inventory.Seat, error) {
	args := m.Called(ctx, seatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Seat), args.Error(1)
}

func (m *MockSeatService) SweepExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
