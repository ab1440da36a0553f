package commands_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockHistoryRepository) List(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockHistoryRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

type MockHistoryUoW struct{ mock.Mock }

func (m *MockHistoryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHistoryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHistoryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockHistoryUoW) OrderHistoryRepository() ports.OrderHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderHistoryRepository)
}

type MockHistoryUoWFactory struct{ mock.Mock }

func (m *MockHistoryUoWFactory) Create() commands.HistoryUoW {
	args := m.Called()
	return args.Get(0).(commands.HistoryUoW)
}

type MockOrderTracker struct{ mock.Mock }

func (m *MockOrderTracker) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockOrderTracker) Start(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderTracker) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderTracker) ClearDeliveredBefore(ctx context.Context, cutoff time.Time) bool {
	args := m.Called(ctx, cutoff)
	return args.Bool(0)
}

func newDeliveredOrder(t *testing.T) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(250)
	require.NoError(t, err)
	item, err := order.NewItem("m-1", "Paneer Tikka", price, 2)
	require.NoError(t, err)
	payment, err := order.NewPayment(order.PaymentMethodCOD, "")
	require.NoError(t, err)
	driver, err := order.NewDriver("Amit Sharma", "+91 98765 43210")
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), "r-1", "Punjab Grill", []order.Item{item}, payment,
		time.Unix(1700000000, 0), order.Delivered, &driver)
	require.NoError(t, err)
	return o
}
