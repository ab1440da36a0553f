package commands_test

import (
	"errors"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRecordDeliveredOrderCommand(t *testing.T) {
	t.Run("accepts a delivered order", func(t *testing.T) {
		o := newDeliveredOrder(t)

		cmd, err := commands.NewRecordDeliveredOrderCommand(o)

		require.NoError(t, err)
		require.Same(t, o, cmd.Order())
	})

	t.Run("rejects an order on its way", func(t *testing.T) {
		price, err := kernel.NewMoney(10)
		require.NoError(t, err)
		item, err := order.NewItem("m", "Chai", price, 1)
		require.NoError(t, err)
		payment, err := order.NewPayment(order.PaymentMethodCOD, "")
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), "r", "Stall", []order.Item{item}, payment, time.Unix(0, 0))
		require.NoError(t, err)

		_, err = commands.NewRecordDeliveredOrderCommand(o)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects nil", func(t *testing.T) {
		_, err := commands.NewRecordDeliveredOrderCommand(nil)

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestRecordDeliveredOrderCommandHandler_Handle_Success(t *testing.T) {
	// Given
	ctx := t.Context()
	o := newDeliveredOrder(t)
	cmd, err := commands.NewRecordDeliveredOrderCommand(o)
	require.NoError(t, err)

	repo := new(MockHistoryRepository)
	uow := new(MockHistoryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderHistoryRepository").Return(repo).Once(),
		repo.On("Add", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockHistoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	// When
	err = commands.NewRecordDeliveredOrderCommandHandler(factory).Handle(ctx, cmd)

	// Then
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestRecordDeliveredOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRecordDeliveredOrderCommand(newDeliveredOrder(t))
	require.NoError(t, err)

	uow := new(MockHistoryUoW)
	factory := new(MockHistoryUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	err = commands.NewRecordDeliveredOrderCommandHandler(factory).Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "OrderHistoryRepository")
}

func TestRecordDeliveredOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	o := newDeliveredOrder(t)
	cmd, err := commands.NewRecordDeliveredOrderCommand(o)
	require.NoError(t, err)

	repo := new(MockHistoryRepository)
	uow := new(MockHistoryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderHistoryRepository").Return(repo).Once(),
		repo.On("Add", ctx, o).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockHistoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewRecordDeliveredOrderCommandHandler(factory).Handle(ctx, cmd)

	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestRecordDeliveredOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	o := newDeliveredOrder(t)
	cmd, err := commands.NewRecordDeliveredOrderCommand(o)
	require.NoError(t, err)

	repo := new(MockHistoryRepository)
	uow := new(MockHistoryUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderHistoryRepository").Return(repo).Once(),
		repo.On("Add", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockHistoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewRecordDeliveredOrderCommandHandler(factory).Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}
