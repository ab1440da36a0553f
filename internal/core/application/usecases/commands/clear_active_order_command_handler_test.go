package commands_test

import (
	"errors"
	"testing"

	"tracking/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/require"
)

func TestClearActiveOrderCommandHandler_Handle(t *testing.T) {
	t.Run("clears the tracker", func(t *testing.T) {
		ctx := t.Context()
		tracker := new(MockOrderTracker)
		tracker.On("Clear", ctx).Return(nil).Once()

		err := commands.NewClearActiveOrderCommandHandler(tracker).Handle(ctx, commands.NewClearActiveOrderCommand())

		require.NoError(t, err)
		tracker.AssertExpectations(t)
	})

	t.Run("propagates tracker errors", func(t *testing.T) {
		ctx := t.Context()
		boom := errors.New("boom")
		tracker := new(MockOrderTracker)
		tracker.On("Clear", ctx).Return(boom).Once()

		err := commands.NewClearActiveOrderCommandHandler(tracker).Handle(ctx, commands.NewClearActiveOrderCommand())

		require.ErrorIs(t, err, boom)
	})

	t.Run("rejects a zero command", func(t *testing.T) {
		tracker := new(MockOrderTracker)

		err := commands.NewClearActiveOrderCommandHandler(tracker).Handle(t.Context(), commands.ClearActiveOrderCommand{})

		require.ErrorIs(t, err, commands.ErrClearActiveOrderCommandIsNotConstructed)
		tracker.AssertNotCalled(t, "Clear")
	})
}
