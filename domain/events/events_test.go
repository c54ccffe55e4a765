package events

import (
	"context"
	"testing"

	"inovatrust/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitRunsHandlersInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var order []int
	bus.Subscribe(EventTypeMessageCreated, func(ctx context.Context, e Event) {
		order = append(order, 1)
	})
	bus.Subscribe(EventTypeMessageCreated, func(ctx context.Context, e Event) {
		order = append(order, 2)
	})

	bus.Emit(ctx, MessageCreatedEvent{Message: &entities.ChatMessage{ID: "msg-1"}})

	assert.Equal(t, []int{1, 2}, order)
}

func TestBus_EmitOnlyMatchingType(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var messageEvents, balanceEvents int
	bus.Subscribe(EventTypeMessageCreated, func(ctx context.Context, e Event) {
		messageEvents++
	})
	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, e Event) {
		balanceEvents++
	})

	bus.Emit(ctx, BalanceChangeEvent{UserID: "user-1"})

	assert.Equal(t, 0, messageEvents)
	assert.Equal(t, 1, balanceEvents)
}

func TestBus_HandlerPanicDoesNotStopOthers(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var reached bool
	bus.Subscribe(EventTypeMessageCreated, func(ctx context.Context, e Event) {
		panic("handler blew up")
	})
	bus.Subscribe(EventTypeMessageCreated, func(ctx context.Context, e Event) {
		reached = true
	})

	require.NotPanics(t, func() {
		bus.Emit(ctx, MessageCreatedEvent{Message: &entities.ChatMessage{}})
	})
	assert.True(t, reached)
}

func TestTransactionalBus_FlushAndDiscard(t *testing.T) {
	real := NewBus()
	ctx := context.Background()

	var received []Event
	real.Subscribe(EventTypeMessageCreated, func(ctx context.Context, e Event) {
		received = append(received, e)
	})

	t.Run("events are held until flush", func(t *testing.T) {
		received = nil
		txBus := NewTransactionalBus(real)

		txBus.Publish(MessageCreatedEvent{Message: &entities.ChatMessage{ID: "msg-1"}})
		txBus.Publish(MessageCreatedEvent{Message: &entities.ChatMessage{ID: "msg-2"}})
		assert.Empty(t, received)

		txBus.Flush(ctx)
		require.Len(t, received, 2)
		assert.Equal(t, "msg-1", received[0].(MessageCreatedEvent).Message.ID)
		assert.Equal(t, "msg-2", received[1].(MessageCreatedEvent).Message.ID)

		// Buffer is cleared after flush
		txBus.Flush(ctx)
		assert.Len(t, received, 2)
	})

	t.Run("discard drops pending events", func(t *testing.T) {
		received = nil
		txBus := NewTransactionalBus(real)

		txBus.Publish(MessageCreatedEvent{Message: &entities.ChatMessage{ID: "msg-3"}})
		txBus.Discard()
		txBus.Flush(ctx)

		assert.Empty(t, received)
	})
}
