package events

import (
	"context"
	"sync"

	"inovatrust/domain/entities"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeMessageCreated        EventType = "message_created"
	EventTypeBalanceChange         EventType = "balance_change"
	EventTypeWithdrawalStateChange EventType = "withdrawal_state_change"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// MessageCreatedEvent is published after a chat message has been committed.
// The realtime hub fans it out to the conversation's room.
type MessageCreatedEvent struct {
	Message *entities.ChatMessage
}

func (e MessageCreatedEvent) Type() EventType {
	return EventTypeMessageCreated
}

// BalanceChangeEvent records a committed balance mutation
type BalanceChangeEvent struct {
	UserID          string
	OldBalance      string
	NewBalance      string
	TransactionType entities.TransactionType
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// WithdrawalStateChangeEvent records a committed withdrawal transition
type WithdrawalStateChangeEvent struct {
	WithdrawalID string
	UserID       string
	OldStatus    entities.WithdrawalStatus
	NewStatus    entities.WithdrawalStatus
}

func (e WithdrawalStateChangeEvent) Type() EventType {
	return EventTypeWithdrawalStateChange
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run
// synchronously in subscription order so that chat messages reach the
// realtime hub in the order they were persisted.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for i, handler := range handlers {
		func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published inside a unit of work until
// the transaction commits, then flushes them to the real bus. Events are
// discarded on rollback.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional wrapper around a bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes an event until Flush
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events in publish order and clears the buffer
func (b *TransactionalBus) Flush(ctx context.Context) {
	for _, e := range b.pending {
		b.real.Emit(ctx, e)
	}
	b.pending = nil
}

// Discard drops all pending events without emitting them
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
