package interfaces

import (
	"context"

	"inovatrust/domain/events"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork scopes repositories to one database transaction. Events
// published through EventBus are buffered and only reach subscribers
// after Commit, so realtime broadcasts never describe rolled-back state.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	TransactionRepository() TransactionRepository
	WithdrawalRepository() WithdrawalRepository
	ConversationRepository() ConversationRepository
	ChatMessageRepository() ChatMessageRepository
	InvestmentRepository() InvestmentRepository
	StakeRepository() StakeRepository
	PlatformSettingRepository() PlatformSettingRepository

	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
