package repository

import (
	"context"
	"fmt"

	"inovatrust/database"
	"inovatrust/domain/events"
	"inovatrust/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus

	userRepo            interfaces.UserRepository
	transactionRepo     interfaces.TransactionRepository
	withdrawalRepo      interfaces.WithdrawalRepository
	conversationRepo    interfaces.ConversationRepository
	chatMessageRepo     interfaces.ChatMessageRepository
	investmentRepo      interfaces.InvestmentRepository
	stakeRepo           interfaces.StakeRepository
	platformSettingRepo interfaces.PlatformSettingRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.userRepo = newUserRepositoryWithTx(tx)
	u.transactionRepo = newTransactionRepositoryWithTx(tx)
	u.withdrawalRepo = newWithdrawalRepositoryWithTx(tx)
	u.conversationRepo = newConversationRepositoryWithTx(tx)
	u.chatMessageRepo = newChatMessageRepositoryWithTx(tx)
	u.investmentRepo = newInvestmentRepositoryWithTx(tx)
	u.stakeRepo = newStakeRepositoryWithTx(tx)
	u.platformSettingRepo = newPlatformSettingRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes buffered events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards buffered events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() interfaces.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// TransactionRepository returns the transaction repository for this unit of work
func (u *unitOfWork) TransactionRepository() interfaces.TransactionRepository {
	if u.transactionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionRepo
}

// WithdrawalRepository returns the withdrawal repository for this unit of work
func (u *unitOfWork) WithdrawalRepository() interfaces.WithdrawalRepository {
	if u.withdrawalRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.withdrawalRepo
}

// ConversationRepository returns the conversation repository for this unit of work
func (u *unitOfWork) ConversationRepository() interfaces.ConversationRepository {
	if u.conversationRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.conversationRepo
}

// ChatMessageRepository returns the chat message repository for this unit of work
func (u *unitOfWork) ChatMessageRepository() interfaces.ChatMessageRepository {
	if u.chatMessageRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.chatMessageRepo
}

// InvestmentRepository returns the investment repository for this unit of work
func (u *unitOfWork) InvestmentRepository() interfaces.InvestmentRepository {
	if u.investmentRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.investmentRepo
}

// StakeRepository returns the stake repository for this unit of work
func (u *unitOfWork) StakeRepository() interfaces.StakeRepository {
	if u.stakeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.stakeRepo
}

// PlatformSettingRepository returns the platform setting repository for this unit of work
func (u *unitOfWork) PlatformSettingRepository() interfaces.PlatformSettingRepository {
	if u.platformSettingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.platformSettingRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
