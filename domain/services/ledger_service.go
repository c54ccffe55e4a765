package services

import (
	"context"
	"fmt"

	"inovatrust/domain"
	"inovatrust/domain/entities"
	"inovatrust/domain/events"
	"inovatrust/domain/interfaces"

	"github.com/shopspring/decimal"
)

type ledgerService struct {
	userRepo        interfaces.UserRepository
	transactionRepo interfaces.TransactionRepository
	eventPublisher  interfaces.EventPublisher
}

// NewLedgerService creates a ledger accessor scoped to the caller's unit of work
func NewLedgerService(userRepo interfaces.UserRepository, transactionRepo interfaces.TransactionRepository, eventPublisher interfaces.EventPublisher) interfaces.LedgerService {
	return &ledgerService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		eventPublisher:  eventPublisher,
	}
}

// Debit subtracts amount from the user's balance under a row lock. The
// balance is re-read here, not trusted from any earlier check, so two
// concurrent debits for the same user cannot both pass validation.
func (s *ledgerService) Debit(ctx context.Context, userID string, amount decimal.Decimal, txType entities.TransactionType) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("debit amount must be positive, got %s", amount)
	}

	user, err := s.userRepo.GetByIDForUpdate(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to lock user %s: %w", userID, err)
	}
	if user == nil {
		return decimal.Zero, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if err := user.ValidateDebit(amount); err != nil {
		return decimal.Zero, err
	}

	newBalance := user.BalanceAfterDebit(amount)
	if err := s.userRepo.UpdateBalance(ctx, userID, newBalance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to update balance for user %s: %w", userID, err)
	}

	s.eventPublisher.Publish(events.BalanceChangeEvent{
		UserID:          userID,
		OldBalance:      user.Balance.StringFixed(2),
		NewBalance:      newBalance.StringFixed(2),
		TransactionType: txType,
	})

	return newBalance, nil
}

// RecordTransaction appends a ledger log entry for the user
func (s *ledgerService) RecordTransaction(ctx context.Context, userID string, txType entities.TransactionType, amount decimal.Decimal, description string) (*entities.Transaction, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	tx := &entities.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Status:      "completed",
		Description: description,
	}
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record %s transaction: %w", txType, err)
	}

	return tx, nil
}
