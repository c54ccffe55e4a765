package services

import (
	"context"
	"fmt"

	"inovatrust/domain/entities"
	"inovatrust/domain/interfaces"
)

type transactionService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewTransactionService creates the ledger history service
func NewTransactionService(uowFactory interfaces.UnitOfWorkFactory) interfaces.TransactionService {
	return &transactionService{uowFactory: uowFactory}
}

// ListForUser returns the user's ledger entries, newest first
func (s *transactionService) ListForUser(ctx context.Context, userID string) ([]*entities.Transaction, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transactions, err := uow.TransactionRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, uow.Commit()
}
