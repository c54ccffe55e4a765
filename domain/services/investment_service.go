package services

import (
	"context"
	"fmt"
	"time"

	"inovatrust/domain"
	"inovatrust/domain/entities"
	"inovatrust/domain/interfaces"

	"github.com/shopspring/decimal"
)

// investmentTermDays is the fixed term applied to every investment package
const investmentTermDays = 30

type investmentService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewInvestmentService creates the investment position service
func NewInvestmentService(uowFactory interfaces.UnitOfWorkFactory) interfaces.InvestmentService {
	return &investmentService{uowFactory: uowFactory}
}

// Create opens an investment position: the principal is debited from the
// balance under the user row lock, totalInvested is bumped, and an
// investment transaction is recorded, all in one commit.
func (s *investmentService) Create(ctx context.Context, userID, packageName string, amount, dailyReturn decimal.Decimal, duration string) (*entities.Investment, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("investment amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ledger := NewLedgerService(uow.UserRepository(), uow.TransactionRepository(), uow.EventBus())
	if _, err := ledger.Debit(ctx, userID, amount, entities.TransactionTypeInvestment); err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	user.TotalInvested = user.TotalInvested.Add(amount).Round(2)
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update total invested: %w", err)
	}

	endDate := time.Now().AddDate(0, 0, investmentTermDays)
	investment := &entities.Investment{
		UserID:      userID,
		PackageName: packageName,
		Amount:      amount,
		DailyReturn: dailyReturn,
		Duration:    duration,
		Status:      "active",
		EndDate:     &endDate,
	}
	if err := uow.InvestmentRepository().Create(ctx, investment); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}

	description := fmt.Sprintf("Investment in %s package", packageName)
	if _, err := ledger.RecordTransaction(ctx, userID, entities.TransactionTypeInvestment, amount, description); err != nil {
		return nil, err
	}

	return investment, uow.Commit()
}

// ListForUser returns the user's investments, newest first
func (s *investmentService) ListForUser(ctx context.Context, userID string) ([]*entities.Investment, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	investments, err := uow.InvestmentRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return investments, uow.Commit()
}
