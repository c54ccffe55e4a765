package services

import (
	"context"
	"testing"

	"inovatrust/domain"
	"inovatrust/domain/entities"
	"inovatrust/domain/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInvestmentService_Create_DebitsAndRecords(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockUserRepo, mockTransactionRepo, _, _, _ := newWithdrawalMocks()

	mockInvestmentRepo := new(MockInvestmentRepository)
	mockUoW.SetInvestmentRepository(mockInvestmentRepo)

	service := NewInvestmentService(mockFactory)

	user := &entities.User{
		ID:            "user-1",
		Balance:       decimal.RequireFromString("1000.00"),
		TotalInvested: decimal.RequireFromString("200.00"),
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByIDForUpdate", ctx, "user-1").Return(user, nil)
	mockUserRepo.On("GetByID", ctx, "user-1").Return(user, nil)
	mockUserRepo.On("UpdateBalance", ctx, "user-1", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("500.00"))
	})).Return(nil)
	mockUserRepo.On("Update", ctx, mock.MatchedBy(func(u *entities.User) bool {
		return u.TotalInvested.Equal(decimal.RequireFromString("700.00"))
	})).Return(nil)

	mockInvestmentRepo.On("Create", ctx, mock.MatchedBy(func(inv *entities.Investment) bool {
		return inv.UserID == "user-1" &&
			inv.PackageName == "Gold" &&
			inv.Amount.Equal(decimal.RequireFromString("500.00")) &&
			inv.Status == "active" &&
			inv.EndDate != nil
	})).Return(nil)

	mockTransactionRepo.On("Create", ctx, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Type == entities.TransactionTypeInvestment &&
			tx.Description == "Investment in Gold package"
	})).Return(nil)

	investment, err := service.Create(ctx, "user-1", "Gold",
		decimal.RequireFromString("500.00"), decimal.RequireFromString("1.50"), "30 days")

	require.NoError(t, err)
	assert.Equal(t, "active", investment.Status)

	// The balance change is audit-logged as an investment, not a withdrawal
	published := mockUoW.PublishedEvents()
	require.Len(t, published, 1)
	event, ok := published[0].(events.BalanceChangeEvent)
	require.True(t, ok)
	assert.Equal(t, entities.TransactionTypeInvestment, event.TransactionType)

	mockInvestmentRepo.AssertExpectations(t)
	mockTransactionRepo.AssertExpectations(t)
}

func TestInvestmentService_Create_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockUserRepo, mockTransactionRepo, _, _, _ := newWithdrawalMocks()

	mockInvestmentRepo := new(MockInvestmentRepository)
	mockUoW.SetInvestmentRepository(mockInvestmentRepo)

	service := NewInvestmentService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByIDForUpdate", ctx, "user-1").Return(&entities.User{
		ID:      "user-1",
		Balance: decimal.RequireFromString("100.00"),
	}, nil)

	investment, err := service.Create(ctx, "user-1", "Gold",
		decimal.RequireFromString("500.00"), decimal.RequireFromString("1.50"), "30 days")

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Nil(t, investment)
	mockInvestmentRepo.AssertNotCalled(t, "Create")
	mockTransactionRepo.AssertNotCalled(t, "Create")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestInvestmentService_Create_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewInvestmentService(mockFactory)

	_, err := service.Create(ctx, "user-1", "Gold", decimal.Zero, decimal.Zero, "30 days")

	assert.Error(t, err)
	mockFactory.AssertNotCalled(t, "Create")
}
