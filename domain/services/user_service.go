package services

import (
	"context"
	"fmt"

	"inovatrust/domain"
	"inovatrust/domain/entities"
	"inovatrust/domain/events"
	"inovatrust/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type userService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewUserService creates the admin user surface
func NewUserService(uowFactory interfaces.UnitOfWorkFactory) interfaces.UserService {
	return &userService{uowFactory: uowFactory}
}

// ListUsers returns every account for the admin view
func (s *userService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, uow.Commit()
}

// AdminUpdate applies a partial edit to a user's ledger fields and flags.
// The user row is locked while the edit is applied so the update does not
// race a concurrent withdrawal approval.
func (s *userService) AdminUpdate(ctx context.Context, userID string, patch interfaces.UserPatch) (*entities.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	oldBalance := user.Balance
	balanceChanged := false
	if patch.Balance != nil {
		user.Balance = patch.Balance.Round(2)
		balanceChanged = true
	}
	if patch.TotalInvested != nil {
		user.TotalInvested = patch.TotalInvested.Round(2)
	}
	if patch.TotalEarnings != nil {
		user.TotalEarnings = patch.TotalEarnings.Round(2)
	}
	if patch.StakingEnabled != nil {
		user.StakingEnabled = *patch.StakingEnabled
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if balanceChanged {
		uow.EventBus().Publish(events.BalanceChangeEvent{
			UserID:          user.ID,
			OldBalance:      oldBalance.StringFixed(2),
			NewBalance:      user.Balance.StringFixed(2),
			TransactionType: entities.TransactionTypeDeposit,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit user update: %w", err)
	}

	log.WithField("userId", userID).Info("User updated by admin")
	return user, nil
}
