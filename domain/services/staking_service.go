package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"inovatrust/domain"
	"inovatrust/domain/entities"
	"inovatrust/domain/events"
	"inovatrust/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// stakePlans are the fixed staking terms offered by the platform
var stakePlans = []entities.StakePlan{
	{PeriodDays: "1", ROIPercent: "3.80", Label: "1 Day"},
	{PeriodDays: "7", ROIPercent: "5.30", Label: "7 Days"},
	{PeriodDays: "14", ROIPercent: "8.50", Label: "14 Days"},
	{PeriodDays: "21", ROIPercent: "12.00", Label: "21 Days"},
	{PeriodDays: "100", ROIPercent: "45.00", Label: "100 Days"},
	{PeriodDays: "365", ROIPercent: "120.00", Label: "365 Days"},
}

type stakingService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewStakingService creates the staking position service
func NewStakingService(uowFactory interfaces.UnitOfWorkFactory) interfaces.StakingService {
	return &stakingService{uowFactory: uowFactory}
}

// Plans returns the fixed staking term table
func (s *stakingService) Plans() []entities.StakePlan {
	plans := make([]entities.StakePlan, len(stakePlans))
	copy(plans, stakePlans)
	return plans
}

// Status returns the user's staking gate and connected wallet
func (s *stakingService) Status(ctx context.Context, userID string) (*interfaces.StakingStatus, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	status := &interfaces.StakingStatus{
		StakingEnabled:  user.StakingEnabled,
		ConnectedWallet: user.ConnectedWallet,
	}
	return status, uow.Commit()
}

// ConnectWallet stores the user's wallet address
func (s *stakingService) ConnectWallet(ctx context.Context, userID, walletAddress string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	user.ConnectedWallet = &walletAddress
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to connect wallet: %w", err)
	}
	return uow.Commit()
}

// CreateStake opens a staking position for a gated user. The tx hash is
// recorded as given; there is no on-chain verification. The stake starts
// active immediately with its end date derived from the plan.
func (s *stakingService) CreateStake(ctx context.Context, userID string, params interfaces.CreateStakeParams) (*entities.Stake, error) {
	plan, ok := s.planFor(params.PeriodDays)
	if !ok {
		return nil, fmt.Errorf("invalid staking period %q", params.PeriodDays)
	}
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("stake amount must be positive")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if !user.StakingEnabled {
		return nil, domain.ErrStakingDisabled
	}

	days, err := strconv.Atoi(plan.PeriodDays)
	if err != nil {
		return nil, fmt.Errorf("invalid plan period %q: %w", plan.PeriodDays, err)
	}

	roi, err := decimal.NewFromString(plan.ROIPercent)
	if err != nil {
		return nil, fmt.Errorf("invalid plan roi %q: %w", plan.ROIPercent, err)
	}

	startDate := time.Now()
	endDate := startDate.AddDate(0, 0, days)
	stake := &entities.Stake{
		UserID:         userID,
		Amount:         params.Amount,
		Currency:       params.Currency,
		Network:        params.Network,
		PeriodDays:     plan.PeriodDays,
		ROIPercent:     roi,
		ExpectedReturn: plan.ExpectedReturn(params.Amount),
		Status:         entities.StakeStatusActive,
		WalletAddress:  params.WalletAddress,
		TxHash:         params.TxHash,
		StartDate:      &startDate,
		EndDate:        &endDate,
	}
	if err := uow.StakeRepository().Create(ctx, stake); err != nil {
		return nil, fmt.Errorf("failed to create stake: %w", err)
	}

	return stake, uow.Commit()
}

// ListForUser returns the user's stakes, newest first
func (s *stakingService) ListForUser(ctx context.Context, userID string) ([]*entities.Stake, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stakes, err := uow.StakeRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes: %w", err)
	}
	return stakes, uow.Commit()
}

// ListAll returns every stake for the admin view
func (s *stakingService) ListAll(ctx context.Context) ([]*entities.Stake, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stakes, err := uow.StakeRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stakes: %w", err)
	}
	return stakes, uow.Commit()
}

// RequestWithdrawal flags a matured active stake for payout
func (s *stakingService) RequestWithdrawal(ctx context.Context, userID, stakeID string) (*entities.Stake, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stake, err := uow.StakeRepository().GetByID(ctx, stakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stake: %w", err)
	}
	if stake == nil {
		return nil, fmt.Errorf("stake %s: %w", stakeID, domain.ErrNotFound)
	}
	if stake.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	if stake.Status != entities.StakeStatusActive {
		return nil, fmt.Errorf("stake is not active")
	}
	if !stake.HasMatured(time.Now()) {
		return nil, fmt.Errorf("stake has not matured yet")
	}

	stake.Status = entities.StakeStatusWithdrawalPending
	if err := uow.StakeRepository().Update(ctx, stake); err != nil {
		return nil, fmt.Errorf("failed to update stake: %w", err)
	}

	return stake, uow.Commit()
}

// UpdateStatus is the admin override for a stake's status
func (s *stakingService) UpdateStatus(ctx context.Context, stakeID string, status entities.StakeStatus) (*entities.Stake, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stake, err := uow.StakeRepository().GetByID(ctx, stakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stake: %w", err)
	}
	if stake == nil {
		return nil, fmt.Errorf("stake %s: %w", stakeID, domain.ErrNotFound)
	}

	stake.Status = status
	if err := uow.StakeRepository().Update(ctx, stake); err != nil {
		return nil, fmt.Errorf("failed to update stake: %w", err)
	}

	return stake, uow.Commit()
}

// ReceivingAddresses returns the platform deposit wallets from settings
func (s *stakingService) ReceivingAddresses(ctx context.Context) (*interfaces.ReceivingAddresses, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	addresses := &interfaces.ReceivingAddresses{}
	if bep20, err := uow.PlatformSettingRepository().Get(ctx, entities.SettingReceivingWalletBEP20); err != nil {
		return nil, fmt.Errorf("failed to get bep20 address: %w", err)
	} else if bep20 != nil {
		addresses.BEP20 = &bep20.Value
	}
	if erc20, err := uow.PlatformSettingRepository().Get(ctx, entities.SettingReceivingWalletERC20); err != nil {
		return nil, fmt.Errorf("failed to get erc20 address: %w", err)
	} else if erc20 != nil {
		addresses.ERC20 = &erc20.Value
	}

	return addresses, uow.Commit()
}

// EnableStaking flips the user's staking gate. When a conversation id is
// given, a system message announcing the change is posted and broadcast.
func (s *stakingService) EnableStaking(ctx context.Context, userID string, enabled bool, conversationID *string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	user.StakingEnabled = enabled
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update staking flag: %w", err)
	}

	if conversationID != nil {
		message := "Your InovaTrust Loop staking access has been disabled."
		if enabled {
			message = "Your InovaTrust Loop staking access has been enabled! You can now stake USDT/USDC and earn returns."
		}

		msg := &entities.ChatMessage{
			ConversationID: *conversationID,
			SenderID:       entities.SystemSenderID,
			SenderType:     entities.SenderTypeAdmin,
			Message:        message,
		}
		if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
			return fmt.Errorf("failed to create staking message: %w", err)
		}
		if err := uow.ConversationRepository().Touch(ctx, *conversationID); err != nil {
			return fmt.Errorf("failed to touch conversation: %w", err)
		}
		uow.EventBus().Publish(events.MessageCreatedEvent{Message: msg})
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit staking change: %w", err)
	}

	log.WithFields(log.Fields{
		"userId":  userID,
		"enabled": enabled,
	}).Info("Staking access updated")
	return nil
}

// planFor finds the plan matching a period
func (s *stakingService) planFor(periodDays string) (entities.StakePlan, bool) {
	for _, plan := range stakePlans {
		if plan.PeriodDays == periodDays {
			return plan, true
		}
	}
	return entities.StakePlan{}, false
}
