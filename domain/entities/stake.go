package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// StakeStatus represents the lifecycle state of a staking position
type StakeStatus string

const (
	StakeStatusPending           StakeStatus = "pending"
	StakeStatusActive            StakeStatus = "active"
	StakeStatusWithdrawalPending StakeStatus = "withdrawal_pending"
	StakeStatusCompleted         StakeStatus = "completed"
)

// Stake is a fixed-term staking position. The tx hash is trusted client
// input and is not verified on-chain.
type Stake struct {
	ID             string          `json:"id" db:"id"`
	UserID         string          `json:"userId" db:"user_id"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	Currency       string          `json:"currency" db:"currency"`
	Network        string          `json:"network" db:"network"`
	PeriodDays     string          `json:"periodDays" db:"period_days"`
	ROIPercent     decimal.Decimal `json:"roiPercent" db:"roi_percent"`
	ExpectedReturn decimal.Decimal `json:"expectedReturn" db:"expected_return"`
	Status         StakeStatus     `json:"status" db:"status"`
	WalletAddress  string          `json:"walletAddress" db:"wallet_address"`
	TxHash         *string         `json:"txHash" db:"tx_hash"`
	StartDate      *time.Time      `json:"startDate" db:"start_date"`
	EndDate        *time.Time      `json:"endDate" db:"end_date"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
}

// HasMatured returns true once the stake's term has elapsed
func (s *Stake) HasMatured(now time.Time) bool {
	return s.EndDate != nil && !s.EndDate.After(now)
}

// StakePlan is a fixed staking term offered by the platform
type StakePlan struct {
	PeriodDays string `json:"periodDays"`
	ROIPercent string `json:"roiPercent"`
	Label      string `json:"label"`
}

// ExpectedReturn computes principal plus ROI for the plan, rounded to
// 2 decimal places.
func (p StakePlan) ExpectedReturn(amount decimal.Decimal) decimal.Decimal {
	roi, err := decimal.NewFromString(p.ROIPercent)
	if err != nil {
		return amount
	}
	multiplier := decimal.NewFromInt(1).Add(roi.Div(decimal.NewFromInt(100)))
	return amount.Mul(multiplier).Round(2)
}
