package entities

import (
	"errors"
	"time"

	"inovatrust/domain"

	"github.com/shopspring/decimal"
)

// User represents a platform account holding a virtual USD balance
type User struct {
	ID              string          `json:"id" db:"id"`
	Username        string          `json:"username" db:"username"`
	Password        string          `json:"-" db:"password"`
	FullName        string          `json:"fullName" db:"full_name"`
	Email           string          `json:"email" db:"email"`
	Balance         decimal.Decimal `json:"balance" db:"balance"`
	TotalInvested   decimal.Decimal `json:"totalInvested" db:"total_invested"`
	TotalEarnings   decimal.Decimal `json:"totalEarnings" db:"total_earnings"`
	IsAdmin         bool            `json:"isAdmin" db:"is_admin"`
	StakingEnabled  bool            `json:"stakingEnabled" db:"staking_enabled"`
	ConnectedWallet *string         `json:"connectedWallet" db:"connected_wallet"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// HasSufficientBalance checks if the user can cover an amount from their balance
func (u *User) HasSufficientBalance(amount decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(amount)
}

// ValidateDebit checks that an amount is positive and covered by the balance
func (u *User) ValidateDebit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.New("amount must be positive")
	}
	if !u.HasSufficientBalance(amount) {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// BalanceAfterDebit returns the balance this user would have after a debit,
// rounded to 2 decimal places.
func (u *User) BalanceAfterDebit(amount decimal.Decimal) decimal.Decimal {
	return u.Balance.Sub(amount).Round(2)
}
