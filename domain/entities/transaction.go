package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of ledger entry
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeInvestment TransactionType = "investment"
	TransactionTypeEarnings   TransactionType = "earnings"
)

// IsDebit returns true for types that reduce the user's balance
func (tt TransactionType) IsDebit() bool {
	return tt == TransactionTypeWithdrawal || tt == TransactionTypeInvestment
}

// Transaction is an append-only ledger entry. It is the audit trail and
// is never mutated after creation.
type Transaction struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"userId" db:"user_id"`
	Type        TransactionType `json:"type" db:"type"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Status      string          `json:"status" db:"status"`
	Description string          `json:"description" db:"description"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}
