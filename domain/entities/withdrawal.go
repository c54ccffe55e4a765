package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus represents the lifecycle state of a withdrawal request
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// IsTerminal returns true once a withdrawal can no longer transition
func (s WithdrawalStatus) IsTerminal() bool {
	return s == WithdrawalStatusApproved || s == WithdrawalStatusRejected
}

// IsValidTarget returns true for statuses an admin may transition a
// pending withdrawal into.
func (s WithdrawalStatus) IsValidTarget() bool {
	return s == WithdrawalStatusApproved || s == WithdrawalStatusRejected
}

// Withdrawal represents a user request to pay out ledger balance,
// subject to admin approval.
type Withdrawal struct {
	ID                 string           `json:"id" db:"id"`
	UserID             string           `json:"userId" db:"user_id"`
	ConversationID     *string          `json:"conversationId" db:"conversation_id"`
	Amount             decimal.Decimal  `json:"amount" db:"amount"`
	Method             string           `json:"method" db:"method"`
	WalletAddress      string           `json:"walletAddress" db:"wallet_address"`
	Status             WithdrawalStatus `json:"status" db:"status"`
	AdminNotes         *string          `json:"adminNotes" db:"admin_notes"`
	InvoiceNumber      *string          `json:"invoiceNumber" db:"invoice_number"`
	InvoiceGeneratedAt *time.Time       `json:"invoiceGeneratedAt" db:"invoice_generated_at"`
	EmailSentAt        *time.Time       `json:"emailSentAt" db:"email_sent_at"`
	CreatedAt          time.Time        `json:"createdAt" db:"created_at"`
	ProcessedAt        *time.Time       `json:"processedAt" db:"processed_at"`
}

// CanTransition reports whether this withdrawal may still move to a
// terminal status. Only pending withdrawals transition, exactly once.
func (w *Withdrawal) CanTransition() bool {
	return !w.Status.IsTerminal()
}

// MethodLabel returns the human-readable payment channel name used on receipts
func (w *Withdrawal) MethodLabel() string {
	switch w.Method {
	case "usdt", "usdt_bep20":
		return "USDT (BEP20)"
	case "usdt_trc20":
		return "USDT (TRC20)"
	case "bitcoin":
		return "Bitcoin (BTC)"
	case "ethereum":
		return "Ethereum (ETH)"
	case "bank":
		return "Bank Transfer"
	default:
		return w.Method
	}
}
