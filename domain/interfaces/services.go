package interfaces

import (
	"context"
	"time"

	"inovatrust/domain/entities"

	"github.com/shopspring/decimal"
)

// WithdrawalReceipt carries everything the notification dispatcher needs
// to render and send a receipt email.
type WithdrawalReceipt struct {
	UserEmail     string
	UserName      string
	InvoiceNumber string
	Amount        decimal.Decimal
	Method        string // human-readable label, e.g. "USDT (BEP20)"
	WalletAddress string
	ProcessedAt   time.Time
}

// ReceiptSender is the outbound notification contract. Delivery is
// best-effort: a false return is logged by the caller and never fails
// the enclosing approval.
type ReceiptSender interface {
	SendWithdrawalReceipt(ctx context.Context, receipt WithdrawalReceipt) bool
}

// LedgerService is the balance accessor. Both operations run inside the
// caller's unit of work; Debit takes the user row lock so concurrent
// debits for one user serialize. Pairing a debit with a transaction
// record is the caller's responsibility.
type LedgerService interface {
	// Debit subtracts amount from the user's balance, rounded to 2 decimal
	// places, and returns the new balance. txType tags the resulting balance
	// change event. Fails with ErrInsufficientFunds when amount exceeds the
	// current balance.
	Debit(ctx context.Context, userID string, amount decimal.Decimal, txType entities.TransactionType) (decimal.Decimal, error)

	// RecordTransaction appends a ledger log entry. Fails with ErrNotFound
	// when the user does not exist.
	RecordTransaction(ctx context.Context, userID string, txType entities.TransactionType, amount decimal.Decimal, description string) (*entities.Transaction, error)
}

// WithdrawalService orchestrates the withdrawal request/approval state machine
type WithdrawalService interface {
	// Request validates amount and balance, opens a conversation and creates
	// a pending withdrawal. The balance is not debited until approval.
	Request(ctx context.Context, userID string, amount decimal.Decimal, method, walletAddress string) (*entities.Withdrawal, error)

	// Transition moves a pending withdrawal to approved or rejected.
	// Approval re-validates the balance under a row lock, debits the ledger,
	// records a withdrawal transaction and assigns an invoice number.
	Transition(ctx context.Context, withdrawalID string, target entities.WithdrawalStatus) (*entities.Withdrawal, error)

	ListForUser(ctx context.Context, userID string) ([]*entities.Withdrawal, error)
	GetForUser(ctx context.Context, userID, withdrawalID string) (*entities.Withdrawal, error)
	ListAll(ctx context.Context) ([]*entities.Withdrawal, error)
}

// ChatService owns support conversations and their messages
type ChatService interface {
	StartConversation(ctx context.Context, userID string, subject *string) (*entities.Conversation, error)
	ListConversationsForUser(ctx context.Context, userID string) ([]*entities.Conversation, error)
	ListAllConversations(ctx context.Context) ([]*entities.Conversation, error)

	// PostMessage appends a message authored by senderID; the sender role is
	// derived from the sender's admin flag. Fails with ErrAccessDenied when
	// the sender is neither the conversation owner nor an admin.
	PostMessage(ctx context.Context, conversationID, senderID, message string) (*entities.ChatMessage, error)

	// ListMessages returns a conversation's messages oldest first, applying
	// the same access rule as PostMessage.
	ListMessages(ctx context.Context, conversationID, requesterID string) ([]*entities.ChatMessage, error)
}

// AuthService covers registration and credential checks
type AuthService interface {
	Register(ctx context.Context, username, password, fullName, email string) (*entities.User, error)
	Login(ctx context.Context, username, password string) (*entities.User, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
}

// InvestmentService opens fixed-term investment positions
type InvestmentService interface {
	Create(ctx context.Context, userID, packageName string, amount, dailyReturn decimal.Decimal, duration string) (*entities.Investment, error)
	ListForUser(ctx context.Context, userID string) ([]*entities.Investment, error)
}

// CreateStakeParams are the client-supplied fields of a new stake
type CreateStakeParams struct {
	Amount        decimal.Decimal
	Currency      string
	Network       string
	PeriodDays    string
	WalletAddress string
	TxHash        *string
}

// StakingStatus is the per-user staking gate and connected wallet
type StakingStatus struct {
	StakingEnabled  bool    `json:"stakingEnabled"`
	ConnectedWallet *string `json:"connectedWallet"`
}

// ReceivingAddresses are the platform deposit wallets shown to stakers
type ReceivingAddresses struct {
	BEP20 *string `json:"bep20"`
	ERC20 *string `json:"erc20"`
}

// StakingService owns staking plans, positions and the per-user gate
type StakingService interface {
	Plans() []entities.StakePlan
	Status(ctx context.Context, userID string) (*StakingStatus, error)
	ConnectWallet(ctx context.Context, userID, walletAddress string) error
	CreateStake(ctx context.Context, userID string, params CreateStakeParams) (*entities.Stake, error)
	ListForUser(ctx context.Context, userID string) ([]*entities.Stake, error)
	ListAll(ctx context.Context) ([]*entities.Stake, error)

	// RequestWithdrawal flags a matured active stake for payout
	RequestWithdrawal(ctx context.Context, userID, stakeID string) (*entities.Stake, error)

	// UpdateStatus is the admin override for a stake's status
	UpdateStatus(ctx context.Context, stakeID string, status entities.StakeStatus) (*entities.Stake, error)

	ReceivingAddresses(ctx context.Context) (*ReceivingAddresses, error)

	// EnableStaking flips the per-user staking gate and, when a conversation
	// is given, posts and broadcasts a system message about the change.
	EnableStaking(ctx context.Context, userID string, enabled bool, conversationID *string) error
}

// UserPatch is a partial admin edit of a user's ledger fields and flags
type UserPatch struct {
	Balance        *decimal.Decimal
	TotalInvested  *decimal.Decimal
	TotalEarnings  *decimal.Decimal
	StakingEnabled *bool
}

// UserService covers the admin user surface
type UserService interface {
	ListUsers(ctx context.Context) ([]*entities.User, error)
	AdminUpdate(ctx context.Context, userID string, patch UserPatch) (*entities.User, error)
}

// TransactionService lists a user's ledger history
type TransactionService interface {
	ListForUser(ctx context.Context, userID string) ([]*entities.Transaction, error)
}

// SettingsService covers the admin platform settings surface
type SettingsService interface {
	List(ctx context.Context) ([]*entities.PlatformSetting, error)
	Set(ctx context.Context, key, value string) (*entities.PlatformSetting, error)
}
