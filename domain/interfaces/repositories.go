package interfaces

import (
	"context"

	"inovatrust/domain/entities"

	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by id, nil when absent
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByUsername retrieves a user by username, nil when absent
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// GetByIDForUpdate retrieves a user and takes a row lock for the
	// remainder of the enclosing transaction. Balance mutations go through
	// this so concurrent debits for one user serialize.
	GetByIDForUpdate(ctx context.Context, id string) (*entities.User, error)

	// Create inserts a new user with a zeroed ledger
	Create(ctx context.Context, username, password, fullName, email string) (*entities.User, error)

	// UpdateBalance persists a new balance for the user
	UpdateBalance(ctx context.Context, id string, newBalance decimal.Decimal) error

	// Update persists the mutable profile and ledger fields of the user
	Update(ctx context.Context, user *entities.User) error

	// GetAll returns every user, newest first
	GetAll(ctx context.Context) ([]*entities.User, error)
}

// TransactionRepository defines the interface for the append-only ledger log
type TransactionRepository interface {
	// Create appends a ledger entry
	Create(ctx context.Context, tx *entities.Transaction) error

	// GetByUser returns a user's ledger entries, newest first
	GetByUser(ctx context.Context, userID string) ([]*entities.Transaction, error)
}

// WithdrawalRepository defines the interface for withdrawal data access
type WithdrawalRepository interface {
	Create(ctx context.Context, w *entities.Withdrawal) error
	GetByID(ctx context.Context, id string) (*entities.Withdrawal, error)

	// GetByIDForUpdate retrieves a withdrawal under a row lock so
	// concurrent transitions of the same withdrawal serialize.
	GetByIDForUpdate(ctx context.Context, id string) (*entities.Withdrawal, error)
	GetByUser(ctx context.Context, userID string) ([]*entities.Withdrawal, error)
	GetAll(ctx context.Context) ([]*entities.Withdrawal, error)

	// Update persists status, processed/invoice/email bookkeeping fields
	Update(ctx context.Context, w *entities.Withdrawal) error
}

// ConversationRepository defines the interface for support conversations
type ConversationRepository interface {
	Create(ctx context.Context, c *entities.Conversation) error
	GetByID(ctx context.Context, id string) (*entities.Conversation, error)
	GetByUser(ctx context.Context, userID string) ([]*entities.Conversation, error)
	GetAll(ctx context.Context) ([]*entities.Conversation, error)

	// Touch bumps the conversation's updated_at; called on every message insert
	Touch(ctx context.Context, id string) error
}

// ChatMessageRepository defines the interface for chat message data access
type ChatMessageRepository interface {
	Create(ctx context.Context, m *entities.ChatMessage) error

	// GetByConversation returns messages ordered by creation time ascending
	GetByConversation(ctx context.Context, conversationID string) ([]*entities.ChatMessage, error)
}

// InvestmentRepository defines the interface for investment data access
type InvestmentRepository interface {
	Create(ctx context.Context, inv *entities.Investment) error
	GetByUser(ctx context.Context, userID string) ([]*entities.Investment, error)
}

// StakeRepository defines the interface for staking position data access
type StakeRepository interface {
	Create(ctx context.Context, s *entities.Stake) error
	GetByID(ctx context.Context, id string) (*entities.Stake, error)
	GetByUser(ctx context.Context, userID string) ([]*entities.Stake, error)
	GetAll(ctx context.Context) ([]*entities.Stake, error)
	Update(ctx context.Context, s *entities.Stake) error
}

// PlatformSettingRepository defines the interface for key/value platform settings
type PlatformSettingRepository interface {
	Get(ctx context.Context, key string) (*entities.PlatformSetting, error)
	Set(ctx context.Context, key, value string) (*entities.PlatformSetting, error)
	GetAll(ctx context.Context) ([]*entities.PlatformSetting, error)
}
