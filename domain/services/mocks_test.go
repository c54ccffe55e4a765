package services

import (
	"context"

	"inovatrust/domain/entities"
	"inovatrust/domain/events"
	"inovatrust/domain/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() interfaces.UnitOfWork {
	args := m.Called()
	return args.Get(0).(interfaces.UnitOfWork)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories
// are injected with SetRepositories; the event bus collects published
// events for assertions.
type MockUnitOfWork struct {
	mock.Mock

	userRepo            interfaces.UserRepository
	transactionRepo     interfaces.TransactionRepository
	withdrawalRepo      interfaces.WithdrawalRepository
	conversationRepo    interfaces.ConversationRepository
	chatMessageRepo     interfaces.ChatMessageRepository
	investmentRepo      interfaces.InvestmentRepository
	stakeRepo           interfaces.StakeRepository
	platformSettingRepo interfaces.PlatformSettingRepository

	published []events.Event
}

func (m *MockUnitOfWork) SetRepositories(
	userRepo interfaces.UserRepository,
	transactionRepo interfaces.TransactionRepository,
	withdrawalRepo interfaces.WithdrawalRepository,
	conversationRepo interfaces.ConversationRepository,
	chatMessageRepo interfaces.ChatMessageRepository,
) {
	m.userRepo = userRepo
	m.transactionRepo = transactionRepo
	m.withdrawalRepo = withdrawalRepo
	m.conversationRepo = conversationRepo
	m.chatMessageRepo = chatMessageRepo
}

func (m *MockUnitOfWork) SetStakeRepository(repo interfaces.StakeRepository)       { m.stakeRepo = repo }
func (m *MockUnitOfWork) SetInvestmentRepository(r interfaces.InvestmentRepository) { m.investmentRepo = r }
func (m *MockUnitOfWork) SetPlatformSettingRepository(r interfaces.PlatformSettingRepository) {
	m.platformSettingRepo = r
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() interfaces.UserRepository { return m.userRepo }
func (m *MockUnitOfWork) TransactionRepository() interfaces.TransactionRepository {
	return m.transactionRepo
}
func (m *MockUnitOfWork) WithdrawalRepository() interfaces.WithdrawalRepository {
	return m.withdrawalRepo
}
func (m *MockUnitOfWork) ConversationRepository() interfaces.ConversationRepository {
	return m.conversationRepo
}
func (m *MockUnitOfWork) ChatMessageRepository() interfaces.ChatMessageRepository {
	return m.chatMessageRepo
}
func (m *MockUnitOfWork) InvestmentRepository() interfaces.InvestmentRepository {
	return m.investmentRepo
}
func (m *MockUnitOfWork) StakeRepository() interfaces.StakeRepository { return m.stakeRepo }
func (m *MockUnitOfWork) PlatformSettingRepository() interfaces.PlatformSettingRepository {
	return m.platformSettingRepo
}

func (m *MockUnitOfWork) EventBus() interfaces.EventPublisher { return m }

// Publish records the event, standing in for the transactional bus
func (m *MockUnitOfWork) Publish(e events.Event) {
	m.published = append(m.published, e)
}

// PublishedEvents returns events published through this unit of work
func (m *MockUnitOfWork) PublishedEvents() []events.Event {
	return m.published
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDForUpdate(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username, password, fullName, email string) (*entities.User, error) {
	args := m.Called(ctx, username, password, fullName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) UpdateBalance(ctx context.Context, id string, newBalance decimal.Decimal) error {
	args := m.Called(ctx, id, newBalance)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByUser(ctx context.Context, userID string) ([]*entities.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

// MockWithdrawalRepository is a mock implementation of WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, w *entities.Withdrawal) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetByID(ctx context.Context, id string) (*entities.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) GetByIDForUpdate(ctx context.Context, id string) (*entities.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) GetByUser(ctx context.Context, userID string) ([]*entities.Withdrawal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) GetAll(ctx context.Context) ([]*entities.Withdrawal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) Update(ctx context.Context, w *entities.Withdrawal) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

// MockConversationRepository is a mock implementation of ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, c *entities.Conversation) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConversationRepository) GetByID(ctx context.Context, id string) (*entities.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Conversation), args.Error(1)
}

func (m *MockConversationRepository) GetByUser(ctx context.Context, userID string) ([]*entities.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Conversation), args.Error(1)
}

func (m *MockConversationRepository) GetAll(ctx context.Context) ([]*entities.Conversation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Conversation), args.Error(1)
}

func (m *MockConversationRepository) Touch(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockChatMessageRepository is a mock implementation of ChatMessageRepository
type MockChatMessageRepository struct {
	mock.Mock
}

func (m *MockChatMessageRepository) Create(ctx context.Context, msg *entities.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatMessageRepository) GetByConversation(ctx context.Context, conversationID string) ([]*entities.ChatMessage, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ChatMessage), args.Error(1)
}

// MockStakeRepository is a mock implementation of StakeRepository
type MockStakeRepository struct {
	mock.Mock
}

func (m *MockStakeRepository) Create(ctx context.Context, s *entities.Stake) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStakeRepository) GetByID(ctx context.Context, id string) (*entities.Stake, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Stake), args.Error(1)
}

func (m *MockStakeRepository) GetByUser(ctx context.Context, userID string) ([]*entities.Stake, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Stake), args.Error(1)
}

func (m *MockStakeRepository) GetAll(ctx context.Context) ([]*entities.Stake, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Stake), args.Error(1)
}

func (m *MockStakeRepository) Update(ctx context.Context, s *entities.Stake) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockInvestmentRepository is a mock implementation of InvestmentRepository
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) Create(ctx context.Context, inv *entities.Investment) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvestmentRepository) GetByUser(ctx context.Context, userID string) ([]*entities.Investment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Investment), args.Error(1)
}

// MockPlatformSettingRepository is a mock implementation of PlatformSettingRepository
type MockPlatformSettingRepository struct {
	mock.Mock
}

func (m *MockPlatformSettingRepository) Get(ctx context.Context, key string) (*entities.PlatformSetting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlatformSetting), args.Error(1)
}

func (m *MockPlatformSettingRepository) Set(ctx context.Context, key, value string) (*entities.PlatformSetting, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlatformSetting), args.Error(1)
}

func (m *MockPlatformSettingRepository) GetAll(ctx context.Context) ([]*entities.PlatformSetting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PlatformSetting), args.Error(1)
}

// MockReceiptSender is a mock implementation of ReceiptSender
type MockReceiptSender struct {
	mock.Mock
}

func (m *MockReceiptSender) SendWithdrawalReceipt(ctx context.Context, receipt interfaces.WithdrawalReceipt) bool {
	args := m.Called(ctx, receipt)
	return args.Bool(0)
}
