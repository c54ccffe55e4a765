package services

import (
	"context"
	"testing"

	"inovatrust/domain"
	"inovatrust/domain/entities"
	"inovatrust/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChatService_PostMessage_OwnerPostsAsUser(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockUserRepo, _, _, mockConversationRepo, mockMessageRepo := newWithdrawalMocks()

	service := NewChatService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConversationRepo.On("GetByID", ctx, "conv-1").Return(&entities.Conversation{
		ID:     "conv-1",
		UserID: "user-1",
		Status: entities.ConversationStatusOpen,
	}, nil)
	mockUserRepo.On("GetByID", ctx, "user-1").Return(&entities.User{
		ID:      "user-1",
		IsAdmin: false,
	}, nil)
	mockMessageRepo.On("Create", ctx, mock.MatchedBy(func(m *entities.ChatMessage) bool {
		return m.ConversationID == "conv-1" &&
			m.SenderID == "user-1" &&
			m.SenderType == entities.SenderTypeUser &&
			m.Message == "hello"
	})).Return(nil)
	mockConversationRepo.On("Touch", ctx, "conv-1").Return(nil)

	msg, err := service.PostMessage(ctx, "conv-1", "user-1", "hello")

	require.NoError(t, err)
	assert.Equal(t, entities.SenderTypeUser, msg.SenderType)

	published := mockUoW.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTypeMessageCreated, published[0].Type())
	mockMessageRepo.AssertExpectations(t)
}

func TestChatService_PostMessage_AdminPostsAsAdmin(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockUserRepo, _, _, mockConversationRepo, mockMessageRepo := newWithdrawalMocks()

	service := NewChatService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// Conversation belongs to another user; the admin flag grants access
	mockConversationRepo.On("GetByID", ctx, "conv-1").Return(&entities.Conversation{
		ID:     "conv-1",
		UserID: "user-1",
		Status: entities.ConversationStatusOpen,
	}, nil)
	mockUserRepo.On("GetByID", ctx, "admin-1").Return(&entities.User{
		ID:      "admin-1",
		IsAdmin: true,
	}, nil)
	mockMessageRepo.On("Create", ctx, mock.MatchedBy(func(m *entities.ChatMessage) bool {
		return m.SenderID == "admin-1" && m.SenderType == entities.SenderTypeAdmin
	})).Return(nil)
	mockConversationRepo.On("Touch", ctx, "conv-1").Return(nil)

	msg, err := service.PostMessage(ctx, "conv-1", "admin-1", "how can we help?")

	require.NoError(t, err)
	assert.Equal(t, entities.SenderTypeAdmin, msg.SenderType)
}

func TestChatService_PostMessage_NonParticipantDenied(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockUserRepo, _, _, mockConversationRepo, mockMessageRepo := newWithdrawalMocks()

	service := NewChatService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConversationRepo.On("GetByID", ctx, "conv-1").Return(&entities.Conversation{
		ID:     "conv-1",
		UserID: "user-1",
	}, nil)
	mockUserRepo.On("GetByID", ctx, "user-2").Return(&entities.User{
		ID:      "user-2",
		IsAdmin: false,
	}, nil)

	msg, err := service.PostMessage(ctx, "conv-1", "user-2", "let me in")

	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.Nil(t, msg)
	mockMessageRepo.AssertNotCalled(t, "Create")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestChatService_ListMessages_AppliesAccessRule(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, mockUserRepo, _, _, mockConversationRepo, mockMessageRepo := newWithdrawalMocks()

	service := NewChatService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockConversationRepo.On("GetByID", ctx, "conv-1").Return(&entities.Conversation{
		ID:     "conv-1",
		UserID: "user-1",
	}, nil)
	mockUserRepo.On("GetByID", ctx, "user-1").Return(&entities.User{ID: "user-1"}, nil)
	mockMessageRepo.On("GetByConversation", ctx, "conv-1").Return([]*entities.ChatMessage{
		{ID: "msg-1", Message: "first"},
		{ID: "msg-2", Message: "second"},
	}, nil)

	messages, err := service.ListMessages(ctx, "conv-1", "user-1")

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Message)
}

func TestChatService_StartConversation(t *testing.T) {
	ctx := context.Background()
	mockUoW, mockFactory, _, _, _, mockConversationRepo, _ := newWithdrawalMocks()

	service := NewChatService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	subject := "Account question"
	mockConversationRepo.On("Create", ctx, mock.MatchedBy(func(c *entities.Conversation) bool {
		return c.UserID == "user-1" &&
			c.Subject != nil && *c.Subject == subject &&
			c.Status == entities.ConversationStatusOpen
	})).Return(nil)

	conversation, err := service.StartConversation(ctx, "user-1", &subject)

	require.NoError(t, err)
	assert.Equal(t, entities.ConversationStatusOpen, conversation.Status)
}
